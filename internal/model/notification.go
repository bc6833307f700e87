package model

// TargetRole addresses a notification to a channel.
type TargetRole string

const (
	TargetPM       TargetRole = "PM"
	TargetDesigner TargetRole = "DESIGNER"
	TargetAny      TargetRole = "ANY"
)

// TypeCompletedModal marks a celebration event.
const TypeCompletedModal = "COMPLETED_MODAL"

// Notification one entry of the append-only log (collection "notifications").
type Notification struct {
	ID             FlexString `json:"id"`
	CreatedAt      int64      `json:"createdAt"`
	TargetRole     TargetRole `json:"targetRole"`
	TargetName     string     `json:"targetName"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	ProjectNumber  FlexString `json:"projectNumber"`
	ProjectName    string     `json:"projectName,omitempty"`
	Status         string     `json:"status,omitempty"`
	Type           string     `json:"type,omitempty"`
	Team           []string   `json:"team,omitempty"`
	HideViewButton bool       `json:"hideViewButton,omitempty"`
	ReadBy         []string   `json:"readBy"`
}

// IsCelebration reports whether the event is a celebration (confetti) event.
func (n *Notification) IsCelebration() bool {
	return n.Type == TypeCompletedModal
}

// IsReadBy reports whether any of the identities already acknowledged the event.
func (n *Notification) IsReadBy(identities ...string) bool {
	for _, r := range n.ReadBy {
		for _, id := range identities {
			if id != "" && SameIdentity(r, id) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy.
func (n *Notification) Clone() Notification {
	c := *n
	if n.Team != nil {
		c.Team = append(make([]string, 0, len(n.Team)), n.Team...)
	}
	if n.ReadBy != nil {
		c.ReadBy = append(make([]string, 0, len(n.ReadBy)), n.ReadBy...)
	}
	return c
}
