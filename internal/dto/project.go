package dto

import "github.com/marvinpacsands/Project-List-Designers/internal/model"

// View modes shared by the project list and update endpoints.
const (
	ModePM   = "pm"
	ModeMine = "mine"
	ModeOps  = "ops"
)

// PMFilterAll and PMFilterUnassigned are the special pmName filters of the PM view.
const (
	PMFilterAll        = "__ALL__"
	PMFilterUnassigned = model.UnassignedName
)

// ── list ──

// ProjectListRequest GET /api/projects query
type ProjectListRequest struct {
	Email  string `form:"email"  binding:"required"`
	Mode   string `form:"mode"   binding:"required"`
	PMName string `form:"pmName"`
}

// TeamMember one designer slot as shown on a card
type TeamMember struct {
	Slot        int    `json:"slot"`
	Name        string `json:"name"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
	DateDisplay string `json:"dateDisplay"`
}

// PMFields the PM's own columns on a card
type PMFields struct {
	Priority            string `json:"priority"`
	Notes               string `json:"notes"`
	DatePriorityDisplay string `json:"datePriorityDisplay"`
	DateNotesDisplay    string `json:"dateNotesDisplay"`
}

// MySlot the requesting designer's slot (mine view)
type MySlot struct {
	Slot     int    `json:"slot"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// OperationalFields the operations columns (ops view)
type OperationalFields struct {
	User  string `json:"user"`
	Notes string `json:"notes"`
}

// ProjectView one role-shaped project card
type ProjectView struct {
	RowIndex      int64               `json:"rowIndex"`
	ProjectNumber string              `json:"projectNumber"`
	ProjectName   string              `json:"projectName"`
	Status        string              `json:"status"`
	InternalID    string              `json:"internalId,omitempty"`
	PMName        string              `json:"pmName"`
	PM            PMFields            `json:"pm"`
	Team          []TeamMember        `json:"team"`
	LastModified  *model.LastModified `json:"lastModified,omitempty"`
	My            *MySlot             `json:"my,omitempty"`
	Operational   *OperationalFields  `json:"operational,omitempty"`
}

// Person a user as listed in roster dropdowns
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProjectListResponse the cards plus the auxiliary lists of the view
type ProjectListResponse struct {
	Projects []ProjectView `json:"projects"`
	People   []Person      `json:"people"`

	// PM view only
	PMList          []string       `json:"pmList,omitempty"`
	StatusList      []string       `json:"statusList,omitempty"`
	TotalUnassigned *int           `json:"totalUnassigned,omitempty"`
	DesignerCounts  map[string]int `json:"designerCounts,omitempty"`
	CustomSortOrder []int64        `json:"customSortOrder"`
}

// ── update ──

// UpdateRequest POST /api/update body
type UpdateRequest struct {
	Email   string        `json:"email"   binding:"required"`
	Mode    string        `json:"mode"    binding:"required"`
	Payload UpdatePayload `json:"payload"`
}

// UpdatePayload role-scoped field changes. Nil fields are left untouched.
type UpdatePayload struct {
	RowIndex          model.FlexString `json:"rowIndex"`
	RealActorEmail    string           `json:"realActorEmail"`
	SkipNotifications bool             `json:"skipNotifications"`

	// pm
	PMPriority        *model.FlexString `json:"pmPriority"`
	PMNotes           *string           `json:"pmNotes"`
	PMName            *string           `json:"pmName"`
	Designer1         *string           `json:"designer1"`
	Designer2         *string           `json:"designer2"`
	Designer3         *string           `json:"designer3"`
	Designer1Priority *model.FlexString `json:"designer1Priority"`
	Designer2Priority *model.FlexString `json:"designer2Priority"`
	Designer3Priority *model.FlexString `json:"designer3Priority"`

	// mine
	Priority *model.FlexString `json:"priority"`
	Notes    *string           `json:"notes"`

	// ops
	OperationalNotes *string `json:"operationalNotes"`
}

// Designer returns the designer change for slot n, nil when absent.
func (p *UpdatePayload) Designer(n int) *string {
	switch n {
	case 1:
		return p.Designer1
	case 2:
		return p.Designer2
	case 3:
		return p.Designer3
	}
	return nil
}

// DesignerPriority returns the priority override for slot n, nil when absent.
func (p *UpdatePayload) DesignerPriority(n int) *model.FlexString {
	switch n {
	case 1:
		return p.Designer1Priority
	case 2:
		return p.Designer2Priority
	case 3:
		return p.Designer3Priority
	}
	return nil
}

// UpdateResponse result of a single-project update
type UpdateResponse struct {
	OK                 bool   `json:"ok"`
	SavedAtDisplay     string `json:"savedAtDisplay"`
	NotificationsAdded int    `json:"notificationsAdded"`
}

// ── custom order ──

// CustomOrderRequest POST /api/custom-order body
type CustomOrderRequest struct {
	Email             string          `json:"email"  binding:"required"`
	PMName            string          `json:"pmName" binding:"required"`
	OrderedRowIndexes []model.FlexInt `json:"orderedRowIndexes"`
}

// ── raw data ──

// RawDataRequest POST /api/raw-data body. Absent users/colors/config keep
// the stored values; the notification log is never taken from the client.
type RawDataRequest struct {
	Projects []model.Project    `json:"projects"`
	Users    []model.User       `json:"users"`
	Colors   map[string]string  `json:"colors"`
	Config   *model.BoardConfig `json:"config"`
}

// RawDataResponse result of a bulk replace
type RawDataResponse struct {
	Success         bool `json:"success"`
	Count           int  `json:"count"`
	NotifsGenerated int  `json:"notifsGenerated"`
	Rebalanced      int  `json:"rebalanced"`
}
