package model

// Collection names inside the board document.
const (
	CollectionProjects      = "projects"
	CollectionUsers         = "users"
	CollectionColors        = "colors"
	CollectionConfig        = "config"
	CollectionNotifications = "notifications"
	CollectionMeta          = "meta"
)

// DefaultPriorityOptions the numeric priority scale offered to clients.
var DefaultPriorityOptions = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// Collections lists the document's top-level collections in storage order.
var Collections = []string{
	CollectionProjects,
	CollectionUsers,
	CollectionColors,
	CollectionConfig,
	CollectionNotifications,
	CollectionMeta,
}

// Document is the whole board state persisted as one unit.
type Document struct {
	Projects      []Project         `json:"projects"`
	Users         []User            `json:"users"`
	Colors        map[string]string `json:"colors"` // normalized status -> phase color
	Config        BoardConfig       `json:"config"`
	Notifications []Notification    `json:"notifications"`
	Meta          Meta              `json:"meta"`
}

// BoardConfig static options surfaced by bootstrap.
type BoardConfig struct {
	PriorityOptions []string `json:"priorityOptions"`
}

// Meta bookkeeping that is never edited by clients.
type Meta struct {
	LastRowIndex int64 `json:"lastRowIndex"`
}

// NewDocument returns an empty board with the default configuration.
func NewDocument() *Document {
	return &Document{
		Projects:      []Project{},
		Users:         []User{},
		Colors:        map[string]string{},
		Config:        BoardConfig{PriorityOptions: append([]string(nil), DefaultPriorityOptions...)},
		Notifications: []Notification{},
	}
}

// CollectionRef returns a pointer to the field backing a collection, nil for
// unknown names. Stores decode into and encode from these pointers.
func (d *Document) CollectionRef(name string) any {
	switch name {
	case CollectionProjects:
		return &d.Projects
	case CollectionUsers:
		return &d.Users
	case CollectionColors:
		return &d.Colors
	case CollectionConfig:
		return &d.Config
	case CollectionNotifications:
		return &d.Notifications
	case CollectionMeta:
		return &d.Meta
	}
	return nil
}

// FindProject locates a project by rowIndex, compared as strings.
func (d *Document) FindProject(rowIndex string) *Project {
	for i := range d.Projects {
		if d.Projects[i].RowIndex != 0 && d.Projects[i].RowIndex.String() == rowIndex {
			return &d.Projects[i]
		}
	}
	return nil
}

// FindUser locates a user by email (normalized compare).
func (d *Document) FindUser(email string) *User {
	if Normalize(email) == "" {
		return nil
	}
	for i := range d.Users {
		if SameIdentity(d.Users[i].Email, email) {
			return &d.Users[i]
		}
	}
	return nil
}

// FindNotification locates a log entry by id, compared as strings.
func (d *Document) FindNotification(id string) *Notification {
	for i := range d.Notifications {
		if string(d.Notifications[i].ID) == id {
			return &d.Notifications[i]
		}
	}
	return nil
}

// AssignRowIndexes gives every project without a rowIndex the next value of
// the document's high-water mark and returns how many were assigned.
// Values are never reused, even after the highest-numbered project is removed.
func (d *Document) AssignRowIndexes() int {
	high := d.Meta.LastRowIndex
	for _, p := range d.Projects {
		if int64(p.RowIndex) > high {
			high = int64(p.RowIndex)
		}
	}
	assigned := 0
	for i := range d.Projects {
		if d.Projects[i].RowIndex <= 0 {
			high++
			d.Projects[i].RowIndex = FlexInt(high)
			assigned++
		}
	}
	d.Meta.LastRowIndex = high
	return assigned
}

// Clone returns a deep copy so callers can mutate freely and commit atomically.
func (d *Document) Clone() *Document {
	c := &Document{
		Config: BoardConfig{PriorityOptions: append([]string(nil), d.Config.PriorityOptions...)},
		Meta:   d.Meta,
	}
	if d.Projects != nil {
		c.Projects = make([]Project, len(d.Projects))
		for i := range d.Projects {
			c.Projects[i] = d.Projects[i].Clone()
		}
	}
	if d.Users != nil {
		c.Users = make([]User, len(d.Users))
		for i := range d.Users {
			c.Users[i] = d.Users[i].Clone()
		}
	}
	if d.Colors != nil {
		c.Colors = make(map[string]string, len(d.Colors))
		for k, v := range d.Colors {
			c.Colors[k] = v
		}
	}
	if d.Notifications != nil {
		c.Notifications = make([]Notification, len(d.Notifications))
		for i := range d.Notifications {
			c.Notifications[i] = d.Notifications[i].Clone()
		}
	}
	return c
}
