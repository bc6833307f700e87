package model

import (
	"bytes"
	"encoding/json"
)

// SlotCount is the fixed number of designer slots on a project.
const SlotCount = 3

// Project one tracked project card (collection "projects").
type Project struct {
	RowIndex         FlexInt       `json:"rowIndex,omitempty"`
	ID               FlexString    `json:"id,omitempty"`
	InternalID       FlexString    `json:"internalId,omitempty"`
	ProjectNumber    FlexString    `json:"projectNumber"`
	ProjectName      string        `json:"projectName"`
	Status           string        `json:"status"`
	PM               string        `json:"pm"`
	PMPriority       FlexString    `json:"pmPriority"`
	PMNotes          string        `json:"pmNotes"`
	Operational      string        `json:"operational"`
	OperationalNotes string        `json:"operationalNotes"`
	Designer1        string        `json:"designer1"`
	Priority1        FlexString    `json:"priority1"`
	Notes1           string        `json:"notes1"`
	Designer2        string        `json:"designer2"`
	Priority2        FlexString    `json:"priority2"`
	Notes2           string        `json:"notes2"`
	Designer3        string        `json:"designer3"`
	Priority3        FlexString    `json:"priority3"`
	Notes3           string        `json:"notes3"`
	LastModified     *LastModified `json:"lastModified,omitempty"`
}

// Slot is one designer assignment position on a project.
type Slot struct {
	Number   int
	Designer string
	Priority string
	Notes    string
}

// Slot returns slot n (1..3). Out-of-range numbers return an empty slot.
func (p *Project) Slot(n int) Slot {
	switch n {
	case 1:
		return Slot{Number: 1, Designer: p.Designer1, Priority: string(p.Priority1), Notes: p.Notes1}
	case 2:
		return Slot{Number: 2, Designer: p.Designer2, Priority: string(p.Priority2), Notes: p.Notes2}
	case 3:
		return Slot{Number: 3, Designer: p.Designer3, Priority: string(p.Priority3), Notes: p.Notes3}
	}
	return Slot{Number: n}
}

// Slots returns all three slots in slot order.
func (p *Project) Slots() [SlotCount]Slot {
	return [SlotCount]Slot{p.Slot(1), p.Slot(2), p.Slot(3)}
}

// SetDesigner writes the designer of slot n.
func (p *Project) SetDesigner(n int, name string) {
	switch n {
	case 1:
		p.Designer1 = name
	case 2:
		p.Designer2 = name
	case 3:
		p.Designer3 = name
	}
}

// SetPriority writes the priority of slot n.
func (p *Project) SetPriority(n int, priority string) {
	switch n {
	case 1:
		p.Priority1 = FlexString(priority)
	case 2:
		p.Priority2 = FlexString(priority)
	case 3:
		p.Priority3 = FlexString(priority)
	}
}

// SetNotes writes the notes of slot n.
func (p *Project) SetNotes(n int, notes string) {
	switch n {
	case 1:
		p.Notes1 = notes
	case 2:
		p.Notes2 = notes
	case 3:
		p.Notes3 = notes
	}
}

// AssignedDesigners returns the normalized names of assigned designers in slot order.
// Duplicates are kept: a designer in two slots appears twice.
func (p *Project) AssignedDesigners() []string {
	var names []string
	for _, s := range p.Slots() {
		if IsAssigned(s.Designer) {
			names = append(names, Normalize(s.Designer))
		}
	}
	return names
}

// DiffKey is the identity used to pair old and new records on a bulk save:
// internalId when present, otherwise id.
func (p *Project) DiffKey() string {
	if p.InternalID != "" {
		return string(p.InternalID)
	}
	return string(p.ID)
}

// Editor returns who last modified the record, "System" when unknown.
func (p *Project) Editor() string {
	if p.LastModified != nil && p.LastModified.By != "" {
		return p.LastModified.By
	}
	return "System"
}

// Clone returns a deep copy.
func (p *Project) Clone() Project {
	c := *p
	if p.LastModified != nil {
		lm := *p.LastModified
		c.LastModified = &lm
	}
	return c
}

// LastModified mutation stamp written by every update.
type LastModified struct {
	DateMs      int64  `json:"dateMs"`
	By          string `json:"by,omitempty"`
	Email       string `json:"email,omitempty"`
	DateDisplay string `json:"dateDisplay,omitempty"`
}

// UnmarshalJSON also accepts the bare epoch-ms number written by the import step.
func (l *LastModified) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var ms FlexInt
		if err := ms.UnmarshalJSON(data); err != nil {
			return err
		}
		*l = LastModified{DateMs: int64(ms)}
		return nil
	}
	type plain LastModified
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = LastModified(v)
	return nil
}
