package notify

import (
	"fmt"
	"strings"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/priority"
)

// Diff derives the candidate notifications for one project save.
//
// Rules run in a fixed order (assignment, PM notes, priority, PM reassignment,
// celebration) and within a rule in slot order 1, 2, 3, so identical inputs
// always yield the identical sequence. Rules the scope does not include are
// skipped. Returned events carry no id, timestamp or read receipts.
func Diff(old, cur model.Project, editorName string, scope Scope) []model.Notification {
	d := differ{old: &old, cur: &cur, editor: editorName}

	if scope.Has(RuleAssignment) {
		d.assignments()
	}
	if scope.Has(RulePMNotes) {
		d.pmNotes()
	}
	if scope.Has(RulePriority) {
		d.priorities(scope.PMChannel)
	}
	if scope.Has(RulePMReassignment) {
		d.pmReassignment()
	}
	if scope.Has(RuleCelebration) {
		d.celebration()
	}
	return d.out
}

type differ struct {
	old, cur *model.Project
	editor   string
	out      []model.Notification
}

func (d *differ) emit(role model.TargetRole, target, title, body string) *model.Notification {
	d.out = append(d.out, model.Notification{
		TargetRole:    role,
		TargetName:    target,
		Title:         title,
		Body:          body,
		ProjectNumber: d.cur.ProjectNumber,
	})
	return &d.out[len(d.out)-1]
}

func (d *differ) projectName() string { return hlProject(d.cur.ProjectName) }

// ────────────────────── Rule 1: assignment ──────────────────────

func (d *differ) assignments() {
	for n := 1; n <= model.SlotCount; n++ {
		oldName := d.old.Slot(n).Designer
		newName := d.cur.Slot(n).Designer
		oldSet, newSet := model.IsAssigned(oldName), model.IsAssigned(newName)
		oldKey, newKey := model.Normalize(oldName), model.Normalize(newName)

		switch {
		case !oldSet && newSet:
			d.emit(model.TargetDesigner, newKey, TitleNewAssignment,
				fmt.Sprintf("You have been assigned to %s by %s. Please prioritize this project.", d.projectName(), hlUser(d.editor)))

		case oldSet && !newSet:
			e := d.emit(model.TargetDesigner, oldKey, TitleAssignmentRemoved,
				fmt.Sprintf("You have been removed from %s by %s.", d.projectName(), hlUser(d.editor)))
			e.HideViewButton = true

		case oldSet && newSet && oldKey != newKey:
			e := d.emit(model.TargetDesigner, oldKey, TitleAssignmentChanged,
				fmt.Sprintf("You have been replaced on %s by %s.", d.projectName(), hlUser(newKey)))
			e.HideViewButton = true
			d.emit(model.TargetDesigner, newKey, TitleNewAssignment,
				fmt.Sprintf("You have been assigned to replace %s on %s. Please prioritize this project.", hlUser(oldKey), d.projectName()))

			for _, mate := range d.cur.Slots() {
				if mate.Number == n || !model.IsAssigned(mate.Designer) || !priority.IsTop3(mate.Priority) {
					continue
				}
				d.emit(model.TargetDesigner, model.Normalize(mate.Designer), TitleTeamUpdate,
					fmt.Sprintf("%s was replaced by %s on %s", hlUser(oldKey), hlUser(newKey), d.projectName()))
			}
		}
	}
}

// ────────────────────── Rule 2: PM notes ──────────────────────

func (d *differ) pmNotes() {
	if d.old.PMNotes == d.cur.PMNotes {
		return
	}
	body := fmt.Sprintf(`%s<br>PM updated notes: "%s"`, d.projectName(), escape(excerpt(d.cur.PMNotes)))
	for _, name := range d.cur.AssignedDesigners() {
		d.emit(model.TargetDesigner, name, TitlePMNoteUpdate, body)
	}
}

// ────────────────────── Rule 3: priority ──────────────────────

func (d *differ) priorities(pmChannel bool) {
	for n := 1; n <= model.SlotCount; n++ {
		oldSlot, newSlot := d.old.Slot(n), d.cur.Slot(n)
		oldPrio := strings.TrimSpace(oldSlot.Priority)
		newPrio := strings.TrimSpace(newSlot.Priority)
		if oldPrio == newPrio || !(priority.IsTop3(oldPrio) || priority.IsTop3(newPrio)) {
			continue
		}
		designer := newSlot.Designer
		badge := prioBadge(oldPrio, newPrio)

		// a new designer on the slot hears about it through the assignment rule
		if model.IsAssigned(designer) && sameDesigner(oldSlot.Designer, designer) {
			d.emit(model.TargetDesigner, model.Normalize(designer), TitlePriorityChangedPM,
				fmt.Sprintf("%s<br>Priority: %s<br>Changed by %s", d.projectName(), badge, hlUser(d.editor)))
		}

		for _, mate := range d.cur.Slots() {
			if mate.Number == n || !model.IsAssigned(mate.Designer) || !priority.IsTop3(mate.Priority) {
				continue
			}
			forWhom := ""
			if model.IsAssigned(designer) && !model.SameIdentity(d.editor, designer) {
				forWhom = " for " + hlUser(designer)
			}
			d.emit(model.TargetDesigner, model.Normalize(mate.Designer), TitleSharedUpdate,
				fmt.Sprintf("%s changed priority on %s%s<br>Priority: %s<br>This project is also in your Top 3",
					hlUser(d.editor), d.projectName(), forWhom, badge))
		}

		if pmChannel && model.IsAssigned(d.cur.PM) {
			who := designer
			if !model.IsAssigned(who) {
				who = "A designer"
			}
			d.emit(model.TargetPM, model.Normalize(d.cur.PM), TitleDesignerPriority,
				fmt.Sprintf("%s changed priority on %s (Slot %d)<br>Priority: %s", hlUser(who), d.projectName(), n, badge))
		}
	}
}

// ────────────────────── Rule 4: PM reassignment ──────────────────────

func (d *differ) pmReassignment() {
	if sameDesigner(d.old.PM, d.cur.PM) {
		return
	}
	var change string
	switch {
	case !model.IsAssigned(d.old.PM):
		change = "PM assigned: " + hlUser(d.cur.PM)
	case !model.IsAssigned(d.cur.PM):
		change = "PM removed: " + hlUser(d.old.PM)
	default:
		change = "PM changed: " + hlUser(d.old.PM) + " → " + hlUser(d.cur.PM)
	}
	body := d.projectName() + "<br>" + change
	for _, name := range d.cur.AssignedDesigners() {
		d.emit(model.TargetDesigner, name, TitlePMAssignmentUpdate, body)
	}
}

// ────────────────────── Rule 5: celebration ──────────────────────

func (d *differ) celebration() {
	status := model.Normalize(d.cur.Status)
	if status == model.Normalize(d.old.Status) || !isCelebrationStatus(status) {
		return
	}

	team := Team(d.cur)
	body := fmt.Sprintf("%s<br>Status changed to: <strong>%s</strong>", d.projectName(), escape(d.cur.Status))
	for _, member := range team {
		e := d.emit(model.TargetAny, member, TitleCelebration, body)
		e.Type = model.TypeCompletedModal
		e.ProjectName = d.cur.ProjectName
		e.Status = d.cur.Status
		e.Team = append([]string(nil), team...)
	}
}

// Team lists the distinct normalized members of a project: assigned designers
// in slot order, then the PM, keeping first occurrence.
func Team(p *model.Project) []string {
	var team []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !model.IsAssigned(name) {
			return
		}
		key := model.Normalize(name)
		if seen[key] {
			return
		}
		seen[key] = true
		team = append(team, key)
	}
	for _, s := range p.Slots() {
		add(s.Designer)
	}
	add(p.PM)
	return team
}

func sameDesigner(a, b string) bool {
	if !model.IsAssigned(a) && !model.IsAssigned(b) {
		return true
	}
	return model.SameIdentity(a, b)
}

func isCelebrationStatus(normalized string) bool {
	for _, s := range CelebrationStatuses {
		if normalized == s {
			return true
		}
	}
	return false
}
