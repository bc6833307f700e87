// Package notify derives user-facing notifications from project snapshots.
//
// Diff and Filter are pure: they take plain records and return new slices,
// never touching the store. Ids, timestamps and read receipts are assigned
// by the caller when the surviving events are committed.
package notify

// Notification titles.
const (
	TitleNewAssignment      = "New Assignment"
	TitleAssignmentRemoved  = "Assignment Removed"
	TitleAssignmentChanged  = "Assignment Changed"
	TitleTeamUpdate         = "Team Update"
	TitlePMNoteUpdate       = "PM Note Update"
	TitlePriorityChangedPM  = "Priority Changed by PM"
	TitleSharedUpdate       = "Shared Project Update"
	TitleDesignerPriority   = "Designer Priority Change"
	TitlePMAssignmentUpdate = "PM Assignment Update"
	TitleCelebration        = "Project Celebration! 🎉"
)

// CelebrationStatuses normalized statuses whose arrival triggers a celebration.
var CelebrationStatuses = []string{
	"completed - sent to client",
	"approved - construction phase",
}

// Rule is one category of the diff rule table.
type Rule uint8

const (
	RuleAssignment Rule = 1 << iota
	RulePMNotes
	RulePriority
	RulePMReassignment
	RuleCelebration
)

// Scope selects which rules run for a kind of save.
type Scope struct {
	Name  string
	Rules Rule
	// PMChannel also tells the project's PM about top-3 priority moves.
	PMChannel bool
}

// Has reports whether the scope evaluates rule r.
func (s Scope) Has(r Rule) bool { return s.Rules&r != 0 }

const allRules = RuleAssignment | RulePMNotes | RulePriority | RulePMReassignment | RuleCelebration

// Rule table per kind of save.
var (
	// ScopePM single update from the PM view.
	ScopePM = Scope{Name: "pm", Rules: allRules}
	// ScopeDesigner single update of the editor's own slot.
	ScopeDesigner = Scope{Name: "mine", Rules: RulePriority, PMChannel: true}
	// ScopeOps single update from the operations view.
	ScopeOps = Scope{Name: "ops", Rules: RuleAssignment | RulePMReassignment}
	// ScopeBulk raw-document replace from the data editor.
	ScopeBulk = Scope{Name: "bulk", Rules: allRules, PMChannel: true}
)
