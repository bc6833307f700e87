package notify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/notify"
)

func baseProject() model.Project {
	return model.Project{
		RowIndex:      2,
		ProjectNumber: "P-100",
		ProjectName:   "Harbor House",
		Status:        "In Progress",
		PM:            "Bob",
	}
}

func titles(events []model.Notification) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func targets(events []model.Notification) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.TargetName)
	}
	return out
}

func TestDiff_NoChange(t *testing.T) {
	p := baseProject()
	p.Designer1 = "Alice"
	p.Priority1 = "1"

	require.Empty(t, notify.Diff(p, p, "Bob", notify.ScopeBulk))
}

func TestDiff_IsDeterministic(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "1"
	old.Designer2, old.Priority2 = "Carol", "2"
	cur := old
	cur.Designer1 = "Dave"
	cur.PMNotes = "client wants the west elevation revised"
	cur.PM = "Erin"
	cur.Status = "Completed - Sent To Client"

	first := notify.Diff(old, cur, "Bob", notify.ScopeBulk)
	second := notify.Diff(old, cur, "Bob", notify.ScopeBulk)
	require.NotEmpty(t, first)
	require.Equal(t, first, second)
}

func TestDiff_NewAssignment(t *testing.T) {
	old := baseProject()
	cur := old
	cur.Designer2 = "  Alice "

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 1)
	require.Equal(t, notify.TitleNewAssignment, events[0].Title)
	require.Equal(t, "alice", events[0].TargetName)
	require.Equal(t, model.TargetDesigner, events[0].TargetRole)
	require.Equal(t, model.FlexString("P-100"), events[0].ProjectNumber)
}

func TestDiff_UnassignedSentinelCountsAsEmpty(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Unassigned"
	cur := old
	cur.Designer1 = ""

	require.Empty(t, notify.Diff(old, cur, "Bob", notify.ScopePM))
}

func TestDiff_AssignmentRemoved(t *testing.T) {
	old := baseProject()
	old.Designer3 = "Alice"
	cur := old
	cur.Designer3 = "Unassigned"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 1)
	require.Equal(t, notify.TitleAssignmentRemoved, events[0].Title)
	require.Equal(t, "alice", events[0].TargetName)
	require.True(t, events[0].HideViewButton)
}

func TestDiff_AssignmentReplaced_NotifiesTop3Teammates(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "4"
	old.Designer2, old.Priority2 = "Carol", "2"
	old.Designer3, old.Priority3 = "Dave", "3"
	cur := old
	cur.Designer1 = "Erin"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Equal(t, []string{
		notify.TitleAssignmentChanged,
		notify.TitleNewAssignment,
		notify.TitleTeamUpdate,
		notify.TitleTeamUpdate,
	}, titles(events))
	require.Equal(t, []string{"alice", "erin", "carol", "dave"}, targets(events))
}

func TestDiff_AssignmentReplaced_SkipsTeammatesOutsideTop3(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	old.Designer2, old.Priority2 = "Carol", "4"
	old.Designer3, old.Priority3 = "Dave", "-"
	cur := old
	cur.Designer1 = "Erin"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Equal(t, []string{notify.TitleAssignmentChanged, notify.TitleNewAssignment}, titles(events))
}

func TestDiff_AssignmentReplaced_CaseOnlyChangeIsNotAReplace(t *testing.T) {
	old := baseProject()
	old.Designer1 = "alice"
	cur := old
	cur.Designer1 = "ALICE"

	require.Empty(t, notify.Diff(old, cur, "Bob", notify.ScopePM))
}

func TestDiff_AssignmentReplaced_PriorityResetStillSharesUpdate(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "1"
	old.Designer2, old.Priority2 = "Carol", "2"
	cur := old
	cur.Designer1, cur.Priority1 = "Erin", "-"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Equal(t, []string{
		notify.TitleAssignmentChanged,
		notify.TitleNewAssignment,
		notify.TitleTeamUpdate,
		notify.TitleSharedUpdate,
	}, titles(events))
	require.Equal(t, []string{"alice", "erin", "carol", "carol"}, targets(events))
}

func TestDiff_AssignmentReplaced_PriorityMoveReachesTeammatesAndPM(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "1"
	old.Designer2, old.Priority2 = "Dan", "2"
	cur := old
	cur.Designer1, cur.Priority1 = "Carol", "3"

	events := notify.Diff(old, cur, "Ops Person", notify.ScopeBulk)
	require.Equal(t, []string{
		notify.TitleAssignmentChanged,
		notify.TitleNewAssignment,
		notify.TitleTeamUpdate,
		notify.TitleSharedUpdate,
		notify.TitleDesignerPriority,
	}, titles(events))
	require.Equal(t, []string{"alice", "carol", "dan", "dan", "bob"}, targets(events))
	require.Equal(t, model.TargetPM, events[4].TargetRole)
	require.NotContains(t, titles(events), notify.TitlePriorityChangedPM)
}

func TestDiff_PMNotes_TruncatesLongNotes(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	old.Designer3 = "Dave"
	cur := old
	cur.PMNotes = "0123456789012345678901234567890123456789012345678901234567890123456789"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Equal(t, []string{"alice", "dave"}, targets(events))
	require.Contains(t, events[0].Body, `"012345678901234567890123456789012345678901234567890123456789..."`)
}

func TestDiff_PMNotes_RawCompare(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	old.PMNotes = "note"
	cur := old
	cur.PMNotes = "note "

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 1)
	require.Equal(t, notify.TitlePMNoteUpdate, events[0].Title)
}

func TestDiff_Priority_UnrankedToTop3(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	cur := old
	cur.Priority1 = "2"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 1)
	require.Equal(t, notify.TitlePriorityChangedPM, events[0].Title)
	require.Equal(t, "alice", events[0].TargetName)

	// the designer editing their own card is filtered out afterwards
	require.Empty(t, notify.Filter(events, "alice"))
}

func TestDiff_Priority_OutsideTop3IsSilent(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "4"
	cur := old
	cur.Priority1 = "7"

	require.Empty(t, notify.Diff(old, cur, "Bob", notify.ScopeBulk))
}

func TestDiff_Priority_SharedUpdateAndPMChannel(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "5"
	old.Designer2, old.Priority2 = "Carol", "1"
	old.Designer3, old.Priority3 = "Dave", "9"
	cur := old
	cur.Priority1 = "3"

	pmScope := notify.Diff(old, cur, "Alice", notify.ScopePM)
	require.Equal(t, []string{notify.TitlePriorityChangedPM, notify.TitleSharedUpdate}, titles(pmScope))
	require.Equal(t, []string{"alice", "carol"}, targets(pmScope))

	designerScope := notify.Diff(old, cur, "Alice", notify.ScopeDesigner)
	require.Equal(t, []string{
		notify.TitlePriorityChangedPM,
		notify.TitleSharedUpdate,
		notify.TitleDesignerPriority,
	}, titles(designerScope))
	require.Equal(t, model.TargetPM, designerScope[2].TargetRole)
	require.Equal(t, "bob", designerScope[2].TargetName)

	survivors := notify.Filter(designerScope, "Alice")
	require.Equal(t, []string{"carol", "bob"}, targets(survivors))
}

func TestDiff_DesignerNotesNeverNotify(t *testing.T) {
	old := baseProject()
	old.Designer1, old.Priority1 = "Alice", "1"
	cur := old
	cur.Notes1 = "waiting on survey"

	for _, scope := range []notify.Scope{notify.ScopePM, notify.ScopeDesigner, notify.ScopeOps, notify.ScopeBulk} {
		require.Empty(t, notify.Diff(old, cur, "Alice", scope), scope.Name)
	}
}

func TestDiff_PMReassignment(t *testing.T) {
	cases := []struct {
		name, oldPM, newPM, want string
	}{
		{"assigned", "", "Erin", "PM assigned"},
		{"removed", "Bob", "Unassigned", "PM removed"},
		{"changed", "Bob", "Erin", "PM changed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			old := baseProject()
			old.PM = tc.oldPM
			old.Designer1 = "Alice"
			old.Designer2 = "Carol"
			cur := old
			cur.PM = tc.newPM

			events := notify.Diff(old, cur, "Ops", notify.ScopeOps)
			require.Equal(t, []string{"alice", "carol"}, targets(events))
			require.Equal(t, notify.TitlePMAssignmentUpdate, events[0].Title)
			require.Contains(t, events[0].Body, tc.want)
		})
	}
}

func TestDiff_PMReassignment_EmptyToSentinelIsSilent(t *testing.T) {
	old := baseProject()
	old.PM = ""
	old.Designer1 = "Alice"
	cur := old
	cur.PM = "Unassigned"

	require.Empty(t, notify.Diff(old, cur, "Ops", notify.ScopeOps))
}

func TestDiff_Celebration(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	cur := old
	cur.Status = "Completed - Sent To Client"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 2)
	for _, e := range events {
		require.Equal(t, model.TypeCompletedModal, e.Type)
		require.Equal(t, model.TargetAny, e.TargetRole)
		require.Equal(t, []string{"alice", "bob"}, e.Team)
		require.Equal(t, "Completed - Sent To Client", e.Status)
	}
	require.Equal(t, []string{"alice", "bob"}, targets(events))
}

func TestDiff_Celebration_DedupsTeam(t *testing.T) {
	old := baseProject()
	old.PM = "Alice"
	old.Designer1 = "Alice"
	old.Designer2 = "carol"
	old.Designer3 = "Carol "
	cur := old
	cur.Status = "approved - construction phase"

	events := notify.Diff(old, cur, "Zed", notify.ScopeBulk)
	require.Equal(t, []string{"alice", "carol"}, targets(events))
	require.Equal(t, []string{"alice", "carol"}, events[0].Team)
}

func TestDiff_Celebration_RequiresStatusChange(t *testing.T) {
	old := baseProject()
	old.Designer1 = "Alice"
	old.Status = "Completed - Sent to Client"
	cur := old
	cur.Status = "  completed - sent to client "

	require.Empty(t, notify.Diff(old, cur, "Bob", notify.ScopeBulk))
}

func TestDiff_ScopeDesignerIgnoresAssignmentAndNotes(t *testing.T) {
	old := baseProject()
	cur := old
	cur.Designer1 = "Alice"
	cur.PMNotes = "new"

	require.Empty(t, notify.Diff(old, cur, "Bob", notify.ScopeDesigner))
}

func TestDiff_BodyEscapesHTML(t *testing.T) {
	old := baseProject()
	cur := old
	cur.ProjectName = "<script>x</script>"
	cur.Designer1 = "Alice"

	events := notify.Diff(old, cur, "Bob", notify.ScopePM)
	require.Len(t, events, 1)
	require.NotContains(t, events[0].Body, "<script>")
	require.Contains(t, events[0].Body, "&lt;script&gt;")
}
