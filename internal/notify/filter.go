package notify

import "github.com/marvinpacsands/Project-List-Designers/internal/model"

// Filter applies the suppression rules to one save's candidate batch.
//
// Step 1 drops every event addressed to the acting identity. Step 2 drops
// every non-celebration event whose (target, project) pair is also covered by
// a celebration event in the same batch; celebration events always survive.
// The input slice is not modified.
func Filter(events []model.Notification, actor string) []model.Notification {
	return Supersede(SuppressSelf(events, actor))
}

// SuppressSelf drops events whose normalized target equals the actor.
func SuppressSelf(events []model.Notification, actor string) []model.Notification {
	out := make([]model.Notification, 0, len(events))
	for _, e := range events {
		if model.Normalize(actor) != "" && model.SameIdentity(e.TargetName, actor) {
			continue
		}
		out = append(out, e)
	}
	return out
}

type coverKey struct {
	target  string
	project string
}

// Supersede drops generic events covered by a celebration for the same
// (target, project) pair within the batch.
func Supersede(events []model.Notification) []model.Notification {
	covered := make(map[coverKey]bool)
	for _, e := range events {
		if e.IsCelebration() {
			covered[coverKey{model.Normalize(e.TargetName), string(e.ProjectNumber)}] = true
		}
	}
	if len(covered) == 0 {
		return events
	}

	out := make([]model.Notification, 0, len(events))
	for _, e := range events {
		if !e.IsCelebration() && covered[coverKey{model.Normalize(e.TargetName), string(e.ProjectNumber)}] {
			continue
		}
		out = append(out, e)
	}
	return out
}
