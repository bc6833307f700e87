package priority

import (
	"sort"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
)

// Result summarizes one Rebalance pass.
type Result struct {
	Cleared   int // inactive projects whose priorities were cleared
	Designers int // designers with at least one ranked entry
	Rewritten int // priority values that changed
}

type entry struct {
	project *model.Project
	slot    int
	rank    int
}

// Rebalance recomputes every designer's ranked sequence in place.
//
// Inactive projects lose all three priorities. Among active projects each
// (project, slot) pair is grouped by normalized designer; within a group the
// entries with a positive integer priority are stable-sorted ascending and
// rewritten to "1".."N". Unranked entries are left exactly as they were.
// Applying Rebalance to its own output changes nothing.
func Rebalance(projects []model.Project) Result {
	var res Result

	for i := range projects {
		p := &projects[i]
		if !IsInactive(p.Status) {
			continue
		}
		if p.Priority1 != "" || p.Priority2 != "" || p.Priority3 != "" {
			res.Cleared++
		}
		for n := 1; n <= model.SlotCount; n++ {
			p.SetPriority(n, "")
		}
	}

	groups := make(map[string][]entry)
	var order []string
	for i := range projects {
		p := &projects[i]
		if IsInactive(p.Status) {
			continue
		}
		for _, s := range p.Slots() {
			if !model.IsAssigned(s.Designer) {
				continue
			}
			key := model.Normalize(s.Designer)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], entry{project: p, slot: s.Number, rank: ParseRank(s.Priority).Value()})
		}
	}

	for _, key := range order {
		var ranked []entry
		for _, e := range groups[key] {
			if e.rank > 0 {
				ranked = append(ranked, e)
			}
		}
		if len(ranked) == 0 {
			continue
		}
		res.Designers++
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rank < ranked[j].rank })
		for pos, e := range ranked {
			next := Rank{n: pos + 1}.String()
			if e.project.Slot(e.slot).Priority != next {
				res.Rewritten++
			}
			e.project.SetPriority(e.slot, next)
		}
	}

	return res
}
