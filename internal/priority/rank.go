// Package priority parses designer priority strings and rebalances each
// designer's ranked sequence across projects.
package priority

import (
	"strconv"
	"strings"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
)

// Rank is a parsed priority: Unranked, or a positive 1-based position.
type Rank struct {
	n int
}

// Unranked is the zero Rank ("", "-", non-numeric, zero or negative).
var Unranked = Rank{}

// ParseRank parses a priority string. Only a trimmed, base-10, positive
// integer is a rank; everything else is Unranked.
func ParseRank(s string) Rank {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return Unranked
	}
	return Rank{n: n}
}

// Ranked reports whether r holds a position.
func (r Rank) Ranked() bool { return r.n > 0 }

// Value returns the position, 0 when unranked.
func (r Rank) Value() int { return r.n }

// String renders the rank the way it is stored ("" when unranked).
func (r Rank) String() string {
	if r.n <= 0 {
		return ""
	}
	return strconv.Itoa(r.n)
}

// IsTop3 reports whether a priority string is literally "1", "2" or "3"
// after trimming. "01" or "3.0" are not top-3.
func IsTop3(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "2", "3":
		return true
	}
	return false
}

// InactiveStatuses archival statuses excluded from ranking.
var InactiveStatuses = []string{
	"Abandoned",
	"Expired",
	"Approved - Construction Phase",
	"Completed - Sent to Client",
	"Paused - Stalled by 3rd Party",
	"Do Not Click - Final Submit for Approval",
}

// IsInactive reports whether status matches an archival status: the
// normalized status equals or contains one of InactiveStatuses.
func IsInactive(status string) bool {
	s := model.Normalize(status)
	if s == "" {
		return false
	}
	for _, inactive := range InactiveStatuses {
		if strings.Contains(s, model.Normalize(inactive)) {
			return true
		}
	}
	return false
}
