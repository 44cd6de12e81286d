package readiness

import (
	"sort"
	"strings"

	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
)

// PriorityRank orders high < medium < low < anything else.
func PriorityRank(p esg.Priority) int {
	switch p {
	case esg.PriorityHigh:
		return 0
	case esg.PriorityMedium:
		return 1
	case esg.PriorityLow:
		return 2
	default:
		return 3
	}
}

// SortPolicies orders by priority, then name (case-insensitive). Stable.
func SortPolicies(policies []esg.Policy) {
	sort.SliceStable(policies, func(i, j int) bool {
		a, b := policies[i], policies[j]
		if ra, rb := PriorityRank(a.Priority), PriorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// SortActionItems orders by priority, then due date ascending. Items with
// no (or an unparsable) due date come last within their priority.
func SortActionItems(items []esg.ActionItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if ra, rb := PriorityRank(a.Priority), PriorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		da, okA := ParseDate(a.DueDate)
		db, okB := ParseDate(b.DueDate)
		switch {
		case okA && okB:
			return da.Before(db)
		case okA:
			return true
		default:
			return false
		}
	})
}

// PartitionRequests groups requests by status, keeping insertion order
// inside each group.
func PartitionRequests(requests []esg.CustomerRequest) map[string][]esg.CustomerRequest {
	out := map[string][]esg.CustomerRequest{}
	for _, r := range requests {
		status := r.Status
		if status == "" {
			status = "new"
		}
		out[status] = append(out[status], r)
	}
	return out
}
