package readiness

import "github.com/bryanwahyu/esg-responder/internal/domain/esg"

// PolicyStats is recomputed on demand; nothing is cached.
type PolicyStats struct {
	Total                int `json:"total"`
	Exists               int `json:"exists"`
	ApprovedOrPublished  int `json:"approved_or_published"`
	HighPriorityTotal    int `json:"high_priority_total"`
	HighPriorityComplete int `json:"high_priority_complete"`
	CompletionPercent    int `json:"completion_percent"`
}

// PolicyDone reports whether a policy exists and has been signed off.
func PolicyDone(p esg.Policy) bool {
	return p.Exists && (p.Status == esg.PolicyApproved || p.Status == esg.PolicyPublished)
}

func ComputePolicyStats(policies []esg.Policy) PolicyStats {
	var s PolicyStats
	for _, p := range policies {
		s.Total++
		if p.Exists {
			s.Exists++
		}
		if p.Status == esg.PolicyApproved || p.Status == esg.PolicyPublished {
			s.ApprovedOrPublished++
		}
		if p.Priority == esg.PriorityHigh {
			s.HighPriorityTotal++
			if PolicyDone(p) {
				s.HighPriorityComplete++
			}
		}
	}
	s.CompletionPercent = percent(s.Exists, s.Total)
	return s
}
