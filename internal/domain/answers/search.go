// Package answers searches the master answer library.
package answers

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// Query selects master answers. Every whitespace-separated term of Text must
// occur, case-insensitively, in the question, answer, keywords or topic.
// An empty Text matches everything; an empty Confidence means any.
type Query struct {
	Text       string         `json:"q"`
	Confidence esg.Confidence `json:"confidence,omitempty"`
}

// ParseConfidence accepts a confidence level, or "" / "all" for no filter.
func ParseConfidence(s string) (esg.Confidence, error) {
	switch c := esg.Confidence(strings.ToLower(strings.TrimSpace(s))); c {
	case "", "all":
		return "", nil
	case esg.ConfidenceHigh, esg.ConfidenceMedium, esg.ConfidenceLow, esg.ConfidenceNone:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown confidence %q", pkgerrors.ErrInvalidArgument, s)
	}
}

// Search returns the matching answers in their stored order.
func Search(list []esg.MasterAnswer, q Query) []esg.MasterAnswer {
	terms := strings.Fields(strings.ToLower(q.Text))
	out := []esg.MasterAnswer{}
	for _, a := range list {
		if q.Confidence != "" && confidenceOf(a) != q.Confidence {
			continue
		}
		if matchesAll(a, terms) {
			out = append(out, a)
		}
	}
	return out
}

// confidenceOf treats a missing confidence as none.
func confidenceOf(a esg.MasterAnswer) esg.Confidence {
	if a.Confidence == "" {
		return esg.ConfidenceNone
	}
	return esg.Confidence(strings.ToLower(string(a.Confidence)))
}

func matchesAll(a esg.MasterAnswer, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{a.Question, a.Answer, a.Keywords, a.Topic}, "\n"))
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
