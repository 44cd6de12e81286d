// Package readiness derives read-only views from tracked ESG data:
// which data points are safe to share, how complete a questionnaire
// response can be, policy completion and document expiry.
//
// Every function here is pure. Missing or unrecognised inputs fall to the
// weakest classification instead of failing.
package readiness

import "github.com/bryanwahyu/esg-responder/internal/domain/esg"

// Classify reports whether a data point is safe to share externally:
// it must be complete and held with high or medium confidence.
func Classify(status esg.Status, confidence esg.Confidence) bool {
	if status != esg.StatusComplete {
		return false
	}
	switch NormalizeConfidence(confidence) {
	case esg.ConfidenceHigh, esg.ConfidenceMedium:
		return true
	default:
		return false
	}
}

// SafeToShare is Classify applied to a record.
func SafeToShare(r esg.ConfidenceRecord) bool {
	return Classify(r.Status, r.Confidence)
}

// NormalizeConfidence maps missing or unknown values to none.
func NormalizeConfidence(c esg.Confidence) esg.Confidence {
	switch c {
	case esg.ConfidenceHigh, esg.ConfidenceMedium, esg.ConfidenceLow:
		return c
	default:
		return esg.ConfidenceNone
	}
}

// NormalizeStatus maps missing or unknown values to not_started.
func NormalizeStatus(s esg.Status) esg.Status {
	switch s {
	case esg.StatusInProgress, esg.StatusComplete:
		return s
	default:
		return esg.StatusNotStarted
	}
}
