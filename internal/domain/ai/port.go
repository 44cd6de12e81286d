package ai

import "context"

// MaxMessageLength caps the text accepted for enhancement, in characters.
const MaxMessageLength = 5000

// Enhancer rewrites a draft answer into polished questionnaire prose.
type Enhancer interface {
	Enhance(ctx context.Context, message string) (string, error)
}
