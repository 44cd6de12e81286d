package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/esg-responder/internal/domain/ai"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

type Service struct {
	client ai.Enhancer
	log    *logger.Logger
}

// NewService accepts a nil client; Enhance then fails with ErrNotConfigured.
func NewService(client ai.Enhancer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{client: client, log: log}
}

func (s *Service) Enhance(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", ai.ErrInvalidMessage)
	}
	if utf8.RuneCountInString(message) > ai.MaxMessageLength {
		return "", fmt.Errorf("%w: message exceeds %d characters", ai.ErrInvalidMessage, ai.MaxMessageLength)
	}
	if s.client == nil {
		return "", ai.ErrNotConfigured
	}
	out, err := s.client.Enhance(ctx, message)
	if err != nil {
		s.log.Warn("enhancement failed", "error", err)
		return "", err
	}
	return out, nil
}
