// Package auth is the local single-user stand-in for a hosted identity
// provider. There is no authentication; the profile only feeds the UI.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
)

const (
	DefaultEmail    = "user@local"
	DefaultFullName = "Local User"
	DefaultRole     = "admin"
)

// LogoutResult tells the client where to go next.
type LogoutResult struct {
	Redirect string `json:"redirect"`
}

type Service struct {
	Store entities.Singletons
	NewID func() string
}

func NewService(store entities.Singletons) *Service {
	return &Service{Store: store, NewID: func() string { return uuid.New().String() }}
}

func (s *Service) defaultUser() entities.Record {
	return entities.Record{
		entities.FieldID: s.NewID(),
		"email":          DefaultEmail,
		"full_name":      DefaultFullName,
		"role":           DefaultRole,
	}
}

// Me returns the current user, creating and persisting the default one on first use.
func (s *Service) Me(ctx context.Context) (entities.Record, error) {
	u, err := s.Store.GetSingleton(ctx, entities.KeyUser)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	return s.Store.MergeSingleton(ctx, entities.KeyUser, nil, s.defaultUser)
}

// UpdateMe merges partial into the user; the id never changes.
func (s *Service) UpdateMe(ctx context.Context, partial entities.Record) (entities.Record, error) {
	patch := partial.Clone()
	delete(patch, entities.FieldID)
	return s.Store.MergeSingleton(ctx, entities.KeyUser, patch, s.defaultUser)
}

// Logout keeps all data; it only tells the client to return home.
func (s *Service) Logout(context.Context) LogoutResult {
	return LogoutResult{Redirect: "/"}
}
