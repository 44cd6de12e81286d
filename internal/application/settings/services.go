package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// Service keeps the company profile and application settings.
type Service struct {
	Store entities.Singletons
}

func NewService(store entities.Singletons) *Service {
	return &Service{Store: store}
}

// GetProfile returns an empty record before the profile is first saved.
func (s *Service) GetProfile(ctx context.Context) (entities.Record, error) {
	return s.get(ctx, entities.KeyCompanyProfile)
}

// SaveProfile merges partial into the stored profile. legal_name may not be blanked.
func (s *Service) SaveProfile(ctx context.Context, partial entities.Record) (entities.Record, error) {
	if v, ok := partial["legal_name"]; ok {
		name, isString := v.(string)
		if !isString || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: legal_name cannot be empty", pkgerrors.ErrInvalidArgument)
		}
	}
	return s.Store.MergeSingleton(ctx, entities.KeyCompanyProfile, partial, nil)
}

func (s *Service) GetSettings(ctx context.Context) (entities.Record, error) {
	return s.get(ctx, entities.KeySettings)
}

func (s *Service) SaveSettings(ctx context.Context, partial entities.Record) (entities.Record, error) {
	return s.Store.MergeSingleton(ctx, entities.KeySettings, partial, nil)
}

func (s *Service) get(ctx context.Context, key string) (entities.Record, error) {
	r, err := s.Store.GetSingleton(ctx, key)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = entities.Record{}
	}
	return r, nil
}
