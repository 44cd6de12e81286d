package answers

import (
	"context"

	domain "github.com/bryanwahyu/esg-responder/internal/domain/answers"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// Service searches the MasterAnswer collection. CRUD goes through the
// generic entity routes.
type Service struct {
	Repo entities.Repository
	Log  *logger.Logger
}

func NewService(repo entities.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Repo: repo, Log: log}
}

func (s *Service) Search(ctx context.Context, q domain.Query) ([]esg.MasterAnswer, error) {
	recs, err := s.Repo.List(ctx, entities.MasterAnswer)
	if err != nil {
		return nil, err
	}
	list := esg.Decode[esg.MasterAnswer](recs, func(id string, err error) {
		s.Log.Debug("stored record does not fit its type", "collection", entities.MasterAnswer, "id", id, "error", err)
	})
	return domain.Search(list, q), nil
}
