package license

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/esg-responder/internal/domain/license"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

type Service struct {
	Server domain.Server
	Log    *logger.Logger
}

func NewService(server domain.Server, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Server: server, Log: log}
}

// Do checks the fields the action requires and forwards the call.
func (s *Service) Do(ctx context.Context, action domain.Action, req domain.Request) (domain.Response, error) {
	req.LicenseKey = strings.TrimSpace(req.LicenseKey)
	if req.LicenseKey == "" {
		return domain.Response{}, fmt.Errorf("%w: license_key is required", pkgerrors.ErrInvalidArgument)
	}
	switch action {
	case domain.ActionValidate:
	case domain.ActionActivate:
		if strings.TrimSpace(req.InstanceName) == "" {
			req.InstanceName = "ESG Responder"
		}
	case domain.ActionDeactivate:
		if strings.TrimSpace(req.InstanceID) == "" {
			return domain.Response{}, fmt.Errorf("%w: instance_id is required", pkgerrors.ErrInvalidArgument)
		}
	default:
		return domain.Response{}, fmt.Errorf("%w: unknown license action %q", pkgerrors.ErrInvalidArgument, action)
	}

	resp, err := s.Server.Call(ctx, action, req)
	if err != nil {
		s.Log.Warn("license server unreachable", "action", action, "error", err)
		return domain.Response{}, fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}
