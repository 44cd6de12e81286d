package license

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/esg-responder/internal/domain/license"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

type recordingServer struct {
	got  []domain.Request
	resp domain.Response
	err  error
}

func (s *recordingServer) Call(_ context.Context, _ domain.Action, req domain.Request) (domain.Response, error) {
	s.got = append(s.got, req)
	return s.resp, s.err
}

func TestDo(t *testing.T) {
	tests := []struct {
		name    string
		action  domain.Action
		req     domain.Request
		wantErr error
		want    domain.Request
	}{
		{name: "missing key", action: domain.ActionValidate, req: domain.Request{LicenseKey: " "}, wantErr: pkgerrors.ErrInvalidArgument},
		{name: "deactivate needs instance", action: domain.ActionDeactivate, req: domain.Request{LicenseKey: "k"}, wantErr: pkgerrors.ErrInvalidArgument},
		{name: "unknown action", action: domain.Action("renew"), req: domain.Request{LicenseKey: "k"}, wantErr: pkgerrors.ErrInvalidArgument},
		{name: "activate default name", action: domain.ActionActivate, req: domain.Request{LicenseKey: " k "}, want: domain.Request{LicenseKey: "k", InstanceName: "ESG Responder"}},
		{name: "validate", action: domain.ActionValidate, req: domain.Request{LicenseKey: "k", InstanceID: "i"}, want: domain.Request{LicenseKey: "k", InstanceID: "i"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &recordingServer{resp: domain.Response{StatusCode: 200, Body: []byte(`{}`)}}
			resp, err := NewService(srv, nil).Do(context.Background(), tt.action, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, srv.got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			require.Len(t, srv.got, 1)
			assert.Equal(t, tt.want, srv.got[0])
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := &recordingServer{err: errors.New("dial tcp: connection refused")}
	_, err := NewService(srv, nil).Do(context.Background(), domain.ActionValidate, domain.Request{LicenseKey: "k"})
	assert.ErrorIs(t, err, pkgerrors.ErrUpstreamUnavailable)
}
