package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/infra/store"
)

func TestMeCreatesDefaultOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.New(store.NewMemoryBackend()))
	n := 0
	svc.NewID = func() string { n++; return "user-1" }

	u, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID())
	assert.Equal(t, DefaultEmail, u["email"])
	assert.Equal(t, DefaultRole, u["role"])

	again, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, again)
	assert.Equal(t, 1, n)
}

func TestUpdateMeKeepsID(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.New(store.NewMemoryBackend()))
	svc.NewID = func() string { return "user-1" }

	u, err := svc.UpdateMe(ctx, entities.Record{"id": "hijack", "full_name": "Dana"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID())
	assert.Equal(t, "Dana", u["full_name"])
	assert.Equal(t, DefaultEmail, u["email"])

	assert.Equal(t, LogoutResult{Redirect: "/"}, svc.Logout(ctx))
}
