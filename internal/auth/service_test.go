package auth

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"repairdesk/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RegisterAndLogin(t *testing.T) {
	store := setupUserStore(t)
	tokens := newTestTokens(t, testSecret)
	svc := NewService(store, tokens)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice", "pw123", "")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice", reg.User.Username)

	login, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	claims, err := tokens.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_EnsureAdmin(t *testing.T) {
	store := setupUserStore(t)
	svc := NewService(store, newTestTokens(t, testSecret))
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "owner", "pw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "second-owner", "pw")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.FindByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
	_, err = store.FindByUsername(ctx, "second-owner")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestService_EnsureAdminNameTaken(t *testing.T) {
	store := setupUserStore(t)
	svc := NewService(store, newTestTokens(t, testSecret))
	ctx := context.Background()

	_, err := svc.Register(ctx, "owner", "pw", user.RoleUser)
	require.NoError(t, err)

	created, err := svc.EnsureAdmin(ctx, "owner", "pw")
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_EnsureAdminValidates(t *testing.T) {
	svc := NewService(setupUserStore(t), newTestTokens(t, testSecret))
	_, err := svc.EnsureAdmin(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestService_EnsureAdminConcurrent(t *testing.T) {
	conn := openTestDB(t, "sqlite:"+filepath.Join(t.TempDir(), "setup.db"))
	users := user.NewGormStore(conn)
	svc := NewService(users, newTestTokens(t, testSecret))
	ctx := context.Background()

	const n = 6
	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := svc.EnsureAdmin(ctx, fmt.Sprintf("owner%d", i), "pw")
			assert.NoError(t, err)
			if ok {
				created.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	admins, err := users.CountByRole(ctx, user.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)
}
