package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"repairdesk/internal/config"
	"repairdesk/internal/db"
	"repairdesk/internal/user"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "my_test_jwt_secret"

func setupUserStore(t *testing.T) *user.GormStore {
	t.Helper()
	return user.NewGormStore(setupUserDB(t))
}

func setupUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return openTestDB(t, fmt.Sprintf("file:auth_%s?mode=memory&cache=shared", name))
}

// openTestDB opens dsn the way the server does, pool settings included.
func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	cfg := &config.Config{}
	cfg.Postgres.DSN = dsn
	conn, err := db.Open(cfg)
	require.NoError(t, err, "failed to open sqlite")
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func newTestTokens(t *testing.T, secret string) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(secret)
	require.NoError(t, err)
	return tm
}

var errStoreDown = errors.New("connection refused")

// brokenStore fails every call, standing in for an unreachable database.
type brokenStore struct{}

func (brokenStore) FindByUsername(context.Context, string) (*user.User, error) {
	return nil, errStoreDown
}
func (brokenStore) FindByID(context.Context, uint) (*user.User, error) { return nil, errStoreDown }
func (brokenStore) Insert(context.Context, *user.User) error          { return errStoreDown }
func (brokenStore) InsertFirstOfRole(context.Context, *user.User) (bool, error) {
	return false, errStoreDown
}
func (brokenStore) List(context.Context) ([]user.User, error)         { return nil, errStoreDown }
func (brokenStore) CountByRole(context.Context, user.Role) (int64, error) {
	return 0, errStoreDown
}
