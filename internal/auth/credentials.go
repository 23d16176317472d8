package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"repairdesk/internal/user"

	"golang.org/x/crypto/bcrypt"
)

// Credentials registers users and verifies username/password pairs.
type Credentials struct {
	users user.Store
}

func NewCredentials(users user.Store) *Credentials {
	return &Credentials{users: users}
}

// Register stores a new user with a bcrypt hash of password. An empty role
// means user.RoleUser.
func (c *Credentials) Register(ctx context.Context, username, password string, role user.Role) (user.Profile, error) {
	u, err := newUser(username, password, role)
	if err != nil {
		return user.Profile{}, err
	}
	if err := c.users.Insert(ctx, u); err != nil {
		return user.Profile{}, insertError(err)
	}
	return u.Profile(), nil
}

// RegisterFirst is Register, except that it stores nothing and reports false
// when a user with role already exists. The check and the insert are atomic.
func (c *Credentials) RegisterFirst(ctx context.Context, username, password string, role user.Role) (user.Profile, bool, error) {
	u, err := newUser(username, password, role)
	if err != nil {
		return user.Profile{}, false, err
	}
	created, err := c.users.InsertFirstOfRole(ctx, u)
	if err != nil {
		return user.Profile{}, false, insertError(err)
	}
	if !created {
		return user.Profile{}, false, nil
	}
	return u.Profile(), true, nil
}

func newUser(username, password string, role user.Role) (*user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !storableUsername(username) {
		return nil, ErrInvalidUsername
	}
	if role == "" {
		role = user.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := user.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, internal("hash password", err)
	}
	return &user.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

func insertError(err error) error {
	if errors.Is(err, user.ErrDuplicateUsername) {
		return ErrConflict
	}
	return internal("insert user", err)
}

// Verify checks password against the stored hash for username. Unknown
// users and wrong passwords both yield ErrInvalidCredentials, and unknown
// users still pay for one bcrypt comparison.
func (c *Credentials) Verify(ctx context.Context, username, password string) (user.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return user.Profile{}, ErrMissingFields
	}
	if !storableUsername(username) {
		_ = user.CheckPassword(dummyHash(), password)
		return user.Profile{}, ErrInvalidCredentials
	}

	u, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_ = user.CheckPassword(dummyHash(), password)
			return user.Profile{}, ErrInvalidCredentials
		}
		return user.Profile{}, internal("find user", err)
	}
	if err := user.CheckPassword(u.PasswordHash, password); err != nil {
		return user.Profile{}, ErrInvalidCredentials
	}
	return u.Profile(), nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = user.HashPassword("repairdesk-timing-equalizer")
	})
	return dummy
}

// storableUsername rejects names the username column cannot hold. Postgres
// refuses NUL in text and overflowing varchar with an error, not a miss.
func storableUsername(username string) bool {
	return utf8.RuneCountInString(username) <= user.MaxUsernameLen && !strings.Contains(username, "\x00")
}
