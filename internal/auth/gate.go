package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"repairdesk/internal/user"
)

// Gate turns a bearer token into the current user record and enforces roles.
// Every validation re-reads the user so role changes apply immediately.
type Gate struct {
	tokens *TokenManager
	users  user.Store
}

func NewGate(tokens *TokenManager, users user.Store) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Validate resolves tokenStr to a user. Any token defect, or a user that no
// longer exists, fails with ErrAuthenticationRequired.
func (g *Gate) Validate(ctx context.Context, tokenStr string) (*user.Profile, error) {
	claims, err := g.tokens.Parse(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationRequired, err)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: token has no subject", ErrAuthenticationRequired)
	}

	u, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d no longer exists", ErrAuthenticationRequired, claims.UserID)
		}
		return nil, internal("resolve token user", err)
	}
	p := u.Profile()
	return &p, nil
}

func (g *Gate) RequireAuth(r *http.Request) (*user.Profile, error) {
	return g.Validate(r.Context(), BearerToken(r))
}

func (g *Gate) RequireAdmin(r *http.Request) (*user.Profile, error) {
	p, err := g.RequireAuth(r)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, ErrAuthorizationDenied
	}
	return p, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
