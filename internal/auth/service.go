package auth

import (
	"context"

	"repairdesk/internal/user"
)

// Session is what a successful login or registration hands back to the client.
type Session struct {
	Token string       `json:"token"`
	User  user.Profile `json:"user"`
}

type Service struct {
	creds  *Credentials
	tokens *TokenManager
	users  user.Store
}

func NewService(users user.Store, tokens *TokenManager) *Service {
	return &Service{
		creds:  NewCredentials(users),
		tokens: tokens,
		users:  users,
	}
}

func (s *Service) Register(ctx context.Context, username, password string, role user.Role) (Session, error) {
	p, err := s.creds.Register(ctx, username, password, role)
	if err != nil {
		return Session{}, err
	}
	return s.session(p)
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	p, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	return s.session(p)
}

// EnsureAdmin creates the first admin account. It does nothing and reports
// false once any admin exists, including one created by a concurrent call.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	admins, err := s.users.CountByRole(ctx, user.RoleAdmin)
	if err != nil {
		return false, internal("count admins", err)
	}
	if admins > 0 {
		return false, nil
	}
	_, created, err := s.creds.RegisterFirst(ctx, username, password, user.RoleAdmin)
	return created, err
}

func (s *Service) session(p user.Profile) (Session, error) {
	token, err := s.tokens.Issue(p)
	if err != nil {
		return Session{}, internal("sign token", err)
	}
	return Session{Token: token, User: p}, nil
}
