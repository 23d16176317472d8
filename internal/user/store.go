package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Store is the persistence boundary for user records. Implementations must
// enforce username uniqueness and insert atomically.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Insert(ctx context.Context, u *User) error
	// InsertFirstOfRole inserts u only if no user holds u.Role yet, and
	// reports whether it did. The check and the insert must be atomic.
	InsertFirstOfRole(ctx context.Context, u *User) (bool, error)
	List(ctx context.Context) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert creates u and fills in its ID and CreatedAt.
func (s *GormStore) Insert(ctx context.Context, u *User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// firstOfRoleLock is the postgres advisory lock key taken by
// InsertFirstOfRole.
const firstOfRoleLock int64 = 0x7265706169726b

// InsertFirstOfRole counts and inserts in one transaction. On postgres an
// advisory lock serializes callers; sqlite already serializes writers.
func (s *GormStore) InsertFirstOfRole(ctx context.Context, u *User) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", firstOfRoleLock).Error; err != nil {
				return err
			}
		}
		var n int64
		if err := tx.Model(&User{}).Where("role = ?", u.Role).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := tx.Create(u).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateUsername
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *GormStore) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GormStore) CountByRole(ctx context.Context, role Role) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// Drivers opened without TranslateError still report the constraint by name.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
