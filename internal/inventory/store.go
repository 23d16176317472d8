package inventory

import (
	"context"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Item, error) {
	items := []Item{}
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) Create(ctx context.Context, item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// DeleteAll removes every item and reports how many rows went.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Item{})
	return res.RowsAffected, res.Error
}
