package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&Item{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewStore(conn)
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{"ok", Item{Name: "iPhone 12 screen", Quantity: 3, UnitPriceCents: 4500}, false},
		{"blank name", Item{Name: "   "}, true},
		{"negative quantity", Item{Name: "battery", Quantity: -1}, true},
		{"negative price", Item{Name: "battery", UnitPriceCents: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidItem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStore_CreateListDeleteAll(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, s.Create(ctx, &Item{Name: "Galaxy S21 battery", Brand: "Samsung", Quantity: 4, CreatedBy: 1}))
	require.NoError(t, s.Create(ctx, &Item{Name: "USB-C port", Quantity: 10, CreatedBy: 1}))

	items, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Galaxy S21 battery", items[0].Name)

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	s := setupStore(t)
	err := s.Create(context.Background(), &Item{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidItem)
}
