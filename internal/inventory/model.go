package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidItem = errors.New("invalid inventory item")

// Item is a stock line in the shop: a part or accessory on the shelf.
type Item struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:128;not null" json:"name"`
	Brand          string    `gorm:"size:64" json:"brand"`
	Quantity       int       `gorm:"not null;default:0" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null;default:0" json:"unitPriceCents"`
	CreatedBy      uint      `gorm:"index" json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Item) TableName() string { return "inventory_items" }

func (i *Item) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	i.Brand = strings.TrimSpace(i.Brand)
	if i.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if i.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidItem)
	}
	if i.UnitPriceCents < 0 {
		return fmt.Errorf("%w: unit price must not be negative", ErrInvalidItem)
	}
	return nil
}
