package api

import (
	"errors"
	"net/http"
	"strings"

	"repairdesk/internal/auth"
	"repairdesk/internal/inventory"

	"github.com/gin-gonic/gin"
)

type CreateItemRequest struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// GET /inventory
func ListInventoryHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := d.Inventory.List(c.Request.Context())
		if err != nil {
			internalError(c, d.Log, "list inventory", err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /inventory
func CreateInventoryItemHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := auth.CurrentUser(c)
		var req CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		item := inventory.Item{
			Name:           req.Name,
			Brand:          req.Brand,
			Quantity:       req.Quantity,
			UnitPriceCents: req.UnitPriceCents,
			CreatedBy:      p.ID,
		}
		if err := d.Inventory.Create(c.Request.Context(), &item); err != nil {
			if errors.Is(err, inventory.ErrInvalidItem) {
				badRequest(c, strings.TrimPrefix(err.Error(), inventory.ErrInvalidItem.Error()+": "))
				return
			}
			internalError(c, d.Log, "create inventory item", err)
			return
		}
		d.Hub.Broadcast("inventory.created", item)
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /inventory  [admin only]
func ClearInventoryHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := auth.CurrentUser(c)
		n, err := d.Inventory.DeleteAll(c.Request.Context())
		if err != nil {
			internalError(c, d.Log, "clear inventory", err)
			return
		}
		d.Log.WithField("user_id", p.ID).WithField("deleted", n).Warn("inventory cleared")
		d.Hub.Broadcast("inventory.cleared", gin.H{"deleted": n})
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	}
}
