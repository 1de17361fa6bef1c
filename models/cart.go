package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one product's pending quantity for a user within one store.
// A user holds at most one row per (user, store, product); repeat adds
// increment Units instead of inserting.
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;uniqueIndex:idx_cart_user_store_product" json:"user_id"`
	StoreID   string    `gorm:"type:uuid;uniqueIndex:idx_cart_user_store_product" json:"store_id"`
	Store     Store     `gorm:"foreignKey:StoreID" json:"store"`
	ProductID string    `gorm:"type:uuid;uniqueIndex:idx_cart_user_store_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Price     float64   `json:"price"`
	Units     int       `gorm:"default:1" json:"units"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
