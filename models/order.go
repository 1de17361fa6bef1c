package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentStatus string
type PaymentType string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "pending"   // placed, not yet handed over
	OrderStatusComplete  OrderStatus = "complete"  // picked up / fulfilled
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before fulfillment

	// Payment statuses. "pending" covers the whole unresolved span of the
	// payment link; reconciliation against the gateway moves it to "paid".
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	// Payment types
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeOnline PaymentType = "online"
)

type Order struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string  `gorm:"type:uuid;index;not null" json:"user_id"`
	User    User    `gorm:"foreignKey:UserID" json:"user"`
	StoreID string  `gorm:"type:uuid;index;not null" json:"store_id"`
	Store   Store   `gorm:"foreignKey:StoreID" json:"store"`
	Total   float64 `json:"total"`

	// Payment-link fields returned by the gateway at creation time.
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
	PaymentRef string `json:"payment_reference_number"`

	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentType   PaymentType   `gorm:"type:VARCHAR(20);default:'online'" json:"payment_type"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ReadyBy   time.Time   `json:"ready_by"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is an immutable snapshot of one cart line at order-creation time.
type OrderItem struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string  `gorm:"type:uuid;index" json:"order_id"`
	UserID    string  `gorm:"type:uuid" json:"user_id"`
	StoreID   string  `gorm:"type:uuid" json:"store_id"`
	ProductID string  `gorm:"type:uuid" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Price     float64 `json:"price"`
	Units     int     `json:"units"`
	Subtotal  float64 `json:"subtotal"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
