package orderControllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/mailer"
	"github.com/code-with-geo/kain-lasalle-backend/models"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
)

// paymentDescription is the fixed description sent with every payment link.
const paymentDescription = "payment"

// -------- Request Structs --------

type CreateOrderRequest struct {
	UserID      string  `json:"userID" binding:"required"`
	StoreID     string  `json:"storeID" binding:"required"`
	Total       float64 `json:"total" binding:"required"`
	PaymentType string  `json:"paymentType"`
}

type UserRequest struct {
	UserID string `json:"userID" binding:"required"`
}

type StoreRequest struct {
	StoreID string `json:"storeID" binding:"required"`
}

type OrderRequest struct {
	OrderID string `json:"orderID" binding:"required"`
}

// CreateOrderHandler converts the user's cart into an order: mints a payment
// link, persists the order with a snapshot of every cart line, clears the
// cart and returns the checkout URL. The order, its items and the cart clear
// commit in one transaction; a gateway failure aborts the request with
// nothing written.
func CreateOrderHandler(db *gorm.DB, gw payment.Gateway, mail mailer.Sender, prepTime time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}

		if uuid.Validate(req.UserID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "User not found.",
			})
			return
		}

		var cart []models.CartItem
		if err := db.Where("user_id = ?", req.UserID).Find(&cart).Error; err != nil {
			zap.L().Error("cart fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if len(cart) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "No item found for this user",
			})
			return
		}

		// Gateway amounts are in minor currency units.
		amount := int64(math.Round(req.Total * 100))
		link, err := gw.CreateLink(amount, paymentDescription)
		if err != nil {
			zap.L().Error("payment link creation failed",
				zap.String("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		paymentType := models.PaymentTypeOnline
		if req.PaymentType == string(models.PaymentTypeCash) {
			paymentType = models.PaymentTypeCash
		}

		order := models.Order{
			UserID:        req.UserID,
			StoreID:       req.StoreID,
			Total:         req.Total,
			PaymentID:     link.ID,
			PaymentURL:    link.CheckoutURL,
			PaymentRef:    link.ReferenceNumber,
			PaymentStatus: models.PaymentStatusPending,
			Status:        models.OrderStatusPending,
			PaymentType:   paymentType,
			ReadyBy:       time.Now().Add(prepTime),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			for _, item := range cart {
				orderItem := models.OrderItem{
					OrderID:   order.ID,
					UserID:    item.UserID,
					StoreID:   item.StoreID,
					ProductID: item.ProductID,
					Price:     item.Price,
					Units:     item.Units,
					Subtotal:  item.Price * float64(item.Units),
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err
				}
			}

			return tx.Where("user_id = ?", req.UserID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			zap.L().Error("order creation failed",
				zap.String("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		// Notification failure must not lose a committed order.
		var user models.User
		if err := db.First(&user, "id = ?", req.UserID).Error; err == nil {
			body := "Your order has been placed. It will be ready for pickup by " +
				order.ReadyBy.Format("January 2, 2006 3:04 PM") + "."
			if err := mail.Send(user.Email, "Order placed", body); err != nil {
				zap.L().Warn("order confirmation email failed",
					zap.String("order_id", order.ID), zap.Error(err))
			}
		}

		broadcastOrderEvent(order)

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"paymenturl":   order.PaymentURL,
		})
	}
}

// GetAllOrdersHandler lists a user's orders with user and store records
// embedded.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}
		if uuid.Validate(req.UserID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "User not found.",
			})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Store").
			Where("user_id = ?", req.UserID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			zap.L().Error("order fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "No orders found for this user",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"orders":       orders,
		})
	}
}

// GetOrdersByStoreHandler lists a store's orders for the operator view.
func GetOrdersByStoreHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}
		if uuid.Validate(req.StoreID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Store").
			Where("store_id = ?", req.StoreID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			zap.L().Error("order fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "No orders found for this store.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"orders":       orders,
		})
	}
}

// GetOrderByIDHandler fetches a single order with its related records.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}

		order, ok := findOrder(c, db, req.OrderID)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"order":        order,
		})
	}
}

// GetOrderItemsHandler lists the line-item snapshots of one order with
// product records embedded.
func GetOrderItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}
		if uuid.Validate(req.OrderID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order not found.",
			})
			return
		}

		var items []models.OrderItem
		if err := db.
			Preload("Product").
			Where("order_id = ?", req.OrderID).
			Find(&items).Error; err != nil {
			zap.L().Error("order item fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "No products found for this order.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"products":     items,
		})
	}
}

// findOrder loads an order behind the id well-formedness gate, writing the
// failure envelope itself. The bool reports whether the caller may proceed.
func findOrder(c *gin.Context, db *gorm.DB, orderID string) (*models.Order, bool) {
	if uuid.Validate(orderID) != nil {
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "402",
			"message":      "Order not found.",
		})
		return nil, false
	}

	var order models.Order
	err := db.Preload("User").Preload("Store").First(&order, "id = ?", orderID).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "402",
			"message":      "Order not found.",
		})
		return nil, false
	}
	if err != nil {
		zap.L().Error("order fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"responsecode": "500",
			"message":      "Please contact technical support.",
		})
		return nil, false
	}
	return &order, true
}
