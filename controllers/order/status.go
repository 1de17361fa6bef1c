package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/mailer"
	"github.com/code-with-geo/kain-lasalle-backend/models"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
)

// orderTransitions is the only place order-status moves are validated.
// Complete and cancelled are terminal.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:   {models.OrderStatusComplete, models.OrderStatusCancelled},
	models.OrderStatusComplete:  {},
	models.OrderStatusCancelled: {},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// reconcilePayment re-queries the gateway for an order whose payment is
// still locally pending. When the link is no longer unpaid the order is
// marked paid and persisted. The returned URL is the checkout page to hand
// back to the client while the link stays unpaid.
func reconcilePayment(db *gorm.DB, gw payment.Gateway, order *models.Order) (paid bool, checkoutURL string, err error) {
	link, err := gw.GetLink(order.PaymentID)
	if err != nil {
		return false, "", err
	}

	if link.Status == payment.StatusUnpaid {
		return false, order.PaymentURL, nil
	}

	if err := db.Model(order).Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
		return false, "", err
	}
	order.PaymentStatus = models.PaymentStatusPaid
	return true, "", nil
}

// CompleteOrderHandler marks a paid order as complete. While payment is
// still pending it reconciles with the gateway instead: a settled link is
// recorded as paid (the caller completes on the next call), an unsettled one
// gets the checkout URL back. Calling complete on a completed order reports
// so without mutation.
func CompleteOrderHandler(db *gorm.DB, gw payment.Gateway) gin.HandlerFunc {
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

		if order.Status == models.OrderStatusComplete {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order is already completed.",
			})
			return
		}
		if order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order is already cancelled.",
			})
			return
		}

		if order.PaymentStatus == models.PaymentStatusPending {
			paid, url, err := reconcilePayment(db, gw, order)
			if err != nil {
				zap.L().Error("payment reconciliation failed",
					zap.String("order_id", order.ID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"responsecode": "500",
					"message":      "Please contact technical support.",
				})
				return
			}
			if paid {
				c.JSON(http.StatusOK, gin.H{
					"responsecode": "402",
					"message":      "Order is already paid.",
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order is not yet paid.",
				"paymenturl":   url,
			})
			return
		}

		if !canTransition(order.Status, models.OrderStatusComplete) {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order cannot be completed.",
			})
			return
		}

		if err := db.Model(order).Update("status", models.OrderStatusComplete).Error; err != nil {
			zap.L().Error("order completion failed",
				zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		order.Status = models.OrderStatusComplete
		broadcastOrderEvent(*order)

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Order is successfully completed.",
		})
	}
}

// VerifyPaymentHandler is the standalone payment-status check: report paid
// when resolved, otherwise reconcile with the gateway and return the
// checkout URL while the link stays unpaid.
func VerifyPaymentHandler(db *gorm.DB, gw payment.Gateway) gin.HandlerFunc {
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

		if order.PaymentStatus == models.PaymentStatusPaid {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "200",
				"message":      "Order is already paid.",
			})
			return
		}

		paid, url, err := reconcilePayment(db, gw, order)
		if err != nil {
			zap.L().Error("payment reconciliation failed",
				zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if paid {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "200",
				"message":      "Order is successfully paid.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "402",
			"message":      "Order is not yet paid.",
			"paymenturl":   url,
		})
	}
}

// CancelOrderHandler cancels a pending order. Cash orders cancel regardless
// of payment status; online orders are refused once paid, re-checking the
// gateway first when payment is still pending.
func CancelOrderHandler(db *gorm.DB, gw payment.Gateway) gin.HandlerFunc {
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

		if order.Status == models.OrderStatusCancelled {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order is already cancelled.",
			})
			return
		}
		if !canTransition(order.Status, models.OrderStatusCancelled) {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Order is already completed.",
			})
			return
		}

		if order.PaymentType != models.PaymentTypeCash {
			if order.PaymentStatus == models.PaymentStatusPaid {
				c.JSON(http.StatusOK, gin.H{
					"responsecode": "402",
					"message":      "Order is already paid. Cancellation is not allowed.",
				})
				return
			}

			paid, _, err := reconcilePayment(db, gw, order)
			if err != nil {
				zap.L().Error("payment reconciliation failed",
					zap.String("order_id", order.ID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"responsecode": "500",
					"message":      "Please contact technical support.",
				})
				return
			}
			if paid {
				c.JSON(http.StatusOK, gin.H{
					"responsecode": "402",
					"message":      "Order is already paid. Cancellation is not allowed.",
				})
				return
			}
		}

		if err := db.Model(order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			zap.L().Error("order cancellation failed",
				zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		order.Status = models.OrderStatusCancelled
		broadcastOrderEvent(*order)

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Order is successfully cancelled.",
		})
	}
}

// TagOrderAsPaidHandler is the operator override for payments settled
// outside the gateway.
func TagOrderAsPaidHandler(db *gorm.DB) gin.HandlerFunc {
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

		if err := db.Model(order).Update("payment_status", models.PaymentStatusPaid).Error; err != nil {
			zap.L().Error("tag as paid failed",
				zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		order.PaymentStatus = models.PaymentStatusPaid
		broadcastOrderEvent(*order)

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Order is successfully tagged as paid.",
		})
	}
}

// NotifyCustomerHandler resends the ready-for-pickup email for an order.
func NotifyCustomerHandler(db *gorm.DB, mail mailer.Sender) gin.HandlerFunc {
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

		var user models.User
		if err := db.First(&user, "id = ?", order.UserID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "User not found.",
			})
			return
		}

		body := "Your order from " + order.Store.Name + " is now ready for pickup."
		if err := mail.Send(user.Email, "Order ready for pickup", body); err != nil {
			zap.L().Error("pickup notification failed",
				zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Customer is successfully notified.",
		})
	}
}
