package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
)

type AddToCartRequest struct {
	UserID    string  `json:"userID" binding:"required"`
	ProductID string  `json:"productID" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Units     int     `json:"units" binding:"required,min=1"`
}

type CartUserRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// AddToCartHandler adds a product to the user's cart. A user's cart belongs
// to a single store at a time; a repeat add of the same product accumulates
// units instead of inserting a second line.
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}

		if uuid.Validate(storeID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid url",
			})
			return
		}

		// Reject products from a different store than the existing cart.
		var other models.CartItem
		err := db.Where("user_id = ? AND store_id <> ?", req.UserID, storeID).First(&other).Error
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Adding product from different store",
			})
			return
		}
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("cart lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		var item models.CartItem
		err = db.Where("user_id = ? AND store_id = ? AND product_id = ?",
			req.UserID, storeID, req.ProductID).First(&item).Error
		if err == nil {
			if err := db.Model(&item).Update("units", item.Units+req.Units).Error; err != nil {
				zap.L().Error("cart update failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"responsecode": "500",
					"message":      "Please contact technical support.",
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "200",
				"message":      "Product successfully added to cart.",
			})
			return
		}
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("cart lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		newItem := models.CartItem{
			UserID:    req.UserID,
			StoreID:   storeID,
			ProductID: req.ProductID,
			Price:     req.Price,
			Units:     req.Units,
		}
		if err := db.Create(&newItem).Error; err != nil {
			zap.L().Error("cart insert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Product successfully added to cart.",
		})
	}
}

// GetCartItemsHandler lists the user's cart lines with product and store
// records embedded.
func GetCartItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}

		var items []models.CartItem
		if err := db.
			Preload("Product").
			Preload("Store").
			Where("user_id = ?", req.UserID).
			Find(&items).Error; err != nil {
			zap.L().Error("cart fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		if len(items) == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Cart is empty",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"cart":         items,
		})
	}
}

// GetCartTotalHandler sums price x units over the user's cart lines.
func GetCartTotalHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Invalid request.",
			})
			return
		}

		var count int64
		if err := db.Model(&models.CartItem{}).
			Where("user_id = ?", req.UserID).
			Count(&count).Error; err != nil {
			zap.L().Error("cart count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}
		if count == 0 {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Cart is empty",
			})
			return
		}

		var total float64
		if err := db.Model(&models.CartItem{}).
			Select("COALESCE(SUM(price * units), 0)").
			Where("user_id = ?", req.UserID).
			Scan(&total).Error; err != nil {
			zap.L().Error("cart total failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"total":        total,
		})
	}
}
