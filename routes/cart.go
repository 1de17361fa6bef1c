package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/code-with-geo/kain-lasalle-backend/controllers/cart"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	{
		cart.POST("/add/:storeID", cartControllers.AddToCartHandler(db))
		cart.POST("/", cartControllers.GetCartItemsHandler(db))
		cart.POST("/total", cartControllers.GetCartTotalHandler(db))
	}
}
