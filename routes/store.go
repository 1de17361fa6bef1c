package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/config"
	storeControllers "github.com/code-with-geo/kain-lasalle-backend/controllers/store"
	"github.com/code-with-geo/kain-lasalle-backend/middleware"
	"github.com/code-with-geo/kain-lasalle-backend/storage"
)

func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, objects storage.ObjectStore) {
	stores := r.Group("/stores")
	{
		stores.POST("/edit", middleware.ValidateAPIKey(cfg.OperatorAPIKey),
			storeControllers.EditStoreHandler(db, objects))
		stores.GET("/:storeID", storeControllers.GetStoreByIDHandler(db))
		stores.GET("/", storeControllers.GetAllStoresHandler(db))
	}
}
