package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/config"
	"github.com/code-with-geo/kain-lasalle-backend/mailer"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
	"github.com/code-with-geo/kain-lasalle-backend/storage"
)

// SetupRoutes is the single entry-point that wires up the cart, order and
// store route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, gw payment.Gateway, mail mailer.Sender, objects storage.ObjectStore) {
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db, cfg, gw, mail)
	SetupStoreRoutes(r, db, cfg, objects)
}
