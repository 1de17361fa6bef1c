package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/config"
	"github.com/code-with-geo/kain-lasalle-backend/mailer"
	"github.com/code-with-geo/kain-lasalle-backend/models"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
	"github.com/code-with-geo/kain-lasalle-backend/routes"
	"github.com/code-with-geo/kain-lasalle-backend/storage"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("config load failed", zap.Error(err))
	}

	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		zap.L().Fatal("auto-migrate failed", zap.Error(err))
	}

	gateway := payment.NewClient(cfg.PayMongo.AuthKey, cfg.PayMongo.BaseURL)
	mail := mailer.NewSMTPSender(cfg.SMTP)
	objects, err := storage.NewMinioStore(cfg.Minio)
	if err != nil {
		zap.L().Fatal("object storage init failed", zap.Error(err))
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db, cfg, gateway, mail, objects)

	zap.L().Info("server listening", zap.String("addr", cfg.Server.Addr()))
	if err := r.Run(cfg.Server.Addr()); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("database connection failed", zap.Error(err))
	}
	return db
}
