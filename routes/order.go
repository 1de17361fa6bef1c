package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/config"
	orderControllers "github.com/code-with-geo/kain-lasalle-backend/controllers/order"
	"github.com/code-with-geo/kain-lasalle-backend/mailer"
	"github.com/code-with-geo/kain-lasalle-backend/middleware"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, gw payment.Gateway, mail mailer.Sender) {
	orders := r.Group("/orders")
	{
		orders.POST("/create", orderControllers.CreateOrderHandler(db, gw, mail, cfg.OrderPrepTime))
		orders.POST("/verify", orderControllers.VerifyPaymentHandler(db, gw))
		orders.POST("/", orderControllers.GetAllOrdersHandler(db))
		orders.POST("/get-by-order-id", orderControllers.GetOrderByIDHandler(db))
		orders.POST("/get-by-id", orderControllers.GetOrdersByStoreHandler(db))
		orders.POST("/get-products", orderControllers.GetOrderItemsHandler(db))

		// live order feed for operator dashboards
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}

	operator := r.Group("/orders", middleware.ValidateAPIKey(cfg.OperatorAPIKey))
	{
		operator.POST("/complete", orderControllers.CompleteOrderHandler(db, gw))
		operator.POST("/cancellation", orderControllers.CancelOrderHandler(db, gw))
		operator.POST("/tag-as-paid", orderControllers.TagOrderAsPaidHandler(db))
		operator.POST("/notify", orderControllers.NotifyCustomerHandler(db, mail))
		operator.POST("/pending", orderControllers.GetPendingOrdersHandler(db))
		operator.POST("/count", orderControllers.GetOrdersCountHandler(db))
		operator.POST("/unpaid", orderControllers.GetUnpaidOrdersCountHandler(db))
		operator.POST("/soldout", orderControllers.GetSoldOutProductsHandler(db))
		operator.POST("/cancelled", orderControllers.GetCancelledOrdersCountHandler(db))
		operator.POST("/today-sale", orderControllers.GetTodaysSaleHandler(db))
		operator.POST("/yesterday-sale", orderControllers.GetYesterdaySaleHandler(db))
		operator.GET("/export", orderControllers.ExportOrdersHandler(db))
	}
}
