package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
)

// storeGate validates the store id and writes the failure envelope itself.
func storeGate(c *gin.Context) (string, bool) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "402",
			"message":      "Invalid request.",
		})
		return "", false
	}
	if uuid.Validate(req.StoreID) != nil {
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "402",
			"message":      "Store not found.",
		})
		return "", false
	}
	return req.StoreID, true
}

func countOrders(c *gin.Context, db *gorm.DB, storeID string, conds ...interface{}) (int64, bool) {
	var count int64
	q := db.Model(&models.Order{}).Where("store_id = ?", storeID)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&count).Error; err != nil {
		zap.L().Error("order count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"responsecode": "500",
			"message":      "Please contact technical support.",
		})
		return 0, false
	}
	return count, true
}

// GetPendingOrdersHandler lists a store's pending orders.
func GetPendingOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}

		var orders []models.Order
		if err := db.
			Preload("User").
			Where("store_id = ? AND status = ?", storeID, models.OrderStatusPending).
			Order("created_at ASC").
			Find(&orders).Error; err != nil {
			zap.L().Error("pending order fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"orders":       orders,
		})
	}
}

// GetOrdersCountHandler counts a store's pending orders.
func GetOrdersCountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}
		count, ok := countOrders(c, db, storeID, "status = ?", models.OrderStatusPending)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"count":        count,
		})
	}
}

// GetUnpaidOrdersCountHandler counts orders still awaiting both payment and
// fulfillment.
func GetUnpaidOrdersCountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}
		count, ok := countOrders(c, db, storeID,
			"status = ? AND payment_status = ?",
			models.OrderStatusPending, models.PaymentStatusPending)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"count":        count,
		})
	}
}

// GetCancelledOrdersCountHandler counts a store's cancelled orders.
func GetCancelledOrdersCountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}
		count, ok := countOrders(c, db, storeID, "status = ?", models.OrderStatusCancelled)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"count":        count,
		})
	}
}

// GetSoldOutProductsHandler counts a store's products with zero units left.
func GetSoldOutProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}

		var count int64
		if err := db.Model(&models.Product{}).
			Where("store_id = ? AND units = 0", storeID).
			Count(&count).Error; err != nil {
			zap.L().Error("sold out count failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"count":        count,
		})
	}
}

// saleForDay sums the totals of a store's completed orders created within
// the calendar day containing ts. Pending and cancelled orders contribute
// nothing.
func saleForDay(db *gorm.DB, storeID string, ts time.Time) (float64, error) {
	year, month, day := ts.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
	end := start.AddDate(0, 0, 1)

	var total float64
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("store_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			storeID, models.OrderStatusComplete, start, end).
		Scan(&total).Error
	return total, err
}

func saleHandler(db *gorm.DB, dayOffset int) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := storeGate(c)
		if !ok {
			return
		}

		total, err := saleForDay(db, storeID, time.Now().AddDate(0, 0, dayOffset))
		if err != nil {
			zap.L().Error("sales query failed", zap.Error(err))
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

// GetTodaysSaleHandler reports today's completed-order sales for a store.
func GetTodaysSaleHandler(db *gorm.DB) gin.HandlerFunc {
	return saleHandler(db, 0)
}

// GetYesterdaySaleHandler reports yesterday's completed-order sales for a
// store.
func GetYesterdaySaleHandler(db *gorm.DB) gin.HandlerFunc {
	return saleHandler(db, -1)
}

// ExportOrdersHandler streams a store's orders as an xlsx report.
func ExportOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Query("storeID")
		if uuid.Validate(storeID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("User").
			Where("store_id = ?", storeID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			zap.L().Error("order export fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		headers := []string{
			"ID", "Customer", "Total", "Status", "PaymentStatus",
			"PaymentType", "PaymentRef", "CreatedAt", "ReadyBy",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.User.Name)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.PaymentType))
			row.AddCell().SetValue(o.PaymentRef)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(o.ReadyBy.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			zap.L().Error("order export write failed", zap.Error(err))
		}
	}
}
