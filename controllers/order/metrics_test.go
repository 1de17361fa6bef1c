package orderControllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
)

func seedMetricOrder(t *testing.T, db *gorm.DB, storeID string, total float64, status models.OrderStatus, paymentStatus models.PaymentStatus) models.Order {
	t.Helper()
	order := models.Order{
		UserID:        uuid.NewString(),
		StoreID:       storeID,
		Total:         total,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
	mustCreate(t, db, &order)
	return order
}

func TestGetTodaysSaleCountsOnlyCompletedOrders(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/orders/today-sale", GetTodaysSaleHandler(db))

	store := models.Store{Name: "Kusina ni Aling Nena"}
	mustCreate(t, db, &store)

	seedMetricOrder(t, db, store.ID, 500, models.OrderStatusComplete, models.PaymentStatusPaid)
	seedMetricOrder(t, db, store.ID, 300, models.OrderStatusPending, models.PaymentStatusPending)

	status, resp := doJSON(t, r, "POST", "/orders/today-sale", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if respCode(t, resp) != "200" {
		t.Fatalf("expected success, got %v", resp)
	}
	if total, _ := resp["total"].(float64); total != 500 {
		t.Fatalf("today's sale must count only completed orders: got %v want 500", resp["total"])
	}
}

func TestGetYesterdaySale(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/orders/yesterday-sale", GetYesterdaySaleHandler(db))

	store := models.Store{Name: "Kusina ni Aling Nena"}
	mustCreate(t, db, &store)

	seedMetricOrder(t, db, store.ID, 500, models.OrderStatusComplete, models.PaymentStatusPaid)
	yesterday := seedMetricOrder(t, db, store.ID, 250, models.OrderStatusComplete, models.PaymentStatusPaid)
	if err := db.Model(&yesterday).Update("created_at", time.Now().AddDate(0, 0, -1)).Error; err != nil {
		t.Fatalf("failed to backdate order: %v", err)
	}

	status, resp := doJSON(t, r, "POST", "/orders/yesterday-sale", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if total, _ := resp["total"].(float64); total != 250 {
		t.Fatalf("yesterday's sale wrong: got %v want 250", resp["total"])
	}
}

func TestOrderCounts(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/orders/count", GetOrdersCountHandler(db))
	r.POST("/orders/unpaid", GetUnpaidOrdersCountHandler(db))
	r.POST("/orders/cancelled", GetCancelledOrdersCountHandler(db))

	store := models.Store{Name: "Kusina ni Aling Nena"}
	mustCreate(t, db, &store)

	seedMetricOrder(t, db, store.ID, 100, models.OrderStatusPending, models.PaymentStatusPending)
	seedMetricOrder(t, db, store.ID, 100, models.OrderStatusPending, models.PaymentStatusPaid)
	seedMetricOrder(t, db, store.ID, 100, models.OrderStatusCancelled, models.PaymentStatusPending)
	seedMetricOrder(t, db, store.ID, 100, models.OrderStatusComplete, models.PaymentStatusPaid)

	status, resp := doJSON(t, r, "POST", "/orders/count", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if count, _ := resp["count"].(float64); count != 2 {
		t.Fatalf("pending count wrong: got %v want 2", resp["count"])
	}

	status, resp = doJSON(t, r, "POST", "/orders/unpaid", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if count, _ := resp["count"].(float64); count != 1 {
		t.Fatalf("unpaid count wrong: got %v want 1", resp["count"])
	}

	status, resp = doJSON(t, r, "POST", "/orders/cancelled", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if count, _ := resp["count"].(float64); count != 1 {
		t.Fatalf("cancelled count wrong: got %v want 1", resp["count"])
	}
}

func TestGetSoldOutProducts(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/orders/soldout", GetSoldOutProductsHandler(db))

	store := models.Store{Name: "Kusina ni Aling Nena"}
	mustCreate(t, db, &store)

	mustCreate(t, db, &models.Product{StoreID: store.ID, Name: "Adobo", Price: 85, Units: 0})
	mustCreate(t, db, &models.Product{StoreID: store.ID, Name: "Sinigang", Price: 95, Units: 4})

	status, resp := doJSON(t, r, "POST", "/orders/soldout", map[string]interface{}{"storeID": store.ID})
	http200(t, status)
	if count, _ := resp["count"].(float64); count != 1 {
		t.Fatalf("sold out count wrong: got %v want 1", resp["count"])
	}
}

func TestMetricsMalformedStoreID(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/orders/count", GetOrdersCountHandler(db))

	status, resp := doJSON(t, r, "POST", "/orders/count", map[string]interface{}{"storeID": "abc"})
	http200(t, status)
	if respCode(t, resp) != "402" {
		t.Fatalf("expected 402 for malformed store id, got %v", resp)
	}
}
