package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
	"github.com/code-with-geo/kain-lasalle-backend/payment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

type fakeGateway struct {
	createCalls int
	getCalls    int
	linkStatus  string
	createErr   error
	getErr      error
}

func (f *fakeGateway) CreateLink(amount int64, description string) (*payment.Link, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &payment.Link{
		ID:              "link_test",
		CheckoutURL:     "https://pay.test/checkout",
		ReferenceNumber: "REF123",
		Status:          payment.StatusUnpaid,
	}, nil
}

func (f *fakeGateway) GetLink(id string) (*payment.Link, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	status := f.linkStatus
	if status == "" {
		status = payment.StatusUnpaid
	}
	return &payment.Link{
		ID:          id,
		CheckoutURL: "https://pay.test/checkout",
		Status:      status,
	}, nil
}

var errGatewayDown = errors.New("gateway unreachable")

type fakeSender struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeSender) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return w.Code, resp
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

func respCode(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	code, ok := resp["responsecode"].(string)
	if !ok {
		t.Fatalf("response has no responsecode: %v", resp)
	}
	return code
}

func http200(t *testing.T, status int) {
	t.Helper()
	if status != http.StatusOK {
		t.Fatalf("unexpected http status %d", status)
	}
}
