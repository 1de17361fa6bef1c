package storeControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
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

	if err := db.AutoMigrate(&models.Store{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

type fakeObjectStore struct {
	uploads []string
	removed []string
}

func (f *fakeObjectStore) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	f.uploads = append(f.uploads, filename)
	return "https://objects.test/store-images/stores/" + filename, nil
}

func (f *fakeObjectStore) Remove(ctx context.Context, ref string) error {
	f.removed = append(f.removed, ref)
	return nil
}

func doEdit(t *testing.T, r *gin.Engine, fields map[string]string, file string) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if file != "" {
		fw, err := mw.CreateFormFile("file", file)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		fw.Write([]byte("fake image bytes"))
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/stores/edit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected http status %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestEditStoreUpdatesFields(t *testing.T) {
	db := openTestDB(t)
	objects := &fakeObjectStore{}
	r := gin.New()
	r.POST("/stores/edit", EditStoreHandler(db, objects))

	store := models.Store{Name: "Kusina ni Aling Nena", Description: "rice meals"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	resp := doEdit(t, r, map[string]string{
		"storeID":     store.ID,
		"name":        "Kusina ni Aling Nena Express",
		"description": "rice meals and snacks",
	}, "")
	if resp["responsecode"] != "200" {
		t.Fatalf("edit failed: %v", resp)
	}

	var got models.Store
	db.First(&got, "id = ?", store.ID)
	if got.Name != "Kusina ni Aling Nena Express" || got.Description != "rice meals and snacks" {
		t.Fatalf("store not updated: %+v", got)
	}
	if len(objects.uploads) != 0 {
		t.Fatalf("no upload expected without a file")
	}
}

func TestEditStoreReplacesImage(t *testing.T) {
	db := openTestDB(t)
	objects := &fakeObjectStore{}
	r := gin.New()
	r.POST("/stores/edit", EditStoreHandler(db, objects))

	store := models.Store{Name: "Kusina ni Aling Nena", Image: "https://objects.test/store-images/stores/old.png"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	resp := doEdit(t, r, map[string]string{
		"storeID":     store.ID,
		"name":        store.Name,
		"description": "",
	}, "new.png")
	if resp["responsecode"] != "200" {
		t.Fatalf("edit failed: %v", resp)
	}

	if len(objects.uploads) != 1 || objects.uploads[0] != "new.png" {
		t.Fatalf("new image not uploaded: %v", objects.uploads)
	}
	if len(objects.removed) != 1 || objects.removed[0] != "https://objects.test/store-images/stores/old.png" {
		t.Fatalf("old image not removed: %v", objects.removed)
	}

	var got models.Store
	db.First(&got, "id = ?", store.ID)
	if got.Image == "" || got.Image == "https://objects.test/store-images/stores/old.png" {
		t.Fatalf("image reference not replaced: %s", got.Image)
	}
}

func TestEditStoreDuplicateName(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.POST("/stores/edit", EditStoreHandler(db, &fakeObjectStore{}))

	a := models.Store{Name: "Kusina A"}
	b := models.Store{Name: "Kusina B"}
	db.Create(&a)
	db.Create(&b)

	resp := doEdit(t, r, map[string]string{
		"storeID":     a.ID,
		"name":        "Kusina B",
		"description": "",
	}, "")
	if resp["responsecode"] != "402" {
		t.Fatalf("rename to an existing store name must be rejected, got %v", resp)
	}

	var got models.Store
	db.First(&got, "id = ?", a.ID)
	if got.Name != "Kusina A" {
		t.Fatalf("store must be unchanged after rejection: %+v", got)
	}
}

func TestGetStoreByIDMalformed(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.GET("/stores/:storeID", GetStoreByIDHandler(db))

	req := httptest.NewRequest("GET", "/stores/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["responsecode"] != "402" {
		t.Fatalf("malformed store id must be rejected, got %v", resp)
	}
}

func TestGetAllStores(t *testing.T) {
	db := openTestDB(t)
	r := gin.New()
	r.GET("/stores/", GetAllStoresHandler(db))

	db.Create(&models.Store{Name: "Kusina A"})
	db.Create(&models.Store{Name: "Kusina B"})

	req := httptest.NewRequest("GET", "/stores/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	stores, ok := resp["store"].([]interface{})
	if !ok || len(stores) != 2 {
		t.Fatalf("expected 2 stores, got %v", resp["store"])
	}
}
