package storeControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/code-with-geo/kain-lasalle-backend/models"
	"github.com/code-with-geo/kain-lasalle-backend/storage"
)

// EditStoreHandler updates a store's name, description and image. The image
// is replaced only when a new file is uploaded; the previous object is then
// removed from storage. Renames are checked against existing store names.
func EditStoreHandler(db *gorm.DB, objects storage.ObjectStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.PostForm("storeID")
		name := c.PostForm("name")
		description := c.PostForm("description")

		if uuid.Validate(storeID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}

		var store models.Store
		err := db.First(&store, "id = ?", storeID).Error
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}
		if err != nil {
			zap.L().Error("store fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		if name != store.Name {
			var checker models.Store
			if err := db.First(&checker, "name = ?", name).Error; err == nil {
				c.JSON(http.StatusOK, gin.H{
					"responsecode": "402",
					"message":      "Please enter different store name.",
				})
				return
			}
		}

		image := store.Image
		if file, err := c.FormFile("file"); err == nil {
			src, err := file.Open()
			if err != nil {
				zap.L().Error("store image open failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"responsecode": "500",
					"message":      "Please contact technical support.",
				})
				return
			}
			defer src.Close()

			url, err := objects.Upload(c.Request.Context(), file.Filename,
				file.Header.Get("Content-Type"), src, file.Size)
			if err != nil {
				zap.L().Error("store image upload failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"responsecode": "500",
					"message":      "Please contact technical support.",
				})
				return
			}

			if store.Image != "" {
				if err := objects.Remove(c.Request.Context(), store.Image); err != nil {
					zap.L().Warn("old store image removal failed",
						zap.String("ref", store.Image), zap.Error(err))
				}
			}
			image = url
		}

		updates := map[string]interface{}{
			"name":        name,
			"description": description,
			"image":       image,
		}
		if err := db.Model(&store).Updates(updates).Error; err != nil {
			zap.L().Error("store update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"message":      "Store is successfully updated.",
		})
	}
}

// GetStoreByIDHandler fetches a single store record.
func GetStoreByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID := c.Param("storeID")
		if uuid.Validate(storeID) != nil {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}

		var store models.Store
		err := db.First(&store, "id = ?", storeID).Error
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{
				"responsecode": "402",
				"message":      "Store not found.",
			})
			return
		}
		if err != nil {
			zap.L().Error("store fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"store":        store,
		})
	}
}

// GetAllStoresHandler lists every store.
func GetAllStoresHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stores []models.Store
		if err := db.Find(&stores).Error; err != nil {
			zap.L().Error("store fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"responsecode": "500",
				"message":      "Please contact technical support.",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"responsecode": "200",
			"store":        stores,
		})
	}
}
