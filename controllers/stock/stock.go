package stockControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/cache"
	"github.com/dzstore/storefront-api/logger"
	"github.com/dzstore/storefront-api/models"
)

// VariantData carries the fields for creating a variant together with its
// initial stock level.
type VariantData struct {
	ProdID         string   `json:"prod_id" binding:"required"`
	Price          float64  `json:"price" binding:"required"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	Color          *string  `json:"color"`
	Size           *string  `json:"size"`
	Unit           *string  `json:"unit"`
	StockQty       *int     `json:"stock_qty"`
}

// VariantUpdate is a partial update; nil fields are left unchanged.
type VariantUpdate struct {
	ProdID         *string  `json:"prod_id"`
	Price          *float64 `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	Color          *string  `json:"color"`
	Size           *string  `json:"size"`
	Unit           *string  `json:"unit"`
	StockQty       *int     `json:"stock_qty"`
}

type StockUpdate struct {
	ProdVariantID string `json:"prod_variant_id" binding:"required"`
	Qty           int    `json:"qty"`
}

// GetAllVariantsWithStock lists every variant with its product and stock,
// newest first. This backs the admin stock screen.
func GetAllVariantsWithStock(db *gorm.DB) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := db.Preload("Product").Preload("Stock").
		Order("created_at DESC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func GetVariantByID(db *gorm.DB, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := db.Preload("Product").Preload("Stock").
		First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateVariantWithStock creates the variant and, when a quantity was given,
// its stock row in one insert.
func CreateVariantWithStock(db *gorm.DB, data VariantData) (*models.ProductVariant, error) {
	variant := models.ProductVariant{
		ProdID:         data.ProdID,
		Price:          data.Price,
		CompareAtPrice: data.CompareAtPrice,
		Color:          data.Color,
		Size:           data.Size,
		Unit:           data.Unit,
	}
	if data.StockQty != nil {
		variant.Stock = &models.Stock{Qty: *data.StockQty}
	}
	if err := db.Create(&variant).Error; err != nil {
		return nil, err
	}
	return GetVariantByID(db, variant.ID)
}

// UpdateVariantWithStock applies the non-nil fields and, when a quantity is
// supplied, updates or creates the stock row.
func UpdateVariantWithStock(db *gorm.DB, id string, data VariantUpdate) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := db.First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if data.ProdID != nil {
		updates["prod_id"] = *data.ProdID
	}
	if data.Price != nil {
		updates["price"] = *data.Price
	}
	if data.CompareAtPrice != nil {
		updates["compare_at_price"] = *data.CompareAtPrice
	}
	if data.Color != nil {
		updates["color"] = *data.Color
	}
	if data.Size != nil {
		updates["size"] = *data.Size
	}
	if data.Unit != nil {
		updates["unit"] = *data.Unit
	}
	if len(updates) > 0 {
		if err := db.Model(&variant).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if data.StockQty != nil {
		if err := UpdateStockQuantity(db, id, *data.StockQty); err != nil {
			return nil, err
		}
	}
	return GetVariantByID(db, id)
}

// UpdateStockQuantity sets the on-hand quantity for a variant, creating the
// stock row on first touch. The same fetch-or-create pattern is used by the
// admin and order flows.
func UpdateStockQuantity(db *gorm.DB, variantID string, qty int) error {
	var stock models.Stock
	err := db.Where("prod_variant_id = ?", variantID).First(&stock).Error
	switch {
	case err == nil:
		return db.Model(&stock).Update("qty", qty).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.Stock{ProdVariantID: variantID, Qty: qty}).Error
	default:
		return err
	}
}

// BulkUpdateStock applies a batch of quantity edits as one transaction.
func BulkUpdateStock(db *gorm.DB, updates []StockUpdate) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := UpdateStockQuantity(tx, u.ProdVariantID, u.Qty); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteVariant removes a variant and everything that references it: its
// stock row, cart lines, and order line snapshots.
func DeleteVariant(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prod_variant_id = ?", id).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prod_variant_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prod_variant_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProductVariant{}, "id = ?", id).Error
	})
}

// -------- Handlers --------

// GET /admin/stock
func GetStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		variants, err := GetAllVariantsWithStock(db)
		if err != nil {
			logger.Log.Error("fetch stock failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
			return
		}
		c.JSON(http.StatusOK, variants)
	}
}

// GET /admin/stock/:variant_id
func GetVariantHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		variant, err := GetVariantByID(db, c.Param("variant_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variant"})
			return
		}
		c.JSON(http.StatusOK, variant)
	}
}

// POST /admin/stock
func CreateVariantHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data VariantData
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		variant, err := CreateVariantWithStock(db, data)
		if err != nil {
			logger.Log.Error("create variant failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create variant"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusCreated, variant)
	}
}

// PUT /admin/stock/:variant_id
func UpdateVariantHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data VariantUpdate
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		variant, err := UpdateVariantWithStock(db, c.Param("variant_id"), data)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
				return
			}
			logger.Log.Error("update variant failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, variant)
	}
}

// PUT /admin/stock/:variant_id/qty
func UpdateStockQuantityHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Qty int `json:"qty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := UpdateStockQuantity(db, c.Param("variant_id"), req.Qty); err != nil {
			logger.Log.Error("update stock failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		rev.Revalidate("/stock")
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
	}
}

// PUT /admin/stock/bulk
func BulkUpdateStockHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var updates []StockUpdate
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := BulkUpdateStock(db, updates); err != nil {
			logger.Log.Error("bulk stock update failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		rev.Revalidate("/stock")
		c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
	}
}

// DELETE /admin/stock/:variant_id
func DeleteVariantHandler(db *gorm.DB, rev cache.Revalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteVariant(db, c.Param("variant_id")); err != nil {
			logger.Log.Error("delete variant failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete variant"})
			return
		}
		rev.Revalidate("/products-management")
		c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
	}
}
