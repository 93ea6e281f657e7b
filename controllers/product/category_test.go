package productControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dzstore/storefront-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Brand{}, &models.Product{}, &models.ProductImage{},
		&models.ProductVariant{}, &models.Stock{},
	))
	return db
}

func strptr(s string) *string { return &s }

func TestGetCategoryTree(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Category{ID: "root-1", Name: "Food", Slug: "food"}).Error)
	require.NoError(t, db.Create(&models.Category{ID: "root-2", Name: "Home", Slug: "home"}).Error)
	require.NoError(t, db.Create(&models.Category{
		ID: "child-1", Name: "Snacks", Slug: "snacks", ParentCategoryID: strptr("root-1"),
	}).Error)
	require.NoError(t, db.Create(&models.Category{
		ID: "grandchild-1", Name: "Chips", Slug: "chips", ParentCategoryID: strptr("child-1"),
	}).Error)

	tree, err := GetCategoryTree(db)
	require.NoError(t, err)
	require.Len(t, tree, 2, "only roots appear at the top level")

	byID := map[string]models.Category{}
	for _, c := range tree {
		byID[c.ID] = c
	}
	food := byID["root-1"]
	require.Len(t, food.Subcategories, 1)
	assert.Equal(t, "Snacks", food.Subcategories[0].Name)
	require.Len(t, food.Subcategories[0].Subcategories, 1)
	assert.Equal(t, "Chips", food.Subcategories[0].Subcategories[0].Name)
	assert.Empty(t, byID["root-2"].Subcategories)
}
