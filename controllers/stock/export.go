package stockControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GET /admin/stock/export
func ExportStockToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		variants, err := GetAllVariantsWithStock(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Stock")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"VariantID", "Product", "Slug", "Color", "Size", "Unit",
			"Price", "CompareAtPrice", "Qty", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, v := range variants {
			row := sheet.AddRow()
			row.AddCell().SetValue(v.ID)
			row.AddCell().SetValue(v.Product.Name)
			row.AddCell().SetValue(v.Product.Slug)
			row.AddCell().SetValue(deref(v.Color))
			row.AddCell().SetValue(deref(v.Size))
			row.AddCell().SetValue(deref(v.Unit))
			row.AddCell().SetValue(v.Price)
			if v.CompareAtPrice != nil {
				row.AddCell().SetValue(*v.CompareAtPrice)
			} else {
				row.AddCell().SetValue("")
			}
			if v.Stock != nil {
				row.AddCell().SetValue(v.Stock.Qty)
			} else {
				row.AddCell().SetValue(0)
			}
			row.AddCell().SetValue(v.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=stock.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
