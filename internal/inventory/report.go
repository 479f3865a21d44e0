package inventory

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"example.com/depot/services/warehouse/internal/models"
)

// reportColumns is the fixed column layout of the inventory CSV export
var reportColumns = []string{
	"warehouse", "name", "sku", "barcode", "description", "category",
	"quantity", "minStock", "unitPrice", "totalValue", "status",
	"location", "updatedAt",
}

// Report is an inventory export with its summary figures
type Report struct {
	WarehouseName string
	Items         []models.InventoryItem

	TotalValue    decimal.Decimal
	LowStockCount int
	OutOfStockCnt int
}

// BuildReport computes the summary figures for a warehouse inventory
func BuildReport(warehouseName string, items []models.InventoryItem) Report {
	report := Report{
		WarehouseName: warehouseName,
		Items:         items,
		TotalValue:    decimal.Zero,
	}

	for _, item := range items {
		report.TotalValue = report.TotalValue.Add(item.TotalValue())
		switch item.StockStatus() {
		case models.StockStatusLowStock:
			report.LowStockCount++
		case models.StockStatusOutOfStock:
			report.OutOfStockCnt++
		}
	}
	return report
}

// WriteCSV writes the report in the fixed export column layout
func (r Report) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(reportColumns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}

	for _, item := range r.Items {
		record := []string{
			r.WarehouseName,
			item.Name,
			item.SKU,
			item.Barcode,
			item.Description,
			item.Category,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinStock),
			item.UnitPrice.StringFixed(2),
			item.TotalValue().StringFixed(2),
			string(item.StockStatus()),
			item.Location,
			item.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV record")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush CSV")
}
