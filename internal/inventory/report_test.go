package inventory

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/depot/services/warehouse/internal/models"
)

func TestBuildReportTotals(t *testing.T) {
	items := []models.InventoryItem{
		{Name: "A", Quantity: 5, MinStock: 10, UnitPrice: decimal.NewFromFloat(2.0)},
		{Name: "B", Quantity: 0, MinStock: 5, UnitPrice: decimal.NewFromFloat(3.0)},
	}

	report := BuildReport("Bhiwandi DC", items)

	require.Equal(t, "10.00", report.TotalValue.StringFixed(2))
	require.Equal(t, 1, report.LowStockCount)
	require.Equal(t, 1, report.OutOfStockCnt)
}

func TestWriteCSVLayout(t *testing.T) {
	items := []models.InventoryItem{
		{
			Name:      "Steel Bolts",
			SKU:       "BLT-100",
			Barcode:   "8901234567890",
			Category:  "Fasteners",
			Quantity:  50,
			MinStock:  10,
			UnitPrice: decimal.NewFromFloat(1.25),
			Location:  "A-01-03",
		},
	}

	var buf bytes.Buffer
	report := BuildReport("Bhiwandi DC", items)
	require.NoError(t, report.WriteCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, []string{
		"warehouse", "name", "sku", "barcode", "description", "category",
		"quantity", "minStock", "unitPrice", "totalValue", "status",
		"location", "updatedAt",
	}, records[0])

	row := records[1]
	require.Equal(t, "Bhiwandi DC", row[0])
	require.Equal(t, "BLT-100", row[2])
	require.Equal(t, "50", row[6])
	require.Equal(t, "1.25", row[8])
	require.Equal(t, "62.50", row[9])
	require.Equal(t, "InStock", row[10])
}
