package sandbox

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"example.com/depot/services/warehouse/internal/models"
)

// Seed populates an empty sandbox database with a working data set: one
// warehouse with stocked items and a few shipments in different states.
// Seeding a non-empty database is a no-op.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Warehouse{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check existing seed data")
	}
	if count > 0 {
		log.Debug().Msg("Sandbox database already populated, skipping seed")
		return nil
	}

	warehouse := models.Warehouse{
		ID:       uuid.New(),
		Name:     "Bhiwandi DC",
		Address:  "Plot 14, Bhiwandi Industrial Estate, Thane",
		IsActive: true,
	}

	items := []models.InventoryItem{
		{
			ID: uuid.New(), WarehouseID: warehouse.ID,
			Name: "Steel Bolts M8", SKU: "BLT-100", Barcode: "8901001001001",
			Category: "Fasteners", Quantity: 500, MinStock: 100,
			UnitPrice: decimal.NewFromFloat(2.50), Location: "A1-03", IsActive: true,
		},
		{
			ID: uuid.New(), WarehouseID: warehouse.ID,
			Name: "Brass Nuts M8", SKU: "NUT-200", Barcode: "8901001001002",
			Category: "Fasteners", Quantity: 80, MinStock: 100,
			UnitPrice: decimal.NewFromFloat(1.75), Location: "A1-04", IsActive: true,
		},
		{
			ID: uuid.New(), WarehouseID: warehouse.ID,
			Name: "Packing Tape 48mm", SKU: "TAP-300", Barcode: "8901001001003",
			Category: "Consumables", Quantity: 0, MinStock: 20,
			UnitPrice: decimal.NewFromFloat(45.00), Location: "C2-01", IsActive: true,
		},
	}

	draftA := models.ShipmentOrder{
		ID: uuid.New(), ShipmentCode: "SHP-000001",
		CustomerName: "Acme Traders", OrderNumber: "ORD-2044",
		Destination: "MIDC Industrial Area, Pune",
		TotalCartons: 2, OrderType: models.OrderTypeSingle,
		Status: models.ShipmentStatusDraft,
	}
	draftB := models.ShipmentOrder{
		ID: uuid.New(), ShipmentCode: "SHP-000002",
		CustomerName: "Zenith Corp", OrderNumber: "ORD-2045",
		Destination: "Andheri East, Mumbai",
		TotalCartons: 1, OrderType: models.OrderTypeSingle,
		Status: models.ShipmentStatusDraft,
	}
	truckType := models.ShipmentTypeTruck
	configured := models.ShipmentOrder{
		ID: uuid.New(), ShipmentCode: "SHP-000003",
		CustomerName: "Nimbus Retail", OrderNumber: "ORD-2040",
		Destination:  "Sector 18, Gurugram",
		TotalCartons: 1, OrderType: models.OrderTypeSingle,
		ShipmentType: &truckType, LoadingStrategy: models.LoadingStrategyLIFO,
		TruckDetails: &models.TruckDetails{
			TruckNumber: "MH12AB1234", DriverName: "R. Sharma", DriverPhone: "9876543210",
		},
		Status: models.ShipmentStatusConfigured,
	}

	cartons := []models.Carton{
		{
			Barcode: "CTN-000101", ShipmentOrderID: draftA.ID,
			PackagingSessionID: uuid.New(), CustomerName: "Acme Traders",
			WeightKg: 12.5, PackedBy: "packer.one",
			Items: []models.CartonItem{
				{ProductName: "Steel Bolts M8", SKU: "BLT-100", Quantity: 200},
				{ProductName: "Brass Nuts M8", SKU: "NUT-200", Quantity: 50},
			},
		},
		{
			Barcode: "CTN-000102", ShipmentOrderID: draftA.ID,
			PackagingSessionID: uuid.New(), CustomerName: "Acme Traders",
			WeightKg: 8.0, PackedBy: "packer.one",
			Items: []models.CartonItem{
				{ProductName: "Steel Bolts M8", SKU: "BLT-100", Quantity: 150},
			},
		},
		{
			Barcode: "CTN-000103", ShipmentOrderID: draftB.ID,
			PackagingSessionID: uuid.New(), CustomerName: "Zenith Corp",
			WeightKg: 4.2, PackedBy: "packer.two",
			Items: []models.CartonItem{
				{ProductName: "Brass Nuts M8", SKU: "NUT-200", Quantity: 30},
			},
		},
		{
			Barcode: "CTN-000104", ShipmentOrderID: configured.ID,
			PackagingSessionID: uuid.New(), CustomerName: "Nimbus Retail",
			WeightKg: 15.0, PackedBy: "packer.two",
			Items: []models.CartonItem{
				{ProductName: "Steel Bolts M8", SKU: "BLT-100", Quantity: 300},
			},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&warehouse).Error; err != nil {
			return errors.Wrap(err, "failed to seed warehouse")
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, "failed to seed inventory")
		}
		for _, shipment := range []models.ShipmentOrder{draftA, draftB, configured} {
			if err := tx.Create(&shipment).Error; err != nil {
				return errors.Wrap(err, "failed to seed shipments")
			}
		}
		if err := tx.Create(&cartons).Error; err != nil {
			return errors.Wrap(err, "failed to seed cartons")
		}
		log.Info().
			Str("warehouse", warehouse.Name).
			Int("items", len(items)).
			Int("cartons", len(cartons)).
			Msg("Seeded sandbox database")
		return nil
	})
}
