package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Warehouse represents a physical warehouse
type Warehouse struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Address   string         `json:"address"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
}

// InventoryItem represents a stocked product in a warehouse
type InventoryItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Name        string          `gorm:"not null" json:"name"`
	SKU         string          `gorm:"not null;index" json:"sku"`
	Barcode     string          `gorm:"index" json:"barcode"`
	Description string          `json:"description"`
	Category    string          `gorm:"index" json:"category"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	MinStock    int             `gorm:"not null;default:0" json:"min_stock"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Location    string          `json:"location"`
	CreatedBy   string          `json:"created_by"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
}

// TotalValue returns quantity times unit price
func (i InventoryItem) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShipmentOrder represents a single- or multi-customer shipment order
type ShipmentOrder struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"-"`
	ShipmentCode        string          `gorm:"not null;uniqueIndex" json:"shipment_code"`
	CustomerName        string          `gorm:"not null" json:"customer_name"`
	OrderNumber         string          `json:"order_number"`
	Destination         string          `json:"destination"`
	TotalCartons        int             `gorm:"not null;default:0" json:"total_cartons"`
	OrderType           OrderType       `gorm:"not null;default:single" json:"order_type"`
	ShipmentType        *ShipmentType   `json:"shipment_type"`
	LoadingStrategy     LoadingStrategy `json:"loading_strategy"`
	TruckDetails        *TruckDetails   `gorm:"embedded;embeddedPrefix:truck_" json:"truck_details,omitempty"`
	CourierDetails      *CourierDetails `gorm:"embedded;embeddedPrefix:courier_" json:"courier_details,omitempty"`
	InPersonDetails     *InPersonDetails `gorm:"embedded;embeddedPrefix:in_person_" json:"in_person_details,omitempty"`
	SpecialInstructions string          `json:"special_instructions"`
	Status              ShipmentStatus  `gorm:"not null;default:draft;index" json:"status"`
	QRGenerated         bool            `gorm:"not null;default:false" json:"qr_generated"`
	Cartons             []Carton        `gorm:"foreignKey:ShipmentOrderID" json:"-"`
}

// AfterFind clears the detail variants that do not match the delivery method.
// The variants are pointer-embedded, so a read rehydrates every one of them as
// a zero-value struct from the empty columns; only the variant keyed by
// ShipmentType is real.
func (s *ShipmentOrder) AfterFind(*gorm.DB) error {
	if s.ShipmentType == nil {
		s.TruckDetails = nil
		s.CourierDetails = nil
		s.InPersonDetails = nil
		return nil
	}
	switch *s.ShipmentType {
	case ShipmentTypeTruck:
		s.CourierDetails = nil
		s.InPersonDetails = nil
	case ShipmentTypeCourier:
		s.TruckDetails = nil
		s.InPersonDetails = nil
	case ShipmentTypeInPerson:
		s.TruckDetails = nil
		s.CourierDetails = nil
	}
	return nil
}

// TruckDetails holds truck delivery fields
type TruckDetails struct {
	TruckNumber string `json:"truck_number"`
	DriverName  string `json:"driver_name"`
	DriverPhone string `json:"driver_phone"`
}

// CourierDetails holds courier delivery fields
type CourierDetails struct {
	CourierName string `json:"courier_name"`
	AWBNumber   string `json:"awb_number"`
	Phone       string `json:"phone"`
}

// InPersonDetails holds in-person pickup fields
type InPersonDetails struct {
	PersonName    string `json:"person_name"`
	Phone         string `json:"phone"`
	IDProofNumber string `json:"id_proof_number"`
}

// Carton represents a packed physical unit identified by barcode.
// A carton belongs to exactly one shipment order via its packaging session.
type Carton struct {
	Barcode            string         `gorm:"primaryKey" json:"carton_barcode"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	ShipmentOrderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"shipment_order_id"`
	PackagingSessionID uuid.UUID      `gorm:"type:uuid" json:"packaging_session_id"`
	CustomerName       string         `json:"customer_name"`
	WeightKg           float64        `json:"weight_kg"`
	PackedBy           string         `json:"packed_by"`
	IsLoaded           bool           `gorm:"not null;default:false" json:"is_loaded"`
	Items              []CartonItem   `gorm:"foreignKey:CartonBarcode" json:"items,omitempty"`
}

// CartonItem represents a product line inside a carton
type CartonItem struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CartonBarcode string `gorm:"not null;index" json:"carton_barcode"`
	ProductName   string `gorm:"not null" json:"product_name"`
	SKU           string `gorm:"not null" json:"sku"`
	Quantity      int    `gorm:"not null;default:1" json:"quantity"`
}

// SetupModels configures GORM models and runs migrations
func SetupModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Warehouse{},
		&InventoryItem{},
		&ShipmentOrder{},
		&Carton{},
		&CartonItem{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run auto migrations")
	}
	return nil
}
