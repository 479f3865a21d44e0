package models

// StockStatus is the derived stock level of an inventory item
type StockStatus string

// Stock status values
const (
	StockStatusInStock    StockStatus = "InStock"
	StockStatusLowStock   StockStatus = "LowStock"
	StockStatusOutOfStock StockStatus = "OutOfStock"
)

// StockStatus derives the stock level from quantity and minimum stock.
// quantity==0 is out of stock, 0<quantity<=minStock is low stock.
func (i InventoryItem) StockStatus() StockStatus {
	switch {
	case i.Quantity == 0:
		return StockStatusOutOfStock
	case i.Quantity <= i.MinStock:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// ShipmentStatus is the lifecycle state of a shipment order
type ShipmentStatus string

// Shipment lifecycle states
const (
	ShipmentStatusDraft      ShipmentStatus = "draft"
	ShipmentStatusConfigured ShipmentStatus = "configured"
	ShipmentStatusDispatched ShipmentStatus = "dispatched"
	ShipmentStatusDeleted    ShipmentStatus = "deleted"
)

// OrderType distinguishes single- from multi-customer shipments
type OrderType string

// Order types
const (
	OrderTypeSingle OrderType = "single"
	OrderTypeMulti  OrderType = "multi"
)

// ShipmentType is the delivery method of a configured shipment
type ShipmentType string

// Delivery methods
const (
	ShipmentTypeTruck    ShipmentType = "truck"
	ShipmentTypeCourier  ShipmentType = "courier"
	ShipmentTypeInPerson ShipmentType = "inPerson"
)

// Valid reports whether t is a known delivery method
func (t ShipmentType) Valid() bool {
	switch t {
	case ShipmentTypeTruck, ShipmentTypeCourier, ShipmentTypeInPerson:
		return true
	}
	return false
}

// LoadingStrategy is the carton loading order policy for truck shipments
type LoadingStrategy string

// Loading strategies
const (
	LoadingStrategyLIFO    LoadingStrategy = "lifo"
	LoadingStrategyNonLIFO LoadingStrategy = "nonLifo"
)
