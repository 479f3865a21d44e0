package backend

import (
	"github.com/google/uuid"

	"example.com/depot/services/warehouse/internal/models"
)

// Envelope is the response convention shared by every backend operation.
// Mutation calls return {success, message?, ...payload}; the message of a
// failed call is surfaced to the user verbatim.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ConfigureShipmentRequest carries the delivery-method configuration of a
// draft shipment. Exactly one of the details variants must match Type.
type ConfigureShipmentRequest struct {
	Type                models.ShipmentType     `json:"shipment_type"`
	Destination         string                  `json:"destination"`
	SpecialInstructions string                  `json:"special_instructions,omitempty"`
	LoadingStrategy     models.LoadingStrategy  `json:"loading_strategy,omitempty"`
	TruckDetails        *models.TruckDetails    `json:"truck_details,omitempty"`
	CourierDetails      *models.CourierDetails  `json:"courier_details,omitempty"`
	InPersonDetails     *models.InPersonDetails `json:"in_person_details,omitempty"`
}

// ConsolidateRequest merges draft shipments into one multi-customer shipment
type ConsolidateRequest struct {
	ShipmentIDs []uuid.UUID `json:"shipment_ids"`
	UserName    string      `json:"user_name"`
}

// DispatchSlipData is the normalized record set behind a dispatch slip
type DispatchSlipData struct {
	Order   models.ShipmentOrder `json:"order"`
	Cartons []models.Carton      `json:"cartons"`
}

type warehousesResponse struct {
	Envelope
	Warehouses []models.Warehouse `json:"warehouses"`
}

type inventoryResponse struct {
	Envelope
	Items []models.InventoryItem `json:"items"`
}

type itemResponse struct {
	Envelope
	Item *models.InventoryItem `json:"item,omitempty"`
}

type shipmentsResponse struct {
	Envelope
	Shipments []models.ShipmentOrder `json:"shipments"`
}

type shipmentResponse struct {
	Envelope
	Shipment *models.ShipmentOrder `json:"shipment,omitempty"`
}

type qrResponse struct {
	Envelope
	QRPayload string `json:"qr_payload"`
}

type cartonsResponse struct {
	Envelope
	Cartons []models.Carton `json:"cartons"`
}

type cartonItemsResponse struct {
	Envelope
	Items []models.CartonItem `json:"items"`
}

type dispatchSlipResponse struct {
	Envelope
	Data *DispatchSlipData `json:"data,omitempty"`
}
