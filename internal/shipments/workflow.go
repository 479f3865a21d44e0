// Package shipments drives the shipment order lifecycle: draft orders arrive
// from upstream packaging, get a delivery-method configuration, and move to
// dispatch once loading starts. Deletion is terminal from any state.
package shipments

import (
	"errors"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
	"example.com/depot/services/warehouse/internal/validation"
)

// Workflow errors
var (
	ErrInvalidTransition  = errors.New("invalid shipment status transition")
	ErrNotDraft           = errors.New("shipment is not in draft state")
	ErrNoCartons          = errors.New("shipment has no cartons")
	ErrMissingTruckNumber = errors.New("truck shipment has no truck number")
)

// CanTransition reports whether a shipment may move between two states.
// draft deletes are plain removes; configured and dispatched orders can only
// be removed permanently.
func CanTransition(from, to models.ShipmentStatus) bool {
	switch from {
	case models.ShipmentStatusDraft:
		return to == models.ShipmentStatusConfigured || to == models.ShipmentStatusDeleted
	case models.ShipmentStatusConfigured:
		return to == models.ShipmentStatusDispatched || to == models.ShipmentStatusDeleted
	case models.ShipmentStatusDispatched:
		return to == models.ShipmentStatusDeleted
	}
	return false
}

// ValidateConfiguration runs every local field check for a configuration
// request before it is submitted. Checks are independent and the first
// failure is returned.
func ValidateConfiguration(req backend.ConfigureShipmentRequest) error {
	if !req.Type.Valid() {
		return errors.New("unknown shipment type")
	}
	if err := validation.ValidateDestination(req.Destination); err != nil {
		return err
	}

	switch req.Type {
	case models.ShipmentTypeTruck:
		if req.TruckDetails == nil {
			return errors.New("truck details are required")
		}
		if err := validation.ValidateTruckNumber(req.TruckDetails.TruckNumber); err != nil {
			return err
		}
		if err := validation.ValidateName(req.TruckDetails.DriverName); err != nil {
			return err
		}
		if err := validation.ValidatePhone(req.TruckDetails.DriverPhone); err != nil {
			return err
		}
		if req.LoadingStrategy != models.LoadingStrategyLIFO && req.LoadingStrategy != models.LoadingStrategyNonLIFO {
			return errors.New("loading strategy must be lifo or nonLifo")
		}
	case models.ShipmentTypeCourier:
		if req.CourierDetails == nil {
			return errors.New("courier details are required")
		}
		if err := validation.ValidateName(req.CourierDetails.CourierName); err != nil {
			return err
		}
		if err := validation.ValidateAWB(req.CourierDetails.AWBNumber); err != nil {
			return err
		}
	case models.ShipmentTypeInPerson:
		if req.InPersonDetails == nil {
			return errors.New("in-person details are required")
		}
		if err := validation.ValidateName(req.InPersonDetails.PersonName); err != nil {
			return err
		}
		if err := validation.ValidatePhone(req.InPersonDetails.Phone); err != nil {
			return err
		}
		if err := validation.ValidateIDProof(req.InPersonDetails.IDProofNumber); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeConfiguration applies field normalization and drops the details
// variants that do not match the chosen type, so exactly one is submitted.
func NormalizeConfiguration(req backend.ConfigureShipmentRequest) backend.ConfigureShipmentRequest {
	switch req.Type {
	case models.ShipmentTypeTruck:
		req.CourierDetails = nil
		req.InPersonDetails = nil
		if req.TruckDetails != nil {
			details := *req.TruckDetails
			details.TruckNumber = validation.NormalizeTruckNumber(details.TruckNumber)
			details.DriverPhone = validation.NormalizePhone(details.DriverPhone)
			req.TruckDetails = &details
		}
	case models.ShipmentTypeCourier:
		req.TruckDetails = nil
		req.InPersonDetails = nil
		req.LoadingStrategy = ""
	case models.ShipmentTypeInPerson:
		req.TruckDetails = nil
		req.CourierDetails = nil
		req.LoadingStrategy = ""
		if req.InPersonDetails != nil {
			details := *req.InPersonDetails
			details.Phone = validation.NormalizePhone(details.Phone)
			req.InPersonDetails = &details
		}
	}
	return req
}

// LoadingSnapshot is handed to the loading collaborator when dispatch starts,
// so it does not need to re-fetch the shipment.
type LoadingSnapshot struct {
	ShipmentID      string                 `json:"shipment_id"`
	ShipmentCode    string                 `json:"shipment_code"`
	TruckNumber     string                 `json:"truck_number,omitempty"`
	CustomerName    string                 `json:"customer_name"`
	LoadingStrategy models.LoadingStrategy `json:"loading_strategy,omitempty"`
	CartonBarcodes  []string               `json:"carton_barcodes"`
	CartonCount     int                    `json:"carton_count"`
}

// BuildLoadingSnapshot checks the start-loading preconditions and assembles
// the snapshot for the loading collaborator.
func BuildLoadingSnapshot(order models.ShipmentOrder, cartons []models.Carton) (*LoadingSnapshot, error) {
	if len(cartons) == 0 {
		return nil, ErrNoCartons
	}

	snapshot := &LoadingSnapshot{
		ShipmentID:      order.ID.String(),
		ShipmentCode:    order.ShipmentCode,
		CustomerName:    order.CustomerName,
		LoadingStrategy: order.LoadingStrategy,
		CartonCount:     len(cartons),
	}

	if order.ShipmentType != nil && *order.ShipmentType == models.ShipmentTypeTruck {
		if order.TruckDetails == nil || order.TruckDetails.TruckNumber == "" {
			return nil, ErrMissingTruckNumber
		}
		snapshot.TruckNumber = order.TruckDetails.TruckNumber
	}

	for _, carton := range cartons {
		snapshot.CartonBarcodes = append(snapshot.CartonBarcodes, carton.Barcode)
	}
	return snapshot, nil
}
