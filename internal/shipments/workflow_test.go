package shipments

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from models.ShipmentStatus
		to   models.ShipmentStatus
		want bool
	}{
		{models.ShipmentStatusDraft, models.ShipmentStatusConfigured, true},
		{models.ShipmentStatusDraft, models.ShipmentStatusDeleted, true},
		{models.ShipmentStatusDraft, models.ShipmentStatusDispatched, false},
		{models.ShipmentStatusConfigured, models.ShipmentStatusDispatched, true},
		{models.ShipmentStatusConfigured, models.ShipmentStatusDeleted, true},
		{models.ShipmentStatusConfigured, models.ShipmentStatusDraft, false},
		{models.ShipmentStatusDispatched, models.ShipmentStatusDeleted, true},
		{models.ShipmentStatusDispatched, models.ShipmentStatusConfigured, false},
		{models.ShipmentStatusDeleted, models.ShipmentStatusDraft, false},
		{models.ShipmentStatusDeleted, models.ShipmentStatusDeleted, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func validTruckRequest() backend.ConfigureShipmentRequest {
	return backend.ConfigureShipmentRequest{
		Type:            models.ShipmentTypeTruck,
		Destination:     "MIDC Industrial Area, Pune",
		LoadingStrategy: models.LoadingStrategyLIFO,
		TruckDetails: &models.TruckDetails{
			TruckNumber: "mh 12 ab 1234",
			DriverName:  "Ramesh Kumar",
			DriverPhone: "9876543210",
		},
	}
}

func TestValidateConfigurationTruck(t *testing.T) {
	require.NoError(t, ValidateConfiguration(validTruckRequest()))

	short := validTruckRequest()
	short.Destination = "Pune"
	require.Error(t, ValidateConfiguration(short))

	badTruck := validTruckRequest()
	badTruck.TruckDetails.TruckNumber = "MH1234"
	require.Error(t, ValidateConfiguration(badTruck))

	badPhone := validTruckRequest()
	badPhone.TruckDetails.DriverPhone = "1234567890"
	require.Error(t, ValidateConfiguration(badPhone))

	noStrategy := validTruckRequest()
	noStrategy.LoadingStrategy = ""
	require.Error(t, ValidateConfiguration(noStrategy))

	noDetails := validTruckRequest()
	noDetails.TruckDetails = nil
	require.Error(t, ValidateConfiguration(noDetails))
}

func TestValidateConfigurationCourier(t *testing.T) {
	req := backend.ConfigureShipmentRequest{
		Type:        models.ShipmentTypeCourier,
		Destination: "Andheri East, Mumbai",
		CourierDetails: &models.CourierDetails{
			CourierName: "BlueDart",
			AWBNumber:   "AWB00012345",
		},
	}
	require.NoError(t, ValidateConfiguration(req))

	req.CourierDetails.AWBNumber = "AWB1"
	require.Error(t, ValidateConfiguration(req))
}

func TestValidateConfigurationInPerson(t *testing.T) {
	req := backend.ConfigureShipmentRequest{
		Type:        models.ShipmentTypeInPerson,
		Destination: "Warehouse gate 3, Nashik",
		InPersonDetails: &models.InPersonDetails{
			PersonName:    "Suresh Patil",
			Phone:         "9123456789",
			IDProofNumber: "AADH-1234",
		},
	}
	require.NoError(t, ValidateConfiguration(req))

	req.InPersonDetails.IDProofNumber = "1234"
	require.Error(t, ValidateConfiguration(req))
}

func TestNormalizeConfigurationKeepsOneVariant(t *testing.T) {
	req := validTruckRequest()
	req.CourierDetails = &models.CourierDetails{CourierName: "stale"}
	req.InPersonDetails = &models.InPersonDetails{PersonName: "stale"}

	normalized := NormalizeConfiguration(req)

	require.Nil(t, normalized.CourierDetails)
	require.Nil(t, normalized.InPersonDetails)
	require.NotNil(t, normalized.TruckDetails)
	require.Equal(t, "MH12AB1234", normalized.TruckDetails.TruckNumber)
	require.Equal(t, "9876543210", normalized.TruckDetails.DriverPhone)
}

func TestBuildLoadingSnapshot(t *testing.T) {
	truckType := models.ShipmentTypeTruck
	order := models.ShipmentOrder{
		ID:              uuid.New(),
		ShipmentCode:    "SHP-000042",
		CustomerName:    "Acme Traders",
		Status:          models.ShipmentStatusConfigured,
		ShipmentType:    &truckType,
		LoadingStrategy: models.LoadingStrategyLIFO,
		TruckDetails:    &models.TruckDetails{TruckNumber: "MH12AB1234"},
	}
	cartons := []models.Carton{
		{Barcode: "CTN-001"},
		{Barcode: "CTN-002"},
	}

	snapshot, err := BuildLoadingSnapshot(order, cartons)
	require.NoError(t, err)
	require.Equal(t, "SHP-000042", snapshot.ShipmentCode)
	require.Equal(t, "MH12AB1234", snapshot.TruckNumber)
	require.Equal(t, models.LoadingStrategyLIFO, snapshot.LoadingStrategy)
	require.Equal(t, []string{"CTN-001", "CTN-002"}, snapshot.CartonBarcodes)
	require.Equal(t, 2, snapshot.CartonCount)
}

func TestBuildLoadingSnapshotPreconditions(t *testing.T) {
	truckType := models.ShipmentTypeTruck
	order := models.ShipmentOrder{
		ID:           uuid.New(),
		Status:       models.ShipmentStatusConfigured,
		ShipmentType: &truckType,
		TruckDetails: &models.TruckDetails{TruckNumber: "MH12AB1234"},
	}

	_, err := BuildLoadingSnapshot(order, nil)
	require.ErrorIs(t, err, ErrNoCartons)

	order.TruckDetails = &models.TruckDetails{}
	_, err = BuildLoadingSnapshot(order, []models.Carton{{Barcode: "CTN-001"}})
	require.ErrorIs(t, err, ErrMissingTruckNumber)
}
