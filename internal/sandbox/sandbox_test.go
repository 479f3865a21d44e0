package sandbox

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/depot/services/warehouse/config"
	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

// newTestBackend boots a seeded in-memory sandbox and returns a real HTTP
// client pointed at it.
func newTestBackend(t *testing.T) backend.Client {
	t.Helper()

	db, err := OpenDatabase(config.SandboxConfig{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Seed(db))

	server := NewServer(config.SandboxConfig{}, NewRepository(db))
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)

	return backend.NewHTTPClient(config.BackendConfig{URL: ts.URL})
}

func findShipment(t *testing.T, shipments []models.ShipmentOrder, code string) models.ShipmentOrder {
	t.Helper()
	for _, s := range shipments {
		if s.ShipmentCode == code {
			return s
		}
	}
	t.Fatalf("shipment %s not found", code)
	return models.ShipmentOrder{}
}

func TestInventoryLifecycle(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	warehouses, err := client.ListActiveWarehouses(ctx)
	require.NoError(t, err)
	require.Len(t, warehouses, 1)

	items, err := client.FetchInventory(ctx, warehouses[0].ID, 1000)
	require.NoError(t, err)
	require.Len(t, items, 3)

	created, err := client.InsertInventoryItem(ctx, &models.InventoryItem{
		WarehouseID: warehouses[0].ID,
		Name:        "Stretch Wrap Roll",
		SKU:         "WRP-400",
		Category:    "Consumables",
		Quantity:    40,
		MinStock:    10,
		UnitPrice:   decimal.NewFromFloat(120.00),
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	created.Quantity = 35
	require.NoError(t, client.UpdateInventoryItem(ctx, created))

	items, err = client.FetchInventory(ctx, warehouses[0].ID, 1000)
	require.NoError(t, err)
	require.Len(t, items, 4)

	require.NoError(t, client.DeleteInventoryItem(ctx, created.ID))

	items, err = client.FetchInventory(ctx, warehouses[0].ID, 1000)
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestInventoryValidationRejectsIncompleteItem(t *testing.T) {
	client := newTestBackend(t)

	_, err := client.InsertInventoryItem(context.Background(), &models.InventoryItem{Name: "No SKU"})
	var remote *backend.RemoteError
	require.ErrorAs(t, err, &remote)
}

func TestShipmentConfigurationFlow(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	target := findShipment(t, drafts, "SHP-000001")
	configured, err := client.ConfigureShipment(ctx, target.ID, backend.ConfigureShipmentRequest{
		Type:            models.ShipmentTypeTruck,
		Destination:     "MIDC Industrial Area, Pune",
		LoadingStrategy: models.LoadingStrategyNonLIFO,
		TruckDetails: &models.TruckDetails{
			TruckNumber: "MH14CD5678",
			DriverName:  "S. Patil",
			DriverPhone: "9812345678",
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.ShipmentStatusConfigured, configured.Status)
	require.NotNil(t, configured.TruckDetails)

	// A configured shipment leaves the draft list and joins pending
	drafts, err = client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	pending, err := client.GetPendingShipments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	payload, err := client.GenerateShipmentQR(ctx, target.ID)
	require.NoError(t, err)
	require.Contains(t, payload, "SHP-000001")

	// Reconfiguring a non-draft is rejected
	_, err = client.ConfigureShipment(ctx, target.ID, backend.ConfigureShipmentRequest{
		Type:           models.ShipmentTypeCourier,
		Destination:    "MIDC Industrial Area, Pune",
		CourierDetails: &models.CourierDetails{CourierName: "BlueShip", AWBNumber: "AWB12345678"},
	})
	var remote *backend.RemoteError
	require.ErrorAs(t, err, &remote)
}

func TestConfiguredVariantIsExclusiveAfterReload(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	target := findShipment(t, drafts, "SHP-000001")

	_, err = client.ConfigureShipment(ctx, target.ID, backend.ConfigureShipmentRequest{
		Type:        models.ShipmentTypeCourier,
		Destination: "Andheri East, Mumbai 400093",
		CourierDetails: &models.CourierDetails{
			CourierName: "BlueDart", AWBNumber: "AWB12345678", Phone: "9876543210",
		},
	})
	require.NoError(t, err)

	// The embedded variant columns must not rehydrate as empty structs: a
	// reloaded courier shipment carries courier details and nothing else
	pending, err := client.GetPendingShipments(ctx)
	require.NoError(t, err)
	reloaded := findShipment(t, pending, "SHP-000001")

	require.Nil(t, reloaded.TruckDetails)
	require.Nil(t, reloaded.InPersonDetails)
	require.NotNil(t, reloaded.CourierDetails)
	require.Equal(t, "AWB12345678", reloaded.CourierDetails.AWBNumber)

	// Unconfigured drafts carry no variant at all
	drafts, err = client.GetDraftShipments(ctx)
	require.NoError(t, err)
	remaining := findShipment(t, drafts, "SHP-000002")
	require.Nil(t, remaining.TruckDetails)
	require.Nil(t, remaining.CourierDetails)
	require.Nil(t, remaining.InPersonDetails)
}

func TestConsolidationPrimaryIsFirstSubmittedID(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	acme := findShipment(t, drafts, "SHP-000001")
	zenith := findShipment(t, drafts, "SHP-000002")

	// Zenith is submitted first, so the merged order inherits Zenith's
	// identity regardless of row order in the store
	merged, err := client.CreateMultiCustomerShipment(ctx,
		[]uuid.UUID{zenith.ID, acme.ID}, "ops.user")
	require.NoError(t, err)
	require.Equal(t, "Zenith Corp +1", merged.CustomerName)
	require.Equal(t, "Andheri East, Mumbai", merged.Destination)
}

func TestConsolidationMergesDraftsAtomically(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	ids := []uuid.UUID{drafts[0].ID, drafts[1].ID}
	merged, err := client.CreateMultiCustomerShipment(ctx, ids, "ops.user")
	require.NoError(t, err)
	require.Equal(t, models.OrderTypeMulti, merged.OrderType)
	require.Equal(t, models.ShipmentStatusDraft, merged.Status)
	require.Equal(t, 3, merged.TotalCartons)

	// Sources are absorbed, leaving only the merged draft
	drafts, err = client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, merged.ID, drafts[0].ID)

	cartons, err := client.GetShipmentCartons(ctx, merged.ID)
	require.NoError(t, err)
	require.Len(t, cartons, 3)
}

func TestConsolidationRejectsNonDraftsWithoutPartialMerge(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	pending, err := client.GetPendingShipments(ctx)
	require.NoError(t, err)

	_, err = client.CreateMultiCustomerShipment(ctx,
		[]uuid.UUID{drafts[0].ID, pending[0].ID}, "ops.user")
	var remote *backend.RemoteError
	require.ErrorAs(t, err, &remote)

	// Nothing moved
	after, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(drafts))
}

func TestDraftDeleteIsSoftPermanentDeleteIsHard(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	drafts, err := client.GetDraftShipments(ctx)
	require.NoError(t, err)
	target := findShipment(t, drafts, "SHP-000002")

	require.NoError(t, client.DeleteDraftShipment(ctx, target.ID))

	drafts, err = client.GetDraftShipments(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	// Deleting a non-draft through the soft path is rejected
	pending, err := client.GetPendingShipments(ctx)
	require.NoError(t, err)
	err = client.DeleteDraftShipment(ctx, pending[0].ID)
	var remote *backend.RemoteError
	require.ErrorAs(t, err, &remote)

	// The permanent path removes the shipment and its cartons
	deletedID := pending[0].ID
	require.NoError(t, client.DeleteShipmentPermanently(ctx, deletedID))

	pending, err = client.GetPendingShipments(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	cartons, err := client.GetShipmentCartons(ctx, deletedID)
	require.NoError(t, err)
	require.Empty(t, cartons)
}

func TestDispatchSlipDataJoinsCartonItems(t *testing.T) {
	client := newTestBackend(t)
	ctx := context.Background()

	pending, err := client.GetPendingShipments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	data, err := client.GetDispatchSlipData(ctx, pending[0].ID)
	require.NoError(t, err)
	require.Equal(t, "SHP-000003", data.Order.ShipmentCode)
	require.Len(t, data.Cartons, 1)
	require.Len(t, data.Cartons[0].Items, 1)
	require.Equal(t, "BLT-100", data.Cartons[0].Items[0].SKU)
}

func TestCartonItemLookup(t *testing.T) {
	client := newTestBackend(t)

	items, err := client.GetCartonItems(context.Background(), "CTN-000101")
	require.NoError(t, err)
	require.Len(t, items, 2)
}
