// Package backendtest provides a testify mock of the backend client for
// controller tests.
package backendtest

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

// MockClient mocks backend.Client
type MockClient struct {
	mock.Mock
}

var _ backend.Client = (*MockClient)(nil)

func (m *MockClient) ListActiveWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Warehouse), args.Error(1)
}

func (m *MockClient) FetchInventory(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.InventoryItem, error) {
	args := m.Called(ctx, warehouseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockClient) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockClient) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockClient) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClient) GetDraftShipments(ctx context.Context) ([]models.ShipmentOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShipmentOrder), args.Error(1)
}

func (m *MockClient) GetPendingShipments(ctx context.Context) ([]models.ShipmentOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShipmentOrder), args.Error(1)
}

func (m *MockClient) DeleteDraftShipment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClient) DeleteShipmentPermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClient) CreateMultiCustomerShipment(ctx context.Context, ids []uuid.UUID, userName string) (*models.ShipmentOrder, error) {
	args := m.Called(ctx, ids, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipmentOrder), args.Error(1)
}

func (m *MockClient) ConfigureShipment(ctx context.Context, id uuid.UUID, req backend.ConfigureShipmentRequest) (*models.ShipmentOrder, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShipmentOrder), args.Error(1)
}

func (m *MockClient) GenerateShipmentQR(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockClient) GetShipmentCartons(ctx context.Context, id uuid.UUID) ([]models.Carton, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Carton), args.Error(1)
}

func (m *MockClient) GetCartonItems(ctx context.Context, barcode string) ([]models.CartonItem, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartonItem), args.Error(1)
}

func (m *MockClient) GetDispatchSlipData(ctx context.Context, id uuid.UUID) (*backend.DispatchSlipData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.DispatchSlipData), args.Error(1)
}
