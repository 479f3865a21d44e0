// Package backend is the HTTP client for the hosted warehouse backend. The
// backend owns all durable state; this client is point-to-point with no retry
// loop and a hard per-call timeout.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/depot/services/warehouse/config"
	"example.com/depot/services/warehouse/internal/models"
)

// Client defines the backend operations the application depends on
type Client interface {
	ListActiveWarehouses(ctx context.Context) ([]models.Warehouse, error)
	FetchInventory(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.InventoryItem, error)
	InsertInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id uuid.UUID) error

	GetDraftShipments(ctx context.Context) ([]models.ShipmentOrder, error)
	GetPendingShipments(ctx context.Context) ([]models.ShipmentOrder, error)
	DeleteDraftShipment(ctx context.Context, id uuid.UUID) error
	DeleteShipmentPermanently(ctx context.Context, id uuid.UUID) error
	CreateMultiCustomerShipment(ctx context.Context, ids []uuid.UUID, userName string) (*models.ShipmentOrder, error)
	ConfigureShipment(ctx context.Context, id uuid.UUID, req ConfigureShipmentRequest) (*models.ShipmentOrder, error)
	GenerateShipmentQR(ctx context.Context, id uuid.UUID) (string, error)

	GetShipmentCartons(ctx context.Context, id uuid.UUID) ([]models.Carton, error)
	GetCartonItems(ctx context.Context, barcode string) ([]models.CartonItem, error)
	GetDispatchSlipData(ctx context.Context, id uuid.UUID) (*DispatchSlipData, error)
}

// HTTPClient implements Client over the backend REST API
type HTTPClient struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	timeout       time.Duration
	exportTimeout time.Duration
}

// NewHTTPClient creates a backend client from configuration
func NewHTTPClient(cfg config.BackendConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	exportTimeout := cfg.ExportTimeout
	if exportTimeout <= 0 {
		exportTimeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:       cfg.URL,
		apiKey:        cfg.APIKey,
		httpClient:    &http.Client{},
		timeout:       timeout,
		exportTimeout: exportTimeout,
	}
}

// do performs a single request against the backend and decodes the enveloped
// response into out. out must embed Envelope.
func (c *HTTPClient) do(ctx context.Context, method, path string, body interface{}, out interface{}, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn().Str("path", path).Dur("timeout", timeout).Msg("Backend request timed out")
			return ErrTimeout
		}
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read backend response")
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &RemoteError{
				StatusCode: resp.StatusCode,
				Message:    TruncateMessage(fmt.Sprintf("backend returned status %d", resp.StatusCode)),
			}
		}
		return errors.Wrap(err, "failed to decode backend response")
	}

	env, ok := out.(interface{ envelope() Envelope })
	if !ok {
		return errors.New("response type does not carry an envelope")
	}
	if e := env.envelope(); !e.Success {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    TruncateMessage(e.Message),
		}
	}
	return nil
}

// envelope exposes the embedded Envelope to the generic request path
func (e Envelope) envelope() Envelope { return e }

// ListActiveWarehouses returns all active warehouses
func (c *HTTPClient) ListActiveWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var resp warehousesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/warehouses", nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to list warehouses")
	}
	return resp.Warehouses, nil
}

// FetchInventory returns the full inventory of a warehouse, bounded by limit
func (c *HTTPClient) FetchInventory(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.InventoryItem, error) {
	if warehouseID == uuid.Nil {
		return nil, ErrNoWarehouseSelected
	}
	path := fmt.Sprintf("/api/v1/warehouses/%s/inventory?limit=%d", warehouseID, limit)
	var resp inventoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to fetch inventory")
	}
	return resp.Items, nil
}

// InsertInventoryItem creates a new inventory item
func (c *HTTPClient) InsertInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	var resp itemResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/inventory", item, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to insert inventory item")
	}
	return resp.Item, nil
}

// UpdateInventoryItem updates an existing inventory item
func (c *HTTPClient) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	path := fmt.Sprintf("/api/v1/inventory/%s", item.ID)
	var resp itemResponse
	if err := c.do(ctx, http.MethodPut, path, item, &resp, c.timeout); err != nil {
		return errors.Wrap(err, "failed to update inventory item")
	}
	return nil
}

// DeleteInventoryItem removes an inventory item
func (c *HTTPClient) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/inventory/%s", id)
	var resp Envelope
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp, c.timeout); err != nil {
		return errors.Wrap(err, "failed to delete inventory item")
	}
	return nil
}

// GetDraftShipments returns shipment orders still awaiting configuration
func (c *HTTPClient) GetDraftShipments(ctx context.Context) ([]models.ShipmentOrder, error) {
	var resp shipmentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/shipments/drafts", nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to get draft shipments")
	}
	return resp.Shipments, nil
}

// GetPendingShipments returns configured and dispatched shipment orders
func (c *HTTPClient) GetPendingShipments(ctx context.Context) ([]models.ShipmentOrder, error) {
	var resp shipmentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/shipments/pending", nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to get pending shipments")
	}
	return resp.Shipments, nil
}

// DeleteDraftShipment removes a draft shipment
func (c *HTTPClient) DeleteDraftShipment(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/shipments/%s", id)
	var resp Envelope
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp, c.timeout); err != nil {
		return errors.Wrap(err, "failed to delete draft shipment")
	}
	return nil
}

// DeleteShipmentPermanently irreversibly removes a configured or dispatched
// shipment together with its cartons
func (c *HTTPClient) DeleteShipmentPermanently(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/shipments/%s/permanent", id)
	var resp Envelope
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp, c.timeout); err != nil {
		return errors.Wrap(err, "failed to permanently delete shipment")
	}
	return nil
}

// CreateMultiCustomerShipment merges the given draft shipments into one
// multi-customer shipment. The merge is all-or-nothing at the backend.
func (c *HTTPClient) CreateMultiCustomerShipment(ctx context.Context, ids []uuid.UUID, userName string) (*models.ShipmentOrder, error) {
	req := ConsolidateRequest{ShipmentIDs: ids, UserName: userName}
	var resp shipmentResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/shipments/consolidate", req, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to create multi-customer shipment")
	}
	return resp.Shipment, nil
}

// ConfigureShipment sets the delivery method and details of a draft shipment
func (c *HTTPClient) ConfigureShipment(ctx context.Context, id uuid.UUID, req ConfigureShipmentRequest) (*models.ShipmentOrder, error) {
	path := fmt.Sprintf("/api/v1/shipments/%s/configure", id)
	var resp shipmentResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to configure shipment")
	}
	return resp.Shipment, nil
}

// GenerateShipmentQR asks the backend to generate and store the QR payload
// for a configured shipment
func (c *HTTPClient) GenerateShipmentQR(ctx context.Context, id uuid.UUID) (string, error) {
	path := fmt.Sprintf("/api/v1/shipments/%s/qr", id)
	var resp qrResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &resp, c.timeout); err != nil {
		return "", errors.Wrap(err, "failed to generate shipment QR")
	}
	return resp.QRPayload, nil
}

// GetShipmentCartons returns the cartons of a shipment
func (c *HTTPClient) GetShipmentCartons(ctx context.Context, id uuid.UUID) ([]models.Carton, error) {
	path := fmt.Sprintf("/api/v1/shipments/%s/cartons", id)
	var resp cartonsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to get shipment cartons")
	}
	return resp.Cartons, nil
}

// GetCartonItems returns the item lines of a single carton
func (c *HTTPClient) GetCartonItems(ctx context.Context, barcode string) ([]models.CartonItem, error) {
	path := fmt.Sprintf("/api/v1/cartons/%s/items", barcode)
	var resp cartonItemsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, c.timeout); err != nil {
		return nil, errors.Wrap(err, "failed to get carton items")
	}
	return resp.Items, nil
}

// GetDispatchSlipData returns the joined order and carton rows behind a
// dispatch slip. Uses the longer export timeout.
func (c *HTTPClient) GetDispatchSlipData(ctx context.Context, id uuid.UUID) (*DispatchSlipData, error) {
	path := fmt.Sprintf("/api/v1/shipments/%s/dispatch-slip", id)
	var resp dispatchSlipResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, c.exportTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to get dispatch slip data")
	}
	return resp.Data, nil
}
