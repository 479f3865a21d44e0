package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/depot/services/warehouse/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewHTTPClient(config.BackendConfig{
		URL:           srv.URL,
		Timeout:       2 * time.Second,
		ExportTimeout: 2 * time.Second,
	})
	return client, srv
}

func TestListActiveWarehouses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/warehouses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"warehouses":[{"id":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","name":"Bhiwandi DC","is_active":true}]}`))
	}))

	warehouses, err := client.ListActiveWarehouses(context.Background())
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	require.Equal(t, "Bhiwandi DC", warehouses[0].Name)
}

func TestFailureMessageSurfacedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"shipment already configured"}`))
	}))

	err := client.DeleteDraftShipment(context.Background(), uuid.New())
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Equal(t, "shipment already configured", remoteErr.Message)
	require.Equal(t, http.StatusConflict, remoteErr.StatusCode)
}

func TestFailureMessageTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"` + long + `"}`))
	}))

	_, err := client.GetDraftShipments(context.Background())
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Len(t, remoteErr.Message, 200)
}

func TestRequestTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	client.timeout = 20 * time.Millisecond

	_, err := client.GetPendingShipments(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestFetchInventoryRequiresWarehouse(t *testing.T) {
	client := NewHTTPClient(config.BackendConfig{URL: "http://localhost:0"})

	_, err := client.FetchInventory(context.Background(), uuid.Nil, 1000)
	require.ErrorIs(t, err, ErrNoWarehouseSelected)
}

func TestConsolidateSendsIDListAndUser(t *testing.T) {
	primary := uuid.New()
	other := uuid.New()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/shipments/consolidate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"shipment":{"id":"` + uuid.NewString() + `","shipment_code":"SHP-000123","customer_name":"Multiple","order_type":"multi","status":"draft"}}`))
	}))

	shipment, err := client.CreateMultiCustomerShipment(context.Background(), []uuid.UUID{primary, other}, "ops.user")
	require.NoError(t, err)
	require.NotNil(t, shipment)
	require.Equal(t, "SHP-000123", shipment.ShipmentCode)
}

func TestTruncateMessage(t *testing.T) {
	require.Equal(t, "short", TruncateMessage("short"))
	require.Len(t, TruncateMessage(strings.Repeat("a", 500)), 200)

	// Multi-byte messages are cut on rune boundaries
	truncated := TruncateMessage(strings.Repeat("त्रुटि", 100))
	require.True(t, utf8.ValidString(truncated))
	require.Equal(t, 200, utf8.RuneCountInString(truncated))
}
