// Package inventory holds the inventory screen controller: a full-list fetch
// per warehouse cached in memory, pure client-side filtering, and guarded
// mutations against the backend.
package inventory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
	"example.com/depot/services/warehouse/internal/screen"
)

// DefaultFetchLimit bounds a full inventory fetch
const DefaultFetchLimit = 1000

// Controller manages the cached inventory list of one warehouse
type Controller struct {
	client        backend.Client
	warehouseID   uuid.UUID
	warehouseName string
	limit         int

	mu         sync.Mutex
	items      []models.InventoryItem
	filtered   []models.InventoryItem
	searchText string
	category   string
	loaded     bool

	filterPasses int

	guard     screen.Guard
	tracker   *screen.ErrorTracker
	debouncer *screen.Debouncer
	refresh   singleflight.Group
}

// NewController creates a controller for one warehouse
func NewController(client backend.Client, warehouseID uuid.UUID, warehouseName string, limit int) *Controller {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &Controller{
		client:        client,
		warehouseID:   warehouseID,
		warehouseName: warehouseName,
		limit:         limit,
		tracker:       screen.NewErrorTracker(screen.DefaultFailureThreshold),
		debouncer:     screen.NewDebouncer(screen.DefaultSearchDebounce),
	}
}

// WarehouseName returns the display name of the controller's warehouse
func (c *Controller) WarehouseName() string {
	return c.warehouseName
}

// Load fetches the full inventory list, replacing the cached copy. Concurrent
// calls are deduplicated; every caller observes the same result. After three
// consecutive failures Load reports ErrRecoveryNeeded instead of the plain
// error so the caller can offer a reset.
func (c *Controller) Load(ctx context.Context) error {
	_, err, _ := c.refresh.Do("load", func() (interface{}, error) {
		items, err := c.client.FetchInventory(ctx, c.warehouseID, c.limit)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.items = items
		c.loaded = true
		c.applyFilterLocked()
		c.mu.Unlock()
		return nil, nil
	})

	if err != nil {
		if c.tracker.Failure() {
			log.Error().Err(err).Str("warehouse", c.warehouseName).
				Msg("Inventory load failed repeatedly")
			return screen.ErrRecoveryNeeded
		}
		return errors.Wrap(err, "failed to load inventory")
	}

	c.tracker.Success()
	return nil
}

// Reset clears the cached list, filters and failure state. Used by the
// recovery flow before a forced reload.
func (c *Controller) Reset() {
	c.debouncer.Stop()
	c.tracker.Success()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.filtered = nil
	c.searchText = ""
	c.category = ""
	c.loaded = false
}

// Items returns the current filtered view of the cached list
func (c *Controller) Items() []models.InventoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.InventoryItem, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// Search applies a search term after the debounce interval. Rapid successive
// calls collapse into a single filter pass for the final term.
func (c *Controller) Search(text string) {
	c.debouncer.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.searchText = text
		c.applyFilterLocked()
	})
}

// SetCategory filters the list by category immediately. Empty means all.
func (c *Controller) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.category = category
	c.applyFilterLocked()
}

// applyFilterLocked recomputes the filtered view. Caller must hold mu.
func (c *Controller) applyFilterLocked() {
	c.filterPasses++

	search := strings.ToLower(strings.TrimSpace(c.searchText))
	filtered := make([]models.InventoryItem, 0, len(c.items))
	for _, item := range c.items {
		if c.category != "" && item.Category != c.category {
			continue
		}
		if search != "" && !Matches(item, search) {
			continue
		}
		filtered = append(filtered, item)
	}
	c.filtered = filtered
}

// Matches reports whether an item matches a search term, case-insensitively,
// across name, sku, barcode and category
func Matches(item models.InventoryItem, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	return strings.Contains(strings.ToLower(item.Name), search) ||
		strings.Contains(strings.ToLower(item.SKU), search) ||
		strings.Contains(strings.ToLower(item.Barcode), search) ||
		strings.Contains(strings.ToLower(item.Category), search)
}

// AddItem creates a new item in the current warehouse and reloads the list
func (c *Controller) AddItem(ctx context.Context, item *models.InventoryItem) error {
	if err := c.guard.Begin(); err != nil {
		return err
	}
	defer c.guard.End()

	item.WarehouseID = c.warehouseID
	created, err := c.client.InsertInventoryItem(ctx, item)
	if err != nil {
		return errors.Wrap(err, "failed to add inventory item")
	}
	if created != nil {
		log.Info().Str("item_id", created.ID.String()).Str("sku", created.SKU).
			Msg("Inventory item created")
	}
	return c.Load(ctx)
}

// UpdateItem updates an existing item and reloads the list
func (c *Controller) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	if err := c.guard.Begin(); err != nil {
		return err
	}
	defer c.guard.End()

	if err := c.client.UpdateInventoryItem(ctx, item); err != nil {
		return errors.Wrap(err, "failed to update inventory item")
	}
	return c.Load(ctx)
}

// DeleteItem removes an item and reloads the list
func (c *Controller) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := c.guard.Begin(); err != nil {
		return err
	}
	defer c.guard.End()

	if err := c.client.DeleteInventoryItem(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete inventory item")
	}
	return c.Load(ctx)
}

// Report builds the CSV export model from the cached list
func (c *Controller) Report() Report {
	c.mu.Lock()
	items := make([]models.InventoryItem, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	return BuildReport(c.warehouseName, items)
}
