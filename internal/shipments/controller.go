package shipments

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
	"example.com/depot/services/warehouse/internal/screen"
)

// Controller orchestrates the shipment screens: the draft list awaiting
// configuration and the pending list of configured and dispatched orders.
type Controller struct {
	client   backend.Client
	userName string

	mu      sync.Mutex
	drafts  []models.ShipmentOrder
	pending []models.ShipmentOrder

	guard   screen.Guard
	tracker *screen.ErrorTracker
	refresh singleflight.Group
}

// NewController creates a shipment controller acting as the given user
func NewController(client backend.Client, userName string) *Controller {
	return &Controller{
		client:   client,
		userName: userName,
		tracker:  screen.NewErrorTracker(screen.DefaultFailureThreshold),
	}
}

// LoadDrafts refreshes the cached draft list
func (c *Controller) LoadDrafts(ctx context.Context) error {
	_, err, _ := c.refresh.Do("drafts", func() (interface{}, error) {
		drafts, err := c.client.GetDraftShipments(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.drafts = drafts
		c.mu.Unlock()
		return nil, nil
	})
	return c.trackLoad(err, "failed to load draft shipments")
}

// LoadPending refreshes the cached pending list
func (c *Controller) LoadPending(ctx context.Context) error {
	_, err, _ := c.refresh.Do("pending", func() (interface{}, error) {
		pending, err := c.client.GetPendingShipments(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.pending = pending
		c.mu.Unlock()
		return nil, nil
	})
	return c.trackLoad(err, "failed to load pending shipments")
}

// trackLoad feeds the consecutive-failure tracker and escalates when needed
func (c *Controller) trackLoad(err error, msg string) error {
	if err != nil {
		if c.tracker.Failure() {
			log.Error().Err(err).Msg("Shipment list load failed repeatedly")
			return screen.ErrRecoveryNeeded
		}
		return errors.Wrap(err, msg)
	}
	c.tracker.Success()
	return nil
}

// Drafts returns the cached draft shipments
func (c *Controller) Drafts() []models.ShipmentOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ShipmentOrder, len(c.drafts))
	copy(out, c.drafts)
	return out
}

// Pending returns the cached configured and dispatched shipments
func (c *Controller) Pending() []models.ShipmentOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ShipmentOrder, len(c.pending))
	copy(out, c.pending)
	return out
}

// Draft returns a cached draft by id
func (c *Controller) Draft(id uuid.UUID) (models.ShipmentOrder, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, order := range c.drafts {
		if order.ID == id {
			return order, true
		}
	}
	return models.ShipmentOrder{}, false
}

// Configure validates and submits the delivery-method configuration of a
// draft shipment, then triggers QR generation. A failed submission leaves the
// order in draft; a failed QR generation is reported but the configuration
// stands.
func (c *Controller) Configure(ctx context.Context, id uuid.UUID, req backend.ConfigureShipmentRequest) (*models.ShipmentOrder, error) {
	if err := c.guard.Begin(); err != nil {
		return nil, err
	}
	defer c.guard.End()

	if err := ValidateConfiguration(req); err != nil {
		return nil, err
	}
	req = NormalizeConfiguration(req)

	order, err := c.client.ConfigureShipment(ctx, id, req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to configure shipment")
	}

	if _, err := c.client.GenerateShipmentQR(ctx, id); err != nil {
		return order, errors.Wrap(err, "shipment configured but QR generation failed")
	}

	log.Info().Str("shipment_id", id.String()).Str("type", string(req.Type)).
		Msg("Shipment configured")
	return order, nil
}

// StartLoading checks the dispatch preconditions and produces the snapshot
// handed to the loading collaborator
func (c *Controller) StartLoading(ctx context.Context, order models.ShipmentOrder) (*LoadingSnapshot, error) {
	if !CanTransition(order.Status, models.ShipmentStatusDispatched) {
		return nil, ErrInvalidTransition
	}

	cartons, err := c.client.GetShipmentCartons(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch cartons for loading")
	}

	snapshot, err := BuildLoadingSnapshot(order, cartons)
	if err != nil {
		return nil, err
	}

	log.Info().Str("shipment_id", order.ID.String()).Int("cartons", snapshot.CartonCount).
		Msg("Loading started")
	return snapshot, nil
}

// DeleteDraft removes a draft shipment
func (c *Controller) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if err := c.guard.Begin(); err != nil {
		return err
	}
	defer c.guard.End()

	order, ok := c.Draft(id)
	if ok && order.Status != models.ShipmentStatusDraft {
		return ErrNotDraft
	}

	if err := c.client.DeleteDraftShipment(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete draft shipment")
	}
	return nil
}

// DeletionSummary is shown to the user before a permanent delete is confirmed
type DeletionSummary struct {
	ShipmentCode string
	CustomerName string
	Destination  string
	Status       models.ShipmentStatus
	CartonCount  int
}

// PermanentDeletionSummary assembles the full record summary required before
// an irreversible delete
func (c *Controller) PermanentDeletionSummary(ctx context.Context, order models.ShipmentOrder) (*DeletionSummary, error) {
	cartons, err := c.client.GetShipmentCartons(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch cartons for deletion summary")
	}
	return &DeletionSummary{
		ShipmentCode: order.ShipmentCode,
		CustomerName: order.CustomerName,
		Destination:  order.Destination,
		Status:       order.Status,
		CartonCount:  len(cartons),
	}, nil
}

// DeletePermanently irreversibly removes a configured or dispatched shipment.
// Callers must have confirmed against the deletion summary first.
func (c *Controller) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	if err := c.guard.Begin(); err != nil {
		return err
	}
	defer c.guard.End()

	if err := c.client.DeleteShipmentPermanently(ctx, id); err != nil {
		return errors.Wrap(err, "failed to permanently delete shipment")
	}

	log.Warn().Str("shipment_id", id.String()).Msg("Shipment permanently deleted")
	return nil
}

// Consolidate merges a primary draft with the selected drafts into one
// multi-customer shipment
func (c *Controller) Consolidate(ctx context.Context, primary models.ShipmentOrder, selected []models.ShipmentOrder) (*models.ShipmentOrder, error) {
	if err := c.guard.Begin(); err != nil {
		return nil, err
	}
	defer c.guard.End()

	ids, err := BuildConsolidation(primary, selected)
	if err != nil {
		return nil, err
	}

	merged, err := c.client.CreateMultiCustomerShipment(ctx, ids, c.userName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create multi-customer shipment")
	}

	log.Info().Int("merged", len(ids)).Str("user", c.userName).
		Msg("Draft shipments consolidated")
	return merged, nil
}
