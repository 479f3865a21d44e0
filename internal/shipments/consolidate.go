package shipments

import (
	"errors"

	"github.com/google/uuid"

	"example.com/depot/services/warehouse/internal/models"
)

// Consolidation errors
var (
	ErrNoPrimary        = errors.New("consolidation requires a primary draft shipment")
	ErrNoOtherShipments = errors.New("consolidation requires at least one other draft shipment")
	ErrNotDraftShipment = errors.New("only draft shipments can be consolidated")
)

// ConsolidationCandidates returns the drafts selectable alongside a primary.
// The primary itself is the only exclusion; destinations are deliberately not
// compared, so drafts bound for different routes can still be merged.
func ConsolidationCandidates(primary models.ShipmentOrder, drafts []models.ShipmentOrder) []models.ShipmentOrder {
	candidates := make([]models.ShipmentOrder, 0, len(drafts))
	for _, draft := range drafts {
		if draft.ID == primary.ID {
			continue
		}
		if draft.Status != models.ShipmentStatusDraft {
			continue
		}
		candidates = append(candidates, draft)
	}
	return candidates
}

// BuildConsolidation validates a selection and produces the merged id list:
// the primary first, then the selected drafts in selection order, duplicates
// removed. The submitted merge is all-or-nothing at the backend.
func BuildConsolidation(primary models.ShipmentOrder, selected []models.ShipmentOrder) ([]uuid.UUID, error) {
	if primary.ID == uuid.Nil {
		return nil, ErrNoPrimary
	}
	if primary.Status != models.ShipmentStatusDraft {
		return nil, ErrNotDraftShipment
	}

	ids := []uuid.UUID{primary.ID}
	seen := map[uuid.UUID]bool{primary.ID: true}
	for _, order := range selected {
		if seen[order.ID] {
			continue
		}
		if order.Status != models.ShipmentStatusDraft {
			return nil, ErrNotDraftShipment
		}
		seen[order.ID] = true
		ids = append(ids, order.ID)
	}

	if len(ids) < 2 {
		return nil, ErrNoOtherShipments
	}
	return ids, nil
}
