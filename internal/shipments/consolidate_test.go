package shipments

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/depot/services/warehouse/internal/models"
)

func draft(destination string) models.ShipmentOrder {
	return models.ShipmentOrder{
		ID:          uuid.New(),
		Status:      models.ShipmentStatusDraft,
		Destination: destination,
	}
}

func TestBuildConsolidationIgnoresDestinations(t *testing.T) {
	primary := draft("MIDC Industrial Area, Pune")
	b := draft("Andheri East, Mumbai")
	c := draft("Sector 18, Gurugram")

	// Selecting only B must yield [primary, B] regardless of where B and C go
	ids, err := BuildConsolidation(primary, []models.ShipmentOrder{b})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{primary.ID, b.ID}, ids)
	require.NotContains(t, ids, c.ID)
}

func TestBuildConsolidationDeduplicates(t *testing.T) {
	primary := draft("MIDC Industrial Area, Pune")
	b := draft("Andheri East, Mumbai")

	ids, err := BuildConsolidation(primary, []models.ShipmentOrder{b, b, primary})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{primary.ID, b.ID}, ids)
}

func TestBuildConsolidationRequiresOthers(t *testing.T) {
	primary := draft("MIDC Industrial Area, Pune")

	_, err := BuildConsolidation(primary, nil)
	require.ErrorIs(t, err, ErrNoOtherShipments)

	// Selecting only the primary itself is still an empty selection
	_, err = BuildConsolidation(primary, []models.ShipmentOrder{primary})
	require.ErrorIs(t, err, ErrNoOtherShipments)
}

func TestBuildConsolidationRequiresDrafts(t *testing.T) {
	primary := draft("MIDC Industrial Area, Pune")
	configured := draft("Andheri East, Mumbai")
	configured.Status = models.ShipmentStatusConfigured

	_, err := BuildConsolidation(primary, []models.ShipmentOrder{configured})
	require.ErrorIs(t, err, ErrNotDraftShipment)

	primary.Status = models.ShipmentStatusDispatched
	_, err = BuildConsolidation(primary, nil)
	require.ErrorIs(t, err, ErrNotDraftShipment)
}

func TestConsolidationCandidatesExcludesOnlyPrimary(t *testing.T) {
	primary := draft("MIDC Industrial Area, Pune")
	b := draft("Andheri East, Mumbai")
	c := draft("Sector 18, Gurugram")
	configured := draft("Some Other Place, Indore")
	configured.Status = models.ShipmentStatusConfigured

	candidates := ConsolidationCandidates(primary, []models.ShipmentOrder{primary, b, c, configured})
	require.Len(t, candidates, 2)
	require.Equal(t, b.ID, candidates[0].ID)
	require.Equal(t, c.ID, candidates[1].ID)
}
