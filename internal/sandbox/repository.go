package sandbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

// Repository errors
var (
	ErrNotFound              = errors.New("record not found")
	ErrNotDraft              = errors.New("shipment is not a draft")
	ErrNotConfigured         = errors.New("shipment is not configured")
	ErrConsolidationTooSmall = errors.New("consolidation requires at least two shipments")
)

// Repository defines the persistence operations of the sandbox backend
type Repository interface {
	ListActiveWarehouses(ctx context.Context) ([]models.Warehouse, error)
	ListInventory(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id uuid.UUID) error

	ListShipmentsByStatus(ctx context.Context, statuses ...models.ShipmentStatus) ([]models.ShipmentOrder, error)
	FindShipment(ctx context.Context, id uuid.UUID) (*models.ShipmentOrder, error)
	SoftDeleteDraft(ctx context.Context, id uuid.UUID) error
	HardDeleteShipment(ctx context.Context, id uuid.UUID) error
	Consolidate(ctx context.Context, ids []uuid.UUID, userName string) (*models.ShipmentOrder, error)
	ConfigureShipment(ctx context.Context, id uuid.UUID, req backend.ConfigureShipmentRequest) (*models.ShipmentOrder, error)
	MarkQRGenerated(ctx context.Context, id uuid.UUID) (*models.ShipmentOrder, error)

	ListCartons(ctx context.Context, shipmentID uuid.UUID) ([]models.Carton, error)
	ListCartonItems(ctx context.Context, barcode string) ([]models.CartonItem, error)
	DispatchSlipData(ctx context.Context, id uuid.UUID) (*backend.DispatchSlipData, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a sandbox repository backed by GORM
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ListActiveWarehouses returns warehouses that are active
func (r *gormRepository) ListActiveWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&warehouses).Error
	return warehouses, err
}

// ListInventory returns the active items of a warehouse, bounded by limit
func (r *gormRepository) ListInventory(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.InventoryItem, error) {
	if limit <= 0 {
		limit = 1000
	}
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND is_active = ?", warehouseID, true).
		Order("name").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// CreateInventoryItem creates an item, assigning an ID when absent
func (r *gormRepository) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.IsActive = true
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateInventoryItem saves item fields over the stored record
func (r *gormRepository) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	var existing models.InventoryItem
	err := r.db.WithContext(ctx).First(&existing, "id = ?", item.ID).Error
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"name":        item.Name,
		"sku":         item.SKU,
		"barcode":     item.Barcode,
		"description": item.Description,
		"category":    item.Category,
		"quantity":    item.Quantity,
		"min_stock":   item.MinStock,
		"unit_price":  item.UnitPrice,
		"location":    item.Location,
	}).Error
}

// DeleteInventoryItem soft-deletes an item
func (r *gormRepository) DeleteInventoryItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InventoryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListShipmentsByStatus returns shipments in any of the given statuses
func (r *gormRepository) ListShipmentsByStatus(ctx context.Context, statuses ...models.ShipmentStatus) ([]models.ShipmentOrder, error) {
	var shipments []models.ShipmentOrder
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at").
		Find(&shipments).Error
	return shipments, err
}

// FindShipment returns a shipment by ID
func (r *gormRepository) FindShipment(ctx context.Context, id uuid.UUID) (*models.ShipmentOrder, error) {
	var shipment models.ShipmentOrder
	err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// SoftDeleteDraft soft-deletes a draft shipment. Non-drafts are rejected.
func (r *gormRepository) SoftDeleteDraft(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shipment models.ShipmentOrder
		if err := tx.First(&shipment, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if shipment.Status != models.ShipmentStatusDraft {
			return ErrNotDraft
		}
		if err := tx.Model(&shipment).Update("status", models.ShipmentStatusDeleted).Error; err != nil {
			return err
		}
		return tx.Delete(&shipment).Error
	})
}

// HardDeleteShipment irreversibly removes a shipment with its cartons and
// carton items
func (r *gormRepository) HardDeleteShipment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shipment models.ShipmentOrder
		if err := tx.First(&shipment, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}

		var barcodes []string
		if err := tx.Model(&models.Carton{}).
			Where("shipment_order_id = ?", id).
			Pluck("barcode", &barcodes).Error; err != nil {
			return err
		}
		if len(barcodes) > 0 {
			if err := tx.Where("carton_barcode IN ?", barcodes).Delete(&models.CartonItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("shipment_order_id = ?", id).Delete(&models.Carton{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&shipment).Error
	})
}

// nextShipmentCode allocates the next sequential shipment code
func nextShipmentCode(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Unscoped().Model(&models.ShipmentOrder{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("SHP-%06d", count+1), nil
}

// Consolidate merges draft shipments into one multi-customer shipment. The
// merge is transactional: either every source is absorbed or nothing changes.
func (r *gormRepository) Consolidate(ctx context.Context, ids []uuid.UUID, userName string) (*models.ShipmentOrder, error) {
	if len(ids) < 2 {
		return nil, ErrConsolidationTooSmall
	}

	var merged *models.ShipmentOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.ShipmentOrder
		if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != len(ids) {
			return ErrNotFound
		}

		// Re-order to the submitted list: the first id is the primary the
		// merged order inherits its customer and destination from.
		byID := make(map[uuid.UUID]models.ShipmentOrder, len(rows))
		for _, row := range rows {
			byID[row.ID] = row
		}
		sources := make([]models.ShipmentOrder, 0, len(ids))
		for _, id := range ids {
			source, ok := byID[id]
			if !ok {
				return ErrNotFound
			}
			if source.Status != models.ShipmentStatusDraft {
				return ErrNotDraft
			}
			sources = append(sources, source)
		}

		code, err := nextShipmentCode(tx)
		if err != nil {
			return err
		}

		primary := sources[0]
		totalCartons := 0
		for _, source := range sources {
			totalCartons += source.TotalCartons
		}

		merged = &models.ShipmentOrder{
			ID:           uuid.New(),
			ShipmentCode: code,
			CustomerName: fmt.Sprintf("%s +%d", primary.CustomerName, len(sources)-1),
			Destination:  primary.Destination,
			TotalCartons: totalCartons,
			OrderType:    models.OrderTypeMulti,
			Status:       models.ShipmentStatusDraft,
		}
		if err := tx.Create(merged).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Carton{}).
			Where("shipment_order_id IN ?", ids).
			Update("shipment_order_id", merged.ID).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.ShipmentOrder{}).Error
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// ConfigureShipment applies the delivery configuration to a draft and moves
// it to configured. Exactly one details variant is stored.
func (r *gormRepository) ConfigureShipment(ctx context.Context, id uuid.UUID, req backend.ConfigureShipmentRequest) (*models.ShipmentOrder, error) {
	var configured *models.ShipmentOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shipment models.ShipmentOrder
		if err := tx.First(&shipment, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if shipment.Status != models.ShipmentStatusDraft {
			return ErrNotDraft
		}

		shipmentType := req.Type
		shipment.ShipmentType = &shipmentType
		shipment.Destination = req.Destination
		shipment.SpecialInstructions = req.SpecialInstructions
		shipment.TruckDetails = nil
		shipment.CourierDetails = nil
		shipment.InPersonDetails = nil
		shipment.LoadingStrategy = ""

		switch req.Type {
		case models.ShipmentTypeTruck:
			shipment.TruckDetails = req.TruckDetails
			shipment.LoadingStrategy = req.LoadingStrategy
		case models.ShipmentTypeCourier:
			shipment.CourierDetails = req.CourierDetails
		case models.ShipmentTypeInPerson:
			shipment.InPersonDetails = req.InPersonDetails
		}

		shipment.Status = models.ShipmentStatusConfigured
		if err := tx.Save(&shipment).Error; err != nil {
			return err
		}
		configured = &shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configured, nil
}

// MarkQRGenerated flags a configured shipment as having its QR stored
func (r *gormRepository) MarkQRGenerated(ctx context.Context, id uuid.UUID) (*models.ShipmentOrder, error) {
	var shipment models.ShipmentOrder
	err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if shipment.Status != models.ShipmentStatusConfigured {
		return nil, ErrNotConfigured
	}
	if err := r.db.WithContext(ctx).Model(&shipment).Update("qr_generated", true).Error; err != nil {
		return nil, err
	}
	shipment.QRGenerated = true
	return &shipment, nil
}

// ListCartons returns the cartons of a shipment
func (r *gormRepository) ListCartons(ctx context.Context, shipmentID uuid.UUID) ([]models.Carton, error) {
	var cartons []models.Carton
	err := r.db.WithContext(ctx).
		Where("shipment_order_id = ?", shipmentID).
		Order("barcode").
		Find(&cartons).Error
	return cartons, err
}

// ListCartonItems returns the item lines of a carton
func (r *gormRepository) ListCartonItems(ctx context.Context, barcode string) ([]models.CartonItem, error) {
	var items []models.CartonItem
	err := r.db.WithContext(ctx).
		Where("carton_barcode = ?", barcode).
		Order("id").
		Find(&items).Error
	return items, err
}

// DispatchSlipData returns the shipment with its cartons and items preloaded
func (r *gormRepository) DispatchSlipData(ctx context.Context, id uuid.UUID) (*backend.DispatchSlipData, error) {
	shipment, err := r.FindShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	var cartons []models.Carton
	err = r.db.WithContext(ctx).
		Preload("Items").
		Where("shipment_order_id = ?", id).
		Order("barcode").
		Find(&cartons).Error
	if err != nil {
		return nil, err
	}
	return &backend.DispatchSlipData{Order: *shipment, Cartons: cartons}, nil
}
