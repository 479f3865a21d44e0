package slips

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"example.com/depot/services/warehouse/internal/models"
)

// qrImageSize is the rendered QR side length in pixels
const qrImageSize = 256

// CartonQR is the payload printed as a QR code next to each carton row. The
// JSON keys are kept short so the code stays scannable at label size.
type CartonQR struct {
	OrderID      string         `json:"o"`
	ShipmentCode string         `json:"sc"`
	CartonID     string         `json:"c"`
	Items        []CartonQRItem `json:"i"`
	WeightKg     float64        `json:"w"`
	PackedBy     string         `json:"p"`
	Date         string         `json:"d"`
}

// CartonQRItem is one item line inside a carton QR payload
type CartonQRItem struct {
	SKU      string `json:"s"`
	Quantity int    `json:"q"`
}

// BuildCartonQR builds the QR payload for a packed carton
func BuildCartonQR(order models.ShipmentOrder, carton models.Carton) CartonQR {
	payload := CartonQR{
		OrderID:      order.ID.String(),
		ShipmentCode: order.ShipmentCode,
		CartonID:     carton.Barcode,
		WeightKg:     carton.WeightKg,
		PackedBy:     carton.PackedBy,
		Date:         time.Now().Format("2006-01-02"),
	}
	for _, item := range carton.Items {
		payload.Items = append(payload.Items, CartonQRItem{SKU: item.SKU, Quantity: item.Quantity})
	}
	return payload
}

// Encode renders the payload as a PNG QR image
func (q CartonQR) Encode() ([]byte, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal carton qr payload")
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode qr for carton %s", q.CartonID)
	}
	return png, nil
}
