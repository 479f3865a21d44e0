// Package slips generates the printable shipment documents: packing slip,
// dispatch slip and loading slip. Each generator fetches normalized rows from
// the backend, aggregates duplicate product lines, and lays out a paginated
// document that branches by shipment type and by single- vs multi-customer
// mode.
package slips

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"example.com/depot/services/warehouse/internal/backend"
	"example.com/depot/services/warehouse/internal/models"
)

// SlipKind selects the document variant
type SlipKind string

// Document kinds
const (
	KindPacking  SlipKind = "packing"
	KindDispatch SlipKind = "dispatch"
	KindLoading  SlipKind = "loading"
)

// Table and truncation limits. Address text beyond the limit is ellipsized in
// multi-customer tables; product tables are capped with a "+N more" line.
const (
	maxAddressLen = 40
	maxRowsSingle = 12
	maxRowsMulti  = 10
	ellipsis      = "..."
)

// Line is one aggregated product row
type Line struct {
	SKU          string
	ProductName  string
	CustomerName string
	Quantity     int
}

// CustomerSection is the per-customer block of a slip. Single-customer slips
// have exactly one section.
type CustomerSection struct {
	CustomerName string
	Address      string
	Lines        []Line
	MoreLines    int
	CartonCount  int
}

// Document is the assembled slip, ready for rendering
type Document struct {
	Kind         SlipKind
	Order        models.ShipmentOrder
	GeneratedAt  time.Time
	Sections     []CustomerSection
	CartonQRs    []CartonQR
	TotalCartons int
}

// Generator assembles slip documents from backend data
type Generator struct {
	client backend.Client
}

// NewGenerator creates a slip generator
func NewGenerator(client backend.Client) *Generator {
	return &Generator{client: client}
}

// AggregateLines merges duplicate product lines across cartons, keyed by
// (sku, product name, customer name), summing quantities. Line order follows
// first appearance.
func AggregateLines(cartons []models.Carton) []Line {
	type key struct {
		sku      string
		product  string
		customer string
	}

	index := make(map[key]int)
	lines := make([]Line, 0)
	for _, carton := range cartons {
		for _, item := range carton.Items {
			k := key{sku: item.SKU, product: item.ProductName, customer: carton.CustomerName}
			if i, ok := index[k]; ok {
				lines[i].Quantity += item.Quantity
				continue
			}
			index[k] = len(lines)
			lines = append(lines, Line{
				SKU:          item.SKU,
				ProductName:  item.ProductName,
				CustomerName: carton.CustomerName,
				Quantity:     item.Quantity,
			})
		}
	}
	return lines
}

// TruncateAddress ellipsizes address text beyond the multi-customer table cap.
// Counts runes so locale text is never cut mid-character.
func TruncateAddress(address string) string {
	runes := []rune(address)
	if len(runes) <= maxAddressLen {
		return address
	}
	return string(runes[:maxAddressLen-len([]rune(ellipsis))]) + ellipsis
}

// CapLines limits a product table to max rows and reports the overflow count
func CapLines(lines []Line, max int) ([]Line, int) {
	if len(lines) <= max {
		return lines, 0
	}
	return lines[:max], len(lines) - max
}

// fetchCartonsWithItems loads the shipment cartons and then, sequentially,
// the item lines of each carton.
func (g *Generator) fetchCartonsWithItems(ctx context.Context, order models.ShipmentOrder) ([]models.Carton, error) {
	cartons, err := g.client.GetShipmentCartons(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch shipment cartons")
	}

	for i := range cartons {
		if len(cartons[i].Items) > 0 {
			continue
		}
		items, err := g.client.GetCartonItems(ctx, cartons[i].Barcode)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch items for carton %s", cartons[i].Barcode)
		}
		cartons[i].Items = items
	}
	return cartons, nil
}

// assemble builds the document sections from an order and its cartons
func assemble(kind SlipKind, order models.ShipmentOrder, cartons []models.Carton) *Document {
	doc := &Document{
		Kind:         kind,
		Order:        order,
		GeneratedAt:  time.Now(),
		TotalCartons: len(cartons),
	}

	for _, carton := range cartons {
		doc.CartonQRs = append(doc.CartonQRs, BuildCartonQR(order, carton))
	}

	lines := AggregateLines(cartons)

	if order.OrderType == models.OrderTypeMulti {
		doc.Sections = multiCustomerSections(order, cartons, lines)
	} else {
		capped, more := CapLines(lines, maxRowsSingle)
		doc.Sections = []CustomerSection{{
			CustomerName: order.CustomerName,
			Address:      order.Destination,
			Lines:        capped,
			MoreLines:    more,
			CartonCount:  len(cartons),
		}}
	}
	return doc
}

// multiCustomerSections groups lines and cartons per customer, in order of
// first carton appearance
func multiCustomerSections(order models.ShipmentOrder, cartons []models.Carton, lines []Line) []CustomerSection {
	sections := make([]CustomerSection, 0)
	index := make(map[string]int)

	for _, carton := range cartons {
		i, ok := index[carton.CustomerName]
		if !ok {
			i = len(sections)
			index[carton.CustomerName] = i
			sections = append(sections, CustomerSection{
				CustomerName: carton.CustomerName,
				Address:      TruncateAddress(order.Destination),
			})
		}
		sections[i].CartonCount++
	}

	for _, line := range lines {
		if i, ok := index[line.CustomerName]; ok {
			sections[i].Lines = append(sections[i].Lines, line)
		}
	}

	for i := range sections {
		sections[i].Lines, sections[i].MoreLines = CapLines(sections[i].Lines, maxRowsMulti)
	}
	return sections
}

// PackingSlip assembles the packing slip of a shipment order
func (g *Generator) PackingSlip(ctx context.Context, order models.ShipmentOrder) (*Document, error) {
	cartons, err := g.fetchCartonsWithItems(ctx, order)
	if err != nil {
		return nil, err
	}
	return assemble(KindPacking, order, cartons), nil
}

// LoadingSlip assembles the loading slip of a configured shipment
func (g *Generator) LoadingSlip(ctx context.Context, order models.ShipmentOrder) (*Document, error) {
	cartons, err := g.fetchCartonsWithItems(ctx, order)
	if err != nil {
		return nil, err
	}
	return assemble(KindLoading, order, cartons), nil
}

// DispatchSlip assembles the dispatch slip from the backend's joined slip
// rows
func (g *Generator) DispatchSlip(ctx context.Context, order models.ShipmentOrder) (*Document, error) {
	data, err := g.client.GetDispatchSlipData(ctx, order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch dispatch slip data")
	}
	if data == nil {
		return nil, errors.New("backend returned no dispatch slip data")
	}
	return assemble(KindDispatch, data.Order, data.Cartons), nil
}
