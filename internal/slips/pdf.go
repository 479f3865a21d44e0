package slips

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"example.com/depot/services/warehouse/internal/models"
)

// Page metrics in millimetres
const (
	pageMargin  = 12.0
	qrCellSize  = 28.0
	tableRowH   = 7.0
	sectionGapH = 6.0
)

var slipTitles = map[SlipKind]string{
	KindPacking:  "PACKING SLIP",
	KindDispatch: "DISPATCH SLIP",
	KindLoading:  "LOADING SLIP",
}

// RenderPDF lays out the document as an A4 PDF and returns the bytes
func RenderPDF(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil slip document")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	renderHeader(pdf, doc)
	renderShipmentDetails(pdf, doc)

	for i, section := range doc.Sections {
		if i > 0 {
			pdf.Ln(sectionGapH)
		}
		renderSection(pdf, doc, section)
	}

	if doc.Kind == KindPacking {
		renderCartonQRs(pdf, doc)
	}
	renderSignatureBlock(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render slip pdf")
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *gofpdf.Fpdf, doc *Document) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, slipTitles[doc.Kind], "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Shipment %s  |  Generated %s",
		doc.Order.ShipmentCode, doc.GeneratedAt.Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.Line(pageMargin, pdf.GetY(), 210-pageMargin, pdf.GetY())
	pdf.Ln(3)
}

// renderShipmentDetails prints the type-specific detail block: truck, courier
// or in-person pickup
func renderShipmentDetails(pdf *gofpdf.Fpdf, doc *Document) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Shipment Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	order := doc.Order
	if order.ShipmentType != nil {
		row("Mode", string(*order.ShipmentType))
	}
	row("Destination", order.Destination)

	switch {
	case order.TruckDetails != nil:
		row("Truck Number", order.TruckDetails.TruckNumber)
		row("Driver", order.TruckDetails.DriverName)
		row("Driver Phone", order.TruckDetails.DriverPhone)
		if doc.Kind == KindLoading && order.LoadingStrategy != "" {
			row("Loading Strategy", string(order.LoadingStrategy))
		}
	case order.CourierDetails != nil:
		row("Courier", order.CourierDetails.CourierName)
		row("AWB Number", order.CourierDetails.AWBNumber)
		row("Contact", order.CourierDetails.Phone)
	case order.InPersonDetails != nil:
		row("Picked Up By", order.InPersonDetails.PersonName)
		row("Contact", order.InPersonDetails.Phone)
		row("ID Proof", order.InPersonDetails.IDProofNumber)
	}

	if order.SpecialInstructions != "" {
		row("Instructions", order.SpecialInstructions)
	}
	row("Cartons", fmt.Sprintf("%d", doc.TotalCartons))
	pdf.Ln(3)
}

func renderSection(pdf *gofpdf.Fpdf, doc *Document, section CustomerSection) {
	multi := doc.Order.OrderType == models.OrderTypeMulti

	pdf.SetFont("Helvetica", "B", 11)
	title := section.CustomerName
	if title == "" {
		title = "Consignment"
	}
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if section.Address != "" {
		pdf.CellFormat(0, 5, section.Address, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("%d carton(s)", section.CartonCount), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	// Table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	if multi {
		pdf.CellFormat(40, tableRowH, "SKU", "1", 0, "L", true, 0, "")
		pdf.CellFormat(96, tableRowH, "Product", "1", 0, "L", true, 0, "")
	} else {
		pdf.CellFormat(45, tableRowH, "SKU", "1", 0, "L", true, 0, "")
		pdf.CellFormat(101, tableRowH, "Product", "1", 0, "L", true, 0, "")
	}
	pdf.CellFormat(30, tableRowH, "Qty", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range section.Lines {
		if multi {
			pdf.CellFormat(40, tableRowH, line.SKU, "1", 0, "L", false, 0, "")
			pdf.CellFormat(96, tableRowH, line.ProductName, "1", 0, "L", false, 0, "")
		} else {
			pdf.CellFormat(45, tableRowH, line.SKU, "1", 0, "L", false, 0, "")
			pdf.CellFormat(101, tableRowH, line.ProductName, "1", 0, "L", false, 0, "")
		}
		pdf.CellFormat(30, tableRowH, fmt.Sprintf("%d", line.Quantity), "1", 1, "R", false, 0, "")
	}

	if section.MoreLines > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, tableRowH, fmt.Sprintf("+%d more", section.MoreLines), "", 1, "L", false, 0, "")
	}
}

// renderCartonQRs prints one scannable code per carton on the packing slip
func renderCartonQRs(pdf *gofpdf.Fpdf, doc *Document) {
	if len(doc.CartonQRs) == 0 {
		return
	}

	pdf.Ln(sectionGapH)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Carton Labels", "", 1, "L", false, 0, "")

	x := pageMargin
	for _, qr := range doc.CartonQRs {
		png, err := qr.Encode()
		if err != nil {
			continue
		}
		if x+qrCellSize > 210-pageMargin {
			x = pageMargin
			pdf.Ln(qrCellSize + 8)
		}
		name := "qr-" + qr.CartonID
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(name, x, pdf.GetY(), qrCellSize, qrCellSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(x, pdf.GetY()+qrCellSize+4, qr.CartonID)
		x += qrCellSize + 10
	}
	pdf.Ln(qrCellSize + 10)
}

func renderSignatureBlock(pdf *gofpdf.Fpdf, doc *Document) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)

	left := "Prepared By"
	right := "Received By"
	if doc.Kind == KindLoading {
		left = "Loaded By"
		right = "Driver Signature"
	}

	y := pdf.GetY() + 12
	pdf.Line(pageMargin, y, pageMargin+60, y)
	pdf.Line(210-pageMargin-60, y, 210-pageMargin, y)
	pdf.SetY(y + 1)
	pdf.CellFormat(60, 5, left, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, right, "", 1, "R", false, 0, "")
}
