package services

import (
	"bytes"
	"fmt"
	"time"

	"elevatecharter/pricing"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// QuoteDocument is everything needed to render a quote PDF.
type QuoteDocument struct {
	Reference   string
	GeneratedAt time.Time
	Quote       *pricing.Quote
}

// BuildQuotePDF renders a charter quote document and returns raw PDF
// bytes; nothing touches the filesystem.
func BuildQuotePDF(doc QuoteDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Watermark ────────────────────────────────────────────
	pdf.SetTextColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 55)
	pdf.TransformBegin()
	pdf.TransformRotate(42, 60, 200)
	pdf.Text(60, 200, "QUOTE")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Elevate Charter", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Private Charter Flight Quote", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4,
		"This quote is an estimate and NOT a booking confirmation. Pricing is valid on the generation date only and subject to aircraft availability.",
		"", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	q := doc.Quote
	rec := q.Recommended

	// ── Quote Details ────────────────────────────────────────
	sectionHeader("Quote Details")
	row("Reference", doc.Reference)
	row("Generated", doc.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Itinerary ────────────────────────────────────────────
	sectionHeader("Itinerary")
	route := fmt.Sprintf("%s → %s", rec.OutboundLeg.Origin, rec.OutboundLeg.Destination)
	if rec.ReturnLeg != nil {
		route = fmt.Sprintf("%s → %s → %s", rec.OutboundLeg.Origin, rec.OutboundLeg.Destination, rec.OutboundLeg.Origin)
	}
	row("Route", route)
	row("Departure", q.Request.DepartureDate.Format("02 Jan 2006 (Mon)"))
	if q.Request.ReturnDate != nil {
		row("Return", q.Request.ReturnDate.Format("02 Jan 2006 (Mon)"))
	}
	row("Passengers", fmt.Sprintf("%d", q.Request.Passengers))
	row("Leg distance", fmt.Sprintf("%.1f nm", rec.OutboundLeg.DistanceNM))
	pdf.Ln(4)

	// ── Recommended Aircraft ─────────────────────────────────
	sectionHeader("Recommended Aircraft")
	row("Type", rec.Aircraft.Type)
	row("Capacity", fmt.Sprintf("%d passengers", rec.Aircraft.Capacity))
	row("Range", fmt.Sprintf("%d nm", rec.Aircraft.RangeNM))
	row("Cruise speed", fmt.Sprintf("%d kts", rec.Aircraft.CruiseSpeed))
	row("Amenities", rec.Aircraft.Amenities)
	pdf.Ln(4)

	// ── Pricing ──────────────────────────────────────────────
	legSection := func(title string, leg pricing.FlightLeg) {
		sectionHeader(title)
		row("Billable distance", fmt.Sprintf("%.1f nm", leg.Pricing.BillableNM))
		row("Base rate", usd(leg.Pricing.BaseNMRate)+" / nm")
		row("Base cost", usd(leg.Pricing.BaseCost))
		row("Landing + segment fees", usd(leg.Pricing.LandingFee.Add(leg.Pricing.SegmentFee)))
		row("Lead time multiplier", leg.Pricing.LeadTimeMultiplier.StringFixed(2))
		row("Weekend multiplier", leg.Pricing.WeekendMultiplier.StringFixed(2))
		row("Subtotal", usd(leg.Pricing.Subtotal))
		row("Taxes (7.5%)", usd(leg.Pricing.Taxes))
		row("Leg total", usd(leg.Pricing.TotalUSD))
		pdf.Ln(4)
	}

	legSection(fmt.Sprintf("Outbound Leg  %s → %s", rec.OutboundLeg.Origin, rec.OutboundLeg.Destination), rec.OutboundLeg)
	if rec.ReturnLeg != nil {
		legSection(fmt.Sprintf("Return Leg  %s → %s", rec.ReturnLeg.Origin, rec.ReturnLeg.Destination), *rec.ReturnLeg)
	}

	// ── Total ────────────────────────────────────────────────
	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL (USD)", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, usd(rec.TotalPriceUSD), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Elevate Charter · Not a booking confirmation · Subject to availability",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
