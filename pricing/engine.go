package pricing

import (
	"math"
	"time"

	"elevatecharter/catalog"

	"github.com/shopspring/decimal"
)

// EarthRadiusNM is the mean earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// MinBillableNM is the pricing floor: legs shorter than this are billed as
// if they flew this distance.
const MinBillableNM = 250.0

var (
	taxRate    = decimal.RequireFromString("0.075")
	landingFee = decimal.RequireFromString("600")
	segmentFee = decimal.RequireFromString("350")

	multShortLead = decimal.RequireFromString("1.30")
	multMidLead   = decimal.RequireFromString("1.15")
	multWeekend   = decimal.RequireFromString("1.10")
	multNone      = decimal.RequireFromString("1.00")
)

// Breakdown is the priced cost structure of a single flight leg. Monetary
// fields are exact decimals; rounding happens only at presentation.
type Breakdown struct {
	BillableNM         float64
	BaseNMRate         decimal.Decimal
	BaseCost           decimal.Decimal
	LandingFee         decimal.Decimal
	SegmentFee         decimal.Decimal
	LeadTimeMultiplier decimal.Decimal
	WeekendMultiplier  decimal.Decimal
	Subtotal           decimal.Decimal
	Taxes              decimal.Decimal
	TotalUSD           decimal.Decimal
}

// Engine prices individual flight legs. The clock is injected so that
// lead-time buckets are deterministic under test.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine pricing against the system clock.
func NewEngine() *Engine {
	return NewEngineAt(time.Now)
}

// NewEngineAt returns an engine whose "today" comes from the given clock.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Distance computes the great-circle distance between two airports in
// nautical miles using the haversine formula.
func (e *Engine) Distance(a, b catalog.Airport) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Floating-point overshoot past 1 would make Asin return NaN for
	// antipodal or coincident points.
	c := 2 * math.Asin(math.Min(1, math.Sqrt(h)))

	return EarthRadiusNM * c
}

// LeadTimeMultiplier returns the urgency surcharge for a departure date
// relative to a reference date. Three days out or less books at 1.30,
// seven days or less at 1.15, anything further at 1.00. Boundary days fall
// in the lower bucket; past dates price like short-notice bookings.
func (e *Engine) LeadTimeMultiplier(departure, reference time.Time) decimal.Decimal {
	days := int(dateOnly(departure).Sub(dateOnly(reference)).Hours() / 24)
	switch {
	case days <= 3:
		return multShortLead
	case days <= 7:
		return multMidLead
	default:
		return multNone
	}
}

// WeekendMultiplier returns 1.10 for Saturday or Sunday departures and
// 1.00 otherwise.
func (e *Engine) WeekendMultiplier(date time.Time) decimal.Decimal {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return multWeekend
	default:
		return multNone
	}
}

// PriceLeg prices a single leg of the given distance on the given aircraft.
// The billable distance is floored at MinBillableNM and converted through
// its shortest decimal representation before multiplying, so repeated
// quotes for the same input never drift.
func (e *Engine) PriceLeg(distanceNM float64, aircraft catalog.Aircraft, departure time.Time) Breakdown {
	billable := math.Max(distanceNM, MinBillableNM)
	baseCost := aircraft.BaseNMRate.Mul(decimal.NewFromFloat(billable))

	leadMult := e.LeadTimeMultiplier(departure, e.now())
	weekendMult := e.WeekendMultiplier(departure)

	subtotal := baseCost.Add(landingFee).Add(segmentFee).Mul(leadMult).Mul(weekendMult)
	taxes := subtotal.Mul(taxRate)

	return Breakdown{
		BillableNM:         billable,
		BaseNMRate:         aircraft.BaseNMRate,
		BaseCost:           baseCost,
		LandingFee:         landingFee,
		SegmentFee:         segmentFee,
		LeadTimeMultiplier: leadMult,
		WeekendMultiplier:  weekendMult,
		Subtotal:           subtotal,
		Taxes:              taxes,
		TotalUSD:           subtotal.Add(taxes),
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
