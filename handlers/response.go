package handlers

import (
	"math"

	"elevatecharter/catalog"
	"elevatecharter/pricing"

	"github.com/shopspring/decimal"
)

// Wire DTOs for the quote payload. Entities never serialize themselves;
// each response type has exactly one mapping function here, and monetary
// rounding happens only in this layer.

type feesJSON struct {
	LandingFee float64 `json:"landing_fee"`
	SegmentFee float64 `json:"segment_fee"`
}

type multipliersJSON struct {
	LeadTime float64 `json:"lead_time"`
	Weekend  float64 `json:"weekend"`
}

type breakdownJSON struct {
	BillableNM  float64         `json:"billable_nm"`
	BaseNMRate  float64         `json:"base_nm_rate"`
	BaseCost    float64         `json:"base_cost"`
	Fees        feesJSON        `json:"fees"`
	Multipliers multipliersJSON `json:"multipliers"`
	Subtotal    float64         `json:"subtotal"`
	Taxes       float64         `json:"taxes"`
	TotalUSD    float64         `json:"total_usd"`
}

type legJSON struct {
	From       string        `json:"from"`
	To         string        `json:"to"`
	DistanceNM float64       `json:"distance_nm"`
	Pricing    breakdownJSON `json:"pricing"`
}

type optionJSON struct {
	AircraftType  string   `json:"aircraft_type"`
	Capacity      int      `json:"capacity"`
	BaseNMRate    float64  `json:"base_nm_rate"`
	RangeNM       int      `json:"range_nm"`
	CruiseSpeed   int      `json:"cruise_speed"`
	Amenities     string   `json:"amenities"`
	TotalPriceUSD float64  `json:"total_price_usd"`
	OutboundLeg   legJSON  `json:"outbound_leg"`
	ReturnLeg     *legJSON `json:"return_leg"`
	Recommended   bool     `json:"recommended"`
}

type recommendedJSON struct {
	Type          string  `json:"type"`
	Capacity      int     `json:"capacity"`
	TotalPriceUSD float64 `json:"total_price_usd"`
	BaseNMRate    float64 `json:"base_nm_rate"`
	RangeNM       int     `json:"range_nm"`
	CruiseSpeed   int     `json:"cruise_speed"`
	Amenities     string  `json:"amenities"`
}

type itineraryJSON struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	Passengers    int     `json:"passengers"`
	DistanceNM    float64 `json:"distance_nm"`
}

type quoteJSON struct {
	Itinerary           itineraryJSON   `json:"itinerary"`
	AircraftOptions     []optionJSON    `json:"aircraft_options"`
	RecommendedAircraft recommendedJSON `json:"recommended_aircraft"`
	Currency            string          `json:"currency"`
	TotalPriceUSD       float64         `json:"total_price_usd"`
}

type aircraftJSON struct {
	Type        string  `json:"type"`
	Capacity    int     `json:"capacity"`
	BaseNMRate  float64 `json:"base_nm_rate"`
	RangeNM     int     `json:"range_nm"`
	CruiseSpeed int     `json:"cruise_speed"`
	Amenities   string  `json:"amenities"`
}

func toQuoteJSON(q *pricing.Quote) quoteJSON {
	options := make([]optionJSON, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, toOptionJSON(opt))
	}

	var returnDate *string
	if q.Request.ReturnDate != nil {
		s := q.Request.ReturnDate.Format("2006-01-02")
		returnDate = &s
	}

	rec := q.Recommended
	return quoteJSON{
		Itinerary: itineraryJSON{
			Origin:        q.Request.Origin,
			Destination:   q.Request.Destination,
			DepartureDate: q.Request.DepartureDate.Format("2006-01-02"),
			ReturnDate:    returnDate,
			Passengers:    q.Request.Passengers,
			DistanceNM:    round1(rec.OutboundLeg.DistanceNM),
		},
		AircraftOptions: options,
		RecommendedAircraft: recommendedJSON{
			Type:          rec.Aircraft.Type,
			Capacity:      rec.Aircraft.Capacity,
			TotalPriceUSD: round2(rec.TotalPriceUSD),
			BaseNMRate:    decToFloat(rec.Aircraft.BaseNMRate),
			RangeNM:       rec.Aircraft.RangeNM,
			CruiseSpeed:   rec.Aircraft.CruiseSpeed,
			Amenities:     rec.Aircraft.Amenities,
		},
		Currency:      "USD",
		TotalPriceUSD: round2(rec.TotalPriceUSD),
	}
}

func toOptionJSON(opt pricing.AircraftOption) optionJSON {
	out := optionJSON{
		AircraftType:  opt.Aircraft.Type,
		Capacity:      opt.Aircraft.Capacity,
		BaseNMRate:    decToFloat(opt.Aircraft.BaseNMRate),
		RangeNM:       opt.Aircraft.RangeNM,
		CruiseSpeed:   opt.Aircraft.CruiseSpeed,
		Amenities:     opt.Aircraft.Amenities,
		TotalPriceUSD: round2(opt.TotalPriceUSD),
		OutboundLeg:   toLegJSON(opt.OutboundLeg),
		Recommended:   opt.Recommended,
	}
	if opt.ReturnLeg != nil {
		leg := toLegJSON(*opt.ReturnLeg)
		out.ReturnLeg = &leg
	}
	return out
}

func toLegJSON(leg pricing.FlightLeg) legJSON {
	return legJSON{
		From:       leg.Origin,
		To:         leg.Destination,
		DistanceNM: round1(leg.DistanceNM),
		Pricing: breakdownJSON{
			BillableNM: round1(leg.Pricing.BillableNM),
			BaseNMRate: decToFloat(leg.Pricing.BaseNMRate),
			BaseCost:   round2(leg.Pricing.BaseCost),
			Fees: feesJSON{
				LandingFee: decToFloat(leg.Pricing.LandingFee),
				SegmentFee: decToFloat(leg.Pricing.SegmentFee),
			},
			Multipliers: multipliersJSON{
				LeadTime: round2(leg.Pricing.LeadTimeMultiplier),
				Weekend:  round2(leg.Pricing.WeekendMultiplier),
			},
			Subtotal: round2(leg.Pricing.Subtotal),
			Taxes:    round2(leg.Pricing.Taxes),
			TotalUSD: round2(leg.Pricing.TotalUSD),
		},
	}
}

func toAircraftJSON(fleet []catalog.Aircraft) []aircraftJSON {
	out := make([]aircraftJSON, 0, len(fleet))
	for _, a := range fleet {
		out = append(out, aircraftJSON{
			Type:        a.Type,
			Capacity:    a.Capacity,
			BaseNMRate:  decToFloat(a.BaseNMRate),
			RangeNM:     a.RangeNM,
			CruiseSpeed: a.CruiseSpeed,
			Amenities:   a.Amenities,
		})
	}
	return out
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
