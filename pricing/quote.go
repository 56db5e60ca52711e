package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"elevatecharter/catalog"

	"github.com/shopspring/decimal"
)

// ErrNoAircraft means no aircraft in the fleet can seat the requested
// passenger count.
var ErrNoAircraft = errors.New("no aircraft can accommodate the requested passenger count")

// UnknownAirportError reports a trip endpoint that resolved to no airport.
type UnknownAirportError struct {
	Field string // "origin" or "destination"
	Token string
}

func (e *UnknownAirportError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Token)
}

// TripRequest is a structured charter request. Origin and Destination are
// raw tokens resolved against the airport catalog at build time.
type TripRequest struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Passengers    int
}

// IsRoundTrip reports whether a return leg was requested.
func (r TripRequest) IsRoundTrip() bool {
	return r.ReturnDate != nil
}

// FlightLeg is one directional segment with its priced breakdown.
type FlightLeg struct {
	Origin      string
	Destination string
	DistanceNM  float64
	Pricing     Breakdown
}

// AircraftOption is one aircraft's priced offer for the whole trip.
type AircraftOption struct {
	Aircraft      catalog.Aircraft
	TotalPriceUSD decimal.Decimal
	OutboundLeg   FlightLeg
	ReturnLeg     *FlightLeg
	Recommended   bool
}

// Quote is the full priced response for a trip request: every eligible
// aircraft option sorted ascending by total price, plus the recommendation.
type Quote struct {
	Request     TripRequest
	Options     []AircraftOption
	Recommended AircraftOption
}

// QuoteBuilder assembles quotes from the immutable catalogs and the
// pricing engine. Stateless; safe for concurrent use.
type QuoteBuilder struct {
	airports *catalog.AirportCatalog
	aircraft *catalog.AircraftCatalog
	engine   *Engine
}

// NewQuoteBuilder wires a builder from its dependencies.
func NewQuoteBuilder(airports *catalog.AirportCatalog, aircraft *catalog.AircraftCatalog, engine *Engine) *QuoteBuilder {
	return &QuoteBuilder{airports: airports, aircraft: aircraft, engine: engine}
}

// Build resolves the trip endpoints, prices every eligible aircraft, and
// returns the sorted quote. It fails with *UnknownAirportError when an
// endpoint cannot be resolved and ErrNoAircraft when the passenger count
// exceeds every aircraft's capacity.
func (b *QuoteBuilder) Build(req TripRequest) (*Quote, error) {
	origin, ok := b.airports.Find(req.Origin)
	if !ok {
		return nil, &UnknownAirportError{Field: "origin", Token: req.Origin}
	}
	destination, ok := b.airports.Find(req.Destination)
	if !ok {
		return nil, &UnknownAirportError{Field: "destination", Token: req.Destination}
	}

	// Same endpoints reversed, so one distance serves both legs.
	distanceNM := b.engine.Distance(origin, destination)

	eligible := b.aircraft.FilterByCapacity(req.Passengers)
	if len(eligible) == 0 {
		return nil, ErrNoAircraft
	}
	recommended := b.aircraft.Recommend(req.Passengers)

	options := make([]AircraftOption, 0, len(eligible))
	for _, ac := range eligible {
		outbound := FlightLeg{
			Origin:      origin.Code,
			Destination: destination.Code,
			DistanceNM:  distanceNM,
			Pricing:     b.engine.PriceLeg(distanceNM, ac, req.DepartureDate),
		}

		total := outbound.Pricing.TotalUSD

		var returnLeg *FlightLeg
		if req.ReturnDate != nil {
			leg := FlightLeg{
				Origin:      destination.Code,
				Destination: origin.Code,
				DistanceNM:  distanceNM,
				Pricing:     b.engine.PriceLeg(distanceNM, ac, *req.ReturnDate),
			}
			returnLeg = &leg
			total = total.Add(leg.Pricing.TotalUSD)
		}

		options = append(options, AircraftOption{
			Aircraft:      ac,
			TotalPriceUSD: total,
			OutboundLeg:   outbound,
			ReturnLeg:     returnLeg,
			Recommended:   ac.Type == recommended.Type,
		})
	}

	// Stable, so price ties keep catalog order.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].TotalPriceUSD.LessThan(options[j].TotalPriceUSD)
	})

	best := options[0]
	for _, opt := range options {
		if opt.Recommended {
			best = opt
			break
		}
	}

	return &Quote{Request: req, Options: options, Recommended: best}, nil
}
