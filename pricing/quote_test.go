package pricing

import (
	"testing"
	"time"

	"elevatecharter/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *QuoteBuilder {
	return NewQuoteBuilder(catalog.NewAirportCatalog(), catalog.NewAircraftCatalog(), testEngine())
}

func TestBuildOneWay(t *testing.T) {
	b := testBuilder()

	quote, err := b.Build(TripRequest{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		Passengers:    4,
	})
	require.NoError(t, err)

	// Capacity 4 admits the whole fleet; the smallest fitting aircraft is
	// the recommendation.
	require.Len(t, quote.Options, 5)
	assert.Equal(t, "Very Light Jet", quote.Recommended.Aircraft.Type)

	for _, opt := range quote.Options {
		assert.Equal(t, "JFK", opt.OutboundLeg.Origin)
		assert.Equal(t, "LAX", opt.OutboundLeg.Destination)
		assert.InDelta(t, 2146, opt.OutboundLeg.DistanceNM, 2)
		assert.Nil(t, opt.ReturnLeg)
		assert.True(t, opt.TotalPriceUSD.Equal(opt.OutboundLeg.Pricing.TotalUSD))
	}
}

func TestBuildSortedAscendingWithOneRecommendation(t *testing.T) {
	b := testBuilder()

	quote, err := b.Build(TripRequest{
		Origin:        "boston",
		Destination:   "vegas",
		DepartureDate: time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC),
		Passengers:    5,
	})
	require.NoError(t, err)
	require.Len(t, quote.Options, 4) // Very Light Jet (capacity 4) excluded

	recommended := 0
	for i, opt := range quote.Options {
		if opt.Recommended {
			recommended++
		}
		if i > 0 {
			assert.True(t, quote.Options[i-1].TotalPriceUSD.LessThanOrEqual(opt.TotalPriceUSD),
				"options must be sorted ascending by total price")
		}
	}
	assert.Equal(t, 1, recommended, "exactly one option carries the recommendation flag")
	assert.Equal(t, "Light Jet", quote.Recommended.Aircraft.Type)
	assert.True(t, quote.Recommended.Recommended)
}

func TestBuildRoundTrip(t *testing.T) {
	b := testBuilder()

	departure := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC) // Tuesday, 14 days out
	ret := time.Date(2026, time.September, 19, 0, 0, 0, 0, time.UTC)       // Saturday

	quote, err := b.Build(TripRequest{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: departure,
		ReturnDate:    &ret,
		Passengers:    4,
	})
	require.NoError(t, err)

	for _, opt := range quote.Options {
		require.NotNil(t, opt.ReturnLeg)

		// Reversed endpoints, same distance.
		assert.Equal(t, "LAX", opt.ReturnLeg.Origin)
		assert.Equal(t, "JFK", opt.ReturnLeg.Destination)
		assert.Equal(t, opt.OutboundLeg.DistanceNM, opt.ReturnLeg.DistanceNM)

		// Each leg carries its own date's multipliers.
		assert.Equal(t, "1.00", opt.OutboundLeg.Pricing.WeekendMultiplier.StringFixed(2))
		assert.Equal(t, "1.10", opt.ReturnLeg.Pricing.WeekendMultiplier.StringFixed(2))

		sum := opt.OutboundLeg.Pricing.TotalUSD.Add(opt.ReturnLeg.Pricing.TotalUSD)
		assert.True(t, opt.TotalPriceUSD.Equal(sum), "option total must be the sum of its legs")
	}
}

func TestBuildSameDayRoundTrip(t *testing.T) {
	b := testBuilder()

	departure := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	quote, err := b.Build(TripRequest{
		Origin:        "MIA",
		Destination:   "BOS",
		DepartureDate: departure,
		ReturnDate:    &departure,
		Passengers:    2,
	})
	require.NoError(t, err)

	opt := quote.Recommended
	require.NotNil(t, opt.ReturnLeg)
	assert.True(t, opt.OutboundLeg.Pricing.TotalUSD.Equal(opt.ReturnLeg.Pricing.TotalUSD))
}

func TestBuildUnknownAirports(t *testing.T) {
	b := testBuilder()
	departure := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	_, err := b.Build(TripRequest{Origin: "atlantis", Destination: "LAX", DepartureDate: departure, Passengers: 2})
	var unknown *UnknownAirportError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "origin", unknown.Field)
	assert.Equal(t, "atlantis", unknown.Token)

	_, err = b.Build(TripRequest{Origin: "JFK", Destination: "narnia", DepartureDate: departure, Passengers: 2})
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "destination", unknown.Field)
}

func TestBuildNoAircraftAvailable(t *testing.T) {
	b := testBuilder()

	// 20 passengers exceed even the Heavy Jet; the quote fails rather
	// than offering the largest-aircraft fallback.
	_, err := b.Build(TripRequest{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		Passengers:    20,
	})
	assert.ErrorIs(t, err, ErrNoAircraft)
}

func TestBuildResolvesAliases(t *testing.T) {
	b := testBuilder()

	quote, err := b.Build(TripRequest{
		Origin:        "nyc",
		Destination:   "la",
		DepartureDate: time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		Passengers:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "JFK", quote.Recommended.OutboundLeg.Origin)
	assert.Equal(t, "LAX", quote.Recommended.OutboundLeg.Destination)

	// The quote echoes the raw request tokens.
	assert.Equal(t, "nyc", quote.Request.Origin)
	assert.Equal(t, "la", quote.Request.Destination)
}
