package services

import (
	"testing"
	"time"

	"elevatecharter/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-01 is a Tuesday.
var parserToday = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func testParser() *Parser {
	return NewParserAt(catalog.NewAirportCatalog(), func() time.Time { return parserToday })
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestParseFullRequest(t *testing.T) {
	p := testParser()

	trip := p.Parse("from JFK to LAX on 2026-09-15 for 4 people")

	assert.Equal(t, "JFK", trip.Origin)
	assert.Equal(t, "LAX", trip.Destination)
	require.NotNil(t, trip.DepartureDate)
	assert.Equal(t, mustDate(t, "2026-09-15"), *trip.DepartureDate)
	assert.Nil(t, trip.ReturnDate)
	assert.Equal(t, 4, trip.Passengers)
}

func TestParseRoutePatterns(t *testing.T) {
	p := testParser()

	tests := []struct {
		message string
		origin  string
		dest    string
	}{
		{"from new york to miami tomorrow", "JFK", "MIA"},
		{"miami to boston tomorrow", "MIA", "BOS"},
		{"nyc → vegas tomorrow", "JFK", "LAS"},
		{"fly 6 pax nyc to la next friday", "JFK", "LAX"},
		{"quote for 2 from boston to vegas tomorrow", "BOS", "LAS"},
	}
	for _, tt := range tests {
		trip := p.Parse(tt.message)
		assert.Equal(t, tt.origin, trip.Origin, "message %q", tt.message)
		assert.Equal(t, tt.dest, trip.Destination, "message %q", tt.message)
	}
}

func TestParseCityScanFallback(t *testing.T) {
	p := testParser()

	// No route phrase at all: the first two distinct city mentions win.
	trip := p.Parse("thinking about miami and maybe seattle, 3 pax, tomorrow")
	assert.Equal(t, "MIA", trip.Origin)
	assert.Equal(t, "SEA", trip.Destination)
}

func TestParseRouteMissing(t *testing.T) {
	p := testParser()

	trip := p.Parse("need a jet tomorrow for 3")
	assert.Empty(t, trip.Origin)
	assert.Empty(t, trip.Destination)
}

func TestParseRelativeDates(t *testing.T) {
	p := testParser()

	tests := []struct {
		message string
		want    string
	}{
		{"JFK to LAX today", "2026-09-01"},
		{"JFK to LAX tomorrow", "2026-09-02"},
		{"JFK to LAX in 10 days", "2026-09-11"},
		{"JFK to LAX this friday", "2026-09-04"},
		{"JFK to LAX friday", "2026-09-04"},
		{"JFK to LAX next friday", "2026-09-11"},
		{"JFK to LAX this weekend", "2026-09-05"},
		{"JFK to LAX next weekend", "2026-09-05"},
		{"JFK to LAX on 2026-12-24", "2026-12-24"},
	}
	for _, tt := range tests {
		trip := p.Parse(tt.message)
		require.NotNil(t, trip.DepartureDate, "message %q", tt.message)
		assert.Equal(t, mustDate(t, tt.want), *trip.DepartureDate, "message %q", tt.message)
	}
}

func TestParseDateMissing(t *testing.T) {
	p := testParser()

	trip := p.Parse("JFK to LAX for 4 people")
	assert.Nil(t, trip.DepartureDate)
}

func TestParsePassengers(t *testing.T) {
	p := testParser()

	tests := []struct {
		message string
		want    int
	}{
		{"JFK to LAX tomorrow for 4 people", 4},
		{"JFK to LAX tomorrow for 12", 12},
		{"JFK to LAX tomorrow, 6 pax", 6},
		{"JFK to LAX tomorrow, 2 passengers", 2},
		{"JFK to LAX tomorrow", 1}, // default
		// The departure year must not be read as a passenger count.
		{"JFK to LAX for 2026-09-15", 1},
	}
	for _, tt := range tests {
		trip := p.Parse(tt.message)
		assert.Equal(t, tt.want, trip.Passengers, "message %q", tt.message)
	}
}

func TestParseReturnDate(t *testing.T) {
	p := testParser()

	trip := p.Parse("JFK to LAX on 2026-09-15, return 2026-09-20")
	require.NotNil(t, trip.DepartureDate)
	require.NotNil(t, trip.ReturnDate)
	assert.Equal(t, mustDate(t, "2026-09-15"), *trip.DepartureDate)
	assert.Equal(t, mustDate(t, "2026-09-20"), *trip.ReturnDate)
}

func TestParseReturnRelativeToDeparture(t *testing.T) {
	p := testParser()

	// "sunday" resolves from the departure date, not from today, so the
	// return lands after the outbound leg.
	trip := p.Parse("nyc to la next friday, return sunday")
	require.NotNil(t, trip.DepartureDate)
	require.NotNil(t, trip.ReturnDate)
	assert.Equal(t, mustDate(t, "2026-09-11"), *trip.DepartureDate)
	assert.Equal(t, mustDate(t, "2026-09-13"), *trip.ReturnDate)
}

func TestParseReturnClauseDoesNotLeakIntoDeparture(t *testing.T) {
	p := testParser()

	trip := p.Parse("JFK to LAX friday, return 2026-09-20")
	require.NotNil(t, trip.DepartureDate)
	assert.Equal(t, mustDate(t, "2026-09-04"), *trip.DepartureDate)
	require.NotNil(t, trip.ReturnDate)
	assert.Equal(t, mustDate(t, "2026-09-20"), *trip.ReturnDate)
}

func TestParseRoundTrip(t *testing.T) {
	p := testParser()

	trip := p.Parse("JFK to miami this saturday round trip for 3")
	require.NotNil(t, trip.DepartureDate)
	assert.Equal(t, mustDate(t, "2026-09-05"), *trip.DepartureDate)
	require.NotNil(t, trip.ReturnDate)
	assert.Equal(t, *trip.DepartureDate, *trip.ReturnDate)
}

func TestParseNothingUseful(t *testing.T) {
	p := testParser()

	trip := p.Parse("hello there")
	assert.Empty(t, trip.Origin)
	assert.Empty(t, trip.Destination)
	assert.Nil(t, trip.DepartureDate)
	assert.Nil(t, trip.ReturnDate)
	assert.Equal(t, 1, trip.Passengers)
}
