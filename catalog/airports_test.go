package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByCode(t *testing.T) {
	c := NewAirportCatalog()

	for _, token := range []string{"JFK", "jfk", " Jfk "} {
		a, ok := c.Find(token)
		require.True(t, ok, "token %q should resolve", token)
		assert.Equal(t, "JFK", a.Code)
		assert.Equal(t, "New York", a.City)
	}
}

func TestFindByCityAndAlias(t *testing.T) {
	c := NewAirportCatalog()

	tests := []struct {
		token string
		code  string
	}{
		{"Boston", "BOS"},
		{"boston", "BOS"},
		{"la", "LAX"},
		{"nyc", "JFK"}, // first New York airport in insertion order
		{"ny", "JFK"},
		{"vegas", "LAS"},
		{"sf", "SFO"},
		{"New York", "JFK"},
		{"fort lauderdale", "FLL"},
	}
	for _, tt := range tests {
		a, ok := c.Find(tt.token)
		require.True(t, ok, "token %q should resolve", tt.token)
		assert.Equal(t, tt.code, a.Code, "token %q", tt.token)
	}
}

func TestFindBySubstring(t *testing.T) {
	c := NewAirportCatalog()

	a, ok := c.Find("ange")
	require.True(t, ok)
	assert.Equal(t, "LAX", a.Code)

	// "new" matches both New York and Newark; New York was inserted first.
	a, ok = c.Find("new")
	require.True(t, ok)
	assert.Equal(t, "JFK", a.Code)
}

func TestFindSubstringFloor(t *testing.T) {
	c := NewAirportCatalog()

	// Two characters never trigger substring matching; "bo" is not an
	// alias even though it is a prefix of Boston.
	_, ok := c.Find("bo")
	assert.False(t, ok)

	// "la" is two characters but resolves as an exact alias.
	a, ok := c.Find("la")
	require.True(t, ok)
	assert.Equal(t, "LAX", a.Code)
}

func TestFindNoMatch(t *testing.T) {
	c := NewAirportCatalog()

	for _, token := range []string{"", "  ", "XYZ", "atlantis", "zz"} {
		_, ok := c.Find(token)
		assert.False(t, ok, "token %q should not resolve", token)
	}
}

func TestAllInsertionOrder(t *testing.T) {
	c := NewAirportCatalog()

	all := c.All()
	require.Len(t, all, 12)
	assert.Equal(t, "JFK", all[0].Code)
	assert.Equal(t, "SEA", all[len(all)-1].Code)
	assert.Equal(t, 12, c.Len())

	// The returned slice is a copy; mutating it must not affect the catalog.
	all[0].Code = "ZZZ"
	assert.Equal(t, "JFK", c.All()[0].Code)
}

func TestByCity(t *testing.T) {
	c := NewAirportCatalog()

	ny := c.ByCity("New York")
	require.Len(t, ny, 2)
	assert.Equal(t, "JFK", ny[0].Code)
	assert.Equal(t, "LGA", ny[1].Code)

	// Alias resolution applies here too.
	assert.Len(t, c.ByCity("nyc"), 2)

	assert.Empty(t, c.ByCity("nowhere"))
}
