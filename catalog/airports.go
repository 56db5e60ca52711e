package catalog

import "strings"

// Airport is a serviced airport with its coordinates in degrees.
type Airport struct {
	Code      string  `json:"code"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AirportCatalog resolves free-form location tokens to airports. It is
// immutable after construction and safe for concurrent use.
type AirportCatalog struct {
	airports []Airport
	byCode   map[string]int
	byCity   map[string][]int // lowercase city → airport indices, insertion order
	aliases  map[string]string
}

// minSubstringLen is the shortest token that may trigger a partial
// city-name match. Anything shorter must match a code or alias exactly.
const minSubstringLen = 3

// NewAirportCatalog builds the static airport table.
func NewAirportCatalog() *AirportCatalog {
	c := &AirportCatalog{
		byCode: make(map[string]int),
		byCity: make(map[string][]int),
		aliases: map[string]string{
			"la":      "Los Angeles",
			"nyc":     "New York",
			"ny":      "New York",
			"vegas":   "Las Vegas",
			"sf":      "San Francisco",
			"miami":   "Miami",
			"chicago": "Chicago",
			"dallas":  "Dallas",
			"seattle": "Seattle",
			"boston":  "Boston",
		},
	}

	for _, a := range []Airport{
		{"JFK", "New York", 40.6413, -73.7781},
		{"EWR", "Newark", 40.6895, -74.1745},
		{"LGA", "New York", 40.7769, -73.8740},
		{"BOS", "Boston", 42.3656, -71.0096},
		{"MIA", "Miami", 25.7959, -80.2870},
		{"FLL", "Fort Lauderdale", 26.0726, -80.1527},
		{"LAX", "Los Angeles", 33.9416, -118.4085},
		{"SFO", "San Francisco", 37.6213, -122.3790},
		{"LAS", "Las Vegas", 36.0840, -115.1537},
		{"ORD", "Chicago", 41.9742, -87.9073},
		{"DFW", "Dallas", 32.8998, -97.0403},
		{"SEA", "Seattle", 47.4502, -122.3088},
	} {
		idx := len(c.airports)
		c.airports = append(c.airports, a)
		c.byCode[a.Code] = idx
		city := strings.ToLower(a.City)
		c.byCity[city] = append(c.byCity[city], idx)
	}

	return c
}

// Find resolves a token to an airport. Resolution order: exact code match,
// exact city or alias match, then substring match against city names for
// tokens of at least three characters. All matching is case-insensitive;
// partial matches return the first airport in insertion order.
func (c *AirportCatalog) Find(token string) (Airport, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Airport{}, false
	}

	if idx, ok := c.byCode[strings.ToUpper(token)]; ok {
		return c.airports[idx], true
	}

	lower := strings.ToLower(token)
	if city, ok := c.aliases[lower]; ok {
		lower = strings.ToLower(city)
	}
	if idxs, ok := c.byCity[lower]; ok {
		return c.airports[idxs[0]], true
	}

	if len(lower) >= minSubstringLen {
		for _, a := range c.airports {
			if strings.Contains(strings.ToLower(a.City), lower) {
				return a, true
			}
		}
	}

	return Airport{}, false
}

// All returns every airport in insertion order.
func (c *AirportCatalog) All() []Airport {
	out := make([]Airport, len(c.airports))
	copy(out, c.airports)
	return out
}

// ByCity returns every airport serving the given city, resolving aliases.
func (c *AirportCatalog) ByCity(city string) []Airport {
	lower := strings.ToLower(strings.TrimSpace(city))
	if resolved, ok := c.aliases[lower]; ok {
		lower = strings.ToLower(resolved)
	}
	var out []Airport
	for _, idx := range c.byCity[lower] {
		out = append(out, c.airports[idx])
	}
	return out
}

// Len reports the number of airports in the catalog.
func (c *AirportCatalog) Len() int {
	return len(c.airports)
}
