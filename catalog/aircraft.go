package catalog

import "github.com/shopspring/decimal"

// Aircraft is a charter aircraft type with its specs and pricing rate.
type Aircraft struct {
	Type        string          `json:"type"`
	Capacity    int             `json:"capacity"`
	BaseNMRate  decimal.Decimal `json:"base_nm_rate"`
	RangeNM     int             `json:"range_nm"`
	CruiseSpeed int             `json:"cruise_speed"`
	Amenities   string          `json:"amenities"`
}

// CanAccommodate reports whether the aircraft fits the passenger count.
func (a Aircraft) CanAccommodate(passengers int) bool {
	return passengers <= a.Capacity
}

// AircraftCatalog holds the fleet, ordered ascending by capacity.
// Immutable after construction, safe for concurrent use.
type AircraftCatalog struct {
	aircraft []Aircraft
}

// NewAircraftCatalog builds the static fleet table.
func NewAircraftCatalog() *AircraftCatalog {
	rate := decimal.RequireFromString
	return &AircraftCatalog{
		aircraft: []Aircraft{
			{"Very Light Jet", 4, rate("9.0"), 1200, 400, "Basic comfort"},
			{"Light Jet", 7, rate("11.0"), 1500, 450, "Enhanced comfort"},
			{"Midsize Jet", 9, rate("13.5"), 2000, 500, "Premium comfort"},
			{"Super Midsize", 10, rate("15.0"), 2500, 550, "Luxury comfort"},
			{"Heavy Jet", 16, rate("18.0"), 3000, 600, "Ultra luxury"},
		},
	}
}

// All returns every aircraft in catalog order.
func (c *AircraftCatalog) All() []Aircraft {
	out := make([]Aircraft, len(c.aircraft))
	copy(out, c.aircraft)
	return out
}

// FilterByCapacity returns the aircraft that can seat the given passenger
// count, preserving catalog order (ascending capacity).
func (c *AircraftCatalog) FilterByCapacity(passengers int) []Aircraft {
	var out []Aircraft
	for _, a := range c.aircraft {
		if a.CanAccommodate(passengers) {
			out = append(out, a)
		}
	}
	return out
}

// Recommend returns the smallest aircraft that fits the passenger count.
// When nothing fits it falls back to the largest aircraft in the fleet.
func (c *AircraftCatalog) Recommend(passengers int) Aircraft {
	for _, a := range c.aircraft {
		if a.CanAccommodate(passengers) {
			return a
		}
	}
	return c.aircraft[len(c.aircraft)-1]
}

// Len reports the number of aircraft types in the catalog.
func (c *AircraftCatalog) Len() int {
	return len(c.aircraft)
}
