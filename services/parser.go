package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"elevatecharter/catalog"
)

// ParsedTrip is the best-effort result of heuristic message parsing.
// Origin and Destination are resolved airport codes; empty fields were not
// found in the message.
type ParsedTrip struct {
	Origin        string
	Destination   string
	DepartureDate *time.Time
	ReturnDate    *time.Time
	Passengers    int
}

// Parser extracts trip requests from free text with an ordered cascade of
// regular expressions. It is the fallback when the external extraction
// service is unavailable; precedence is fixed and documented on each
// matcher list. The clock is injected so relative dates ("tomorrow",
// "next friday") resolve deterministically under test.
type Parser struct {
	airports *catalog.AirportCatalog
	now      func() time.Time
}

// NewParser builds a parser over the airport catalog using the system
// clock.
func NewParser(airports *catalog.AirportCatalog) *Parser {
	return NewParserAt(airports, time.Now)
}

// NewParserAt builds a parser with an explicit clock.
func NewParserAt(airports *catalog.AirportCatalog, now func() time.Time) *Parser {
	return &Parser{airports: airports, now: now}
}

// Route patterns, tried in order. Captured tokens are resolved against the
// airport catalog; a pattern only wins if both endpoints resolve.
var routePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfrom\s+([a-z ]+?)\s+to\s+([a-z ]+)`),
	regexp.MustCompile(`(?i)([a-z ]+?)\s+to\s+([a-z ]+)`),
	regexp.MustCompile(`(?i)([a-z ]+?)\s*→\s*([a-z ]+)`),
}

var (
	isoDatePattern    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	inDaysPattern     = regexp.MustCompile(`(?i)\bin\s+(\d{1,3})\s+days?\b`)
	weekdayPattern    = regexp.MustCompile(`(?i)\b(?:(next|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	nextWeekendPhrase = regexp.MustCompile(`(?i)\bnext\s+weekend\b`)
	thisWeekendPhrase = regexp.MustCompile(`(?i)\b(?:this\s+)?weekend\b`)
	todayPattern      = regexp.MustCompile(`(?i)\b(today|tomorrow)\b`)

	returnClausePattern = regexp.MustCompile(`(?i)\b(?:return(?:ing)?|back)\s+(?:on\s+)?([^,.]+)`)
	roundTripPattern    = regexp.MustCompile(`(?i)\bround\s*trip\b`)

	paxForPattern  = regexp.MustCompile(`(?i)\bfor\s+(\d{1,2})(?:\s*(?:pax|people|passengers))?\s*(?:[^\d-]|$)`)
	paxUnitPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:pax|people|passengers)\b`)
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Parse runs the full cascade: route, then departure date (with any return
// clause masked out first), then passenger count, then return date.
func (p *Parser) Parse(message string) ParsedTrip {
	trip := ParsedTrip{Passengers: 1}

	trip.Origin, trip.Destination = p.extractRoute(message)

	// The return clause is cut out before departure parsing so "leave
	// friday, return 2026-09-20" doesn't read the return date as the
	// departure.
	departureText := message
	if loc := returnClausePattern.FindStringIndex(message); loc != nil {
		departureText = message[:loc[0]] + message[loc[1]:]
	}
	trip.DepartureDate = p.parseDateText(departureText)

	if n := p.extractPassengers(message); n > 0 {
		trip.Passengers = n
	}

	if trip.DepartureDate != nil {
		trip.ReturnDate = p.extractReturnDate(message, *trip.DepartureDate)
	}

	return trip
}

func (p *Parser) extractRoute(message string) (origin, destination string) {
	for _, pattern := range routePatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		o, okO := p.resolveToken(m[1])
		d, okD := p.resolveToken(m[2])
		if okO && okD {
			return o.Code, d.Code
		}
	}

	// Last resort: scan for any mention of a known code or city, first two
	// distinct cities win.
	lower := strings.ToLower(message)
	var found []catalog.Airport
	seenCity := map[string]bool{}
	for _, a := range p.airports.All() {
		city := strings.ToLower(a.City)
		if seenCity[city] {
			continue
		}
		if strings.Contains(lower, strings.ToLower(a.Code)) || strings.Contains(lower, city) {
			found = append(found, a)
			seenCity[city] = true
		}
	}
	if len(found) >= 2 {
		return found[0].Code, found[1].Code
	}

	return "", ""
}

// resolveToken tries the token against the catalog, then progressively
// narrower word ranges, so captures like "miami on" or "fly new york"
// still resolve.
func (p *Parser) resolveToken(token string) (catalog.Airport, bool) {
	words := strings.Fields(strings.TrimSpace(token))
	for start := 0; start < len(words); start++ {
		for end := len(words); end > start; end-- {
			if a, ok := p.airports.Find(strings.Join(words[start:end], " ")); ok {
				return a, true
			}
		}
	}
	return catalog.Airport{}, false
}

// parseDateText finds the first date expression in the text, resolving
// relative phrases against today.
func (p *Parser) parseDateText(text string) *time.Time {
	return parseDateFrom(text, p.today())
}

// parseDateFrom finds the first date expression in the text relative to a
// base date. Precedence: explicit YYYY-MM-DD, today/tomorrow, "in N days",
// next weekend, this weekend/weekend, then weekday names (optionally
// qualified with this/next).
func parseDateFrom(text string, base time.Time) *time.Time {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			return &t
		}
	}

	if m := todayPattern.FindStringSubmatch(text); m != nil {
		d := base
		if strings.EqualFold(m[1], "tomorrow") {
			d = base.AddDate(0, 0, 1)
		}
		return &d
	}

	if m := inDaysPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		d := base.AddDate(0, 0, n)
		return &d
	}

	if nextWeekendPhrase.MatchString(text) {
		d := base.AddDate(0, 0, daysUntilSaturday(base, true))
		return &d
	}
	if thisWeekendPhrase.MatchString(text) {
		d := base.AddDate(0, 0, daysUntilSaturday(base, false))
		return &d
	}

	if m := weekdayPattern.FindStringSubmatch(text); m != nil {
		wd := weekdayNames[strings.ToLower(m[2])]
		days := (int(wd) - int(base.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		if strings.EqualFold(m[1], "next") {
			days += 7
		}
		d := base.AddDate(0, 0, days)
		return &d
	}

	return nil
}

// daysUntilSaturday mirrors the weekend phrases: "this weekend" is the
// coming Saturday (today, if already Saturday); "next weekend" always
// moves forward at least a day.
func daysUntilSaturday(today time.Time, forward bool) int {
	days := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	if days == 0 && forward {
		days = 7
	}
	return days
}

// extractReturnDate looks for a return clause. Relative phrases in it
// resolve against the departure date, so "depart friday, return sunday"
// lands the return after the outbound leg. "round trip" without an
// explicit date books the return on the departure day.
func (p *Parser) extractReturnDate(message string, departure time.Time) *time.Time {
	if m := returnClausePattern.FindStringSubmatch(message); m != nil {
		if d := parseDateFrom(m[1], departure); d != nil {
			return d
		}
	}
	if roundTripPattern.MatchString(message) {
		d := departure
		return &d
	}
	return nil
}

// extractPassengers returns the stated passenger count, or 0 when the
// message does not mention one. "for N [pax]" wins over a bare "N pax".
func (p *Parser) extractPassengers(message string) int {
	for _, pattern := range []*regexp.Regexp{paxForPattern, paxUnitPattern} {
		if m := pattern.FindStringSubmatch(message); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

func (p *Parser) today() time.Time {
	t := p.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
