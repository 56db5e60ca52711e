package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"elevatecharter/pricing"
	"elevatecharter/services"

	"github.com/gin-gonic/gin"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message             string              `json:"message"`
	ConversationHistory []services.ChatTurn `json:"conversation_history"`
}

type chatQuoteResponse struct {
	Reply               string          `json:"reply"`
	Itinerary           itineraryJSON   `json:"itinerary"`
	AircraftOptions     []optionJSON    `json:"aircraft_options"`
	RecommendedAircraft recommendedJSON `json:"recommended_aircraft"`
	Currency            string          `json:"currency"`
	TotalPriceUSD       float64         `json:"total_price_usd"`
}

type partialRequestJSON struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
}

type chatPartialResponse struct {
	Reply          string             `json:"reply"`
	MissingDetails []string           `json:"missing_details"`
	PartialRequest partialRequestJSON `json:"partial_request"`
}

const clarificationReply = "To quote your charter I need the origin, destination, departure date, and passenger count. " +
	`For example: "4 pax from JFK to LA next friday, return sunday".`

// Chat handles POST /chat: extraction via the external service when
// configured, with the heuristic parser as fallback. Extraction failure
// is an expected outcome and is never retried.
func (a *API) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if a.extractor.Available() {
		extracted, err := a.extractor.Extract(c.Request.Context(), message, req.ConversationHistory)
		if err != nil {
			log.Printf("⚠️  Extraction service failed: %v — falling back to heuristic parsing", err)
		} else if a.respondFromExtraction(c, extracted) {
			return
		}
	}

	a.respondFromHeuristics(c, message)
}

// respondFromExtraction turns a service extraction into a chat response.
// It returns false when the extraction is unusable (bad dates), in which
// case the caller falls through to the heuristic parser.
func (a *API) respondFromExtraction(c *gin.Context, extracted *services.ExtractedTrip) bool {
	if missing := extracted.MissingFields(); len(missing) > 0 {
		c.JSON(http.StatusOK, chatPartialResponse{
			Reply: fmt.Sprintf("I still need: %s.", strings.Join(missing, ", ")),
			MissingDetails: missing,
			PartialRequest: partialRequestJSON{
				Origin:        extracted.Origin,
				Destination:   extracted.Destination,
				DepartureDate: extracted.DepartureDate,
				ReturnDate:    extracted.ReturnDate,
				Passengers:    extracted.Passengers,
			},
		})
		return true
	}

	departure, err := time.Parse("2006-01-02", extracted.DepartureDate)
	if err != nil {
		log.Printf("⚠️  Extraction returned unparseable departure date %q", extracted.DepartureDate)
		return false
	}

	trip := pricing.TripRequest{
		Origin:        extracted.Origin,
		Destination:   extracted.Destination,
		DepartureDate: departure,
		Passengers:    extracted.Passengers,
	}
	if extracted.ReturnDate != "" {
		ret, err := time.Parse("2006-01-02", extracted.ReturnDate)
		if err != nil {
			log.Printf("⚠️  Extraction returned unparseable return date %q", extracted.ReturnDate)
			return false
		}
		trip.ReturnDate = &ret
	}

	a.respondWithQuote(c, trip)
	return true
}

// respondFromHeuristics runs the regex parser over the message.
func (a *API) respondFromHeuristics(c *gin.Context, message string) {
	parsed := a.parser.Parse(message)

	partial := partialRequestJSON{
		Origin:      parsed.Origin,
		Destination: parsed.Destination,
		Passengers:  parsed.Passengers,
	}
	if parsed.DepartureDate != nil {
		partial.DepartureDate = parsed.DepartureDate.Format("2006-01-02")
	}
	if parsed.ReturnDate != nil {
		partial.ReturnDate = parsed.ReturnDate.Format("2006-01-02")
	}

	var missing []string
	if parsed.Origin == "" {
		missing = append(missing, "origin")
	}
	if parsed.Destination == "" {
		missing = append(missing, "destination")
	}
	if parsed.DepartureDate == nil {
		missing = append(missing, "departure_date")
	}

	switch {
	case len(missing) == 3:
		// Nothing usable at all: prompt for the full set of details.
		c.JSON(http.StatusOK, chatPartialResponse{
			Reply:          clarificationReply,
			MissingDetails: []string{"origin", "destination", "departure_date", "passengers"},
			PartialRequest: partial,
		})
		return
	case len(missing) > 0:
		c.JSON(http.StatusOK, chatPartialResponse{
			Reply:          fmt.Sprintf("Missing: %s.", strings.Join(missing, ", ")),
			MissingDetails: missing,
			PartialRequest: partial,
		})
		return
	}

	a.respondWithQuote(c, pricing.TripRequest{
		Origin:        parsed.Origin,
		Destination:   parsed.Destination,
		DepartureDate: *parsed.DepartureDate,
		ReturnDate:    parsed.ReturnDate,
		Passengers:    parsed.Passengers,
	})
}

// respondWithQuote builds the quote and wraps it with a one-line reply.
// Build failures surface as conversational replies, not transport errors.
func (a *API) respondWithQuote(c *gin.Context, trip pricing.TripRequest) {
	quote, err := a.builder.Build(trip)
	if err != nil {
		var unknown *pricing.UnknownAirportError
		switch {
		case errors.As(err, &unknown):
			c.JSON(http.StatusOK, chatPartialResponse{
				Reply:          fmt.Sprintf("I couldn't find an airport matching %q. Which %s did you mean?", unknown.Token, unknown.Field),
				MissingDetails: []string{unknown.Field},
				PartialRequest: partialRequestJSON{
					Origin:      trip.Origin,
					Destination: trip.Destination,
					Passengers:  trip.Passengers,
				},
			})
		case errors.Is(err, pricing.ErrNoAircraft):
			c.JSON(http.StatusOK, gin.H{
				"reply": fmt.Sprintf("No aircraft in our fleet can seat %d passengers. Our largest aircraft seats %d.",
					trip.Passengers, a.aircraft.Recommend(trip.Passengers).Capacity),
				"error": err.Error(),
			})
		default:
			log.Printf("❌ Chat quote build failed: %v", err)
			c.JSON(http.StatusOK, gin.H{
				"reply": "Something went wrong while pricing that trip. Please try again.",
				"error": err.Error(),
			})
		}
		return
	}

	rec := quote.Recommended
	reply := fmt.Sprintf("Charter: %d pax on %s from %s to %s", trip.Passengers,
		rec.Aircraft.Type, rec.OutboundLeg.Origin, rec.OutboundLeg.Destination)
	if trip.IsRoundTrip() {
		reply += " with return"
	}
	reply += fmt.Sprintf(". Total: $%.0f USD.", round2(rec.TotalPriceUSD))

	payload := toQuoteJSON(quote)
	c.JSON(http.StatusOK, chatQuoteResponse{
		Reply:               reply,
		Itinerary:           payload.Itinerary,
		AircraftOptions:     payload.AircraftOptions,
		RecommendedAircraft: payload.RecommendedAircraft,
		Currency:            payload.Currency,
		TotalPriceUSD:       payload.TotalPriceUSD,
	})
}
