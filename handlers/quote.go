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
	"github.com/google/uuid"
)

// QuoteRequest is the body of POST /quote and POST /quote/pdf.
type QuoteRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
}

// toTripRequest validates field by field so errors name the offending
// field, and rejects a return date earlier than the departure.
func (r QuoteRequest) toTripRequest() (pricing.TripRequest, error) {
	origin := strings.TrimSpace(r.Origin)
	if origin == "" {
		return pricing.TripRequest{}, errors.New("origin is required")
	}
	destination := strings.TrimSpace(r.Destination)
	if destination == "" {
		return pricing.TripRequest{}, errors.New("destination is required")
	}

	if r.DepartureDate == "" {
		return pricing.TripRequest{}, errors.New("departure_date is required")
	}
	departure, err := time.Parse("2006-01-02", r.DepartureDate)
	if err != nil {
		return pricing.TripRequest{}, errors.New("invalid departure_date, use YYYY-MM-DD")
	}

	var returnDate *time.Time
	if r.ReturnDate != "" {
		ret, err := time.Parse("2006-01-02", r.ReturnDate)
		if err != nil {
			return pricing.TripRequest{}, errors.New("invalid return_date, use YYYY-MM-DD")
		}
		if ret.Before(departure) {
			return pricing.TripRequest{}, errors.New("return_date must not be before departure_date")
		}
		returnDate = &ret
	}

	if r.Passengers < 1 {
		return pricing.TripRequest{}, errors.New("passengers must be at least 1")
	}

	return pricing.TripRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Passengers:    r.Passengers,
	}, nil
}

// Quote handles POST /quote.
func (a *API) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := req.toTripRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := a.builder.Build(trip)
	if err != nil {
		a.writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteJSON(quote))
}

// QuotePDF handles POST /quote/pdf: same body as /quote, responds with a
// rendered quote document.
func (a *API) QuotePDF(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := req.toTripRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := a.builder.Build(trip)
	if err != nil {
		a.writeQuoteError(c, err)
		return
	}

	pdfBytes, err := services.BuildQuotePDF(services.QuoteDocument{
		Reference:   uuid.New().String(),
		GeneratedAt: time.Now(),
		Quote:       quote,
	})
	if err != nil {
		log.Printf("❌ Quote PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=elevate-charter-quote.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (a *API) writeQuoteError(c *gin.Context, err error) {
	var unknown *pricing.UnknownAirportError
	switch {
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("invalid %s: no airport matches %q", unknown.Field, unknown.Token),
		})
	case errors.Is(err, pricing.ErrNoAircraft):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ Quote build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build quote"})
	}
}
