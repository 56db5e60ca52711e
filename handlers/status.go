package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status handles GET /status.
func (a *API) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":                       "ok",
		"extraction_service_available": a.extractor.Available(),
		"extraction_model":             a.extractor.Model(),
		"airports_count":               a.airports.Len(),
		"aircraft_types":               a.aircraft.Len(),
	})
}

// Airports handles GET /airports: the full catalog for form frontends.
func (a *API) Airports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"airports": a.airports.All()})
}

// Aircraft handles GET /aircraft: the fleet listing.
func (a *API) Aircraft(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"aircraft": toAircraftJSON(a.aircraft.All())})
}
