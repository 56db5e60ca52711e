package handlers

import (
	"elevatecharter/catalog"
	"elevatecharter/pricing"
	"elevatecharter/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// API holds the handlers' dependencies: catalogs, quote builder, and the
// chat extraction pipeline. Everything is wired explicitly in main.
type API struct {
	airports  *catalog.AirportCatalog
	aircraft  *catalog.AircraftCatalog
	builder   *pricing.QuoteBuilder
	extractor *services.Extractor
	parser    *services.Parser
}

// New wires an API from its dependencies.
func New(airports *catalog.AirportCatalog, aircraft *catalog.AircraftCatalog,
	builder *pricing.QuoteBuilder, extractor *services.Extractor, parser *services.Parser) *API {
	return &API{
		airports:  airports,
		aircraft:  aircraft,
		builder:   builder,
		extractor: extractor,
		parser:    parser,
	}
}

// RequestID tags every response with an X-Request-ID header, generating
// one when the client did not send its own.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Register attaches all routes to the engine.
func (a *API) Register(r *gin.Engine) {
	r.POST("/quote", a.Quote)
	r.POST("/quote/pdf", a.QuotePDF)
	r.POST("/chat", a.Chat)
	r.GET("/status", a.Status)
	r.GET("/airports", a.Airports)
	r.GET("/aircraft", a.Aircraft)
}
