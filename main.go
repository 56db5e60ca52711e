package main

import (
	"log"
	"os"
	"strings"
	"time"

	"elevatecharter/catalog"
	"elevatecharter/handlers"
	"elevatecharter/pricing"
	"elevatecharter/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	// Catalogs are immutable after this point; every request reads them
	// without coordination.
	airports := catalog.NewAirportCatalog()
	aircraft := catalog.NewAircraftCatalog()

	engine := pricing.NewEngine()
	builder := pricing.NewQuoteBuilder(airports, aircraft, engine)

	extractor := services.NewExtractorFromEnv()
	parser := services.NewParser(airports)

	api := handlers.New(airports, aircraft, builder, extractor, parser)

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS — allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(handlers.RequestID())

	api.Register(r)

	port := getEnv("PORT", "8080")

	log.Printf("🚀 Elevate Charter API starting on port %s (%d airports, %d aircraft types)",
		port, airports.Len(), aircraft.Len())
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
