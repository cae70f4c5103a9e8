package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/service"
	"github.com/rs/zerolog"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, citySvc service.CityService, countrySvc service.CountryService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIPrefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewCityHandler(citySvc).Register(api)
		NewCountryHandler(countrySvc).Register(api)
	}
}

// NewEngine builds the gin engine with the middleware chain every route shares.
func NewEngine(logger zerolog.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger), CORS(corsOrigins))
	return r
}
