package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodsphere/server/internal/auth"
	"github.com/foodsphere/server/internal/entities"
)

// APIPrefix is the versioned mount point; every API route is also served at the root.
const APIPrefix = "/api/v1"

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())

	authMiddleware := auth.NewMiddleware(cfg.AuthService)
	router.Use(authMiddleware.Handler())

	// Health endpoints
	health := NewHealthController(cfg.Stores.Health, cfg.Version)
	if cfg.AuditCleanup != nil {
		health.Watch("audit_cleanup", cfg.AuditCleanup)
	}
	router.GET("/", health.Root)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authController := auth.NewAuthController(cfg.AuthService, authMiddleware, cfg.Auditor)
	api := router.Group(APIPrefix)
	for _, routes := range []gin.IRoutes{router, api} {
		authController.RegisterRoutes(routes)
		registerAPIRoutes(routes, cfg.Stores)
	}

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		api.GET("/audit-events", authMiddleware.RequireAuth(), auditController.MyEvents)
	}

	return router
}

func registerAPIRoutes(routes gin.IRoutes, stores Stores) {
	// Supplies keep the paths the web client was built against.
	NewListingsController(stores.Supplies, entities.Supplies).RegisterRoutes(routes, ListingRoutes{
		Create:     "/create-supply",
		Collection: "/all-supplies",
		Item:       "/all-supplies/:id",
	})
	NewListingsController(stores.Volunteers, entities.Volunteers).RegisterRoutes(routes, CollectionRoutes("/volunteers"))
	NewListingsController(stores.Comments, entities.Comments).RegisterRoutes(routes, CollectionRoutes("/comments"))
	NewListingsController(stores.Testimonials, entities.Testimonials).RegisterRoutes(routes, CollectionRoutes("/testimonials"))

	statsController := NewStatsController(stores.Stats)
	routes.GET("/stats", statsController.Overview)
	routes.GET("/stats/supplies-by-category", statsController.SuppliesByCategory)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

