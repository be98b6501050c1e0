package webserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/config"
	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
)

// Publisher pushes a serialized collection snapshot to a topic after a
// mutation commits. Delivery must never block the response path.
type Publisher interface {
	Publish(topic string, data any)
}

func New(cfg config.Config, st *store.Store, hub *realtime.Hub) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), recovery())
	attachRoutes(g, cfg, st, hub)
	return g
}

// recovery converts panics into a generic 500 and keeps the fault detail on
// the server side only.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("handler panic", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// maxBody caps request bodies; oversized reads fail inside the JSON binder.
func maxBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

func attachRoutes(g *gin.Engine, cfg config.Config, st *store.Store, hub *realtime.Hub) {
	g.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	g.Use(maxBody(cfg.MaxBodyBytes))
	g.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit, cfg.RateWindow)))
	g.Use(metricsMiddleware())

	g.GET("/health", health)
	g.GET("/metrics", metricsHandler())
	g.GET("/ws", func(c *gin.Context) { hub.HandleWS(c.Writer, c.Request) })

	policyH := NewPolicies(st, hub)
	complaintH := NewComplaints(st, hub)
	proposalH := NewProposals(st, hub)
	txH := NewTransactions(st)
	analyticsH := NewAnalytics(st)

	api := g.Group("/api")
	{
		api.GET("/policies", policyH.List)
		api.GET("/policies/:id", policyH.Get)
		api.POST("/policies", policyH.Create)
		api.PUT("/policies/:id/activate", policyH.Activate)
		api.POST("/policies/:id/release-funds", policyH.ReleaseFunds)

		api.GET("/complaints", complaintH.List)
		api.GET("/complaints/:id", complaintH.Get)
		api.POST("/complaints", complaintH.Create)

		api.GET("/proposals", proposalH.List)
		api.GET("/proposals/:id", proposalH.Get)
		api.POST("/proposals", proposalH.Create)
		api.POST("/proposals/:id/vote", proposalH.Vote)

		api.GET("/transactions", txH.List)
		api.GET("/transactions/policy/:policyId", txH.ListForPolicy)

		api.GET("/analytics/overview", analyticsH.Overview)
	}

	g.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
