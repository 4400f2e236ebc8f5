package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"adminhub/internal/auth"
	"adminhub/internal/dashboard"
	"adminhub/internal/live"
)

type Deps struct {
	Log            zerolog.Logger
	DB             *sql.DB
	Dashboard      *dashboard.Service
	Tokens         auth.TokenService
	Operators      *auth.Repo
	Exports        ExportLedger
	Hub            *live.Hub
	TrustedProxies []string
}

// NewRouter wires every HTTP route of the admin API.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(d.Log))
	_ = router.SetTrustedProxies(d.TrustedProxies)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		clients := 0
		if d.Hub != nil {
			clients = d.Hub.Stats().WSClients
		}
		if d.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.DB.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":     "not_ready",
					"db_error":   err.Error(),
					"ws_clients": clients,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "ws_clients": clients})
	})

	if d.Operators != nil {
		auth.NewHandler(d.Operators, d.Tokens, d.Log).RegisterRoutes(router.Group("/auth"))
	}
	if d.Hub != nil {
		router.GET("/ws", auth.AuthMiddleware(d.Tokens, d.Operators), live.WSHandler(d.Hub, d.Log))
	}

	h := &Handler{Dashboard: d.Dashboard, Exports: d.Exports, Log: d.Log}
	if d.Hub != nil {
		h.Live = d.Hub
	}
	protected := router.Group("/api")
	protected.Use(auth.AuthMiddleware(d.Tokens, d.Operators))
	h.RegisterRoutes(protected)

	return router
}
