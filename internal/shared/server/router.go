package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docstore-backend/internal/services/health"
	"docstore-backend/internal/shared/config"
	"docstore-backend/internal/shared/metrics"
	"docstore-backend/internal/shared/server/middleware"
)

// RouterDeps carries what NewRouter needs.
type RouterDeps struct {
	Config config.Config
	Health *health.Service
	Proxy  ProxyHandler
}

// NewRouter constructs the Gin engine that fronts the proxy handler for local runs.
// Every path other than /health and /metrics is forwarded to deps.Proxy.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, deps.Config.ObjectStoreType, "")
	}
	r.GET("/health", func(c *gin.Context) {
		st := healthSvc.Status(c.Request.Context())
		code := http.StatusOK
		if !st.OK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, st)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Proxy != nil {
		r.NoRoute(Adapt(deps.Proxy))
	}
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
