package router

import (
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanyanv/restaurant-dashboard/internal/handler"
	"github.com/vanyanv/restaurant-dashboard/internal/metrics"
)

const sessionName = "dashboard_session"

// SetupRouter configures the gin engine, session middleware and all routes.
func SetupRouter(api *handler.API, sessionSecret string, m *metrics.DashboardMetrics) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(requestMetrics(m))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/login", api.Login)
	r.POST("/api/auth/logout", api.Logout)

	auth := r.Group("/api")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/auth/me", api.Me)

		auth.GET("/reports", api.ListReports)
		auth.POST("/reports", api.SubmitReport)
		auth.GET("/reports/recent", api.RecentActivity)

		auth.GET("/analytics", api.AnalyticsSummary)
		auth.GET("/analytics/status", api.ReportStatus)
		auth.GET("/analytics/alerts", api.PerformanceAlerts)
		auth.GET("/analytics/:storeId", api.StoreAnalytics)

		auth.GET("/manager/stores", api.ManagerStores)
		auth.GET("/manager/dashboard", api.ManagerDashboard)

		auth.GET("/stores", api.ListStores)
		auth.GET("/stores/:id", api.GetStore)

		// Mutations below are owner only.
		owner := auth.Group("")
		owner.Use(handler.RequireOwner())
		{
			owner.POST("/stores", api.CreateStore)
			owner.PUT("/stores/:id", api.UpdateStore)
			owner.DELETE("/stores/:id", api.DeleteStore)
			owner.PATCH("/stores/:id/toggle", api.ToggleStore)

			owner.GET("/stores/:id/managers", api.StoreManagers)
			owner.POST("/stores/:id/managers", api.AssignManager)
			owner.DELETE("/stores/:id/managers/:managerId", api.UnassignManager)

			owner.GET("/managers", api.ListManagers)
			owner.POST("/managers", api.CreateManager)

			owner.POST("/yelp/sync", api.SyncAllReviews)
			owner.POST("/yelp/sync/:storeId", api.SyncStoreReviews)
		}
	}

	return r
}

func requestMetrics(m *metrics.DashboardMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
