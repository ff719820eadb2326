package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanyanv/restaurant-dashboard/internal/service"
)

// AnalyticsSummary returns the aggregated dashboard numbers. storeId=all (or
// no storeId) covers every active store the caller can see.
func (a *API) AnalyticsSummary(c *gin.Context) {
	scope, _ := scopeFrom(c)

	summary, err := a.analytics.Summary(scope, c.Query("storeId"), parseIntQuery(c, "days", 0))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("analytics summary failed")
		respondError(c, http.StatusInternalServerError, "could not compute analytics")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StoreAnalytics returns the per-store deep dive metrics.
func (a *API) StoreAnalytics(c *gin.Context) {
	scope, _ := scopeFrom(c)

	metrics, err := a.analytics.StoreMetrics(scope, c.Param("storeId"), parseIntQuery(c, "days", 0))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, http.StatusNotFound, "store not found or access denied")
			return
		}
		a.log.WithError(err).Error("store analytics failed")
		respondError(c, http.StatusInternalServerError, "could not compute store metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// ReportStatus returns today's per-store, per-shift submission grid.
func (a *API) ReportStatus(c *gin.Context) {
	scope, _ := scopeFrom(c)

	grid, err := a.analytics.StatusGrid(scope)
	if err != nil {
		a.log.WithError(err).Error("report status failed")
		respondError(c, http.StatusInternalServerError, "could not build report status")
		return
	}
	c.JSON(http.StatusOK, grid)
}

// PerformanceAlerts returns the capped alert list for the dashboard.
func (a *API) PerformanceAlerts(c *gin.Context) {
	scope, _ := scopeFrom(c)

	alerts, err := a.analytics.Alerts(scope)
	if err != nil {
		a.log.WithError(err).Error("performance alerts failed")
		respondError(c, http.StatusInternalServerError, "could not build alerts")
		return
	}

	for _, alert := range alerts {
		a.metrics.AlertsGeneratedTotal.WithLabelValues(alert.Type).Inc()
	}
	c.JSON(http.StatusOK, alerts)
}

// ManagerDashboard returns the signed-in manager's store roundup.
func (a *API) ManagerDashboard(c *gin.Context) {
	scope, _ := scopeFrom(c)

	dashboard, err := a.analytics.ManagerDashboard(scope.UserID)
	if err != nil {
		a.log.WithError(err).Error("manager dashboard failed")
		respondError(c, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
