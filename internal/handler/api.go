package handler

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/metrics"
	"github.com/vanyanv/restaurant-dashboard/internal/service"
	"github.com/vanyanv/restaurant-dashboard/internal/yelp"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	stores    *service.StoreService
	managers  *service.ManagerService
	reports   *service.ReportService
	analytics *service.AnalyticsService
	yelpSync  *service.YelpSyncService
	log       *logrus.Logger
	metrics   *metrics.DashboardMetrics
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, searcher yelp.Searcher, log *logrus.Logger, m *metrics.DashboardMetrics) *API {
	return &API{
		db:        gdb,
		stores:    service.NewStoreService(gdb),
		managers:  service.NewManagerService(gdb),
		reports:   service.NewReportService(gdb),
		analytics: service.NewAnalyticsService(gdb),
		yelpSync:  service.NewYelpSyncService(gdb, searcher, log),
		log:       log,
		metrics:   m,
	}
}
