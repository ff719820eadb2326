package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/vanyanv/restaurant-dashboard/internal/config"
	"github.com/vanyanv/restaurant-dashboard/internal/db"
	"github.com/vanyanv/restaurant-dashboard/internal/handler"
	"github.com/vanyanv/restaurant-dashboard/internal/logger"
	"github.com/vanyanv/restaurant-dashboard/internal/metrics"
	"github.com/vanyanv/restaurant-dashboard/internal/router"
	"github.com/vanyanv/restaurant-dashboard/internal/yelp"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Money fields serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	if cfg.OwnerEmail != "" {
		if err := db.EnsureOwner(cfg.OwnerName, cfg.OwnerEmail, cfg.OwnerPassword); err != nil {
			log.WithError(err).Fatal("failed to bootstrap owner account")
		}
	}

	m := metrics.New()
	searcher := yelp.NewClient(cfg.YelpAPIKey, cfg.YelpBaseURL)
	api := handler.NewAPI(db.DB, searcher, log, m)

	r := router.SetupRouter(api, cfg.SessionSecret, m)
	log.WithField("addr", cfg.ListenAddr).Info("starting server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("failed to run server")
	}
}
