package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vanyanv/restaurant-dashboard/internal/service"
	"github.com/vanyanv/restaurant-dashboard/internal/yelp"
)

// SyncStoreReviews refreshes the review data of a single store.
func (a *API) SyncStoreReviews(c *gin.Context) {
	scope, _ := scopeFrom(c)

	result, err := a.yelpSync.SyncStore(c.Request.Context(), scope.UserID, c.Param("storeId"))
	if err != nil {
		a.respondYelpError(c, err)
		return
	}

	a.metrics.RecordYelpSync(result.Outcome)
	c.JSON(http.StatusOK, result)
}

// SyncAllReviews refreshes review data for every active store of the owner.
func (a *API) SyncAllReviews(c *gin.Context) {
	scope, _ := scopeFrom(c)

	results, err := a.yelpSync.SyncAll(c.Request.Context(), scope.UserID)
	if err != nil {
		a.respondYelpError(c, err)
		return
	}

	for _, result := range results {
		a.metrics.RecordYelpSync(result.Outcome)
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "synced": len(results)})
}

func (a *API) respondYelpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStoreNotFound):
		respondError(c, http.StatusNotFound, "store not found or access denied")
	case errors.Is(err, yelp.ErrMissingAPIKey):
		respondError(c, http.StatusServiceUnavailable, "review sync is not configured")
	case errors.Is(err, yelp.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "review service rate limit reached, retry later")
	case errors.Is(err, yelp.ErrUnauthorized):
		respondError(c, http.StatusBadGateway, "review service rejected the configured credentials")
	default:
		a.log.WithError(err).Error("review sync failed")
		respondError(c, http.StatusInternalServerError, "could not sync reviews")
	}
}
