package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
	"github.com/vanyanv/restaurant-dashboard/internal/yelp"
)

// Sync outcomes. "skipped" means no lookup was performed (no address);
// "error" means the API was asked and failed, which callers must not read
// as a negative search result.
const (
	SyncOutcomeMatched = "matched"
	SyncOutcomeNoMatch = "no_match"
	SyncOutcomeSkipped = "skipped"
	SyncOutcomeError   = "error"
)

// StoreSyncResult is the per-store outcome of a review sync run.
type StoreSyncResult struct {
	StoreID   string      `json:"storeId"`
	StoreName string      `json:"storeName"`
	Outcome   string      `json:"outcome"`
	Match     *yelp.Match `json:"match,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// YelpSyncService refreshes stores' third-party review data.
type YelpSyncService struct {
	db       *gorm.DB
	searcher yelp.Searcher
	log      *logrus.Logger
}

// NewYelpSyncService constructs a YelpSyncService.
func NewYelpSyncService(gdb *gorm.DB, searcher yelp.Searcher, log *logrus.Logger) *YelpSyncService {
	return &YelpSyncService{db: gdb, searcher: searcher, log: log}
}

// SyncStore refreshes one owned, active store. A store without an address
// skips the lookup entirely: that is "no data", not an error.
func (s *YelpSyncService) SyncStore(ctx context.Context, ownerID, storeID string) (*StoreSyncResult, error) {
	var store db.Store
	if err := s.db.Where("id = ? AND owner_id = ? AND status = ?", storeID, ownerID, db.StatusActive).
		First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store: %w", err)
	}
	return s.syncOne(ctx, &store)
}

// SyncAll refreshes every active store the owner has. Rate-limit and auth
// failures abort the remaining stores since retrying them in the same run
// cannot succeed; other lookup failures are recorded per store.
func (s *YelpSyncService) SyncAll(ctx context.Context, ownerID string) ([]StoreSyncResult, error) {
	var stores []db.Store
	if err := s.db.Where("owner_id = ? AND status = ?", ownerID, db.StatusActive).
		Order("name").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	results := make([]StoreSyncResult, 0, len(stores))
	for i := range stores {
		result, err := s.syncOne(ctx, &stores[i])
		if err != nil {
			if errors.Is(err, yelp.ErrRateLimited) || errors.Is(err, yelp.ErrUnauthorized) || errors.Is(err, yelp.ErrMissingAPIKey) {
				return results, err
			}
			results = append(results, StoreSyncResult{
				StoreID:   stores[i].ID,
				StoreName: stores[i].Name,
				Outcome:   SyncOutcomeError,
				Message:   err.Error(),
			})
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *YelpSyncService) syncOne(ctx context.Context, store *db.Store) (*StoreSyncResult, error) {
	result := &StoreSyncResult{StoreID: store.ID, StoreName: store.Name}

	if store.Address == "" {
		result.Outcome = SyncOutcomeSkipped
		result.Message = "store has no address"
		s.log.WithFields(logrus.Fields{"store": store.ID}).
			Warn("skipping review sync for store without address")
		return result, nil
	}

	candidates, err := s.searcher.SearchBusinesses(ctx, store.Name, store.Address)
	if err != nil {
		s.log.WithFields(logrus.Fields{"store": store.ID}).
			WithError(err).Error("review lookup failed")
		return nil, err
	}

	match := yelp.BestMatch(store.Name, store.Address, store.Phone, candidates)
	now := time.Now()
	updates := map[string]interface{}{
		"yelp_search_term": fmt.Sprintf("%s %s", store.Name, store.Address),
		"yelp_last_search": now,
	}

	if match != nil {
		result.Outcome = SyncOutcomeMatched
		result.Match = match
		updates["yelp_business_id"] = match.BusinessID
		updates["yelp_rating"] = match.Rating
		updates["yelp_review_count"] = match.ReviewCount
		updates["yelp_url"] = match.URL
		updates["yelp_updated_at"] = now
	} else {
		result.Outcome = SyncOutcomeNoMatch
		result.Message = "no matching business found"
		updates["yelp_business_id"] = ""
		updates["yelp_rating"] = 0
		updates["yelp_review_count"] = 0
		updates["yelp_url"] = ""
		updates["yelp_updated_at"] = nil
	}

	if err := s.db.Model(store).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("persist sync result: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"store":   store.ID,
		"outcome": result.Outcome,
	}).Info("review sync finished")
	return result, nil
}
