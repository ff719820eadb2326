package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
	"github.com/vanyanv/restaurant-dashboard/internal/yelp"
)

type fakeSearcher struct {
	businesses []yelp.Business
	err        error
	calls      int
	lastTerm   string
}

func (f *fakeSearcher) SearchBusinesses(ctx context.Context, term, location string) ([]yelp.Business, error) {
	f.calls++
	f.lastTerm = term
	if f.err != nil {
		return nil, f.err
	}
	return f.businesses, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSyncStoreMatchUpdatesReviewFields(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")

	searcher := &fakeSearcher{businesses: []yelp.Business{{
		ID:          "biz-1",
		Name:        "Downtown Grill",
		URL:         "https://yelp.test/biz-1",
		Rating:      4.5,
		ReviewCount: 212,
		Location:    yelp.Location{DisplayAddress: []string{"101 Main St"}},
	}}}

	svc := NewYelpSyncService(gdb, searcher, quietLogger())
	result, err := svc.SyncStore(context.Background(), owner.ID, store.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if result.Outcome != SyncOutcomeMatched {
		t.Fatalf("expected matched, got %s", result.Outcome)
	}
	if result.Match == nil || result.Match.BusinessID != "biz-1" {
		t.Fatalf("unexpected match %+v", result.Match)
	}
	if searcher.lastTerm != "Downtown Grill" {
		t.Fatalf("expected store name as search term, got %q", searcher.lastTerm)
	}

	var reloaded db.Store
	if err := gdb.First(&reloaded, "id = ?", store.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.YelpBusinessID != "biz-1" || reloaded.YelpRating != 4.5 || reloaded.YelpReviewCount != 212 {
		t.Fatalf("review columns not persisted: %+v", reloaded)
	}
	if reloaded.YelpUpdatedAt == nil || reloaded.YelpLastSearch == nil {
		t.Fatal("expected sync timestamps set")
	}
}

func TestSyncStoreNoMatchClearsFields(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")
	if err := gdb.Model(&store).Update("yelp_business_id", "stale-id").Error; err != nil {
		t.Fatalf("seed stale id failed: %v", err)
	}

	svc := NewYelpSyncService(gdb, &fakeSearcher{}, quietLogger())
	result, err := svc.SyncStore(context.Background(), owner.ID, store.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if result.Outcome != SyncOutcomeNoMatch {
		t.Fatalf("expected no_match, got %s", result.Outcome)
	}

	var reloaded db.Store
	if err := gdb.First(&reloaded, "id = ?", store.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.YelpBusinessID != "" {
		t.Fatalf("expected stale business id cleared, got %q", reloaded.YelpBusinessID)
	}
	if reloaded.YelpLastSearch == nil {
		t.Fatal("expected last search timestamp recorded even without a match")
	}
}

func TestSyncStoreWithoutAddressSkips(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	store := db.Store{Name: "No Address Cafe", Status: db.StatusActive, OwnerID: owner.ID}
	if err := gdb.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	searcher := &fakeSearcher{}
	svc := NewYelpSyncService(gdb, searcher, quietLogger())
	result, err := svc.SyncStore(context.Background(), owner.ID, store.ID)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if result.Outcome != SyncOutcomeSkipped {
		t.Fatalf("expected skipped, got %s", result.Outcome)
	}
	if searcher.calls != 0 {
		t.Fatalf("expected no API call for a store without address, got %d", searcher.calls)
	}
}

func TestSyncStoreInactiveOrForeign(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	other := createTestUser(t, gdb, "Other", "other@test.com", db.RoleOwner)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")

	svc := NewYelpSyncService(gdb, &fakeSearcher{}, quietLogger())

	if _, err := svc.SyncStore(context.Background(), other.ID, store.ID); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for foreign owner, got %v", err)
	}

	if err := gdb.Model(&store).Update("status", db.StatusInactive).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.SyncStore(context.Background(), owner.ID, store.ID); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for inactive store, got %v", err)
	}
}

func TestSyncAllAbortsOnRateLimit(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	createTestStore(t, gdb, owner.ID, "A Store")
	createTestStore(t, gdb, owner.ID, "B Store")

	searcher := &fakeSearcher{err: yelp.ErrRateLimited}
	svc := NewYelpSyncService(gdb, searcher, quietLogger())

	results, err := svc.SyncAll(context.Background(), owner.ID)
	if !errors.Is(err, yelp.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results before the abort, got %d", len(results))
	}
	if searcher.calls != 1 {
		t.Fatalf("expected the run to stop after the first rate limit, got %d calls", searcher.calls)
	}
}

func TestSyncAllRecordsPerStoreErrors(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	createTestStore(t, gdb, owner.ID, "A Store")
	createTestStore(t, gdb, owner.ID, "B Store")

	searcher := &fakeSearcher{err: errors.New("connection reset")}
	svc := NewYelpSyncService(gdb, searcher, quietLogger())

	results, err := svc.SyncAll(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("expected per-store errors, not a run failure: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, result := range results {
		if result.Outcome != SyncOutcomeError {
			t.Fatalf("expected error outcome, got %s", result.Outcome)
		}
	}
}
