package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

var (
	// ErrStoreNotFound is returned when a store does not exist or the caller
	// has no access to it.
	ErrStoreNotFound = errors.New("store not found")
	// ErrStoreNameRequired is returned when creating or updating a store
	// without a name.
	ErrStoreNameRequired = errors.New("store name is required")
)

// StoreService wraps store related database operations.
type StoreService struct {
	db *gorm.DB
}

// NewStoreService constructs a StoreService.
func NewStoreService(gdb *gorm.DB) *StoreService {
	return &StoreService{db: gdb}
}

// StoreInput defines the fields accepted when creating or updating a store.
type StoreInput struct {
	Name    string
	Address string
	Phone   string
}

// StoreSummary pairs a store with its assignment and report counters for
// listing views.
type StoreSummary struct {
	db.Store
	ManagerCount int64 `json:"managerCount"`
	ReportCount  int64 `json:"reportCount"`
}

// Create adds a new active store owned by ownerID.
func (s *StoreService) Create(ownerID string, input StoreInput) (*db.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStoreNameRequired
	}

	store := db.Store{
		Name:    name,
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Status:  db.StatusActive,
		OwnerID: ownerID,
	}
	if err := s.db.Create(&store).Error; err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return &store, nil
}

// List returns every store visible to the scope, including inactive ones,
// for management views. Stores come back newest first with counters.
func (s *StoreService) List(scope AccessScope) ([]StoreSummary, error) {
	stores, err := s.storesFor(scope, false)
	if err != nil {
		return nil, err
	}
	return s.withCounts(stores)
}

// ActiveStores returns only the active stores visible to the scope. This is
// the listing analytics and status views build on.
func (s *StoreService) ActiveStores(scope AccessScope) ([]db.Store, error) {
	return s.storesFor(scope, true)
}

func (s *StoreService) storesFor(scope AccessScope, activeOnly bool) ([]db.Store, error) {
	query := s.db.Model(&db.Store{})

	if scope.IsOwner() {
		query = query.Where("owner_id = ?", scope.UserID)
	} else {
		query = query.
			Joins("JOIN store_managers ON store_managers.store_id = stores.id").
			Where("store_managers.manager_id = ? AND store_managers.status = ?", scope.UserID, db.StatusActive)
	}
	if activeOnly {
		query = query.Where("stores.status = ?", db.StatusActive)
	}

	var stores []db.Store
	if err := query.Order("stores.created_at DESC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) withCounts(stores []db.Store) ([]StoreSummary, error) {
	summaries := make([]StoreSummary, 0, len(stores))
	for _, store := range stores {
		var managerCount, reportCount int64
		if err := s.db.Model(&db.StoreManager{}).
			Where("store_id = ? AND status = ?", store.ID, db.StatusActive).
			Count(&managerCount).Error; err != nil {
			return nil, fmt.Errorf("count store managers: %w", err)
		}
		if err := s.db.Model(&db.DailyReport{}).
			Where("store_id = ?", store.ID).
			Count(&reportCount).Error; err != nil {
			return nil, fmt.Errorf("count store reports: %w", err)
		}
		summaries = append(summaries, StoreSummary{
			Store:        store,
			ManagerCount: managerCount,
			ReportCount:  reportCount,
		})
	}
	return summaries, nil
}

// Get fetches one store the scope may access.
func (s *StoreService) Get(scope AccessScope, storeID string) (*db.Store, error) {
	allowed, err := canAccessStore(s.db, scope, storeID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrStoreNotFound
	}

	var store db.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &store, nil
}

// Update changes a store's basic fields. Only the owning account may update.
func (s *StoreService) Update(ownerID, storeID string, input StoreInput) (*db.Store, error) {
	store, err := s.ownedStore(ownerID, storeID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStoreNameRequired
	}

	store.Name = name
	store.Address = strings.TrimSpace(input.Address)
	store.Phone = strings.TrimSpace(input.Phone)
	if err := s.db.Save(store).Error; err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return store, nil
}

// Deactivate soft deletes a store and deactivates its manager assignments.
// Records are retained so historical reports stay attributable.
func (s *StoreService) Deactivate(ownerID, storeID string) error {
	store, err := s.ownedStore(ownerID, storeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(store).Update("status", db.StatusInactive).Error; err != nil {
			return fmt.Errorf("deactivate store: %w", err)
		}
		if err := tx.Model(&db.StoreManager{}).
			Where("store_id = ?", store.ID).
			Update("status", db.StatusInactive).Error; err != nil {
			return fmt.Errorf("deactivate store assignments: %w", err)
		}
		return nil
	})
}

// ToggleStatus flips a store between active and inactive.
func (s *StoreService) ToggleStatus(ownerID, storeID string) (*db.Store, error) {
	store, err := s.ownedStore(ownerID, storeID)
	if err != nil {
		return nil, err
	}

	next := db.StatusActive
	if store.IsActive() {
		next = db.StatusInactive
	}
	if err := s.db.Model(store).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("toggle store status: %w", err)
	}
	store.Status = next
	return store, nil
}

func (s *StoreService) ownedStore(ownerID, storeID string) (*db.Store, error) {
	var store db.Store
	if err := s.db.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store: %w", err)
	}
	return &store, nil
}
