package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LifecycleStatus models soft deletion for stores and manager assignments.
// Inactive records stay in place so historical reports remain attributable.
type LifecycleStatus string

const (
	StatusActive   LifecycleStatus = "active"
	StatusInactive LifecycleStatus = "inactive"
)

// Store is a single restaurant location owned by one owner account.
// Address is optional but required before any review lookup can run.
// The yelp_* columns hold the last synced third-party review data.
type Store struct {
	ID      string          `gorm:"primaryKey" json:"id"`
	Name    string          `gorm:"not null" json:"name"`
	Address string          `json:"address"`
	Phone   string          `json:"phone"`
	Status  LifecycleStatus `gorm:"not null;default:active;index" json:"status"`

	OwnerID string `gorm:"index;not null" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID" json:"-"`

	YelpBusinessID  string     `json:"yelpBusinessId"`
	YelpRating      float64    `json:"yelpRating"`
	YelpReviewCount int        `json:"yelpReviewCount"`
	YelpURL         string     `json:"yelpUrl"`
	YelpUpdatedAt   *time.Time `json:"yelpUpdatedAt"`
	YelpSearchTerm  string     `json:"yelpSearchTerm"`
	YelpLastSearch  *time.Time `json:"yelpLastSearch"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the store should be visible to listings and
// analytics. Lifecycle checks go through this one predicate.
func (s *Store) IsActive() bool {
	return s.Status == StatusActive
}

// StoreManager joins a manager account to a store. Unassignment flips the
// status instead of deleting the row, preserving assignment history.
type StoreManager struct {
	ID string `gorm:"primaryKey" json:"id"`

	StoreID string `gorm:"not null;index;index:idx_store_manager_pair,unique" json:"storeId"`
	Store   Store  `gorm:"foreignKey:StoreID" json:"store,omitempty"`

	ManagerID string `gorm:"not null;index;index:idx_store_manager_pair,unique" json:"managerId"`
	Manager   User   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`

	Status LifecycleStatus `gorm:"not null;default:active" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (sm *StoreManager) BeforeCreate(*gorm.DB) error {
	if sm.ID == "" {
		sm.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the assignment currently grants report access.
func (sm *StoreManager) IsActive() bool {
	return sm.Status == StatusActive
}
