package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

var (
	// ErrEmailTaken is returned when creating an account with an email that
	// already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrManagerNotFound is returned for unknown or non-manager accounts.
	ErrManagerNotFound = errors.New("manager not found")
	// ErrAssignmentNotFound is returned when unassigning a manager that is
	// not assigned to the store.
	ErrAssignmentNotFound = errors.New("manager assignment not found")
	// ErrInvalidCredentials is returned when email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ManagerService handles manager accounts and store assignments.
type ManagerService struct {
	db *gorm.DB
}

// NewManagerService constructs a ManagerService.
func NewManagerService(gdb *gorm.DB) *ManagerService {
	return &ManagerService{db: gdb}
}

// ManagerInput defines the fields for creating a manager account.
type ManagerInput struct {
	Name     string
	Email    string
	Password string
}

// ManagerSummary pairs a manager account with its active store assignments.
type ManagerSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	StoreCount int64     `json:"storeCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Authenticate verifies email and password and returns the matching account.
func (s *ManagerService) Authenticate(email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// CreateManager registers a new manager account.
func (s *ManagerService) CreateManager(input ManagerInput) (*db.User, error) {
	email := strings.TrimSpace(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" || input.Password == "" {
		return nil, errors.New("name, email and password are required")
	}

	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     db.RoleManager,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create manager: %w", err)
	}
	return &user, nil
}

// List returns the managers assigned to any of the owner's stores, with the
// number of stores each currently covers.
func (s *ManagerService) List(ownerID string) ([]ManagerSummary, error) {
	var managers []db.User
	if err := s.db.
		Distinct("users.*").
		Joins("JOIN store_managers ON store_managers.manager_id = users.id").
		Joins("JOIN stores ON stores.id = store_managers.store_id").
		Where("stores.owner_id = ? AND users.role = ?", ownerID, db.RoleManager).
		Order("users.created_at DESC").
		Find(&managers).Error; err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	summaries := make([]ManagerSummary, 0, len(managers))
	for _, m := range managers {
		var storeCount int64
		if err := s.db.Model(&db.StoreManager{}).
			Joins("JOIN stores ON stores.id = store_managers.store_id").
			Where("store_managers.manager_id = ? AND store_managers.status = ? AND stores.owner_id = ?",
				m.ID, db.StatusActive, ownerID).
			Count(&storeCount).Error; err != nil {
			return nil, fmt.Errorf("count manager stores: %w", err)
		}
		summaries = append(summaries, ManagerSummary{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			StoreCount: storeCount,
			CreatedAt:  m.CreatedAt,
		})
	}
	return summaries, nil
}

// StoreManagers returns the active assignments for one store with manager
// details preloaded.
func (s *ManagerService) StoreManagers(ownerID, storeID string) ([]db.StoreManager, error) {
	var store db.Store
	if err := s.db.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store: %w", err)
	}

	var assignments []db.StoreManager
	if err := s.db.Preload("Manager").
		Where("store_id = ? AND status = ?", storeID, db.StatusActive).
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("list store managers: %w", err)
	}
	return assignments, nil
}

// Assign links a manager to an owner's store. Re-assigning a previously
// unassigned manager reactivates the existing row instead of duplicating it.
func (s *ManagerService) Assign(ownerID, storeID, managerID string) (*db.StoreManager, error) {
	var store db.Store
	if err := s.db.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("load store: %w", err)
	}

	var manager db.User
	if err := s.db.Where("id = ? AND role = ?", managerID, db.RoleManager).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, fmt.Errorf("load manager: %w", err)
	}

	var assignment db.StoreManager
	err := s.db.Where("store_id = ? AND manager_id = ?", storeID, managerID).First(&assignment).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment = db.StoreManager{
			StoreID:   storeID,
			ManagerID: managerID,
			Status:    db.StatusActive,
		}
		if err := s.db.Create(&assignment).Error; err != nil {
			return nil, fmt.Errorf("create assignment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load assignment: %w", err)
	default:
		if err := s.db.Model(&assignment).Update("status", db.StatusActive).Error; err != nil {
			return nil, fmt.Errorf("reactivate assignment: %w", err)
		}
		assignment.Status = db.StatusActive
	}
	return &assignment, nil
}

// Unassign soft removes a manager from a store. The row stays so historical
// reports remain attributable.
func (s *ManagerService) Unassign(ownerID, storeID, managerID string) error {
	result := s.db.Model(&db.StoreManager{}).
		Where("store_id = ? AND manager_id = ? AND status = ?", storeID, managerID, db.StatusActive).
		Where("store_id IN (?)", s.db.Model(&db.Store{}).Select("id").Where("owner_id = ?", ownerID)).
		Update("status", db.StatusInactive)
	if result.Error != nil {
		return fmt.Errorf("unassign manager: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// AssignedStores returns the active stores a manager currently covers.
func (s *ManagerService) AssignedStores(managerID string) ([]db.Store, error) {
	var stores []db.Store
	if err := s.db.
		Joins("JOIN store_managers ON store_managers.store_id = stores.id").
		Where("store_managers.manager_id = ? AND store_managers.status = ? AND stores.status = ?",
			managerID, db.StatusActive, db.StatusActive).
		Order("stores.name").
		Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("list assigned stores: %w", err)
	}
	return stores, nil
}
