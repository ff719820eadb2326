package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

// AccessScope is the explicit authorization context every service call
// receives. Nothing here reads ambient session state; handlers resolve the
// scope once and pass it down.
type AccessScope struct {
	UserID string
	Role   db.Role
}

// IsOwner reports whether the scope belongs to an owner account.
func (s AccessScope) IsOwner() bool {
	return s.Role == db.RoleOwner
}

// storeIDsFor resolves every store id the scope may read: owners see their
// own stores, managers see stores with an active assignment.
func storeIDsFor(gdb *gorm.DB, scope AccessScope) ([]string, error) {
	var ids []string

	if scope.IsOwner() {
		if err := gdb.Model(&db.Store{}).
			Where("owner_id = ?", scope.UserID).
			Pluck("id", &ids).Error; err != nil {
			return nil, fmt.Errorf("list owned store ids: %w", err)
		}
		return ids, nil
	}

	if err := gdb.Model(&db.StoreManager{}).
		Where("manager_id = ? AND status = ?", scope.UserID, db.StatusActive).
		Pluck("store_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list assigned store ids: %w", err)
	}
	return ids, nil
}

// canAccessStore reports whether the scope may read or submit for one store.
func canAccessStore(gdb *gorm.DB, scope AccessScope, storeID string) (bool, error) {
	if scope.IsOwner() {
		var count int64
		if err := gdb.Model(&db.Store{}).
			Where("id = ? AND owner_id = ?", storeID, scope.UserID).
			Count(&count).Error; err != nil {
			return false, fmt.Errorf("check store ownership: %w", err)
		}
		return count > 0, nil
	}

	var count int64
	if err := gdb.Model(&db.StoreManager{}).
		Where("store_id = ? AND manager_id = ? AND status = ?", storeID, scope.UserID, db.StatusActive).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check store assignment: %w", err)
	}
	return count > 0, nil
}
