package service

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vanyanv/restaurant-dashboard/internal/db"
)

func setupServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Store{}, &db.StoreManager{}, &db.DailyReport{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func createTestUser(t *testing.T, gdb *gorm.DB, name, email string, role db.Role) db.User {
	t.Helper()
	user := db.User{Name: name, Email: email, Password: "hashed", Role: role}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestStore(t *testing.T, gdb *gorm.DB, ownerID, name string) db.Store {
	t.Helper()
	store := db.Store{Name: name, Address: "101 Main St", Phone: "5595550101", Status: db.StatusActive, OwnerID: ownerID}
	if err := gdb.Create(&store).Error; err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func assignTestManager(t *testing.T, gdb *gorm.DB, storeID, managerID string) db.StoreManager {
	t.Helper()
	assignment := db.StoreManager{StoreID: storeID, ManagerID: managerID, Status: db.StatusActive}
	if err := gdb.Create(&assignment).Error; err != nil {
		t.Fatalf("failed to assign manager: %v", err)
	}
	return assignment
}

func TestStoreCreateRequiresName(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	svc := NewStoreService(gdb)

	if _, err := svc.Create(owner.ID, StoreInput{Name: "   "}); !errors.Is(err, ErrStoreNameRequired) {
		t.Fatalf("expected ErrStoreNameRequired, got %v", err)
	}

	store, err := svc.Create(owner.ID, StoreInput{Name: "Downtown Grill", Address: "101 Main St"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if store.ID == "" {
		t.Fatal("expected generated store id")
	}
	if store.Status != db.StatusActive {
		t.Fatalf("expected new store active, got %s", store.Status)
	}
}

func TestStoreListIncludesInactiveWithCounts(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	manager := createTestUser(t, gdb, "Maria", "maria@test.com", db.RoleManager)
	active := createTestStore(t, gdb, owner.ID, "Active Store")
	inactive := createTestStore(t, gdb, owner.ID, "Closed Store")
	if err := gdb.Model(&inactive).Update("status", db.StatusInactive).Error; err != nil {
		t.Fatalf("failed to deactivate store: %v", err)
	}
	assignTestManager(t, gdb, active.ID, manager.ID)

	svc := NewStoreService(gdb)
	scope := AccessScope{UserID: owner.ID, Role: db.RoleOwner}

	summaries, err := svc.List(scope)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected owner listing to include inactive stores, got %d", len(summaries))
	}

	var activeSummary *StoreSummary
	for i := range summaries {
		if summaries[i].ID == active.ID {
			activeSummary = &summaries[i]
		}
	}
	if activeSummary == nil {
		t.Fatal("active store missing from listing")
	}
	if activeSummary.ManagerCount != 1 {
		t.Fatalf("expected 1 manager, got %d", activeSummary.ManagerCount)
	}

	activeOnly, err := svc.ActiveStores(scope)
	if err != nil {
		t.Fatalf("active stores failed: %v", err)
	}
	if len(activeOnly) != 1 || activeOnly[0].ID != active.ID {
		t.Fatalf("expected only the active store, got %d entries", len(activeOnly))
	}
}

func TestStoreGetDeniesForeignOwner(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	other := createTestUser(t, gdb, "Other", "other@test.com", db.RoleOwner)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")

	svc := NewStoreService(gdb)
	_, err := svc.Get(AccessScope{UserID: other.ID, Role: db.RoleOwner}, store.ID)
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound for foreign owner, got %v", err)
	}
}

func TestStoreDeactivateCascadesAssignments(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	manager := createTestUser(t, gdb, "Maria", "maria@test.com", db.RoleManager)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")
	assignTestManager(t, gdb, store.ID, manager.ID)

	svc := NewStoreService(gdb)
	if err := svc.Deactivate(owner.ID, store.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	var reloaded db.Store
	if err := gdb.First(&reloaded, "id = ?", store.ID).Error; err != nil {
		t.Fatalf("reload store failed: %v", err)
	}
	if reloaded.Status != db.StatusInactive {
		t.Fatalf("expected store inactive, got %s", reloaded.Status)
	}

	var assignment db.StoreManager
	if err := gdb.First(&assignment, "store_id = ?", store.ID).Error; err != nil {
		t.Fatalf("reload assignment failed: %v", err)
	}
	if assignment.Status != db.StatusInactive {
		t.Fatalf("expected assignment soft removed, got %s", assignment.Status)
	}
}

func TestStoreToggleStatus(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	owner := createTestUser(t, gdb, "Owner", "owner@test.com", db.RoleOwner)
	store := createTestStore(t, gdb, owner.ID, "Downtown Grill")

	svc := NewStoreService(gdb)
	toggled, err := svc.ToggleStatus(owner.ID, store.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Status != db.StatusInactive {
		t.Fatalf("expected inactive after first toggle, got %s", toggled.Status)
	}

	toggled, err = svc.ToggleStatus(owner.ID, store.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if toggled.Status != db.StatusActive {
		t.Fatalf("expected active after second toggle, got %s", toggled.Status)
	}
}
