package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sanjose-despensas/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Branch{},
		&models.Member{},
		&models.Delivery{},
		&models.WarehouseStock{},
	); err != nil {
		t.Fatalf("migrate dashboard models failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func TestGetBranchStatsIncludesEmptyBranches(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	branches := []models.Branch{
		{ID: 1, Name: "Matriz", TargetQuota: 100, OnHand: 10},
		{ID: 2, Name: "Tlaquepaque", TargetQuota: 200, OnHand: 5},
		{ID: 3, Name: "Ocotlán", TargetQuota: 200, OnHand: 0},
	}
	for i := range branches {
		if err := db.Create(&branches[i]).Error; err != nil {
			t.Fatalf("create branch failed: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		delivery := models.Delivery{MemberID: uint(i + 1), BranchID: 1, OperatorID: 1, Quantity: 1, DeliveredAt: time.Now()}
		if err := db.Create(&delivery).Error; err != nil {
			t.Fatalf("create delivery failed: %v", err)
		}
	}

	rows, err := repo.GetBranchStats()
	if err != nil {
		t.Fatalf("get branch stats failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	// Quota descending, id ascending on ties.
	if rows[0].BranchID != 2 || rows[1].BranchID != 3 || rows[2].BranchID != 1 {
		t.Fatalf("unexpected order: %d, %d, %d", rows[0].BranchID, rows[1].BranchID, rows[2].BranchID)
	}
	if rows[2].Delivered != 3 {
		t.Fatalf("Matriz delivered=%d, want 3", rows[2].Delivered)
	}
	if rows[0].Delivered != 0 || rows[1].Delivered != 0 {
		t.Fatal("branches without deliveries must report zero")
	}
}

func TestGetTotals(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)

	if err := db.Create(&models.WarehouseStock{ID: models.WarehouseStockID, Quantity: 400}).Error; err != nil {
		t.Fatalf("create warehouse failed: %v", err)
	}
	if err := db.Create(&models.Branch{ID: 1, Name: "Matriz", TargetQuota: 100, OnHand: 30}).Error; err != nil {
		t.Fatalf("create branch failed: %v", err)
	}
	if err := db.Create(&models.Branch{ID: 2, Name: "Tlaquepaque", TargetQuota: 50, OnHand: 20}).Error; err != nil {
		t.Fatalf("create branch failed: %v", err)
	}
	seedMember(t, db, "000001", "Primero", true)
	seedMember(t, db, "000002", "Segundo", false)
	delivery := models.Delivery{MemberID: 1, BranchID: 1, OperatorID: 1, Quantity: 1, DeliveredAt: time.Now()}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("create delivery failed: %v", err)
	}

	totals, err := repo.GetTotals()
	if err != nil {
		t.Fatalf("get totals failed: %v", err)
	}
	if totals.WarehouseStock != 400 {
		t.Fatalf("warehouse=%d, want 400", totals.WarehouseStock)
	}
	if totals.BranchesOnHand != 50 || totals.TotalQuota != 150 {
		t.Fatalf("on_hand=%d quota=%d", totals.BranchesOnHand, totals.TotalQuota)
	}
	if totals.TotalDelivered != 1 {
		t.Fatalf("delivered=%d, want 1", totals.TotalDelivered)
	}
	if totals.MembersTotal != 2 || totals.MembersCollected != 1 {
		t.Fatalf("members=%d collected=%d", totals.MembersTotal, totals.MembersCollected)
	}
}

func TestGetTotalsEmptyDatabase(t *testing.T) {
	repo, _ := setupDashboardRepositoryTest(t)

	totals, err := repo.GetTotals()
	if err != nil {
		t.Fatalf("get totals failed: %v", err)
	}
	if totals.WarehouseStock != 0 || totals.BranchesOnHand != 0 || totals.TotalDelivered != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
