package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDashboardServiceTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewDashboardService(repository.NewDashboardRepository(db)), db
}

func seedDeliveries(t *testing.T, db *gorm.DB, branchID uint, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		delivery := models.Delivery{
			MemberID:    uint(i + 1),
			BranchID:    branchID,
			OperatorID:  1,
			Quantity:    1,
			DeliveredAt: time.Now(),
		}
		if err := db.Create(&delivery).Error; err != nil {
			t.Fatalf("seed delivery failed: %v", err)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		delivered int64
		quota     int
		want      int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{1, 3, 33},
		{2, 3, 67},
		{100, 100, 100},
		{150, 100, 100},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tc := range cases {
		if got := progressPercent(tc.delivered, tc.quota); got != tc.want {
			t.Fatalf("progressPercent(%d, %d) = %d, want %d", tc.delivered, tc.quota, got, tc.want)
		}
	}
}

func TestProgressTier(t *testing.T) {
	cases := []struct {
		quota   int
		percent int
		want    string
	}{
		{0, 100, ProgressTierLow},
		{-1, 100, ProgressTierLow},
		{100, 0, ProgressTierLow},
		{100, 39, ProgressTierLow},
		{100, 40, ProgressTierMedium},
		{100, 74, ProgressTierMedium},
		{100, 75, ProgressTierHigh},
		{100, 100, ProgressTierHigh},
	}
	for _, tc := range cases {
		if got := progressTier(tc.quota, tc.percent); got != tc.want {
			t.Fatalf("progressTier(%d, %d) = %s, want %s", tc.quota, tc.percent, got, tc.want)
		}
	}
}

func TestDashboardServiceGetView(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)

	branches := []models.Branch{
		{ID: 1, Name: "Matriz", TargetQuota: 100, OnHand: 20},
		{ID: 2, Name: "Tlaquepaque", TargetQuota: 200, OnHand: 10},
		{ID: 3, Name: "Ocotlán", TargetQuota: 0, OnHand: 5},
	}
	for i := range branches {
		if err := db.Create(&branches[i]).Error; err != nil {
			t.Fatalf("seed branch failed: %v", err)
		}
	}
	if err := db.Create(&models.WarehouseStock{ID: models.WarehouseStockID, Quantity: 500}).Error; err != nil {
		t.Fatalf("seed warehouse failed: %v", err)
	}
	createTestMember(t, db, "000001", "Juan Pérez", true)
	createTestMember(t, db, "000002", "María García", false)
	seedDeliveries(t, db, 1, 80)
	seedDeliveries(t, db, 2, 90)
	seedDeliveries(t, db, 3, 4)

	view, err := svc.GetView()
	if err != nil {
		t.Fatalf("get view failed: %v", err)
	}

	if len(view.Branches) != 3 {
		t.Fatalf("expected 3 branches, got %d", len(view.Branches))
	}
	// Ordered by target quota descending.
	if view.Branches[0].BranchName != "Tlaquepaque" || view.Branches[1].BranchName != "Matriz" {
		t.Fatalf("unexpected branch order: %s, %s", view.Branches[0].BranchName, view.Branches[1].BranchName)
	}

	tlaquepaque := view.Branches[0]
	if tlaquepaque.Percent != 45 || tlaquepaque.Tier != ProgressTierMedium {
		t.Fatalf("Tlaquepaque: percent=%d tier=%s", tlaquepaque.Percent, tlaquepaque.Tier)
	}
	matriz := view.Branches[1]
	if matriz.Percent != 80 || matriz.Tier != ProgressTierHigh {
		t.Fatalf("Matriz: percent=%d tier=%s", matriz.Percent, matriz.Tier)
	}
	ocotlan := view.Branches[2]
	if ocotlan.Percent != 0 || ocotlan.Tier != ProgressTierLow {
		t.Fatalf("Ocotlán: percent=%d tier=%s", ocotlan.Percent, ocotlan.Tier)
	}
	if ocotlan.Delivered != 4 {
		t.Fatalf("Ocotlán delivered=%d, want 4", ocotlan.Delivered)
	}

	totals := view.Totals
	if totals.WarehouseStock != 500 {
		t.Fatalf("warehouse=%d, want 500", totals.WarehouseStock)
	}
	if totals.BranchesOnHand != 35 {
		t.Fatalf("branches on hand=%d, want 35", totals.BranchesOnHand)
	}
	if totals.TotalQuota != 300 {
		t.Fatalf("total quota=%d, want 300", totals.TotalQuota)
	}
	if totals.TotalDelivered != 174 {
		t.Fatalf("total delivered=%d, want 174", totals.TotalDelivered)
	}
	if totals.MembersTotal != 2 || totals.MembersCollected != 1 {
		t.Fatalf("members total=%d collected=%d", totals.MembersTotal, totals.MembersCollected)
	}
}

func TestDashboardServiceEmptyRegistry(t *testing.T) {
	svc, db := setupDashboardServiceTest(t)
	if err := db.Create(&models.Branch{ID: 1, Name: "Matriz", TargetQuota: 100}).Error; err != nil {
		t.Fatalf("seed branch failed: %v", err)
	}

	view, err := svc.GetView()
	if err != nil {
		t.Fatalf("get view failed: %v", err)
	}
	if len(view.Branches) != 1 {
		t.Fatalf("expected 1 branch, got %d", len(view.Branches))
	}
	if view.Branches[0].Delivered != 0 || view.Branches[0].Percent != 0 {
		t.Fatal("branch without deliveries must report zero progress")
	}
	if view.Totals.MembersTotal != 0 || view.Totals.TotalDelivered != 0 {
		t.Fatal("empty registry must report zero totals")
	}
}
