package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStockServiceTest(t *testing.T) (*StockService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:stock_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	branchRepo := repository.NewBranchRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	return NewStockService(branchRepo, warehouseRepo, 10500), db
}

func seedStock(t *testing.T, db *gorm.DB, warehouse int, branches ...models.Branch) {
	t.Helper()
	if err := db.Create(&models.WarehouseStock{ID: models.WarehouseStockID, Quantity: warehouse}).Error; err != nil {
		t.Fatalf("seed warehouse failed: %v", err)
	}
	for i := range branches {
		if err := db.Create(&branches[i]).Error; err != nil {
			t.Fatalf("seed branch failed: %v", err)
		}
	}
}

func totalStock(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var warehouse models.WarehouseStock
	if err := db.First(&warehouse, models.WarehouseStockID).Error; err != nil {
		t.Fatalf("load warehouse failed: %v", err)
	}
	var branchSum int64
	if err := db.Model(&models.Branch{}).Select("COALESCE(SUM(on_hand), 0)").Scan(&branchSum).Error; err != nil {
		t.Fatalf("sum branches failed: %v", err)
	}
	return warehouse.Quantity + int(branchSum)
}

func TestStockServiceTransferToBranch(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 100, models.Branch{ID: 1, Name: "Matriz", TargetQuota: 50})

	if err := svc.TransferToBranch(1, 30); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	var branch models.Branch
	if err := db.First(&branch, 1).Error; err != nil {
		t.Fatalf("load branch failed: %v", err)
	}
	if branch.OnHand != 30 {
		t.Fatalf("expected branch on_hand 30, got %d", branch.OnHand)
	}
	var warehouse models.WarehouseStock
	if err := db.First(&warehouse, models.WarehouseStockID).Error; err != nil {
		t.Fatalf("load warehouse failed: %v", err)
	}
	if warehouse.Quantity != 70 {
		t.Fatalf("expected warehouse 70, got %d", warehouse.Quantity)
	}
	if total := totalStock(t, db); total != 100 {
		t.Fatalf("stock not conserved: total %d", total)
	}
}

func TestStockServiceTransferInvalidAmount(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 100, models.Branch{ID: 1, Name: "Matriz"})

	for _, amount := range []int{0, -5} {
		if err := svc.TransferToBranch(1, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if total := totalStock(t, db); total != 100 {
		t.Fatalf("stock changed on rejected transfer: total %d", total)
	}
}

func TestStockServiceTransferInsufficientWarehouse(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 10, models.Branch{ID: 1, Name: "Matriz"})

	if err := svc.TransferToBranch(1, 11); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if total := totalStock(t, db); total != 10 {
		t.Fatalf("stock changed on rejected transfer: total %d", total)
	}
}

func TestStockServiceTransferUnknownBranch(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 100)

	if err := svc.TransferToBranch(99, 5); !errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestStockServiceReturnToWarehouse(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 50, models.Branch{ID: 1, Name: "Matriz", OnHand: 40})

	if err := svc.ReturnToWarehouse(1, 15); err != nil {
		t.Fatalf("return failed: %v", err)
	}

	var branch models.Branch
	if err := db.First(&branch, 1).Error; err != nil {
		t.Fatalf("load branch failed: %v", err)
	}
	if branch.OnHand != 25 {
		t.Fatalf("expected branch on_hand 25, got %d", branch.OnHand)
	}
	if total := totalStock(t, db); total != 90 {
		t.Fatalf("stock not conserved: total %d", total)
	}
}

func TestStockServiceReturnInsufficientBranch(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 50, models.Branch{ID: 1, Name: "Matriz", OnHand: 3})

	if err := svc.ReturnToWarehouse(1, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if total := totalStock(t, db); total != 53 {
		t.Fatalf("stock changed on rejected return: total %d", total)
	}
}

func TestStockServiceResetAllKeepsDeliveries(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 8000,
		models.Branch{ID: 1, Name: "Matriz", OnHand: 1500},
		models.Branch{ID: 2, Name: "Tlaquepaque", OnHand: 1000},
	)
	delivery := models.Delivery{MemberID: 1, BranchID: 1, OperatorID: 1, Quantity: 1, DeliveredAt: time.Now()}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed delivery failed: %v", err)
	}

	if err := svc.ResetAll(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	var warehouse models.WarehouseStock
	if err := db.First(&warehouse, models.WarehouseStockID).Error; err != nil {
		t.Fatalf("load warehouse failed: %v", err)
	}
	if warehouse.Quantity != 10500 {
		t.Fatalf("expected warehouse 10500, got %d", warehouse.Quantity)
	}

	var branches []models.Branch
	if err := db.Find(&branches).Error; err != nil {
		t.Fatalf("load branches failed: %v", err)
	}
	for _, branch := range branches {
		if branch.OnHand != 0 {
			t.Fatalf("branch %d not zeroed: on_hand %d", branch.ID, branch.OnHand)
		}
	}

	var deliveryCount int64
	if err := db.Model(&models.Delivery{}).Count(&deliveryCount).Error; err != nil {
		t.Fatalf("count deliveries failed: %v", err)
	}
	if deliveryCount != 1 {
		t.Fatalf("reset touched delivery history: %d rows", deliveryCount)
	}
}

func TestStockServiceSnapshot(t *testing.T) {
	svc, db := setupStockServiceTest(t)
	seedStock(t, db, 70,
		models.Branch{ID: 1, Name: "Matriz", TargetQuota: 100, OnHand: 20},
		models.Branch{ID: 2, Name: "Tlaquepaque", TargetQuota: 50, OnHand: 10},
	)

	snapshot, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.Warehouse != 70 {
		t.Fatalf("expected warehouse 70, got %d", snapshot.Warehouse)
	}
	if snapshot.Total != 100 {
		t.Fatalf("expected total 100, got %d", snapshot.Total)
	}
	if len(snapshot.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(snapshot.Branches))
	}
	// ListAll orders by target quota desc.
	if snapshot.Branches[0].Name != "Matriz" {
		t.Fatalf("expected Matriz first, got %s", snapshot.Branches[0].Name)
	}
}
