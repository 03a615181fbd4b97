package service

import (
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"gorm.io/gorm"
)

// StockService moves despensas between the central warehouse and branches.
// Every movement conserves total stock; amounts are whole despensas.
type StockService struct {
	branchRepo    repository.BranchRepository
	warehouseRepo repository.WarehouseRepository
	initialStock  int
}

func NewStockService(branchRepo repository.BranchRepository, warehouseRepo repository.WarehouseRepository, initialStock int) *StockService {
	return &StockService{
		branchRepo:    branchRepo,
		warehouseRepo: warehouseRepo,
		initialStock:  initialStock,
	}
}

// StockSnapshot is the read-only view of the ledger.
type StockSnapshot struct {
	Warehouse int              `json:"warehouse"`
	Branches  []BranchStockRow `json:"branches"`
	Total     int              `json:"total"`
}

// BranchStockRow is one branch line of the snapshot.
type BranchStockRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	TargetQuota int    `json:"target_quota"`
	OnHand      int    `json:"on_hand"`
}

// Snapshot returns warehouse quantity and all branch records in one read.
func (s *StockService) Snapshot() (*StockSnapshot, error) {
	warehouse, err := s.warehouseRepo.Get()
	if err != nil {
		return nil, err
	}

	branches, err := s.branchRepo.ListAll()
	if err != nil {
		return nil, err
	}

	snapshot := &StockSnapshot{
		Branches: make([]BranchStockRow, 0, len(branches)),
	}
	if warehouse != nil {
		snapshot.Warehouse = warehouse.Quantity
	}
	snapshot.Total = snapshot.Warehouse
	for _, branch := range branches {
		snapshot.Branches = append(snapshot.Branches, BranchStockRow{
			ID:          branch.ID,
			Name:        branch.Name,
			TargetQuota: branch.TargetQuota,
			OnHand:      branch.OnHand,
		})
		snapshot.Total += branch.OnHand
	}
	return snapshot, nil
}

// TransferToBranch moves amount despensas from the warehouse to a branch.
func (s *StockService) TransferToBranch(branchID uint, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		branchRepo := s.branchRepo.WithTx(tx)
		warehouseRepo := s.warehouseRepo.WithTx(tx)

		branch, err := branchRepo.GetByIDForUpdate(branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return ErrBranchNotFound
		}

		warehouse, err := warehouseRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if warehouse == nil || warehouse.Quantity < amount {
			return ErrInsufficientStock
		}

		warehouse.Quantity -= amount
		branch.OnHand += amount

		if err := warehouseRepo.Update(warehouse); err != nil {
			return err
		}
		return branchRepo.Update(branch)
	})
	if err != nil {
		return err
	}

	logger.Infow("stock_transferred",
		"direction", "warehouse_to_branch",
		"branch_id", branchID,
		"amount", amount,
	)
	return nil
}

// ReturnToWarehouse moves amount despensas from a branch back to the warehouse.
func (s *StockService) ReturnToWarehouse(branchID uint, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		branchRepo := s.branchRepo.WithTx(tx)
		warehouseRepo := s.warehouseRepo.WithTx(tx)

		branch, err := branchRepo.GetByIDForUpdate(branchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return ErrBranchNotFound
		}
		if branch.OnHand < amount {
			return ErrInsufficientStock
		}

		warehouse, err := warehouseRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if warehouse == nil {
			return ErrNotFound
		}

		branch.OnHand -= amount
		warehouse.Quantity += amount

		if err := branchRepo.Update(branch); err != nil {
			return err
		}
		return warehouseRepo.Update(warehouse)
	})
	if err != nil {
		return err
	}

	logger.Infow("stock_transferred",
		"direction", "branch_to_warehouse",
		"branch_id", branchID,
		"amount", amount,
	)
	return nil
}

// ResetAll restores the warehouse to its initial quantity and zeroes every
// branch. Delivery history is left untouched.
func (s *StockService) ResetAll() error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		branchRepo := s.branchRepo.WithTx(tx)
		warehouseRepo := s.warehouseRepo.WithTx(tx)

		warehouse, err := warehouseRepo.GetForUpdate()
		if err != nil {
			return err
		}
		if warehouse == nil {
			warehouse = &models.WarehouseStock{ID: models.WarehouseStockID}
		}
		warehouse.Quantity = s.initialStock

		if err := warehouseRepo.Update(warehouse); err != nil {
			return err
		}
		return branchRepo.ResetAllOnHand()
	})
	if err != nil {
		return err
	}

	logger.Warnw("stock_reset", "warehouse", s.initialStock)
	return nil
}
