package repository

import (
	"github.com/sanjose-despensas/backend/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregates per-branch delivery statistics. It only
// reports raw counts; tiers and percentages are computed in the service.
type DashboardRepository interface {
	GetBranchStats() ([]DashboardBranchRow, error)
	GetTotals() (DashboardTotalsRow, error)
}

// DashboardBranchRow is the raw per-branch aggregate.
type DashboardBranchRow struct {
	BranchID    uint
	BranchName  string
	TargetQuota int
	OnHand      int
	Delivered   int64
}

// DashboardTotalsRow is the campaign-wide aggregate.
type DashboardTotalsRow struct {
	WarehouseStock   int
	BranchesOnHand   int64
	TotalQuota       int64
	TotalDelivered   int64
	MembersTotal     int64
	MembersCollected int64
}

// GormDashboardRepository is the GORM-backed aggregation implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetBranchStats joins branches against delivery counts, including
// branches with zero deliveries, ordered by target quota descending.
func (r *GormDashboardRepository) GetBranchStats() ([]DashboardBranchRow, error) {
	var rows []DashboardBranchRow
	err := r.db.Model(&models.Branch{}).
		Select(`branches.id AS branch_id,
branches.name AS branch_name,
branches.target_quota AS target_quota,
branches.on_hand AS on_hand,
COALESCE(SUM(deliveries.quantity), 0) AS delivered`).
		Joins("LEFT JOIN deliveries ON deliveries.branch_id = branches.id").
		Group("branches.id, branches.name, branches.target_quota, branches.on_hand").
		Order("branches.target_quota DESC, branches.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTotals collects the campaign-wide counters in one pass.
func (r *GormDashboardRepository) GetTotals() (DashboardTotalsRow, error) {
	result := DashboardTotalsRow{}

	var warehouse models.WarehouseStock
	if err := r.db.First(&warehouse, models.WarehouseStockID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return result, err
		}
	} else {
		result.WarehouseStock = warehouse.Quantity
	}

	type sumRow struct {
		OnHand int64
		Quota  int64
	}
	var sums sumRow
	if err := r.db.Model(&models.Branch{}).
		Select("COALESCE(SUM(on_hand), 0) AS on_hand, COALESCE(SUM(target_quota), 0) AS quota").
		Scan(&sums).Error; err != nil {
		return result, err
	}
	result.BranchesOnHand = sums.OnHand
	result.TotalQuota = sums.Quota

	var delivered int64
	if err := r.db.Model(&models.Delivery{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&delivered).Error; err != nil {
		return result, err
	}
	result.TotalDelivered = delivered

	if err := r.db.Model(&models.Member{}).Count(&result.MembersTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Member{}).
		Where("collected = ?", true).
		Count(&result.MembersCollected).Error; err != nil {
		return result, err
	}

	return result, nil
}
