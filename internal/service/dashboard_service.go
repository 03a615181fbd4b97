package service

import (
	"math"

	"github.com/sanjose-despensas/backend/internal/repository"
)

// Progress tiers for the per-branch delivery view.
const (
	ProgressTierLow    = "low"
	ProgressTierMedium = "medium"
	ProgressTierHigh   = "high"
)

// DashboardService derives the per-branch progress view from raw
// aggregates. Reading it never mutates state.
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// BranchProgress is one branch line of the dashboard.
type BranchProgress struct {
	BranchID    uint   `json:"branch_id"`
	BranchName  string `json:"branch_name"`
	TargetQuota int    `json:"target_quota"`
	OnHand      int    `json:"on_hand"`
	Delivered   int64  `json:"delivered"`
	Percent     int    `json:"percent"`
	Tier        string `json:"tier"`
}

// DashboardView is the full aggregation response.
type DashboardView struct {
	Branches []BranchProgress `json:"branches"`
	Totals   DashboardTotals  `json:"totals"`
}

// DashboardTotals summarizes the whole campaign.
type DashboardTotals struct {
	WarehouseStock   int   `json:"warehouse_stock"`
	BranchesOnHand   int64 `json:"branches_on_hand"`
	TotalQuota       int64 `json:"total_quota"`
	TotalDelivered   int64 `json:"total_delivered"`
	MembersTotal     int64 `json:"members_total"`
	MembersCollected int64 `json:"members_collected"`
}

// GetView builds the dashboard, branches ordered by target quota
// descending.
func (s *DashboardService) GetView() (*DashboardView, error) {
	rows, err := s.dashboardRepo.GetBranchStats()
	if err != nil {
		return nil, err
	}
	totals, err := s.dashboardRepo.GetTotals()
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Branches: make([]BranchProgress, 0, len(rows)),
		Totals: DashboardTotals{
			WarehouseStock:   totals.WarehouseStock,
			BranchesOnHand:   totals.BranchesOnHand,
			TotalQuota:       totals.TotalQuota,
			TotalDelivered:   totals.TotalDelivered,
			MembersTotal:     totals.MembersTotal,
			MembersCollected: totals.MembersCollected,
		},
	}

	for _, row := range rows {
		percent := progressPercent(row.Delivered, row.TargetQuota)
		view.Branches = append(view.Branches, BranchProgress{
			BranchID:    row.BranchID,
			BranchName:  row.BranchName,
			TargetQuota: row.TargetQuota,
			OnHand:      row.OnHand,
			Delivered:   row.Delivered,
			Percent:     percent,
			Tier:        progressTier(row.TargetQuota, percent),
		})
	}
	return view, nil
}

// progressPercent is round(100*delivered/quota) capped at 100, 0 when the
// quota is zero.
func progressPercent(delivered int64, quota int) int {
	if quota <= 0 {
		return 0
	}
	percent := int(math.Round(float64(delivered) * 100 / float64(quota)))
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// progressTier classifies a branch: no quota is always low, 75% and up is
// high, 40% and up is medium.
func progressTier(quota, percent int) string {
	if quota <= 0 {
		return ProgressTierLow
	}
	switch {
	case percent >= 75:
		return ProgressTierHigh
	case percent >= 40:
		return ProgressTierMedium
	default:
		return ProgressTierLow
	}
}
