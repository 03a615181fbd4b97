package repository

import (
	"errors"

	"github.com/sanjose-despensas/backend/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository is the delivery event data access interface. Events
// are insert-only; there is no update path.
type DeliveryRepository interface {
	Create(delivery *models.Delivery) error
	GetByID(id uint) (*models.Delivery, error)
	GetByMemberID(memberID uint) (*models.Delivery, error)
	List(filter DeliveryListFilter) ([]models.Delivery, int64, error)
	CountByBranch(branchID uint) (int64, error)
	DeleteAll() error
	WithTx(tx *gorm.DB) *GormDeliveryRepository
}

// GormDeliveryRepository is the GORM-backed delivery repository.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormDeliveryRepository) WithTx(tx *gorm.DB) *GormDeliveryRepository {
	if tx == nil {
		return r
	}
	return &GormDeliveryRepository{db: tx}
}

func (r *GormDeliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *GormDeliveryRepository) GetByID(id uint) (*models.Delivery, error) {
	if id == 0 {
		return nil, nil
	}
	var delivery models.Delivery
	if err := r.db.First(&delivery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *GormDeliveryRepository) GetByMemberID(memberID uint) (*models.Delivery, error) {
	if memberID == 0 {
		return nil, nil
	}
	var delivery models.Delivery
	if err := r.db.Where("member_id = ?", memberID).First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *GormDeliveryRepository) List(filter DeliveryListFilter) ([]models.Delivery, int64, error) {
	query := r.db.Model(&models.Delivery{})
	if filter.BranchID != 0 {
		query = query.Where("branch_id = ?", filter.BranchID)
	}
	if filter.OperatorID != 0 {
		query = query.Where("operator_id = ?", filter.OperatorID)
	}
	if filter.DeliveredFrom != nil {
		query = query.Where("delivered_at >= ?", *filter.DeliveredFrom)
	}
	if filter.DeliveredTo != nil {
		query = query.Where("delivered_at <= ?", *filter.DeliveredTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var deliveries []models.Delivery
	if err := query.Order("id desc").Find(&deliveries).Error; err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

func (r *GormDeliveryRepository) CountByBranch(branchID uint) (int64, error) {
	var total int64
	query := r.db.Model(&models.Delivery{})
	if branchID != 0 {
		query = query.Where("branch_id = ?", branchID)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteAll empties the event log when the registry is purged for a new
// campaign.
func (r *GormDeliveryRepository) DeleteAll() error {
	return r.db.Unscoped().Where("1 = 1").Delete(&models.Delivery{}).Error
}
