package repository

import (
	"errors"

	"github.com/sanjose-despensas/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BranchRepository is the branch data access interface.
type BranchRepository interface {
	GetByID(id uint) (*models.Branch, error)
	GetByIDForUpdate(id uint) (*models.Branch, error)
	GetByName(name string) (*models.Branch, error)
	ListAll() ([]models.Branch, error)
	Create(branch *models.Branch) error
	Update(branch *models.Branch) error
	ResetAllOnHand() error
	WithTx(tx *gorm.DB) *GormBranchRepository
}

// GormBranchRepository is the GORM-backed branch repository.
type GormBranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormBranchRepository) WithTx(tx *gorm.DB) *GormBranchRepository {
	if tx == nil {
		return r
	}
	return &GormBranchRepository{db: tx}
}

func (r *GormBranchRepository) GetByID(id uint) (*models.Branch, error) {
	if id == 0 {
		return nil, nil
	}
	var branch models.Branch
	if err := r.db.First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

// GetByIDForUpdate reads a branch under a row lock for stock mutation.
func (r *GormBranchRepository) GetByIDForUpdate(id uint) (*models.Branch, error) {
	if id == 0 {
		return nil, nil
	}
	var branch models.Branch
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&branch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *GormBranchRepository) GetByName(name string) (*models.Branch, error) {
	if name == "" {
		return nil, nil
	}
	var branch models.Branch
	if err := r.db.Where("name = ?", name).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

// ListAll returns every branch ordered by target quota, largest first.
func (r *GormBranchRepository) ListAll() ([]models.Branch, error) {
	var branches []models.Branch
	if err := r.db.Order("target_quota desc, id asc").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *GormBranchRepository) Create(branch *models.Branch) error {
	return r.db.Create(branch).Error
}

func (r *GormBranchRepository) Update(branch *models.Branch) error {
	return r.db.Save(branch).Error
}

// ResetAllOnHand zeroes the on-hand stock of every branch.
func (r *GormBranchRepository) ResetAllOnHand() error {
	return r.db.Model(&models.Branch{}).
		Where("1 = 1").
		Update("on_hand", 0).Error
}
