package repository

import (
	"errors"

	"github.com/sanjose-despensas/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WarehouseRepository is the central stock data access interface. The
// warehouse is a single row; both reads and writes target it by ID.
type WarehouseRepository interface {
	Get() (*models.WarehouseStock, error)
	GetForUpdate() (*models.WarehouseStock, error)
	Update(stock *models.WarehouseStock) error
	WithTx(tx *gorm.DB) *GormWarehouseRepository
}

// GormWarehouseRepository is the GORM-backed warehouse repository.
type GormWarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormWarehouseRepository) WithTx(tx *gorm.DB) *GormWarehouseRepository {
	if tx == nil {
		return r
	}
	return &GormWarehouseRepository{db: tx}
}

func (r *GormWarehouseRepository) Get() (*models.WarehouseStock, error) {
	var stock models.WarehouseStock
	if err := r.db.First(&stock, models.WarehouseStockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

// GetForUpdate reads the warehouse row under a row lock for transfers.
func (r *GormWarehouseRepository) GetForUpdate() (*models.WarehouseStock, error) {
	var stock models.WarehouseStock
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&stock, models.WarehouseStockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *GormWarehouseRepository) Update(stock *models.WarehouseStock) error {
	return r.db.Save(stock).Error
}
