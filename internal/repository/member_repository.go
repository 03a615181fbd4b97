package repository

import (
	"errors"
	"strings"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberRepository is the member registry data access interface.
type MemberRepository interface {
	GetByID(id uint) (*models.Member, error)
	GetByIDForUpdate(id uint) (*models.Member, error)
	GetByMembershipNumber(number string) (*models.Member, error)
	Search(keyword string, limit int) ([]models.Member, error)
	List(filter MemberListFilter) ([]models.Member, int64, error)
	ListAllOrdered() ([]models.Member, error)
	Create(member *models.Member) error
	CreateBatch(members []models.Member) error
	Update(member *models.Member) error
	Delete(id uint) error
	DeleteAll() error
	MaxMembershipNumber() (string, error)
	Count() (int64, error)
	WithTx(tx *gorm.DB) *GormMemberRepository
}

// GormMemberRepository is the GORM-backed member repository.
type GormMemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormMemberRepository) WithTx(tx *gorm.DB) *GormMemberRepository {
	if tx == nil {
		return r
	}
	return &GormMemberRepository{db: tx}
}

func (r *GormMemberRepository) GetByID(id uint) (*models.Member, error) {
	if id == 0 {
		return nil, nil
	}
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// GetByIDForUpdate reads a member under a row lock so the collected flag
// cannot flip between the check and the delivery insert.
func (r *GormMemberRepository) GetByIDForUpdate(id uint) (*models.Member, error) {
	if id == 0 {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *GormMemberRepository) GetByMembershipNumber(number string) (*models.Member, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, nil
	}
	var member models.Member
	if err := r.db.Where("membership_number = ?", number).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// Search matches the keyword against membership number and name, capped
// at limit rows and ordered by membership number.
func (r *GormMemberRepository) Search(keyword string, limit int) ([]models.Member, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Member{}, nil
	}
	if limit <= 0 {
		limit = constants.MemberSearchLimit
	}

	like := "%" + keyword + "%"
	operator := likeOperator(r.db)

	var members []models.Member
	if err := r.db.
		Where("membership_number "+operator+" ? OR name "+operator+" ?", like, like).
		Order("membership_number asc").
		Limit(limit).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// List returns members paginated, filtered by collected status and ordered
// by membership number ascending.
func (r *GormMemberRepository) List(filter MemberListFilter) ([]models.Member, int64, error) {
	query := r.db.Model(&models.Member{})

	switch filter.Status {
	case constants.MemberFilterCollected:
		query = query.Where("collected = ?", true)
	case constants.MemberFilterPending:
		query = query.Where("collected = ?", false)
	}

	if keyword := strings.TrimSpace(filter.Search); keyword != "" {
		like := "%" + keyword + "%"
		operator := likeOperator(r.db)
		query = query.Where("membership_number "+operator+" ? OR name "+operator+" ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var members []models.Member
	if err := query.Order("membership_number asc").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListAllOrdered returns the full registry ordered by membership number,
// used by the export endpoint.
func (r *GormMemberRepository) ListAllOrdered() ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Order("membership_number asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// CreateBatch inserts members in chunks for the bulk import worker.
func (r *GormMemberRepository) CreateBatch(members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	return r.db.CreateInBatches(members, 200).Error
}

func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete removes a member permanently.
func (r *GormMemberRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Unscoped().Delete(&models.Member{}, id).Error
}

// DeleteAll empties the registry ahead of a fresh import.
func (r *GormMemberRepository) DeleteAll() error {
	return r.db.Unscoped().Where("1 = 1").Delete(&models.Member{}).Error
}

// MaxMembershipNumber returns the highest numeric number, "" when none
// exists. Free-form numbers ("A-15") are skipped so auto-assignment
// never restarts below an already taken value.
func (r *GormMemberRepository) MaxMembershipNumber() (string, error) {
	var number string
	err := r.db.Model(&models.Member{}).
		Select("membership_number").
		Where(digitsOnlyPredicate(r.db, "membership_number")).
		Order("CAST(membership_number AS INTEGER) DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

func (r *GormMemberRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
