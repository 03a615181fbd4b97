package models

import (
	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

type seedBranch struct {
	Name  string
	Quota int
}

func defaultBranches() []seedBranch {
	return []seedBranch{
		{"Matriz", 3350},
		{"Tlaquepaque", 1200},
		{"Insurgentes", 845},
		{"Getsemaní", 640},
		{"San Eugenio", 590},
		{"Tonalá", 565},
		{"El Sauz", 405},
		{"Laurel", 385},
		{"Circunvalación", 380},
		{"La Bandera", 300},
		{"Centro Sur", 275},
		{"San Sebastián", 250},
		{"San Onofre", 230},
		{"Copérnico", 225},
		{"Terraza Belenes", 200},
		{"Santa Teresita", 190},
		{"Constitución", 140},
		{"San Isidro", 135},
		{"Plaza Atemajac", 35},
		{"Ocotlán", 30},
		{"Tepatitlán", 10},
		{"Independencia", 10},
		{"Jocotepec", 10},
	}
}

// InitWarehouse creates the singleton warehouse row if missing.
func InitWarehouse(initialStock int) error {
	if initialStock <= 0 {
		initialStock = constants.DefaultWarehouseStock
	}
	var count int64
	if err := DB.Model(&WarehouseStock{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&WarehouseStock{ID: WarehouseStockID, Quantity: initialStock}).Error
}

// InitDefaultBranches seeds the branch roster on an empty database.
func InitDefaultBranches() error {
	var count int64
	if err := DB.Model(&Branch{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, seed := range defaultBranches() {
		branch := Branch{Name: seed.Name, TargetQuota: seed.Quota}
		if err := DB.Create(&branch).Error; err != nil {
			return err
		}
	}
	logger.Infow("default_branches_created", "count", len(defaultBranches()))
	return nil
}

// InitDefaultSuperUser creates the bootstrap super account when no users
// exist yet. Username/password default to super/123456 unless overridden.
func InitDefaultSuperUser(username, password string) error {
	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "super"
	}
	if password == "" {
		password = "123456"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:        username,
		PasswordHash:    string(hash),
		Name:            "Administrador Principal",
		Role:            constants.RoleSuper,
		AllowedBranches: constants.AllowedBranchesAll,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "123456" {
		logger.Warnw("default_super_created_with_default_password", "username", username)
		logger.Warnw("default_super_password_change_required", "username", username)
	} else {
		logger.Warnw("default_super_created", "username", username, "password_hidden", true)
	}
	return nil
}
