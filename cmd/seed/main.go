package main

import (
	"fmt"

	"github.com/sanjose-despensas/backend/internal/config"
	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// El catálogo de sucursales y el almacén central se crean igual que en
	// el primer arranque del servidor.
	if err := models.InitWarehouse(cfg.Inventory.InitialWarehouseStock); err != nil {
		stdLog.Fatalf("Failed to seed warehouse: %v", err)
	}
	if err := models.InitDefaultBranches(); err != nil {
		stdLog.Fatalf("Failed to seed branches: %v", err)
	}
	if err := models.InitDefaultSuperUser("", ""); err != nil {
		stdLog.Printf("Failed to seed super user: %v", err)
	}

	// Cuentas de demostración, una por rol. La sucursal 1 es la Matriz.
	staff := []struct {
		Username        string
		Password        string
		Name            string
		Role            string
		AllowedBranches string
	}{
		{Username: "admin.demo", Password: "Admin.2026", Name: "Alejandra Ruiz", Role: constants.RoleAdmin, AllowedBranches: constants.AllowedBranchesAll},
		{Username: "gerente.matriz", Password: "Gerente.2026", Name: "Héctor Medina", Role: constants.RoleBranchManager, AllowedBranches: "1"},
		{Username: "caja.matriz", Password: "Caja.2026", Name: "Lupita Hernández", Role: constants.RoleCashier, AllowedBranches: "1"},
		{Username: "caja.tlaquepaque", Password: "Caja.2026", Name: "Ramón Castillo", Role: constants.RoleCashier, AllowedBranches: "2"},
		{Username: "caja.movil", Password: "Caja.2026", Name: "Sofía Navarro", Role: constants.RoleRoamingCashier, AllowedBranches: constants.AllowedBranchesAll},
	}

	for _, account := range staff {
		var existing models.User
		if err := models.DB.Where("username = ?", account.Username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", account.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", account.Username, err)
			continue
		}
		user := models.User{
			Username:        account.Username,
			PasswordHash:    string(hash),
			Name:            account.Name,
			Role:            account.Role,
			AllowedBranches: account.AllowedBranches,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", account.Username, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", account.Username, account.Role)
		}
	}

	// Padrón de socios de demostración. Números consecutivos con relleno a
	// seis dígitos, como los emite la mesa directiva.
	var memberCount int64
	if err := models.DB.Model(&models.Member{}).Count(&memberCount).Error; err != nil {
		stdLog.Fatalf("Failed to count members: %v", err)
	}
	if memberCount > 0 {
		stdLog.Printf("Members already seeded: %d rows", memberCount)
	} else {
		members := demoMembers(200)
		if err := models.DB.CreateInBatches(members, 100).Error; err != nil {
			stdLog.Fatalf("Failed to seed members: %v", err)
		}
		stdLog.Printf("Created %d demo members", len(members))
	}

	fmt.Println("\nDatos de demostración listos.")
	fmt.Println("Resumen:")
	fmt.Println("- Almacén central y 23 sucursales")
	fmt.Println("- 1 superusuario + 5 cuentas de personal")
	fmt.Println("- 200 socios de demostración")
}

var demoGivenNames = []string{
	"Juan", "María", "José", "Guadalupe", "Francisco", "Verónica", "Antonio",
	"Leticia", "Jesús", "Rosa", "Miguel", "Carmen", "Pedro", "Alicia",
	"Alejandro", "Patricia", "Fernando", "Margarita", "Ricardo", "Teresa",
}

var demoSurnames = []string{
	"Pérez", "García", "Hernández", "López", "Martínez", "González",
	"Rodríguez", "Sánchez", "Ramírez", "Torres", "Flores", "Rivera",
	"Gómez", "Díaz", "Reyes", "Morales", "Ortiz", "Gutiérrez",
}

func demoMembers(n int) []models.Member {
	members := make([]models.Member, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s %s",
			demoGivenNames[i%len(demoGivenNames)],
			demoSurnames[i%len(demoSurnames)],
			demoSurnames[(i/len(demoSurnames)+i)%len(demoSurnames)],
		)
		members = append(members, models.Member{
			MembershipNumber: fmt.Sprintf("%06d", i+1),
			Name:             name,
			Credential:       fmt.Sprintf("CRED-%06d", i+1),
		})
	}
	return members
}
