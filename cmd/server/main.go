package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/sanjose-despensas/backend/internal/app"
	"github.com/sanjose-despensas/backend/internal/config"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("el secreto JWT es débil o sigue siendo el valor por defecto; configure una clave aleatoria fuerte en producción")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("advertencia: el secreto JWT es débil o sigue siendo el valor por defecto")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("fallo al inicializar la base de datos: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("fallo en la migración de la base de datos: %v", err)
	}

	// Seed the warehouse row and branch catalog on first boot.
	if err := models.InitWarehouse(cfg.Inventory.InitialWarehouseStock); err != nil {
		stdLog.Fatalf("fallo al inicializar el almacén central: %v", err)
	}
	if err := models.InitDefaultBranches(); err != nil {
		stdLog.Fatalf("fallo al inicializar las sucursales: %v", err)
	}

	defaultSuperUser := os.Getenv("DSJ_DEFAULT_SUPER_USERNAME")
	defaultSuperPass := os.Getenv("DSJ_DEFAULT_SUPER_PASSWORD")
	if cfg.Server.Mode == "release" && defaultSuperPass == "" {
		stdLog.Printf("advertencia: DSJ_DEFAULT_SUPER_PASSWORD no está definido; se omitió la creación del superusuario")
	} else if err := models.InitDefaultSuperUser(defaultSuperUser, defaultSuperPass); err != nil {
		stdLog.Printf("advertencia: fallo al crear el superusuario por defecto: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "modo de arranque: all (por defecto), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("fallo al ejecutar el servicio: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "============================================================" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "  Despensas San José · API de distribución" + ansiReset)
	fmt.Println(ansiCyan + "============================================================" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
