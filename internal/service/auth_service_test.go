package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sanjose-despensas/backend/internal/config"
	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret-key-0123456789"
	cfg.JWT.ExpireHours = 8
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}
	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func createTestStaff(t *testing.T, svc *AuthService, db *gorm.DB, username, password, role string) *models.User {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:        username,
		PasswordHash:    hash,
		Name:            "Cuenta de Prueba",
		Role:            role,
		AllowedBranches: "1",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestStaff(t, svc, db, "caja.matriz", "Caja.2026x", constants.RoleCashier)

	user, token, expiresAt, err := svc.Login("caja.matriz", "Caja.2026x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if !expiresAt.After(time.Now().Add(7 * time.Hour)) {
		t.Fatalf("token expires too soon: %v", expiresAt)
	}
	if user.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleCashier {
		t.Fatalf("unexpected claims: user=%d role=%s", claims.UserID, claims.Role)
	}
	if claims.AllowedBranches != "1" {
		t.Fatalf("unexpected branch scope: %s", claims.AllowedBranches)
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestStaff(t, svc, db, "caja.matriz", "Caja.2026x", constants.RoleCashier)

	_, _, _, err := svc.Login("caja.matriz", "incorrecta")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, _, _, err = svc.Login("no.existe", "Caja.2026x")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthServiceParseRejectsTampered(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := createTestStaff(t, svc, db, "caja.matriz", "Caja.2026x", constants.RoleCashier)

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := svc.ParseJWT("no-es-un-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := createTestStaff(t, svc, db, "caja.matriz", "Caja.2026x", constants.RoleCashier)

	if err := svc.ChangePassword(user.ID, "incorrecta", "Nueva.2026x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Caja.2026x", "corta1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Caja.2026x", "nueva.clave.2026"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version not advanced: %d", updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatal("token invalid-before not set")
	}
	if err := svc.VerifyPassword(updated.PasswordHash, "nueva.clave.2026"); err != nil {
		t.Fatal("new password does not verify")
	}
}

func TestAuthServiceVerifySupervisorOverride(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestStaff(t, svc, db, "gerente.matriz", "Gerente.2026x", constants.RoleBranchManager)
	createTestStaff(t, svc, db, "caja.movil", "Caja.2026x", constants.RoleRoamingCashier)

	supervisor, err := svc.VerifySupervisorOverride("gerente.matriz", "Gerente.2026x")
	if err != nil {
		t.Fatalf("supervisor override failed: %v", err)
	}
	if supervisor.Username != "gerente.matriz" {
		t.Fatalf("unexpected supervisor: %s", supervisor.Username)
	}

	if _, err := svc.VerifySupervisorOverride("gerente.matriz", "incorrecta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.VerifySupervisorOverride("no.existe", "Gerente.2026x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	// A cashier cannot authorize their own branch change, even with
	// valid credentials.
	if _, err := svc.VerifySupervisorOverride("caja.movil", "Caja.2026x"); !errors.Is(err, ErrSupervisorRequired) {
		t.Fatalf("expected ErrSupervisorRequired, got %v", err)
	}
	if _, err := svc.VerifySupervisorOverride("", ""); !errors.Is(err, ErrSupervisorRequired) {
		t.Fatalf("expected ErrSupervisorRequired for blank credentials, got %v", err)
	}
}

func TestAuthServiceRevokeTokens(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := createTestStaff(t, svc, db, "caja.matriz", "Caja.2026x", constants.RoleCashier)

	if err := svc.RevokeTokens(user.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 || updated.TokenInvalidBefore == nil {
		t.Fatal("revocation markers not set")
	}

	if err := svc.RevokeTokens(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
