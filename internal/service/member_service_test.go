package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupMemberServiceTest(t *testing.T) (*MemberService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:member_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Member{},
		&models.Delivery{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	memberRepo := repository.NewMemberRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	return NewMemberService(memberRepo, deliveryRepo), db
}

func TestNormalizeMembershipNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"42", "000042"},
		{"000042", "000042"},
		{"  7 ", "000007"},
		{"1234567", "1234567"},
		{"A-15", "A-15"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeMembershipNumber(tc.in); got != tc.want {
			t.Fatalf("NormalizeMembershipNumber(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMemberServiceRegister(t *testing.T) {
	svc, _ := setupMemberServiceTest(t)

	member, err := svc.Register(RegisterInput{
		MembershipNumber: "42",
		Name:             "Juan Pérez García",
		Credential:       "CRED-000042",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if member.MembershipNumber != "000042" {
		t.Fatalf("expected normalized number 000042, got %s", member.MembershipNumber)
	}
	if member.Collected {
		t.Fatal("new member must start pending")
	}
}

func TestMemberServiceRegisterDuplicate(t *testing.T) {
	svc, _ := setupMemberServiceTest(t)

	if _, err := svc.Register(RegisterInput{MembershipNumber: "000042", Name: "Juan Pérez"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// "42" normalizes to the same number.
	_, err := svc.Register(RegisterInput{MembershipNumber: "42", Name: "Otro Socio"})
	if !errors.Is(err, ErrDuplicateMember) {
		t.Fatalf("expected ErrDuplicateMember, got %v", err)
	}
}

func TestMemberServiceRegisterBlankName(t *testing.T) {
	svc, _ := setupMemberServiceTest(t)

	_, err := svc.Register(RegisterInput{MembershipNumber: "000042", Name: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemberServiceRegisterAssignsNextNumber(t *testing.T) {
	svc, _ := setupMemberServiceTest(t)

	if _, err := svc.Register(RegisterInput{MembershipNumber: "000010", Name: "Primero"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	member, err := svc.Register(RegisterInput{Name: "Segundo"})
	if err != nil {
		t.Fatalf("register without number failed: %v", err)
	}
	if member.MembershipNumber != "000011" {
		t.Fatalf("expected next number 000011, got %s", member.MembershipNumber)
	}

	if _, err := svc.Register(RegisterInput{MembershipNumber: "A-15", Name: "Tercero"}); err != nil {
		t.Fatalf("register free-form number failed: %v", err)
	}
	member, err = svc.Register(RegisterInput{Name: "Cuarto"})
	if err != nil {
		t.Fatalf("register after free-form number failed: %v", err)
	}
	if member.MembershipNumber != "000012" {
		t.Fatalf("expected next number 000012, got %s", member.MembershipNumber)
	}
}

func TestMemberServiceSearchCap(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	for i := 1; i <= 15; i++ {
		createTestMember(t, db, fmt.Sprintf("%06d", i), fmt.Sprintf("Socio Común %d", i), false)
	}

	members, err := svc.Search("Común")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(members) != constants.MemberSearchLimit {
		t.Fatalf("expected %d results, got %d", constants.MemberSearchLimit, len(members))
	}
	if members[0].MembershipNumber != "000001" {
		t.Fatalf("expected ascending membership order, got %s first", members[0].MembershipNumber)
	}

	empty, err := svc.Search("   ")
	if err != nil {
		t.Fatalf("blank search failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank query must return no rows, got %d", len(empty))
	}
}

func TestMemberServiceSetCollected(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	member := createTestMember(t, db, "000001", "Juan Pérez", false)

	updated, err := svc.SetCollected(member.ID, true)
	if err != nil {
		t.Fatalf("set collected failed: %v", err)
	}
	if !updated.Collected {
		t.Fatal("collected not set")
	}

	updated, err = svc.SetCollected(member.ID, false)
	if err != nil {
		t.Fatalf("clear collected failed: %v", err)
	}
	if updated.Collected {
		t.Fatal("collected not cleared")
	}

	if _, err := svc.SetCollected(999, true); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestMemberServiceRemoveKeepsDeliveries(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	member := createTestMember(t, db, "000001", "Juan Pérez", true)
	delivery := models.Delivery{MemberID: member.ID, BranchID: 1, OperatorID: 1, Quantity: 1, DeliveredAt: time.Now()}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed delivery failed: %v", err)
	}

	if err := svc.Remove(member.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	var memberCount int64
	if err := db.Model(&models.Member{}).Count(&memberCount).Error; err != nil {
		t.Fatalf("count members failed: %v", err)
	}
	if memberCount != 0 {
		t.Fatalf("member not deleted: %d rows", memberCount)
	}
	var deliveryCount int64
	if err := db.Model(&models.Delivery{}).Count(&deliveryCount).Error; err != nil {
		t.Fatalf("count deliveries failed: %v", err)
	}
	if deliveryCount != 1 {
		t.Fatalf("delivery history lost on member removal: %d rows", deliveryCount)
	}

	if err := svc.Remove(member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound on second remove, got %v", err)
	}
}

func TestMemberServiceList(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	createTestMember(t, db, "000003", "Tercero", false)
	createTestMember(t, db, "000001", "Primero", true)
	createTestMember(t, db, "000002", "Segundo", false)

	members, total, err := svc.List(repository.MemberListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if members[0].MembershipNumber != "000001" || members[2].MembershipNumber != "000003" {
		t.Fatal("expected membership number ascending order")
	}

	collected, total, err := svc.List(repository.MemberListFilter{Page: 1, PageSize: 10, Status: constants.MemberFilterCollected})
	if err != nil {
		t.Fatalf("list collected failed: %v", err)
	}
	if total != 1 || len(collected) != 1 || !collected[0].Collected {
		t.Fatalf("expected exactly the collected member, got total %d", total)
	}

	pending, total, err := svc.List(repository.MemberListFilter{Page: 1, PageSize: 10, Status: constants.MemberFilterPending})
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if total != 2 || len(pending) != 2 {
		t.Fatalf("expected two pending members, got total %d", total)
	}

	page2, _, err := svc.List(repository.MemberListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(page2) != 1 || page2[0].MembershipNumber != "000003" {
		t.Fatal("expected last member on page 2")
	}
}

func TestMemberServiceImportBatch(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	createTestMember(t, db, "000001", "Ya Existe", false)

	inserted, skipped, err := svc.ImportBatch([]ImportRow{
		{MembershipNumber: "1", Name: "Duplicado Existente"},
		{MembershipNumber: "000002", Name: "Nuevo Dos"},
		{MembershipNumber: "2", Name: "Duplicado En Lote"},
		{MembershipNumber: "000003", Name: "   "},
		{MembershipNumber: "000004", Name: "Nuevo Cuatro", Credential: "CRED-000004"},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}
	if skipped != 3 {
		t.Fatalf("expected 3 skipped, got %d", skipped)
	}

	var count int64
	if err := db.Model(&models.Member{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 members total, got %d", count)
	}
}

func TestMemberServicePurgeAll(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	member := createTestMember(t, db, "000001", "Juan Pérez", true)
	delivery := models.Delivery{MemberID: member.ID, BranchID: 1, OperatorID: 1, Quantity: 1, DeliveredAt: time.Now()}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed delivery failed: %v", err)
	}

	if err := svc.PurgeAll(); err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	var memberCount, deliveryCount int64
	if err := db.Model(&models.Member{}).Count(&memberCount).Error; err != nil {
		t.Fatalf("count members failed: %v", err)
	}
	if err := db.Model(&models.Delivery{}).Count(&deliveryCount).Error; err != nil {
		t.Fatalf("count deliveries failed: %v", err)
	}
	if memberCount != 0 || deliveryCount != 0 {
		t.Fatalf("purge left rows: members=%d deliveries=%d", memberCount, deliveryCount)
	}
}

func TestMemberServiceExportCSV(t *testing.T) {
	svc, db := setupMemberServiceTest(t)
	createTestMember(t, db, "000002", "María García", true)
	createTestMember(t, db, "000001", "Juan Pérez", false)

	data, err := svc.ExportCSV()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "\xEF\xBB\xBF") {
		t.Fatal("expected UTF-8 BOM prefix")
	}
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(text, "\xEF\xBB\xBF")), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "numero_socio,nombre,credencial,recogio" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "000001,") || !strings.HasSuffix(strings.TrimSpace(lines[1]), ",no") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	if !strings.HasPrefix(lines[2], "000002,") || !strings.HasSuffix(strings.TrimSpace(lines[2]), ",si") {
		t.Fatalf("unexpected second row: %s", lines[2])
	}
}
