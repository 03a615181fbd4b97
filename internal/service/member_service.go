package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"gorm.io/gorm"
)

// MemberService maintains the entitlement registry: who may collect a
// despensa and whether they already did.
type MemberService struct {
	memberRepo   repository.MemberRepository
	deliveryRepo repository.DeliveryRepository
}

func NewMemberService(memberRepo repository.MemberRepository, deliveryRepo repository.DeliveryRepository) *MemberService {
	return &MemberService{
		memberRepo:   memberRepo,
		deliveryRepo: deliveryRepo,
	}
}

// NormalizeMembershipNumber pads numeric membership numbers to six digits
// so "42" and "000042" address the same member.
func NormalizeMembershipNumber(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if _, err := strconv.Atoi(number); err != nil {
		return number
	}
	for len(number) < 6 {
		number = "0" + number
	}
	return number
}

// Search matches the query against membership number and name, capped at
// ten results.
func (s *MemberService) Search(query string) ([]models.Member, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Member{}, nil
	}
	return s.memberRepo.Search(query, constants.MemberSearchLimit)
}

// GetByID returns a member or ErrMemberNotFound.
func (s *MemberService) GetByID(id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// RegisterInput carries a new registry entry.
type RegisterInput struct {
	MembershipNumber string
	Name             string
	Credential       string
}

// Register creates a member with collected=false. An empty membership
// number gets the next free one assigned.
func (s *MemberService) Register(input RegisterInput) (*models.Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: falta el nombre", ErrInvalidInput)
	}

	var member *models.Member
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)

		number := NormalizeMembershipNumber(input.MembershipNumber)
		if number == "" {
			next, err := s.nextMembershipNumber(memberRepo)
			if err != nil {
				return err
			}
			number = next
		}

		existing, err := memberRepo.GetByMembershipNumber(number)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateMember
		}

		member = &models.Member{
			MembershipNumber: number,
			Name:             name,
			Credential:       strings.TrimSpace(input.Credential),
		}
		return memberRepo.Create(member)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("member_registered",
		"member_id", member.ID,
		"membership_number", member.MembershipNumber,
	)
	return member, nil
}

// SetCollected overrides the collected flag without touching stock or the
// event log. Meant for manual corrections.
func (s *MemberService) SetCollected(id uint, collected bool) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	member.Collected = collected
	if err := s.memberRepo.Update(member); err != nil {
		return nil, err
	}

	logger.Warnw("member_collected_override",
		"member_id", member.ID,
		"collected", collected,
	)
	return member, nil
}

// Remove deletes a member permanently. Delivery events stay in the log.
func (s *MemberService) Remove(id uint) error {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}

	if err := s.memberRepo.Delete(id); err != nil {
		return err
	}
	logger.Warnw("member_removed",
		"member_id", id,
		"membership_number", member.MembershipNumber,
	)
	return nil
}

// List returns the registry paginated, ordered by membership number.
func (s *MemberService) List(filter repository.MemberListFilter) ([]models.Member, int64, error) {
	switch filter.Status {
	case "", constants.MemberFilterAll, constants.MemberFilterCollected, constants.MemberFilterPending:
	default:
		filter.Status = constants.MemberFilterAll
	}
	return s.memberRepo.List(filter)
}

// ImportRow is one member of a bulk import payload.
type ImportRow struct {
	MembershipNumber string `json:"membership_number"`
	Name             string `json:"name"`
	Credential       string `json:"credential"`
}

// ImportBatch inserts rows in one transaction, skipping duplicates and
// blank names. Returns inserted and skipped counts.
func (s *MemberService) ImportBatch(rows []ImportRow) (int, int, error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	inserted := 0
	skipped := 0
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)

		batch := make([]models.Member, 0, len(rows))
		seen := make(map[string]struct{}, len(rows))
		for _, row := range rows {
			name := strings.TrimSpace(row.Name)
			number := NormalizeMembershipNumber(row.MembershipNumber)
			if name == "" || number == "" {
				skipped++
				continue
			}
			if _, dup := seen[number]; dup {
				skipped++
				continue
			}
			existing, err := memberRepo.GetByMembershipNumber(number)
			if err != nil {
				return err
			}
			if existing != nil {
				skipped++
				continue
			}
			seen[number] = struct{}{}
			batch = append(batch, models.Member{
				MembershipNumber: number,
				Name:             name,
				Credential:       strings.TrimSpace(row.Credential),
			})
		}

		if err := memberRepo.CreateBatch(batch); err != nil {
			return err
		}
		inserted = len(batch)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	logger.Infow("members_imported", "inserted", inserted, "skipped", skipped)
	return inserted, skipped, nil
}

// PurgeAll empties the registry and the delivery log for a new campaign.
func (s *MemberService) PurgeAll() error {
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.deliveryRepo.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		return s.memberRepo.WithTx(tx).DeleteAll()
	})
	if err != nil {
		return err
	}
	logger.Warnw("members_purged")
	return nil
}

// ExportCSV renders the registry as CSV with a UTF-8 BOM so spreadsheet
// programs pick up accented names.
func (s *MemberService) ExportCSV() ([]byte, error) {
	members, err := s.memberRepo.ListAllOrdered()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"numero_socio", "nombre", "credencial", "recogio"}); err != nil {
		return nil, err
	}
	for _, member := range members {
		collected := "no"
		if member.Collected {
			collected = "si"
		}
		if err := writer.Write([]string{
			member.MembershipNumber,
			member.Name,
			member.Credential,
			collected,
		}); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MemberService) nextMembershipNumber(memberRepo repository.MemberRepository) (string, error) {
	max, err := memberRepo.MaxMembershipNumber()
	if err != nil {
		return "", err
	}
	last := 0
	if max != "" {
		if parsed, err := strconv.Atoi(max); err == nil {
			last = parsed
		}
	}
	return NormalizeMembershipNumber(strconv.Itoa(last + 1)), nil
}
