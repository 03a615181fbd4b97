package service

import (
	"strings"
	"time"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"

	"gorm.io/gorm"
)

// DeliveryService records despensa handovers. A delivery is a single
// atomic step: the member must exist and be pending, the branch must hold
// stock, then the event is inserted, the member flipped to collected and
// the branch decremented — all in one transaction.
type DeliveryService struct {
	memberRepo   repository.MemberRepository
	branchRepo   repository.BranchRepository
	deliveryRepo repository.DeliveryRepository
}

func NewDeliveryService(memberRepo repository.MemberRepository, branchRepo repository.BranchRepository, deliveryRepo repository.DeliveryRepository) *DeliveryService {
	return &DeliveryService{
		memberRepo:   memberRepo,
		branchRepo:   branchRepo,
		deliveryRepo: deliveryRepo,
	}
}

// RecordDeliveryInput carries the handover details.
type RecordDeliveryInput struct {
	MemberID   uint
	BranchID   uint
	OperatorID uint
	// PickedUpBy is who physically collected; defaults to the member.
	PickedUpBy string
}

// RecordDelivery performs the atomic handover and returns the event.
func (s *DeliveryService) RecordDelivery(input RecordDeliveryInput) (*models.Delivery, error) {
	var delivery *models.Delivery

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)
		branchRepo := s.branchRepo.WithTx(tx)
		deliveryRepo := s.deliveryRepo.WithTx(tx)

		member, err := memberRepo.GetByIDForUpdate(input.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}
		if member.Collected {
			return ErrAlreadyCollected
		}

		branch, err := branchRepo.GetByIDForUpdate(input.BranchID)
		if err != nil {
			return err
		}
		if branch == nil {
			return ErrBranchNotFound
		}
		if branch.OnHand < constants.DeliveryQuantity {
			return ErrInsufficientStock
		}

		pickedUpBy := strings.TrimSpace(input.PickedUpBy)
		if pickedUpBy == "" {
			pickedUpBy = member.Name
		}

		delivery = &models.Delivery{
			MemberID:    member.ID,
			BranchID:    branch.ID,
			OperatorID:  input.OperatorID,
			Quantity:    constants.DeliveryQuantity,
			PickedUpBy:  pickedUpBy,
			DeliveredAt: time.Now(),
		}
		if err := deliveryRepo.Create(delivery); err != nil {
			return err
		}

		member.Collected = true
		if err := memberRepo.Update(member); err != nil {
			return err
		}

		branch.OnHand -= constants.DeliveryQuantity
		return branchRepo.Update(branch)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("delivery_recorded",
		"member_id", delivery.MemberID,
		"branch_id", delivery.BranchID,
		"operator_id", delivery.OperatorID,
		"picked_up_by", delivery.PickedUpBy,
	)
	return delivery, nil
}

// ListDeliveries returns delivery events, newest first.
func (s *DeliveryService) ListDeliveries(filter repository.DeliveryListFilter) ([]models.Delivery, int64, error) {
	return s.deliveryRepo.List(filter)
}
