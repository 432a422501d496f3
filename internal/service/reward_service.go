package service

import (
	"fmt"
	"log"

	"criavo/internal/domain"
	"criavo/internal/models"
	"criavo/internal/repository"
)

// RewardService owns the creator-reward lifecycle. Transition legality is
// enforced here and in the repository against the stored state, never
// inferred from whatever status the client sends.
type RewardService struct {
	rewardRepo *repository.RewardRepository
	walletRepo *repository.WalletRepository
	ledger     *LedgerService
}

func NewRewardService(rewardRepo *repository.RewardRepository, walletRepo *repository.WalletRepository, ledger *LedgerService) *RewardService {
	return &RewardService{rewardRepo: rewardRepo, walletRepo: walletRepo, ledger: ledger}
}

// Create registers a pending reward. Eligibility was already decided by the
// external scorer; this service only validates shape.
func (s *RewardService) Create(reward *models.CreatorReward) error {
	switch reward.Type {
	case domain.RewardRankingPlace, domain.RewardMilestone, domain.RewardBonus:
	default:
		return domain.ErrInvalidTransition
	}
	switch reward.RewardType {
	case domain.RewardKindCash, domain.RewardKindProduct, domain.RewardKindVoucher, domain.RewardKindCustom:
	default:
		return domain.ErrInvalidTransition
	}
	if reward.RewardType == domain.RewardKindCash {
		if reward.ValueCents == nil || *reward.ValueCents <= 0 {
			return domain.ErrInvalidAmount
		}
	}
	reward.Status = domain.RewardPending
	return s.rewardRepo.Create(reward)
}

func (s *RewardService) Approve(rewardID, actorID uint) (*models.CreatorReward, error) {
	return s.rewardRepo.Transition(rewardID, domain.RewardApproved, actorID, "approved by company", nil)
}

func (s *RewardService) Reject(rewardID, actorID uint, note string) (*models.CreatorReward, error) {
	return s.rewardRepo.Transition(rewardID, domain.RewardRejected, actorID, note, nil)
}

func (s *RewardService) Cancel(rewardID, actorID uint, note string) (*models.CreatorReward, error) {
	return s.rewardRepo.Transition(rewardID, domain.RewardCancelled, actorID, note, nil)
}

// MarkPaid pays a cash reward through the ledger and then transitions the
// reward. On InsufficientFunds the reward stays approved and the error is
// returned to the caller; no state change, no ledger rows.
func (s *RewardService) MarkPaid(rewardID, actorID uint) (*models.CreatorReward, error) {
	reward, err := s.rewardRepo.GetByID(rewardID)
	if err != nil {
		return nil, err
	}
	if reward.Status != domain.RewardApproved || reward.RewardType != domain.RewardKindCash {
		return nil, domain.ErrInvalidTransition
	}
	if reward.ValueCents == nil || *reward.ValueCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	wallet, err := s.walletRepo.GetByCompanyID(reward.CompanyID)
	if err != nil {
		return nil, err
	}
	desc := fmt.Sprintf("reward #%d (%s)", reward.ID, reward.Type)
	campaignID := reward.CampaignID
	tx, err := s.ledger.PayCreator(wallet.ID, reward.CreatorID, *reward.ValueCents, domain.TxTypeBonus, desc, &campaignID)
	if err != nil {
		return nil, err
	}
	note := fmt.Sprintf("cash payout, transfer %s", tx.TransferRef)
	updated, err := s.rewardRepo.Transition(rewardID, domain.RewardCashPaid, actorID, note, nil)
	if err != nil {
		// The payout committed but the transition raced with another caller.
		// The transfer ref in the ledger keeps this auditable.
		log.Printf("[Reward] reward=%d paid but transition failed: %v", rewardID, err)
		return nil, err
	}
	return updated, nil
}

// MarkShipped records shipment of a product reward.
func (s *RewardService) MarkShipped(rewardID, actorID uint, trackingInfo string) (*models.CreatorReward, error) {
	reward, err := s.rewardRepo.GetByID(rewardID)
	if err != nil {
		return nil, err
	}
	if reward.Status != domain.RewardApproved || reward.RewardType != domain.RewardKindProduct {
		return nil, domain.ErrInvalidTransition
	}
	extra := map[string]interface{}{"tracking_info": trackingInfo}
	return s.rewardRepo.Transition(rewardID, domain.RewardProductShipped, actorID, "shipped: "+trackingInfo, extra)
}

// Complete finishes a paid or shipped reward.
func (s *RewardService) Complete(rewardID, actorID uint) (*models.CreatorReward, error) {
	return s.rewardRepo.Transition(rewardID, domain.RewardCompleted, actorID, "", nil)
}

func (s *RewardService) Get(rewardID uint) (*models.CreatorReward, error) {
	return s.rewardRepo.GetByID(rewardID)
}

func (s *RewardService) ListByCompany(companyID uint) ([]models.CreatorReward, error) {
	return s.rewardRepo.ListByCompany(companyID)
}

func (s *RewardService) ListByCreator(creatorID uint) ([]models.CreatorReward, error) {
	return s.rewardRepo.ListByCreator(creatorID)
}

func (s *RewardService) History(rewardID uint) ([]models.RewardEvent, error) {
	return s.rewardRepo.Events(rewardID)
}
