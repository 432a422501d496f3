package repository

import (
	"criavo/internal/domain"
	"criavo/internal/models"

	"gorm.io/gorm"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) Create(reward *models.CreatorReward) error {
	return r.db.Create(reward).Error
}

func (r *RewardRepository) GetByID(id uint) (*models.CreatorReward, error) {
	var reward models.CreatorReward
	if err := r.db.First(&reward, id).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *RewardRepository) ListByCompany(companyID uint) ([]models.CreatorReward, error) {
	var rewards []models.CreatorReward
	if err := r.db.Where("company_id = ?", companyID).Order("created_at DESC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *RewardRepository) ListByCreator(creatorID uint) ([]models.CreatorReward, error) {
	var rewards []models.CreatorReward
	if err := r.db.Where("creator_id = ?", creatorID).Order("created_at DESC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Transition atomically moves the reward to a new state, re-checking legality
// against the stored state, and appends the audit event. Extra column updates
// (e.g. tracking_info) ride in the same transaction.
func (r *RewardRepository) Transition(rewardID uint, to string, actorID uint, note string, extra map[string]interface{}) (*models.CreatorReward, error) {
	var reward models.CreatorReward
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reward, rewardID).Error; err != nil {
			return err
		}
		if !domain.CanTransitionReward(reward.Status, to) {
			return domain.ErrInvalidTransition
		}
		updates := map[string]interface{}{"status": to}
		for k, v := range extra {
			updates[k] = v
		}
		if err := tx.Model(&reward).Updates(updates).Error; err != nil {
			return err
		}
		event := models.RewardEvent{
			RewardID:   rewardID,
			FromStatus: reward.Status,
			ToStatus:   to,
			ActorID:    actorID,
			Note:       note,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		reward.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *RewardRepository) Events(rewardID uint) ([]models.RewardEvent, error) {
	var events []models.RewardEvent
	if err := r.db.Where("reward_id = ?", rewardID).Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
