package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// ModerationRepository defines persistence operations for the moderation
// audit log and ban history. Log rows are append-only.
type ModerationRepository interface {
	AppendLog(ctx context.Context, entry *models.ModerationLog) error
	ListLogs(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.ModerationLog, error)
	CreateBan(ctx context.Context, ban *models.Ban) error
	ListBans(ctx context.Context, userID uint) ([]*models.Ban, error)
}

type moderationRepository struct {
	db *gorm.DB
}

// NewModerationRepository returns a new ModerationRepository implementation.
func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) AppendLog(ctx context.Context, entry *models.ModerationLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *moderationRepository) ListLogs(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.ModerationLog, error) {
	var logs []*models.ModerationLog
	q := r.db.WithContext(ctx).Preload("Moderator")
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if targetID != 0 {
		q = q.Where("target_id = ?", targetID)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return logs, nil
}

func (r *moderationRepository) CreateBan(ctx context.Context, ban *models.Ban) error {
	if err := r.db.WithContext(ctx).Create(ban).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *moderationRepository) ListBans(ctx context.Context, userID uint) ([]*models.Ban, error) {
	var bans []*models.Ban
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bans, nil
}
