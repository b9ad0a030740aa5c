package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/notifications"
	"agora/internal/repository"
	"agora/internal/validation"

	"gorm.io/gorm"
)

// ModerationService applies moderator actions to content and users. Every
// action writes the flag change and its audit log row in one transaction.
type ModerationService struct {
	db       *gorm.DB
	modRepo  repository.ModerationRepository
	notifier *notifications.Notifier
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB, modRepo repository.ModerationRepository, notifier *notifications.Notifier) *ModerationService {
	return &ModerationService{db: db, modRepo: modRepo, notifier: notifier}
}

// ModerateInput describes one moderation action.
type ModerateInput struct {
	ModeratorID uint
	Action      string
	TargetType  string
	TargetID    uint
	Reason      string
}

// BanInput describes a user ban. DurationDays 0 means permanent.
type BanInput struct {
	AdminID      uint
	UserID       uint
	Reason       string `validate:"required,min=10"`
	DurationDays int    `validate:"min=0"`
}

// postActions maps actions that only apply to posts onto the flag they set.
var postOnlyActions = map[string]struct {
	column string
	value  bool
}{
	models.ModActionLock:   {"is_locked", true},
	models.ModActionUnlock: {"is_locked", false},
	models.ModActionPin:    {"is_pinned", true},
	models.ModActionUnpin:  {"is_pinned", false},
}

// Moderate executes LOCK/UNLOCK/PIN/UNPIN on posts and REMOVE/RESTORE on
// posts or comments, appending an audit log entry in the same transaction.
func (s *ModerationService) Moderate(ctx context.Context, in ModerateInput) (*models.ModerationLog, error) {
	var entry *models.ModerationLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var column string
		var value bool

		switch in.Action {
		case models.ModActionLock, models.ModActionUnlock, models.ModActionPin, models.ModActionUnpin:
			if in.TargetType != models.ModTargetPost {
				return models.NewInvalidOperationError("Action " + in.Action + " only applies to posts")
			}
			a := postOnlyActions[in.Action]
			column, value = a.column, a.value
		case models.ModActionRemove:
			column, value = "is_removed", true
		case models.ModActionRestore:
			column, value = "is_removed", false
		default:
			return models.NewValidationError("Unknown moderation action")
		}

		switch in.TargetType {
		case models.ModTargetPost:
			var post models.Post
			if err := tx.First(&post, in.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("Post", in.TargetID)
				}
				return models.NewInternalError(err)
			}
			if err := tx.Model(&models.Post{}).
				Where("id = ?", in.TargetID).
				UpdateColumn(column, value).Error; err != nil {
				return models.NewInternalError(err)
			}
			cache.InvalidatePost(ctx, in.TargetID)
		case models.ModTargetComment:
			var comment models.Comment
			if err := tx.First(&comment, in.TargetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("Comment", in.TargetID)
				}
				return models.NewInternalError(err)
			}
			if err := tx.Model(&models.Comment{}).
				Where("id = ?", in.TargetID).
				UpdateColumn(column, value).Error; err != nil {
				return models.NewInternalError(err)
			}
		default:
			return models.NewValidationError("Target type must be POST or COMMENT")
		}

		entry = &models.ModerationLog{
			Action:      in.Action,
			TargetType:  in.TargetType,
			TargetID:    in.TargetID,
			ModeratorID: in.ModeratorID,
			Reason:      in.Reason,
		}
		if err := tx.Create(entry).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.notifier.PublishAdminEvent(ctx, notifications.Event{
		Type:       "moderation." + strings.ToLower(in.Action),
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		ActorID:    in.ModeratorID,
		Reason:     in.Reason,
	})
	return entry, nil
}

// BanUser bans a non-admin user. Reason must carry at least 10 characters.
// A ban row is kept as history even after an unban.
func (s *ModerationService) BanUser(ctx context.Context, in BanInput) (*models.Ban, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var ban *models.Ban
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", in.UserID)
			}
			return models.NewInternalError(err)
		}
		if user.Role == models.RoleAdmin {
			return models.NewInvalidOperationError("Administrators cannot be banned")
		}

		var bannedUntil *time.Time
		isPermanent := in.DurationDays == 0
		if !isPermanent {
			t := time.Now().AddDate(0, 0, in.DurationDays)
			bannedUntil = &t
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", in.UserID).
			Updates(map[string]any{"is_banned": true, "banned_until": bannedUntil}).Error; err != nil {
			return models.NewInternalError(err)
		}

		ban = &models.Ban{
			UserID:      in.UserID,
			Reason:      in.Reason,
			IsPermanent: isPermanent,
			ExpiresAt:   bannedUntil,
			CreatedBy:   in.AdminID,
		}
		if err := tx.Create(ban).Error; err != nil {
			return models.NewInternalError(err)
		}

		entry := &models.ModerationLog{
			Action:      models.ModActionBan,
			TargetType:  models.ModTargetUser,
			TargetID:    in.UserID,
			ModeratorID: in.AdminID,
			Reason:      in.Reason,
		}
		if err := tx.Create(entry).Error; err != nil {
			return models.NewInternalError(err)
		}

		cache.InvalidateUser(ctx, in.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.notifier.PublishAdminEvent(ctx, notifications.Event{
		Type:       "moderation.ban",
		TargetType: models.ModTargetUser,
		TargetID:   in.UserID,
		ActorID:    in.AdminID,
		Reason:     in.Reason,
	})
	return ban, nil
}

// UnbanUser lifts an active ban. The historical ban rows stay untouched.
func (s *ModerationService) UnbanUser(ctx context.Context, adminID, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewInternalError(err)
		}
		if !user.IsBanned {
			return models.NewInvalidOperationError("User is not banned")
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{"is_banned": false, "banned_until": nil}).Error; err != nil {
			return models.NewInternalError(err)
		}

		entry := &models.ModerationLog{
			Action:      models.ModActionUnban,
			TargetType:  models.ModTargetUser,
			TargetID:    userID,
			ModeratorID: adminID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return models.NewInternalError(err)
		}

		cache.InvalidateUser(ctx, userID)
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.notifier.PublishAdminEvent(ctx, notifications.Event{
		Type:       "moderation.unban",
		TargetType: models.ModTargetUser,
		TargetID:   userID,
		ActorID:    adminID,
	})
	return nil
}

// ListLogs returns the moderation audit trail, optionally filtered by target.
func (s *ModerationService) ListLogs(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.ModerationLog, error) {
	return s.modRepo.ListLogs(ctx, targetType, targetID, limit, offset)
}

// ListBans returns the ban history for a user.
func (s *ModerationService) ListBans(ctx context.Context, userID uint) ([]*models.Ban, error) {
	return s.modRepo.ListBans(ctx, userID)
}
