package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"agora/internal/models"
	"agora/internal/notifications"
	"agora/internal/repository"
	"agora/internal/validation"

	"gorm.io/gorm"
)

// ReportService owns the content report lifecycle: creation, triage, and
// resolution.
type ReportService struct {
	db         *gorm.DB
	reportRepo repository.ReportRepository
	notifier   *notifications.Notifier
}

// NewReportService returns a new ReportService.
func NewReportService(db *gorm.DB, reportRepo repository.ReportRepository, notifier *notifications.Notifier) *ReportService {
	return &ReportService{db: db, reportRepo: reportRepo, notifier: notifier}
}

// CreateReportInput describes a new report against a post or comment.
type CreateReportInput struct {
	ReporterID  uint
	TargetType  string `validate:"required,oneof=post comment"`
	TargetID    uint   `validate:"required"`
	Reason      string `validate:"required,min=3,max=200"`
	Description string
}

// ResolveReportInput moves a report through its status machine.
type ResolveReportInput struct {
	ModeratorID uint
	ReportID    uint
	Status      string
	Action      string
}

// allowedTransitions describes the report status machine. Terminal statuses
// have no outgoing edges.
var allowedTransitions = map[string][]string{
	models.ReportStatusPending:   {models.ReportStatusReviewing, models.ReportStatusResolved, models.ReportStatusDismissed},
	models.ReportStatusReviewing: {models.ReportStatusResolved, models.ReportStatusDismissed},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CreateReport files a report. A reporter may report a given target once;
// duplicates surface as a conflict.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	report := &models.Report{
		ReporterID:  in.ReporterID,
		Reason:      in.Reason,
		Description: in.Description,
		Status:      models.ReportStatusPending,
	}

	switch in.TargetType {
	case models.VoteTargetPost:
		var post models.Post
		if err := s.db.WithContext(ctx).First(&post, in.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Post", in.TargetID)
			}
			return nil, models.NewInternalError(err)
		}
		report.PostID = &in.TargetID
	case models.VoteTargetComment:
		var comment models.Comment
		if err := s.db.WithContext(ctx).First(&comment, in.TargetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Comment", in.TargetID)
			}
			return nil, models.NewInternalError(err)
		}
		report.CommentID = &in.TargetID
	default:
		return nil, models.NewValidationError("Target type must be 'post' or 'comment'")
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	_ = s.notifier.PublishAdminEvent(ctx, notifications.Event{
		Type:       "report.created",
		TargetType: strings.ToUpper(in.TargetType),
		TargetID:   in.TargetID,
		ActorID:    in.ReporterID,
		Reason:     in.Reason,
	})
	return s.reportRepo.GetByID(ctx, report.ID)
}

// ListReports returns reports, optionally filtered by status.
func (s *ReportService) ListReports(ctx context.Context, status string, limit, offset int) ([]*models.Report, error) {
	switch status {
	case "", models.ReportStatusPending, models.ReportStatusReviewing, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return nil, models.NewValidationError("Unknown report status")
	}
	return s.reportRepo.List(ctx, status, limit, offset)
}

// ResolveReport advances a report's status. Resolving with REMOVE_CONTENT
// also removes the reported content and logs the removal, attributed to the
// report's reason, in the same transaction. Terminal reports reject any
// further transition.
func (s *ReportService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.Report, error) {
	switch in.Status {
	case models.ReportStatusReviewing, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return nil, models.NewValidationError("Status must be REVIEWING, RESOLVED, or DISMISSED")
	}
	if in.Action != "" && in.Action != models.ReportActionNone && in.Action != models.ReportActionRemoveContent {
		return nil, models.NewValidationError("Action must be NONE or REMOVE_CONTENT")
	}
	if in.Action == models.ReportActionRemoveContent && in.Status != models.ReportStatusResolved {
		return nil, models.NewValidationError("REMOVE_CONTENT requires status RESOLVED")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, in.ReportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Report", in.ReportID)
			}
			return models.NewInternalError(err)
		}

		if !transitionAllowed(report.Status, in.Status) {
			return models.NewInvalidOperationError("Report is already " + report.Status)
		}

		updates := map[string]any{"status": in.Status}
		if in.Status == models.ReportStatusResolved || in.Status == models.ReportStatusDismissed {
			now := time.Now()
			updates["resolved_by"] = in.ModeratorID
			updates["resolved_at"] = &now
		}
		if err := tx.Model(&models.Report{}).
			Where("id = ?", in.ReportID).
			Updates(updates).Error; err != nil {
			return models.NewInternalError(err)
		}

		if in.Action == models.ReportActionRemoveContent {
			var targetType string
			var targetID uint
			switch {
			case report.PostID != nil:
				targetType = models.ModTargetPost
				targetID = *report.PostID
				if err := tx.Model(&models.Post{}).
					Where("id = ?", targetID).
					UpdateColumn("is_removed", true).Error; err != nil {
					return models.NewInternalError(err)
				}
			case report.CommentID != nil:
				targetType = models.ModTargetComment
				targetID = *report.CommentID
				if err := tx.Model(&models.Comment{}).
					Where("id = ?", targetID).
					UpdateColumn("is_removed", true).Error; err != nil {
					return models.NewInternalError(err)
				}
			}

			entry := &models.ModerationLog{
				Action:      models.ModActionRemove,
				TargetType:  targetType,
				TargetID:    targetID,
				ModeratorID: in.ModeratorID,
				Reason:      report.Reason,
			}
			if err := tx.Create(entry).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.notifier.PublishAdminEvent(ctx, notifications.Event{
		Type:     "report." + strings.ToLower(in.Status),
		TargetID: in.ReportID,
		ActorID:  in.ModeratorID,
	})
	return s.reportRepo.GetByID(ctx, in.ReportID)
}
