package service

import (
	"context"
	"errors"

	"agora/internal/models"
	"agora/internal/repository"

	"gorm.io/gorm"
)

// CommentService owns comment authoring and the accepted-answer lifecycle.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isStaff     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// removedCommentBody replaces the content of removed comments so replies
// keep their place in the thread.
const removedCommentBody = "[removed]"

func NewCommentService(
	db *gorm.DB,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isStaff:     isStaff,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}
	if post.IsLocked {
		return nil, models.NewForbiddenError("Post is locked")
	}
	if post.IsRemoved {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	const maxCommentLen = 10000
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's comments. Non-staff callers never see
// removed content: a removed post reads as not found, and removed comments
// keep their place in the thread with the body blanked out.
func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	staff, err := s.callerIsStaff(ctx, currentUserID)
	if err != nil {
		return nil, err
	}
	if post.IsRemoved && !staff {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !staff {
		for _, comment := range comments {
			if comment.IsRemoved {
				comment.Content = removedCommentBody
			}
		}
	}
	return comments, nil
}

func (s *CommentService) callerIsStaff(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 || s.isStaff == nil {
		return false, nil
	}
	return s.isStaff(ctx, userID)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.UserID {
		if s.isStaff == nil {
			return nil, models.NewForbiddenError("You can only delete your own comments")
		}
		staff, err := s.isStaff(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !staff {
			return nil, models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return comment, nil
}

// AcceptComment marks a top-level comment as the post's accepted answer.
// Only the post author may accept; accepting a second comment moves the
// acceptance and the reputation bonus with it. Accepting the already
// accepted comment is a no-op.
func (s *CommentService) AcceptComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return models.NewInternalError(err)
		}

		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			return models.NewInternalError(err)
		}
		if post.UserID != userID {
			return models.NewForbiddenError("Only the post author can accept an answer")
		}
		if comment.ParentID != nil {
			return models.NewInvalidOperationError("Replies cannot be accepted as answers")
		}
		if comment.IsAccepted {
			return nil
		}

		// Clear the current accepted answer first so at most one comment
		// per post carries the flag and the bonus.
		var current models.Comment
		err := tx.Where("post_id = ? AND is_accepted = ?", comment.PostID, true).First(&current).Error
		switch {
		case err == nil:
			if updErr := tx.Model(&models.Comment{}).
				Where("id = ?", current.ID).
				UpdateColumn("is_accepted", false).Error; updErr != nil {
				return models.NewInternalError(updErr)
			}
			if updErr := tx.Model(&models.User{}).
				Where("id = ?", current.UserID).
				UpdateColumn("reputation", gorm.Expr("reputation - ?", models.AcceptedAnswerWeight)).Error; updErr != nil {
				return models.NewInternalError(updErr)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.Comment{}).
			Where("id = ?", comment.ID).
			UpdateColumn("is_accepted", true).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", comment.UserID).
			UpdateColumn("reputation", gorm.Expr("reputation + ?", models.AcceptedAnswerWeight)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}

// UnacceptComment clears the accepted flag and revokes the bonus.
func (s *CommentService) UnacceptComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", commentID)
			}
			return models.NewInternalError(err)
		}

		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			return models.NewInternalError(err)
		}
		if post.UserID != userID {
			return models.NewForbiddenError("Only the post author can unaccept an answer")
		}
		if !comment.IsAccepted {
			return models.NewInvalidOperationError("Comment is not the accepted answer")
		}

		if err := tx.Model(&models.Comment{}).
			Where("id = ?", comment.ID).
			UpdateColumn("is_accepted", false).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", comment.UserID).
			UpdateColumn("reputation", gorm.Expr("reputation - ?", models.AcceptedAnswerWeight)).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID)
}
