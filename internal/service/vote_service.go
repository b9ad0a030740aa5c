package service

import (
	"context"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"

	"gorm.io/gorm"
)

// VoteService applies votes to posts and comments. Every cast runs in a
// single transaction so the ledger row, the target's vote_count, and the
// author's reputation always move together.
type VoteService struct {
	db       *gorm.DB
	voteRepo repository.VoteRepository
}

// NewVoteService returns a new VoteService.
func NewVoteService(db *gorm.DB, voteRepo repository.VoteRepository) *VoteService {
	return &VoteService{db: db, voteRepo: voteRepo}
}

// CastVoteInput describes one vote cast. Value 0 removes an existing vote.
type CastVoteInput struct {
	UserID     uint
	TargetType string `validate:"required,oneof=post comment"`
	TargetID   uint   `validate:"required"`
	Value      int    `validate:"oneof=-1 0 1"`
}

// VoteResult reports the target's state after the cast.
type VoteResult struct {
	Success   bool `json:"success"`
	VoteCount int  `json:"voteCount"`
	UserVote  int  `json:"userVote"`
}

// CastVote records, changes, or removes the user's vote on a post or
// comment. Re-casting the same value is a no-op. Users cannot vote on their
// own content.
func (s *VoteService) CastVote(ctx context.Context, in CastVoteInput) (*VoteResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	var result *VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var authorID uint
		var voteCount int
		var weight int

		switch in.TargetType {
		case models.VoteTargetPost:
			var post models.Post
			if err := tx.First(&post, in.TargetID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return models.NewNotFoundError("Post", in.TargetID)
				}
				return models.NewInternalError(err)
			}
			authorID = post.UserID
			voteCount = post.VoteCount
			weight = models.PostVoteWeight
		case models.VoteTargetComment:
			var comment models.Comment
			if err := tx.First(&comment, in.TargetID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return models.NewNotFoundError("Comment", in.TargetID)
				}
				return models.NewInternalError(err)
			}
			authorID = comment.UserID
			voteCount = comment.VoteCount
			weight = models.CommentVoteWeight
		}

		if authorID == in.UserID {
			return models.NewForbiddenError("You cannot vote on your own content")
		}

		var existing models.Vote
		oldValue := 0
		found := true
		q := tx.Where("user_id = ?", in.UserID)
		if in.TargetType == models.VoteTargetPost {
			q = q.Where("post_id = ?", in.TargetID)
		} else {
			q = q.Where("comment_id = ?", in.TargetID)
		}
		if err := q.First(&existing).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return models.NewInternalError(err)
			}
			found = false
		} else {
			oldValue = existing.Value
		}

		delta := in.Value - oldValue
		if delta == 0 {
			result = &VoteResult{
				Success:   true,
				VoteCount: voteCount,
				UserVote:  in.Value,
			}
			return nil
		}

		switch {
		case in.Value == 0:
			if err := tx.Delete(&existing).Error; err != nil {
				return models.NewInternalError(err)
			}
		case found:
			existing.Value = in.Value
			if err := tx.Save(&existing).Error; err != nil {
				return models.NewInternalError(err)
			}
		default:
			vote := models.Vote{UserID: in.UserID, Value: in.Value}
			if in.TargetType == models.VoteTargetPost {
				vote.PostID = &in.TargetID
			} else {
				vote.CommentID = &in.TargetID
			}
			if err := tx.Create(&vote).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		var target any
		if in.TargetType == models.VoteTargetPost {
			target = &models.Post{}
		} else {
			target = &models.Comment{}
		}
		if err := tx.Model(target).
			Where("id = ?", in.TargetID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta)).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", authorID).
			UpdateColumn("reputation", gorm.Expr("reputation + ?", delta*weight)).Error; err != nil {
			return models.NewInternalError(err)
		}

		result = &VoteResult{
			Success:   true,
			VoteCount: voteCount + delta,
			UserVote:  in.Value,
		}

		cache.InvalidateUser(ctx, authorID)
		if in.TargetType == models.VoteTargetPost {
			cache.InvalidatePost(ctx, in.TargetID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetVote returns the user's current vote on the target (0 when none).
func (s *VoteService) GetVote(ctx context.Context, userID uint, targetType string, targetID uint) (*VoteResult, error) {
	if targetType != models.VoteTargetPost && targetType != models.VoteTargetComment {
		return nil, models.NewValidationError("Target type must be 'post' or 'comment'")
	}

	var voteCount int
	switch targetType {
	case models.VoteTargetPost:
		var post models.Post
		if err := s.db.WithContext(ctx).First(&post, targetID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, models.NewNotFoundError("Post", targetID)
			}
			return nil, models.NewInternalError(err)
		}
		voteCount = post.VoteCount
	case models.VoteTargetComment:
		var comment models.Comment
		if err := s.db.WithContext(ctx).First(&comment, targetID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, models.NewNotFoundError("Comment", targetID)
			}
			return nil, models.NewInternalError(err)
		}
		voteCount = comment.VoteCount
	}

	var postID, commentID *uint
	if targetType == models.VoteTargetPost {
		postID = &targetID
	} else {
		commentID = &targetID
	}
	vote, err := s.voteRepo.Get(ctx, userID, postID, commentID)
	if err != nil {
		return nil, err
	}
	userVote := 0
	if vote != nil {
		userVote = vote.Value
	}

	return &VoteResult{
		Success:   true,
		VoteCount: voteCount,
		UserVote:  userVote,
	}, nil
}
