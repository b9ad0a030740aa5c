package repository

import (
	"context"
	"errors"

	"agora/internal/models"

	"gorm.io/gorm"
)

// VoteRepository reads the vote ledger. Mutations run inside the vote
// service's transactions so the ledger row and the vote_count / reputation
// projections move together.
type VoteRepository interface {
	Get(ctx context.Context, userID uint, postID, commentID *uint) (*models.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

// Get returns the user's vote on the target, or nil when no vote exists.
func (r *voteRepository) Get(ctx context.Context, userID uint, postID, commentID *uint) (*models.Vote, error) {
	var vote models.Vote
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	} else if commentID != nil {
		q = q.Where("comment_id = ?", *commentID)
	}
	if err := q.First(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}
