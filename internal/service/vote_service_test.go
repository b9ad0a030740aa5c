package service

import (
	"context"
	"testing"

	"agora/internal/models"
	"agora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVoteService(db *gorm.DB) *VoteService {
	return NewVoteService(db, repository.NewVoteRepository(db))
}

func TestVoteService_CastVote_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	t.Run("value out of range", func(t *testing.T) {
		_, err := svc.CastVote(ctx, CastVoteInput{UserID: 1, TargetType: models.VoteTargetPost, TargetID: 1, Value: 2})
		assertValidationError(t, err)
	})

	t.Run("unknown target type", func(t *testing.T) {
		_, err := svc.CastVote(ctx, CastVoteInput{UserID: 1, TargetType: "user", TargetID: 1, Value: 1})
		assertValidationError(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := svc.CastVote(ctx, CastVoteInput{UserID: 1, TargetType: models.VoteTargetPost, TargetID: 999, Value: 1})
		assertNotFoundError(t, err)
	})
}

func TestVoteService_CastVote_SelfVote(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	_, err := svc.CastVote(ctx, CastVoteInput{
		UserID:     author.ID,
		TargetType: models.VoteTargetPost,
		TargetID:   post.ID,
		Value:      1,
	})
	assertForbiddenError(t, err)
}

func TestVoteService_CastVote_PostLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	voter := createTestUser(t, db, "voter", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	// Upvote: vote_count +1, author reputation +5
	result, err := svc.CastVote(ctx, CastVoteInput{
		UserID: voter.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteCount)
	assert.Equal(t, 1, result.UserVote)
	assert.Equal(t, models.PostVoteWeight, reloadUser(t, db, author.ID).Reputation)

	// Re-casting the same value is a no-op
	result, err = svc.CastVote(ctx, CastVoteInput{
		UserID: voter.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteCount)
	assert.Equal(t, models.PostVoteWeight, reloadUser(t, db, author.ID).Reputation)

	// Flip to downvote: delta -2, reputation swings by -10
	result, err = svc.CastVote(ctx, CastVoteInput{
		UserID: voter.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, -1, result.VoteCount)
	assert.Equal(t, -1, result.UserVote)
	assert.Equal(t, -models.PostVoteWeight, reloadUser(t, db, author.ID).Reputation)

	// Remove the vote: back to zero, vote row deleted
	result, err = svc.CastVote(ctx, CastVoteInput{
		UserID: voter.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.VoteCount)
	assert.Equal(t, 0, result.UserVote)
	assert.Equal(t, 0, reloadUser(t, db, author.ID).Reputation)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("user_id = ?", voter.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVoteService_CastVote_CommentWeight(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	commenter := createTestUser(t, db, "commenter", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, commenter.ID, post.ID, nil)

	result, err := svc.CastVote(ctx, CastVoteInput{
		UserID: author.ID, TargetType: models.VoteTargetComment, TargetID: comment.ID, Value: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteCount)
	assert.Equal(t, models.CommentVoteWeight, reloadUser(t, db, commenter.ID).Reputation)
}

func TestVoteService_CastVote_IndependentVoters(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	voter1 := createTestUser(t, db, "voter1", models.RoleUser)
	voter2 := createTestUser(t, db, "voter2", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	_, err := svc.CastVote(ctx, CastVoteInput{
		UserID: voter1.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: 1,
	})
	require.NoError(t, err)

	result, err := svc.CastVote(ctx, CastVoteInput{
		UserID: voter2.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.VoteCount)
	assert.Equal(t, 0, reloadUser(t, db, author.ID).Reputation)
}

func TestVoteService_GetVote(t *testing.T) {
	db := setupTestDB(t)
	svc := newVoteService(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	voter := createTestUser(t, db, "voter", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	result, err := svc.GetVote(ctx, voter.ID, models.VoteTargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.UserVote)

	_, err = svc.CastVote(ctx, CastVoteInput{
		UserID: voter.ID, TargetType: models.VoteTargetPost, TargetID: post.ID, Value: 1,
	})
	require.NoError(t, err)

	result, err = svc.GetVote(ctx, voter.ID, models.VoteTargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UserVote)
	assert.Equal(t, 1, result.VoteCount)
}
