package service

import (
	"context"
	"strings"
	"testing"

	"agora/internal/models"
	"agora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB, isStaff func(context.Context, uint) (bool, error)) *CommentService {
	return NewCommentService(db, repository.NewCommentRepository(db), repository.NewPostRepository(db), isStaff)
}

func TestCommentService_CreateComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db, staffNever)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	commenter := createTestUser(t, db, "commenter", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	t.Run("success", func(t *testing.T) {
		comment, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, Content: "Nice question",
		})
		require.NoError(t, err)
		assert.Equal(t, "Nice question", comment.Content)
		assert.Nil(t, comment.ParentID)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: commenter.ID, PostID: post.ID})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, Content: strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: commenter.ID, PostID: 999, Content: "hi"})
		assertNotFoundError(t, err)
	})

	t.Run("locked post", func(t *testing.T) {
		locked := createTestPost(t, db, author.ID)
		require.NoError(t, db.Model(locked).UpdateColumn("is_locked", true).Error)

		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: commenter.ID, PostID: locked.ID, Content: "hi"})
		assertForbiddenError(t, err)
	})

	t.Run("parent from another post", func(t *testing.T) {
		other := createTestPost(t, db, author.ID)
		parent := createTestComment(t, db, commenter.ID, other.ID, nil)

		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID: commenter.ID, PostID: post.ID, ParentID: &parent.ID, Content: "reply",
		})
		assertValidationError(t, err)
	})
}

func TestCommentService_UpdateComment_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db, staffNever)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	other := createTestUser(t, db, "other", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, author.ID, post.ID, nil)

	_, err := svc.UpdateComment(ctx, UpdateCommentInput{
		UserID: other.ID, CommentID: comment.ID, Content: "hijacked",
	})
	assertForbiddenError(t, err)

	updated, err := svc.UpdateComment(ctx, UpdateCommentInput{
		UserID: author.ID, CommentID: comment.ID, Content: "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentService_DeleteComment_StaffOverride(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	mod := createTestUser(t, db, "mod", models.RoleModerator)
	post := createTestPost(t, db, author.ID)

	t.Run("non-owner non-staff rejected", func(t *testing.T) {
		svc := newCommentService(db, staffNever)
		comment := createTestComment(t, db, author.ID, post.ID, nil)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: mod.ID, CommentID: comment.ID})
		assertForbiddenError(t, err)
	})

	t.Run("staff may delete", func(t *testing.T) {
		svc := newCommentService(db, staffAlways)
		comment := createTestComment(t, db, author.ID, post.ID, nil)

		_, err := svc.DeleteComment(ctx, DeleteCommentInput{UserID: mod.ID, CommentID: comment.ID})
		require.NoError(t, err)
	})
}

func TestCommentService_ListComments_RemovedContent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	kept := createTestComment(t, db, author.ID, post.ID, nil)
	removed := createTestComment(t, db, author.ID, post.ID, nil)
	require.NoError(t, db.Model(removed).UpdateColumn("is_removed", true).Error)

	t.Run("masked for regular users", func(t *testing.T) {
		svc := newCommentService(db, staffNever)
		comments, err := svc.ListComments(ctx, post.ID, author.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			if c.ID == removed.ID {
				assert.Equal(t, "[removed]", c.Content)
			} else {
				assert.Equal(t, kept.Content, c.Content)
			}
		}
	})

	t.Run("full content for staff", func(t *testing.T) {
		svc := newCommentService(db, staffAlways)
		comments, err := svc.ListComments(ctx, post.ID, author.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.Equal(t, kept.Content, c.Content)
		}
	})

	t.Run("removed post hides its thread", func(t *testing.T) {
		require.NoError(t, db.Model(post).UpdateColumn("is_removed", true).Error)
		svc := newCommentService(db, staffNever)
		_, err := svc.ListComments(ctx, post.ID, author.ID)
		assertNotFoundError(t, err)
	})
}

func TestCommentService_AcceptComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db, staffNever)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	answerer1 := createTestUser(t, db, "answerer1", models.RoleUser)
	answerer2 := createTestUser(t, db, "answerer2", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	first := createTestComment(t, db, answerer1.ID, post.ID, nil)
	second := createTestComment(t, db, answerer2.ID, post.ID, nil)

	t.Run("only post author", func(t *testing.T) {
		_, err := svc.AcceptComment(ctx, answerer1.ID, first.ID)
		assertForbiddenError(t, err)
	})

	t.Run("accept grants bonus", func(t *testing.T) {
		accepted, err := svc.AcceptComment(ctx, author.ID, first.ID)
		require.NoError(t, err)
		assert.True(t, accepted.IsAccepted)
		assert.Equal(t, models.AcceptedAnswerWeight, reloadUser(t, db, answerer1.ID).Reputation)
	})

	t.Run("re-accept is a no-op", func(t *testing.T) {
		_, err := svc.AcceptComment(ctx, author.ID, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AcceptedAnswerWeight, reloadUser(t, db, answerer1.ID).Reputation)
	})

	t.Run("accepting another comment moves the bonus", func(t *testing.T) {
		accepted, err := svc.AcceptComment(ctx, author.ID, second.ID)
		require.NoError(t, err)
		assert.True(t, accepted.IsAccepted)

		var prev models.Comment
		require.NoError(t, db.First(&prev, first.ID).Error)
		assert.False(t, prev.IsAccepted)

		assert.Equal(t, 0, reloadUser(t, db, answerer1.ID).Reputation)
		assert.Equal(t, models.AcceptedAnswerWeight, reloadUser(t, db, answerer2.ID).Reputation)
	})

	t.Run("replies cannot be accepted", func(t *testing.T) {
		reply := createTestComment(t, db, answerer1.ID, post.ID, &first.ID)

		_, err := svc.AcceptComment(ctx, author.ID, reply.ID)
		assertInvalidOperationError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		_, err := svc.AcceptComment(ctx, author.ID, 999)
		assertNotFoundError(t, err)
	})
}

func TestCommentService_UnacceptComment(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db, staffNever)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.RoleUser)
	answerer := createTestUser(t, db, "answerer", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, answerer.ID, post.ID, nil)

	t.Run("not accepted yet", func(t *testing.T) {
		_, err := svc.UnacceptComment(ctx, author.ID, comment.ID)
		assertInvalidOperationError(t, err)
	})

	t.Run("unaccept revokes bonus", func(t *testing.T) {
		_, err := svc.AcceptComment(ctx, author.ID, comment.ID)
		require.NoError(t, err)
		require.Equal(t, models.AcceptedAnswerWeight, reloadUser(t, db, answerer.ID).Reputation)

		cleared, err := svc.UnacceptComment(ctx, author.ID, comment.ID)
		require.NoError(t, err)
		assert.False(t, cleared.IsAccepted)
		assert.Equal(t, 0, reloadUser(t, db, answerer.ID).Reputation)
	})

	t.Run("only post author", func(t *testing.T) {
		_, err := svc.AcceptComment(ctx, author.ID, comment.ID)
		require.NoError(t, err)

		_, err = svc.UnacceptComment(ctx, answerer.ID, comment.ID)
		assertForbiddenError(t, err)
	})
}
