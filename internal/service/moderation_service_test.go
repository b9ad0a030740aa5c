package service

import (
	"context"
	"testing"
	"time"

	"agora/internal/models"
	"agora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newModerationService(db *gorm.DB) *ModerationService {
	return NewModerationService(db, repository.NewModerationRepository(db), nil)
}

func TestModerationService_Moderate_PostFlags(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)
	ctx := context.Background()

	mod := createTestUser(t, db, "mod", models.RoleModerator)
	author := createTestUser(t, db, "author", models.RoleUser)
	post := createTestPost(t, db, author.ID)

	cases := []struct {
		action string
		check  func(p *models.Post) bool
	}{
		{models.ModActionLock, func(p *models.Post) bool { return p.IsLocked }},
		{models.ModActionPin, func(p *models.Post) bool { return p.IsPinned }},
		{models.ModActionUnlock, func(p *models.Post) bool { return !p.IsLocked }},
		{models.ModActionUnpin, func(p *models.Post) bool { return !p.IsPinned }},
		{models.ModActionRemove, func(p *models.Post) bool { return p.IsRemoved }},
		{models.ModActionRestore, func(p *models.Post) bool { return !p.IsRemoved }},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			entry, err := svc.Moderate(ctx, ModerateInput{
				ModeratorID: mod.ID,
				Action:      tc.action,
				TargetType:  models.ModTargetPost,
				TargetID:    post.ID,
				Reason:      "cleanup",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.action, entry.Action)

			var fresh models.Post
			require.NoError(t, db.First(&fresh, post.ID).Error)
			assert.True(t, tc.check(&fresh))
		})
	}

	var logCount int64
	require.NoError(t, db.Model(&models.ModerationLog{}).Count(&logCount).Error)
	assert.EqualValues(t, len(cases), logCount)
}

func TestModerationService_Moderate_Comments(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)
	ctx := context.Background()

	mod := createTestUser(t, db, "mod", models.RoleModerator)
	author := createTestUser(t, db, "author", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, author.ID, post.ID, nil)

	t.Run("remove and restore apply to comments", func(t *testing.T) {
		_, err := svc.Moderate(ctx, ModerateInput{
			ModeratorID: mod.ID, Action: models.ModActionRemove,
			TargetType: models.ModTargetComment, TargetID: comment.ID,
		})
		require.NoError(t, err)

		var fresh models.Comment
		require.NoError(t, db.First(&fresh, comment.ID).Error)
		assert.True(t, fresh.IsRemoved)
	})

	t.Run("lock rejects comment targets", func(t *testing.T) {
		_, err := svc.Moderate(ctx, ModerateInput{
			ModeratorID: mod.ID, Action: models.ModActionLock,
			TargetType: models.ModTargetComment, TargetID: comment.ID,
		})
		assertInvalidOperationError(t, err)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := svc.Moderate(ctx, ModerateInput{
			ModeratorID: mod.ID, Action: "SHADOWBAN",
			TargetType: models.ModTargetPost, TargetID: post.ID,
		})
		assertValidationError(t, err)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := svc.Moderate(ctx, ModerateInput{
			ModeratorID: mod.ID, Action: models.ModActionRemove,
			TargetType: models.ModTargetPost, TargetID: 999,
		})
		assertNotFoundError(t, err)
	})
}

func TestModerationService_BanUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	user := createTestUser(t, db, "troll", models.RoleUser)

	t.Run("reason too short", func(t *testing.T) {
		_, err := svc.BanUser(ctx, BanInput{AdminID: admin.ID, UserID: user.ID, Reason: "spam"})
		assertValidationError(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := svc.BanUser(ctx, BanInput{
			AdminID: admin.ID, UserID: user.ID, Reason: "repeated spam posts", DurationDays: -1,
		})
		assertValidationError(t, err)
	})

	t.Run("admins cannot be banned", func(t *testing.T) {
		other := createTestUser(t, db, "admin2", models.RoleAdmin)
		_, err := svc.BanUser(ctx, BanInput{
			AdminID: admin.ID, UserID: other.ID, Reason: "repeated spam posts",
		})
		assertInvalidOperationError(t, err)

		fresh := reloadUser(t, db, other.ID)
		assert.False(t, fresh.IsBanned)
	})

	t.Run("temporary ban sets expiry", func(t *testing.T) {
		ban, err := svc.BanUser(ctx, BanInput{
			AdminID: admin.ID, UserID: user.ID, Reason: "repeated spam posts", DurationDays: 7,
		})
		require.NoError(t, err)
		assert.False(t, ban.IsPermanent)
		require.NotNil(t, ban.ExpiresAt)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *ban.ExpiresAt, time.Minute)

		banned := reloadUser(t, db, user.ID)
		assert.True(t, banned.IsBanned)
		assert.True(t, banned.EffectivelyBanned(time.Now()))
		assert.False(t, banned.EffectivelyBanned(time.Now().AddDate(0, 0, 8)))
	})

	t.Run("permanent ban", func(t *testing.T) {
		target := createTestUser(t, db, "troll2", models.RoleUser)
		ban, err := svc.BanUser(ctx, BanInput{
			AdminID: admin.ID, UserID: target.ID, Reason: "harassment of other members",
		})
		require.NoError(t, err)
		assert.True(t, ban.IsPermanent)
		assert.Nil(t, ban.ExpiresAt)

		banned := reloadUser(t, db, target.ID)
		assert.True(t, banned.EffectivelyBanned(time.Now().AddDate(10, 0, 0)))
	})
}

func TestModerationService_UnbanUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	user := createTestUser(t, db, "troll", models.RoleUser)

	t.Run("not banned", func(t *testing.T) {
		err := svc.UnbanUser(ctx, admin.ID, user.ID)
		assertInvalidOperationError(t, err)
	})

	t.Run("unban clears flags, keeps history", func(t *testing.T) {
		_, err := svc.BanUser(ctx, BanInput{
			AdminID: admin.ID, UserID: user.ID, Reason: "repeated spam posts", DurationDays: 7,
		})
		require.NoError(t, err)

		require.NoError(t, svc.UnbanUser(ctx, admin.ID, user.ID))

		fresh := reloadUser(t, db, user.ID)
		assert.False(t, fresh.IsBanned)
		assert.Nil(t, fresh.BannedUntil)

		bans, err := svc.ListBans(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, bans, 1)
	})
}

func TestModerationService_ListLogs_Filter(t *testing.T) {
	db := setupTestDB(t)
	svc := newModerationService(db)
	ctx := context.Background()

	mod := createTestUser(t, db, "mod", models.RoleModerator)
	author := createTestUser(t, db, "author", models.RoleUser)
	post := createTestPost(t, db, author.ID)
	comment := createTestComment(t, db, author.ID, post.ID, nil)

	_, err := svc.Moderate(ctx, ModerateInput{
		ModeratorID: mod.ID, Action: models.ModActionLock,
		TargetType: models.ModTargetPost, TargetID: post.ID,
	})
	require.NoError(t, err)
	_, err = svc.Moderate(ctx, ModerateInput{
		ModeratorID: mod.ID, Action: models.ModActionRemove,
		TargetType: models.ModTargetComment, TargetID: comment.ID,
	})
	require.NoError(t, err)

	logs, err := svc.ListLogs(ctx, models.ModTargetPost, post.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ModActionLock, logs[0].Action)

	all, err := svc.ListLogs(ctx, "", 0, 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
