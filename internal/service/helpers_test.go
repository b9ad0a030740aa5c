package service

import (
	"context"
	"errors"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Report{},
		&models.Ban{},
		&models.ModerationLog{},
		&models.Course{},
		&models.CourseResource{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@test.local",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     "Test post",
		Content:   "Test content",
		Published: true,
		UserID:    authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, authorID, postID uint, parentID *uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:  "Test comment",
		UserID:   authorID,
		PostID:   postID,
		ParentID: parentID,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertInvalidOperationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeInvalidOperation)
}

// staffAlways and staffNever stand in for the server's role lookup.
func staffAlways(_ context.Context, _ uint) (bool, error) { return true, nil }
func staffNever(_ context.Context, _ uint) (bool, error)  { return false, nil }
