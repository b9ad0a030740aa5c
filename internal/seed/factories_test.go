package seed

import (
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFactoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
	))
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := setupFactoryDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser(func(u *models.User) {
		u.Role = models.RoleModerator
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)
	assert.Equal(t, models.RoleModerator, user.Role)
	assert.NotEqual(t, seedPassword, user.Password, "password must be stored hashed")
}

func TestPopulate(t *testing.T) {
	db := setupFactoryDB(t)
	require.NoError(t, db.Create(&models.Category{Name: "General", Slug: "general"}).Error)

	require.NoError(t, Populate(db, 3))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 3, userCount)
	assert.GreaterOrEqual(t, postCount, int64(3), "every user authors at least one post")

	var uncategorized int64
	require.NoError(t, db.Model(&models.Post{}).Where("category_id IS NULL").Count(&uncategorized).Error)
	assert.Zero(t, uncategorized, "posts pick up the seeded category")
}
