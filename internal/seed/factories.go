package seed

import (
	"fmt"
	"math/rand"
	"time"

	"agora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds randomized demo entities on top of the fixed seed data.
// It is a thin helper used by the seeder's populate mode.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a random forum member. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:   fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:      gofakeit.Email(),
		Name:       gofakeit.Name(),
		Bio:        gofakeit.Sentence(10),
		Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Password:   string(hashed),
		Reputation: gofakeit.Number(0, 500),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a random post by the given author.
func (f *Factory) CreatePost(author *models.User, category *models.Category, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:     gofakeit.Question(),
		Content:   gofakeit.Paragraph(2, 4, 10, "\n\n"),
		Published: true,
		ViewCount: gofakeit.Number(0, 400),
		UserID:    author.ID,
	}
	if category != nil {
		post.CategoryID = &category.ID
	}

	// realistic created_at spread over the past three months
	daysBack := f.r.Intn(90)
	hoursBack := f.r.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a random comment on the provided
// post authored by the provided user.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(12),
		UserID:  author.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Populate creates n random users, each authoring a few posts, and sprinkles
// comments from the other generated users across them. Categories come from
// whatever Seed already planted; posts land uncategorized when none exist.
func Populate(db *gorm.DB, n int) error {
	f := NewFactory(db)

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		return fmt.Errorf("populate: load categories: %w", err)
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("populate: user %d: %w", i, err)
		}
		users = append(users, user)
	}

	for _, author := range users {
		postCount := f.r.Intn(3) + 1
		for i := 0; i < postCount; i++ {
			var category *models.Category
			if len(categories) > 0 {
				category = &categories[f.r.Intn(len(categories))]
			}
			post, err := f.CreatePost(author, category)
			if err != nil {
				return fmt.Errorf("populate: post by %s: %w", author.Username, err)
			}

			commentCount := f.r.Intn(4)
			for j := 0; j < commentCount; j++ {
				commenter := users[f.r.Intn(len(users))]
				if commenter.ID == author.ID {
					continue
				}
				if _, err := f.CreateComment(commenter, post); err != nil {
					return fmt.Errorf("populate: comment on %d: %w", post.ID, err)
				}
			}
		}
	}
	return nil
}
