package repository

import (
	"context"
	"errors"
	"strings"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Category slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CategoriesKey)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", 0)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).
			Select("categories.*, (SELECT COUNT(*) FROM posts WHERE posts.category_id = categories.id AND posts.deleted_at IS NULL AND posts.is_removed = ?) as post_count", false).
			Order("name ASC").
			Find(&categories).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CategoriesKey)
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.CategoriesKey)
	return nil
}

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	Search(ctx context.Context, query string) ([]*models.Tag, error)
	FindOrCreateBySlugs(ctx context.Context, names []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Tag slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TagCloudKey)
	return nil
}

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", 0)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagCloudKey, &tags, cache.TagCloudTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Search matches tags by name or slug. Results are not cached since the
// query space is unbounded.
func (r *tagRepository) Search(ctx context.Context, query string) ([]*models.Tag, error) {
	like := "%" + strings.ToLower(query) + "%"
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR slug LIKE ?", like, like).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// FindOrCreateBySlugs resolves tag names to rows, creating missing ones.
// The slug is the lowercased name with spaces collapsed to hyphens.
func (r *tagRepository) FindOrCreateBySlugs(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		slug := models.Slugify(name)
		if slug == "" {
			continue
		}
		var tag models.Tag
		err := r.db.WithContext(ctx).
			Where("slug = ?", slug).
			Attrs(models.Tag{Name: name, Slug: slug}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		tags = append(tags, tag)
	}
	cache.Invalidate(ctx, cache.TagCloudKey)
	return tags, nil
}
