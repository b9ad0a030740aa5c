package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// CourseRepository defines persistence operations for courses and their resources.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	List(ctx context.Context, semester int) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	CreateResource(ctx context.Context, resource *models.CourseResource) error
	GetResourceByID(ctx context.Context, id uint) (*models.CourseResource, error)
	ListResources(ctx context.Context, courseID uint, resourceType string, year int) ([]*models.CourseResource, error)
	DeleteResource(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository returns a new CourseRepository implementation.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Course code already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	err := cache.Aside(ctx, cache.CourseKey(code), &course, cache.CourseTTL, func() error {
		if err := r.db.WithContext(ctx).
			Select("courses.*, (SELECT COUNT(*) FROM course_resources WHERE course_resources.course_id = courses.id AND course_resources.deleted_at IS NULL) as resource_count").
			Where("code = ?", code).
			First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Course", 0)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, semester int) ([]*models.Course, error) {
	var courses []*models.Course
	q := r.db.WithContext(ctx).
		Select("courses.*, (SELECT COUNT(*) FROM course_resources WHERE course_resources.course_id = courses.id AND course_resources.deleted_at IS NULL) as resource_count")
	if semester != 0 {
		q = q.Where("semester = ?", semester)
	}
	if err := q.Order("code ASC").Find(&courses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return courses, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCourse(ctx, course.Code)
	return nil
}

func (r *courseRepository) CreateResource(ctx context.Context, resource *models.CourseResource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *courseRepository) GetResourceByID(ctx context.Context, id uint) (*models.CourseResource, error) {
	var resource models.CourseResource
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Uploader").
		First(&resource, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Resource", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &resource, nil
}

func (r *courseRepository) ListResources(ctx context.Context, courseID uint, resourceType string, year int) ([]*models.CourseResource, error) {
	var resources []*models.CourseResource
	q := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("course_id = ?", courseID)
	if resourceType != "" {
		q = q.Where("type = ?", resourceType)
	}
	if year != 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Order("created_at DESC").Find(&resources).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return resources, nil
}

func (r *courseRepository) DeleteResource(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.CourseResource{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
