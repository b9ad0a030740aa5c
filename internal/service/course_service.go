package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/validation"
)

// CourseService owns courses and their shared resources.
type CourseService struct {
	courseRepo repository.CourseRepository
	isStaff    func(ctx context.Context, userID uint) (bool, error)
}

// CreateCourseInput describes a new course. Staff only.
type CreateCourseInput struct {
	Code        string `validate:"required,max=20"`
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Semester    int    `validate:"min=0,max=12"`
}

// CreateResourceInput describes a new course resource.
type CreateResourceInput struct {
	UploaderID  uint
	CourseCode  string
	Title       string `validate:"required,max=200"`
	Description string `validate:"max=2000"`
	Type        string `validate:"required,oneof=NOTES PAST_EXAM LINK OTHER"`
	Content     string
	FileURL     string `validate:"omitempty,url"`
	Year        int
	Semester    int
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *CourseService {
	return &CourseService{courseRepo: courseRepo, isStaff: isStaff}
}

func (s *CourseService) CreateCourse(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	course := &models.Course{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Semester:    in.Semester,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	return s.courseRepo.GetByCode(ctx, code)
}

func (s *CourseService) ListCourses(ctx context.Context, semester int) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, semester)
}

func (s *CourseService) CreateResource(ctx context.Context, in CreateResourceInput) (*models.CourseResource, error) {
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	course, err := s.courseRepo.GetByCode(ctx, in.CourseCode)
	if err != nil {
		return nil, err
	}

	resource := &models.CourseResource{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Content:     in.Content,
		FileURL:     in.FileURL,
		Year:        in.Year,
		Semester:    in.Semester,
		CourseID:    course.ID,
		UploaderID:  in.UploaderID,
	}
	if err := s.courseRepo.CreateResource(ctx, resource); err != nil {
		return nil, err
	}
	return s.courseRepo.GetResourceByID(ctx, resource.ID)
}

func (s *CourseService) ListResources(ctx context.Context, courseCode, resourceType string, year int) ([]*models.CourseResource, error) {
	course, err := s.courseRepo.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.ListResources(ctx, course.ID, resourceType, year)
}

// DeleteResource removes a resource. Uploader or staff only.
func (s *CourseService) DeleteResource(ctx context.Context, userID, resourceID uint) error {
	resource, err := s.courseRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return err
	}

	if resource.UploaderID != userID {
		if s.isStaff == nil {
			return models.NewForbiddenError("You can only delete your own resources")
		}
		staff, err := s.isStaff(ctx, userID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("You can only delete your own resources")
		}
	}

	return s.courseRepo.DeleteResource(ctx, resourceID)
}
