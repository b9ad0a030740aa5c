package server

import (
	"strings"

	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCourses handles GET /api/courses
// Query: semester
func (s *Server) GetCourses(c *fiber.Ctx) error {
	courses, err := s.courseService.ListCourses(c.Context(), c.QueryInt("semester", 0))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"courses": courses})
}

// GetCourse handles GET /api/courses/:code
func (s *Server) GetCourse(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid course code"))
	}

	course, err := s.courseService.GetCourse(c.Context(), code)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(course)
}

// CreateCourse handles POST /api/courses (admin only)
func (s *Server) CreateCourse(c *fiber.Ctx) error {
	var req struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Semester    int    `json:"semester"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	course, err := s.courseService.CreateCourse(c.Context(), service.CreateCourseInput{
		Code:        strings.ToUpper(req.Code),
		Name:        req.Name,
		Description: req.Description,
		Semester:    req.Semester,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// GetCourseResources handles GET /api/courses/:code/resources
// Query: type, year
func (s *Server) GetCourseResources(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))

	resources, err := s.courseService.ListResources(c.Context(), code,
		c.Query("type"), c.QueryInt("year", 0))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"resources": resources})
}

// CreateCourseResource handles POST /api/courses/:code/resources
func (s *Server) CreateCourseResource(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	code := strings.ToUpper(c.Params("code"))

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Content     string `json:"content"`
		FileURL     string `json:"file_url"`
		Year        int    `json:"year"`
		Semester    int    `json:"semester"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	resource, err := s.courseService.CreateResource(c.Context(), service.CreateResourceInput{
		UploaderID:  userID,
		CourseCode:  code,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Content:     req.Content,
		FileURL:     req.FileURL,
		Year:        req.Year,
		Semester:    req.Semester,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}

// DeleteCourseResource handles DELETE /api/resources/:id
func (s *Server) DeleteCourseResource(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.courseService.DeleteResource(c.Context(), userID, id); deleteErr != nil {
		return models.RespondWithDomainError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Resource deleted"})
}
