package server

import (
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategoryBySlug handles GET /api/categories/:slug
func (s *Server) GetCategoryBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slug"))
	}

	category, err := s.categoryRepo.GetBySlug(c.Context(), slug)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(category)
}

// CreateCategory handles POST /api/categories (admin only)
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        models.Slugify(req.Name),
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := s.categoryRepo.Create(c.Context(), category); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/categories/:id (admin only)
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	category, getErr := s.categoryRepo.GetByID(c.Context(), id)
	if getErr != nil {
		return models.RespondWithDomainError(c, getErr)
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name != "" {
		category.Name = req.Name
		category.Slug = models.Slugify(req.Name)
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}

	if updateErr := s.categoryRepo.Update(c.Context(), category); updateErr != nil {
		return models.RespondWithDomainError(c, updateErr)
	}

	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/categories/:id (admin only)
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.categoryRepo.Delete(c.Context(), id); deleteErr != nil {
		return models.RespondWithDomainError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetTags handles GET /api/tags?search=
func (s *Server) GetTags(c *fiber.Ctx) error {
	var (
		tags []*models.Tag
		err  error
	)
	if query := c.Query("search"); query != "" {
		tags, err = s.tagRepo.Search(c.Context(), query)
	} else {
		tags, err = s.tagRepo.List(c.Context())
	}
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"tags": tags})
}

// CreateTag handles POST /api/tags (any authenticated user)
func (s *Server) CreateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	slug := models.Slugify(req.Name)
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	tag := &models.Tag{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.tagRepo.Create(c.Context(), tag); err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}
