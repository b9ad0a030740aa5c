package server

import (
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// Query: category_id, tag, user_id, sort (new|top|hot), limit, offset
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	filter := repository.PostFilter{
		CategoryID: uint(c.QueryInt("category_id", 0)),
		TagSlug:    c.Query("tag"),
		UserID:     uint(c.QueryInt("user_id", 0)),
		Sort:       c.Query("sort", "new"),
	}

	posts, err := s.postService.ListPosts(c.Context(), filter, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c, 20)
	currentUserID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPosts(c.Context(), repository.PostFilter{
		Query: query,
		Sort:  c.Query("sort", "new"),
	}, p.Limit, p.Offset, currentUserID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"query": query,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	post, getErr := s.postService.GetPost(c.Context(), id, currentUserID, true)
	if getErr != nil {
		return models.RespondWithDomainError(c, getErr)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		CategoryID *uint    `json:"category_id"`
		Tags       []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		Title      *string  `json:"title"`
		Content    *string  `json:"content"`
		CategoryID *uint    `json:"category_id"`
		Tags       []string `json:"tags"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, updateErr := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:     userID,
		PostID:     id,
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	})
	if updateErr != nil {
		return models.RespondWithDomainError(c, updateErr)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if deleteErr := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: id,
	}); deleteErr != nil {
		return models.RespondWithDomainError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
