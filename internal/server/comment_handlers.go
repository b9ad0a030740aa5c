package server

import (
	"agora/internal/content"
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	comments, listErr := s.commentService.ListComments(c.Context(), postID, currentUserID)
	if listErr != nil {
		return models.RespondWithDomainError(c, listErr)
	}

	for _, comment := range comments {
		comment.ContentHTML = content.RenderMarkdown(comment.Content)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, createErr := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:   userID,
		PostID:   postID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if createErr != nil {
		return models.RespondWithDomainError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, updateErr := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if updateErr != nil {
		return models.RespondWithDomainError(c, updateErr)
	}

	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, deleteErr := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); deleteErr != nil {
		return models.RespondWithDomainError(c, deleteErr)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// AcceptComment handles POST /api/comments/:id/accept
func (s *Server) AcceptComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	comment, acceptErr := s.commentService.AcceptComment(c.Context(), userID, commentID)
	if acceptErr != nil {
		return models.RespondWithDomainError(c, acceptErr)
	}

	return c.JSON(fiber.Map{"success": true, "isAccepted": comment.IsAccepted})
}

// UnacceptComment handles DELETE /api/comments/:id/accept
func (s *Server) UnacceptComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	comment, unacceptErr := s.commentService.UnacceptComment(c.Context(), userID, commentID)
	if unacceptErr != nil {
		return models.RespondWithDomainError(c, unacceptErr)
	}

	return c.JSON(fiber.Map{"success": true, "isAccepted": comment.IsAccepted})
}
