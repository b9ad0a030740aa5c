package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /api/votes
// Body: {target_type: "post"|"comment", target_id, value: -1|0|1}
func (s *Server) CastVote(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.requireNotBanned(c, userID); err != nil {
		return nil
	}

	var req struct {
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
		Value      int    `json:"value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_id is required"))
	}

	result, err := s.voteService.CastVote(c.Context(), service.CastVoteInput{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Value:      req.Value,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(result)
}

// GetVote handles GET /api/votes?target_type=...&target_id=...
func (s *Server) GetVote(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	targetType := c.Query("target_type")
	targetID := uint(c.QueryInt("target_id", 0))
	if targetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_id is required"))
	}

	result, err := s.voteService.GetVote(c.Context(), userID, targetType, targetID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(result)
}
