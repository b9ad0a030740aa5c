package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Moderate handles POST /api/moderation (moderator only)
// Body: {action, target_type, target_id, reason}
func (s *Server) Moderate(c *fiber.Ctx) error {
	moderatorID := c.Locals("userID").(uint)

	var req struct {
		Action     string `json:"action"`
		TargetType string `json:"target_type"`
		TargetID   uint   `json:"target_id"`
		Reason     string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_id is required"))
	}

	entry, err := s.modService.Moderate(c.Context(), service.ModerateInput{
		ModeratorID: moderatorID,
		Action:      req.Action,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// GetModerationLogs handles GET /api/moderation (moderator only)
// Query: target_type, target_id, limit, offset
func (s *Server) GetModerationLogs(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	logs, err := s.modService.ListLogs(c.Context(),
		c.Query("target_type"),
		uint(c.QueryInt("target_id", 0)),
		p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

// BanUser handles POST /api/moderation/ban (admin only)
// Body: {user_id, reason, duration_days}; duration_days 0 or absent means
// permanent.
func (s *Server) BanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	var req struct {
		UserID       uint   `json:"user_id"`
		Reason       string `json:"reason"`
		DurationDays int    `json:"duration_days"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	ban, banErr := s.modService.BanUser(c.Context(), service.BanInput{
		AdminID:      adminID,
		UserID:       req.UserID,
		Reason:       req.Reason,
		DurationDays: req.DurationDays,
	})
	if banErr != nil {
		return models.RespondWithDomainError(c, banErr)
	}

	return c.Status(fiber.StatusCreated).JSON(ban)
}

// UnbanUser handles DELETE /api/moderation/ban?userId= (admin only)
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	userID := uint(c.QueryInt("userId", 0))
	if userID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	if unbanErr := s.modService.UnbanUser(c.Context(), adminID, userID); unbanErr != nil {
		return models.RespondWithDomainError(c, unbanErr)
	}

	return c.JSON(fiber.Map{"message": "User unbanned"})
}

// GetUserBans handles GET /api/users/:id/bans (moderator only)
func (s *Server) GetUserBans(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	bans, listErr := s.modService.ListBans(c.Context(), userID)
	if listErr != nil {
		return models.RespondWithDomainError(c, listErr)
	}

	return c.JSON(fiber.Map{"bans": bans})
}
