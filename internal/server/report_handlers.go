package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReport handles POST /api/reports
// Body: {target_type: "post"|"comment", target_id, reason, description}
func (s *Server) CreateReport(c *fiber.Ctx) error {
	reporterID := c.Locals("userID").(uint)
	if err := s.requireNotBanned(c, reporterID); err != nil {
		return nil
	}

	var req struct {
		TargetType  string `json:"target_type"`
		TargetID    uint   `json:"target_id"`
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_id is required"))
	}

	report, err := s.reportService.CreateReport(c.Context(), service.CreateReportInput{
		ReporterID:  reporterID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reports (moderator only)
// Query: status, limit, offset
func (s *Server) GetReports(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reports, err := s.reportService.ListReports(c.Context(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"reports": reports})
}

// ResolveReport handles PATCH /api/reports/:id (moderator only)
// Body: {status: REVIEWING|RESOLVED|DISMISSED, action: NONE|REMOVE_CONTENT}
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	moderatorID := c.Locals("userID").(uint)
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
		Action string `json:"action"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, resolveErr := s.reportService.ResolveReport(c.Context(), service.ResolveReportInput{
		ModeratorID: moderatorID,
		ReportID:    reportID,
		Status:      req.Status,
		Action:      req.Action,
	})
	if resolveErr != nil {
		return models.RespondWithDomainError(c, resolveErr)
	}

	return c.JSON(report)
}
