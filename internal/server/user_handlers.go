package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: userID,
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userService.GetUserByID(c.Context(), id)
	if getErr != nil {
		return models.RespondWithDomainError(c, getErr)
	}

	return c.JSON(user)
}

// GetUserActivity handles GET /api/users/:id/activity
func (s *Server) GetUserActivity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	activity, getErr := s.userService.GetActivity(c.Context(), id, p.Limit, p.Offset)
	if getErr != nil {
		return models.RespondWithDomainError(c, getErr)
	}

	return c.JSON(activity)
}

// SetUserRole handles POST /api/users/:id/role (admin only)
func (s *Server) SetUserRole(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, setErr := s.userService.SetRole(c.Context(), id, req.Role)
	if setErr != nil {
		return models.RespondWithDomainError(c, setErr)
	}

	return c.JSON(user)
}

// GetUsers handles GET /api/users (admin only)
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	users, err := s.userRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetLeaderboard handles GET /api/users/leaderboard
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	users, err := s.userService.Leaderboard(c.Context(), limit)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}
