package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
)

type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type UpdateProfileInput struct {
	UserID uint
	Name   string
	Bio    string
	Avatar string
}

// UserActivity aggregates a user's recent posts and comments.
type UserActivity struct {
	Posts    []*models.Post    `json:"posts"`
	Comments []*models.Comment `json:"comments"`
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, commentRepo: commentRepo}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 100

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = in.Name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetRole changes a user's role. Only called from admin handlers.
func (s *UserService) SetRole(ctx context.Context, targetID uint, role string) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin:
	default:
		return nil, models.NewValidationError("Role must be USER, MODERATOR, or ADMIN")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetActivity returns the user's recent posts and comments.
func (s *UserService) GetActivity(ctx context.Context, userID uint, limit, offset int) (*UserActivity, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, repository.PostFilter{UserID: userID}, limit, offset, 0)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &UserActivity{Posts: posts, Comments: comments}, nil
}

// Leaderboard returns the top users by reputation.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepo.TopByReputation(ctx, limit)
}
