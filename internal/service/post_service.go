package service

import (
	"context"

	"agora/internal/content"
	"agora/internal/models"
	"agora/internal/repository"
)

// PostService owns post authoring and retrieval.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	tagRepo      repository.TagRepository
	isStaff      func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID     uint
	Title      string
	Content    string
	CategoryID *uint
	Tags       []string
}

type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Title      *string
	Content    *string
	CategoryID *uint
	Tags       []string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

const (
	maxPostTitleLen   = 300
	maxPostContentLen = 40000
	maxPostTags       = 5
)

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	tagRepo repository.TagRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		isStaff:      isStaff,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxPostTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 40000 characters)")
	}
	if len(in.Tags) > maxPostTags {
		return nil, models.NewValidationError("At most 5 tags per post")
	}

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		Published:  true,
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(in.Tags) > 0 {
		tags, err := s.tagRepo.FindOrCreateBySlugs(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
	}

	return s.GetPost(ctx, post.ID, in.UserID, false)
}

// GetPost returns a post with its computed fields. Removed posts surface as
// not found unless the caller is staff. When countView is set the view
// counter is bumped; the returned count includes the bump.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint, countView bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if post.IsRemoved {
		staff, err := s.callerIsStaff(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		if !staff {
			return nil, models.NewNotFoundError("Post", id)
		}
	}

	if countView {
		if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
			return nil, err
		}
		post.ViewCount++
	}

	post.ContentHTML = content.RenderMarkdown(post.Content)
	return post, nil
}

func (s *PostService) callerIsStaff(ctx context.Context, userID uint) (bool, error) {
	if userID == 0 || s.isStaff == nil {
		return false, nil
	}
	return s.isStaff(ctx, userID)
}

func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, filter, limit, offset, currentUserID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return nil, err
	}

	if post.IsRemoved {
		staff, err := s.callerIsStaff(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !staff {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if post.IsLocked {
		return nil, models.NewForbiddenError("Post is locked")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > maxPostTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxPostContentLen {
			return nil, models.NewValidationError("Content too long (max 40000 characters)")
		}
		post.Content = *in.Content
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = in.CategoryID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		if len(in.Tags) > maxPostTags {
			return nil, models.NewValidationError("At most 5 tags per post")
		}
		tags, err := s.tagRepo.FindOrCreateBySlugs(ctx, in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, err
		}
	}

	return s.GetPost(ctx, post.ID, in.UserID, false)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID, 0)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isStaff == nil {
			return models.NewForbiddenError("You can only delete your own posts")
		}
		staff, err := s.isStaff(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}
