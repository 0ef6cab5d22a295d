package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
)

type CommentInput struct {
	PostID  int64  `validate:"gt=0"`
	Content string `validate:"required"`
}

type CommentService struct {
	repomanager repomanager.RepositoryManager
}

func NewCommentService(m repomanager.RepositoryManager) *CommentService {
	return &CommentService{repomanager: m}
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	list, err := s.repomanager.Repositories().Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return list, nil
}

// Create fails with common.ErrNotFound when the post does not exist.
func (s *CommentService) Create(ctx context.Context, in CommentInput) (*models.Comment, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	var created *models.Comment
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Posts.GetByID(ctx, in.PostID); err != nil {
			return err
		}
		c, err := r.Comments.Create(ctx, &models.Comment{PostID: in.PostID, Content: in.Content})
		if err != nil {
			return fmt.Errorf("error creating comment: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repomanager.Repositories().Comments.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting comment: %w", err)
	}
	return ok, nil
}
