package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
)

type PostInput struct {
	EmployeeID int64  `validate:"gt=0"`
	Title      string `validate:"required,max=200"`
	Content    string `validate:"required"`
}

type PostService struct {
	repomanager repomanager.RepositoryManager
}

func NewPostService(m repomanager.RepositoryManager) *PostService {
	return &PostService{repomanager: m}
}

func (s *PostService) ListByEmployee(ctx context.Context, employeeID int64) ([]*models.Post, error) {
	list, err := s.repomanager.Repositories().Posts.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return list, nil
}

// Create fails with common.ErrNotFound when the employee does not exist.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	var created *models.Post
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if _, err := r.Employees.GetByID(ctx, in.EmployeeID); err != nil {
			return err
		}
		p, err := r.Posts.Create(ctx, &models.Post{EmployeeID: in.EmployeeID, Title: in.Title, Content: in.Content})
		if err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repomanager.Repositories().Posts.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting post: %w", err)
	}
	return ok, nil
}
