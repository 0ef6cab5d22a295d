package client

import (
	"context"

	"github.com/dmitrijs2005/employeeboard/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	GetEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int) error
	CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}
