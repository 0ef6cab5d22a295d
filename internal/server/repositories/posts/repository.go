package posts

import (
	"context"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
