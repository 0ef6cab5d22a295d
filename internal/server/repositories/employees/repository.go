package employees

import (
	"context"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Employee) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
