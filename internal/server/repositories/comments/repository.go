package comments

import (
	"context"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
