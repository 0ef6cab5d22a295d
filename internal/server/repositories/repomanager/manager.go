package repomanager

import (
	"context"

	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/comments"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/employees"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/posts"
)

// Repositories groups the repositories bound to one connection or transaction.
type Repositories struct {
	Employees employees.Repository
	Posts     posts.Repository
	Comments  comments.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Repositories returns repositories outside of any transaction.
	Repositories() Repositories
	// WithinTx runs fn with repositories bound to a single transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}
