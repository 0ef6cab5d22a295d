package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManager_SharesOneStore(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx))

	var id int64
	err := m.WithinTx(ctx, func(ctx context.Context, r Repositories) error {
		e, err := r.Employees.Create(ctx, &models.Employee{FirstName: "Ada"})
		if err != nil {
			return err
		}
		id = e.ID
		return nil
	})
	require.NoError(t, err)

	got, err := m.Repositories().Employees.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.NoError(t, m.Close())
}

func TestMemoryManager_PropagatesError(t *testing.T) {
	m := NewMemoryRepositoryManager()
	sentinel := errors.New("x")

	err := m.WithinTx(context.Background(), func(context.Context, Repositories) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}
