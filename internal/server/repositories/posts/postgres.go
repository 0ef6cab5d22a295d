// Package posts provides the PostgreSQL-backed post repository.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/common"
	"github.com/dmitrijs2005/employeeboard/internal/dbx"
	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (employee_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	if err := r.db.QueryRowContext(ctx, query, p.EmployeeID, p.Title, p.Content).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// ListByEmployee returns the employee's posts in creation order.
func (r *PostgresRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*models.Post, error) {
	query := `SELECT id, employee_id, title, content, created_at FROM posts WHERE employee_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, employee_id, title, content, created_at FROM posts WHERE id = $1`

	var p models.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.EmployeeID, &p.Title, &p.Content, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
