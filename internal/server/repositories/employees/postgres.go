// Package employees provides the PostgreSQL-backed employee repository.
package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/common"
	"github.com/dmitrijs2005/employeeboard/internal/dbx"
	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

// PostgresRepository implements employee storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, first_name, last_name, age, phone_number, email, job_location, created_at`

// Create inserts e and fills in the generated ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	query := `
		INSERT INTO employees (first_name, last_name, age, phone_number, email, job_location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.FirstName, e.LastName, e.Age, e.PhoneNumber, e.Email, e.JobLocation,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

// List returns all employees in creation order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select employees: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Employee, 0)
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Age, &e.PhoneNumber, &e.Email, &e.JobLocation, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns common.ErrNotFound when no employee has the given id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	var e models.Employee
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.FirstName, &e.LastName, &e.Age, &e.PhoneNumber, &e.Email, &e.JobLocation, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select employee: %w", err)
	}
	return &e, nil
}

// DeleteByID removes the employee; posts and comments go with it through
// ON DELETE CASCADE. It reports whether a row was deleted.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
