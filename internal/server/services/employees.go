package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/employeeboard/internal/server/models"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
)

type EmployeeInput struct {
	FirstName   string `validate:"required,max=100"`
	LastName    string `validate:"required,max=100"`
	Age         int    `validate:"gte=0,lte=150"`
	PhoneNumber string `validate:"required,max=32"`
	Email       string `validate:"required,max=254"`
	JobLocation string `validate:"required,max=100"`
}

type EmployeeService struct {
	repomanager repomanager.RepositoryManager
}

func NewEmployeeService(m repomanager.RepositoryManager) *EmployeeService {
	return &EmployeeService{repomanager: m}
}

func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	list, err := s.repomanager.Repositories().Employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing employees: %w", err)
	}
	return list, nil
}

// Get returns common.ErrNotFound for an unknown id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return s.repomanager.Repositories().Employees.GetByID(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := check(in); err != nil {
		return nil, err
	}

	e := &models.Employee{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Age:         in.Age,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		JobLocation: in.JobLocation,
	}

	e, err := s.repomanager.Repositories().Employees.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating employee: %w", err)
	}
	return e, nil
}

// Delete reports false when there was nothing to delete.
func (s *EmployeeService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repomanager.Repositories().Employees.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting employee: %w", err)
	}
	return ok, nil
}
