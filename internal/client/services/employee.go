package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/models"
)

type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Add(ctx context.Context, e models.Employee) (*models.Employee, error)
}

type employeeService struct {
	client client.Client
}

func NewEmployeeService(client client.Client) EmployeeService {
	return &employeeService{client: client}
}

func (s *employeeService) List(ctx context.Context) ([]models.Employee, error) {
	list, err := s.client.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("employee listing error: %w", err)
	}
	return list, nil
}

// Add registers an employee; a missing status means active.
func (s *employeeService) Add(ctx context.Context, e models.Employee) (*models.Employee, error) {
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}

	added, err := s.client.AddEmployee(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("employee saving error: %w", err)
	}
	return added, nil
}
