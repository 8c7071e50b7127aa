package service

import (
	"context"
	"fmt"

	"staffdir/internal/models"
)

type Repository interface {
	GetOrganizations(ctx context.Context, limit, offset int) ([]models.Organization, error)
	GetOrganizationById(ctx context.Context, id int) (models.Organization, error)
	OrganizationByName(ctx context.Context, name string) (models.Organization, bool, error)
	AddOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	UpdateOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	DeleteOrganization(ctx context.Context, id int) error
	AddOrganizations(ctx context.Context, orgs []models.Organization) (int, error)

	GetEmployees(ctx context.Context, limit, offset, organizationId int) ([]models.Employee, error)
	GetEmployeeById(ctx context.Context, id int) (models.Employee, error)
	EmployeeIds(ctx context.Context) (map[string]struct{}, error)
	AddEmployee(ctx context.Context, empl models.Employee) (models.Employee, error)
	UpdateEmployee(ctx context.Context, empl models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
	AddEmployees(ctx context.Context, empls []models.Employee) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

//// Organizations

func (s *Service) GetOrganizations(ctx context.Context, limit, offset int) ([]models.Organization, error) {
	orgs, err := s.repo.GetOrganizations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("service.Service.GetOrganizations: %w", err)
	}
	return orgs, nil
}

func (s *Service) GetOrganization(ctx context.Context, id int) (models.Organization, error) {
	org, err := s.repo.GetOrganizationById(ctx, id)
	if err != nil {
		return org, fmt.Errorf("service.Service.GetOrganization: %w", err)
	}
	return org, nil
}

func (s *Service) AddOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	if len(org.Departments) == 0 {
		org.Departments = models.EmptyDepartments
	}

	org, err := s.repo.AddOrganization(ctx, org)
	if err != nil {
		return org, fmt.Errorf("service.Service.AddOrganization: %w", err)
	}
	return org, nil
}

func (s *Service) UpdateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	if len(org.Departments) == 0 {
		org.Departments = models.EmptyDepartments
	}

	org, err := s.repo.UpdateOrganization(ctx, org)
	if err != nil {
		return org, fmt.Errorf("service.Service.UpdateOrganization: %w", err)
	}
	return org, nil
}

func (s *Service) DeleteOrganization(ctx context.Context, id int) error {
	if err := s.repo.DeleteOrganization(ctx, id); err != nil {
		return fmt.Errorf("service.Service.DeleteOrganization: %w", err)
	}
	return nil
}

//// Employees

func (s *Service) GetEmployees(ctx context.Context, limit, offset, organizationId int) ([]models.Employee, error) {
	empls, err := s.repo.GetEmployees(ctx, limit, offset, organizationId)
	if err != nil {
		return nil, fmt.Errorf("service.Service.GetEmployees: %w", err)
	}
	return empls, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int) (models.Employee, error) {
	empl, err := s.repo.GetEmployeeById(ctx, id)
	if err != nil {
		return empl, fmt.Errorf("service.Service.GetEmployee: %w", err)
	}
	return empl, nil
}

// AddEmployee stores a new employee. The referenced organization must exist,
// otherwise models.ErrNoOrganization is returned.
func (s *Service) AddEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	if _, err := s.repo.GetOrganizationById(ctx, empl.OrganizationId); err != nil {
		return empl, fmt.Errorf("service.Service.AddEmployee: %w", err)
	}

	empl, err := s.repo.AddEmployee(ctx, empl)
	if err != nil {
		return empl, fmt.Errorf("service.Service.AddEmployee: %w", err)
	}
	return empl, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	if _, err := s.repo.GetEmployeeById(ctx, empl.Id); err != nil {
		return empl, fmt.Errorf("service.Service.UpdateEmployee: %w", err)
	}

	if _, err := s.repo.GetOrganizationById(ctx, empl.OrganizationId); err != nil {
		return empl, fmt.Errorf("service.Service.UpdateEmployee: %w", err)
	}

	empl, err := s.repo.UpdateEmployee(ctx, empl)
	if err != nil {
		return empl, fmt.Errorf("service.Service.UpdateEmployee: %w", err)
	}
	return empl, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("service.Service.DeleteEmployee: %w", err)
	}
	return nil
}
