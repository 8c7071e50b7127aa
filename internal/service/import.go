package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"staffdir/internal/logging"
	"staffdir/internal/metrics"
	"staffdir/internal/models"
	"staffdir/internal/tabular"
)

var (
	OrganizationColumns = []string{
		"name",
		"registration_date",
		"registration_number",
		"address",
		"contact_person",
		"departments",
		"number_of_employees",
		"contact_phone",
		"email",
	}

	EmployeeColumns = []string{
		"company_name",
		"employee_name",
		"employee_id",
	}
)

// outcome is the decision taken for one imported row: the row is either
// accepted with its entity, skipped for a reason, or fails the whole batch.
type outcome[T any] struct {
	entity T
	skip   string
	err    error
}

func accept[T any](entity T) outcome[T] {
	return outcome[T]{entity: entity}
}

func skip[T any](reason string) outcome[T] {
	return outcome[T]{skip: reason}
}

func fatal[T any](err error) outcome[T] {
	return outcome[T]{err: err}
}

// collect applies decide to every row in file order and stops at the first
// fatal outcome.
func collect[T any](logger logrus.FieldLogger, rows []tabular.Row, decide func(tabular.Row) outcome[T]) ([]T, int, error) {
	accepted := make([]T, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		res := decide(row)
		switch {
		case res.err != nil:
			return nil, skipped, res.err
		case res.skip != "":
			skipped++
			logger.WithFields(logrus.Fields{
				"line":   row.Line(),
				"reason": res.skip,
			}).Warn("import row skipped")
		default:
			accepted = append(accepted, res.entity)
		}
	}

	return accepted, skipped, nil
}

// UploadOrganizations imports organizations from a tabular file and returns
// how many were created. Every row must carry all organization columns.
func (s *Service) UploadOrganizations(ctx context.Context, filename string, src io.Reader) (int, error) {
	logger := logging.FromContext(ctx).WithFields(logrus.Fields{
		"entity": metrics.EntityOrganization,
		"file":   filename,
	})

	n, skipped, err := s.uploadOrganizations(ctx, logger, filename, src)
	metrics.ObserveImport(metrics.EntityOrganization, n, skipped, err)
	if err != nil {
		return 0, fmt.Errorf("service.Service.UploadOrganizations: %w", err)
	}

	logger.WithField("created", n).Info("organizations imported")
	return n, nil
}

func (s *Service) uploadOrganizations(ctx context.Context, logger logrus.FieldLogger, filename string, src io.Reader) (int, int, error) {
	table, err := tabular.Read(filename, src)
	if err != nil {
		return 0, 0, err
	}

	orgs, skipped, err := collect(logger, table.Rows, func(row tabular.Row) outcome[models.Organization] {
		if missing := row.Missing(OrganizationColumns...); len(missing) > 0 {
			return fatal[models.Organization](&models.MissingFieldsError{Fields: missing})
		}

		org, err := decodeOrganization(row)
		if err != nil {
			return fatal[models.Organization](err)
		}
		return accept(org)
	})
	if err != nil {
		return 0, skipped, err
	}

	n, err := s.repo.AddOrganizations(ctx, orgs)
	return n, skipped, err
}

// UploadEmployees imports employees from a tabular file and returns how many
// were created. Rows without an employee or company identifier and rows whose
// employee_id is already known are skipped. A company name that matches no
// organization rejects the whole file.
func (s *Service) UploadEmployees(ctx context.Context, filename string, src io.Reader) (int, error) {
	logger := logging.FromContext(ctx).WithFields(logrus.Fields{
		"entity": metrics.EntityEmployee,
		"file":   filename,
	})

	n, skipped, err := s.uploadEmployees(ctx, logger, filename, src)
	metrics.ObserveImport(metrics.EntityEmployee, n, skipped, err)
	if err != nil {
		return 0, fmt.Errorf("service.Service.UploadEmployees: %w", err)
	}

	logger.WithFields(logrus.Fields{"created": n, "skipped": skipped}).Info("employees imported")
	return n, nil
}

func (s *Service) uploadEmployees(ctx context.Context, logger logrus.FieldLogger, filename string, src io.Reader) (int, int, error) {
	table, err := tabular.Read(filename, src)
	if err != nil {
		return 0, 0, err
	}

	seen, err := s.repo.EmployeeIds(ctx)
	if err != nil {
		return 0, 0, err
	}

	organizations := make(map[string]int)
	lookup := func(name string) (int, error) {
		if id, ok := organizations[name]; ok {
			return id, nil
		}
		org, ok, err := s.repo.OrganizationByName(ctx, name)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, &models.OrganizationNotFoundError{Name: name}
		}
		organizations[name] = org.Id
		return org.Id, nil
	}

	empls, skipped, err := collect(logger, table.Rows, func(row tabular.Row) outcome[models.Employee] {
		if missing := row.Missing(EmployeeColumns...); len(missing) > 0 {
			return fatal[models.Employee](&models.MissingFieldsError{Fields: missing})
		}

		employeeId, hasId := row.Value("employee_id")
		companyName, hasCompany := row.Raw("company_name")
		if !hasId || !hasCompany {
			return skip[models.Employee]("missing employee_id or company_name")
		}

		organizationId, err := lookup(companyName)
		if err != nil {
			return fatal[models.Employee](err)
		}

		if _, ok := seen[employeeId]; ok {
			return skip[models.Employee]("employee_id " + employeeId + " already exists")
		}

		name, _ := row.Value("employee_name")
		empl := models.Employee{
			OrganizationId: organizationId,
			Name:           name,
			EmployeeId:     employeeId,
		}
		if err := decodeEmployeeDetails(row, &empl); err != nil {
			return fatal[models.Employee](err)
		}

		seen[employeeId] = struct{}{}
		return accept(empl)
	})
	if err != nil {
		return 0, skipped, err
	}

	n, err := s.repo.AddEmployees(ctx, empls)
	return n, skipped, err
}
