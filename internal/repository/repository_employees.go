package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffdir/internal/models"
)

const employeeColumns = `
		id,
		organization_id,
		name,
		employee_id,
		department,
		role,
		date_started,
		date_left,
		duties,
		created_at,
		updated_at`

var employeeInsertColumns = []string{
	"organization_id",
	"name",
	"employee_id",
	"department",
	"role",
	"date_started",
	"date_left",
	"duties",
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var empl models.Employee
	err := row.Scan(
		&empl.Id,
		&empl.OrganizationId,
		&empl.Name,
		&empl.EmployeeId,
		&empl.Department,
		&empl.Role,
		&empl.DateStarted,
		&empl.DateLeft,
		&empl.Duties,
		&empl.CreatedAt,
		&empl.UpdatedAt,
	)
	return empl, err
}

func employeeValues(empl models.Employee) []any {
	return []any{
		empl.OrganizationId,
		empl.Name,
		empl.EmployeeId,
		empl.Department,
		empl.Role,
		empl.DateStarted,
		empl.DateLeft,
		empl.Duties,
	}
}

// GetEmployees lists employees, restricted to one organization when organizationId is positive.
func (repo *Repository) GetEmployees(ctx context.Context, limit, offset, organizationId int) ([]models.Employee, error) {
	query := `
	SELECT` + employeeColumns + `
	FROM employee
	WHERE $3::integer IS NULL OR organization_id = $3
	ORDER BY id
	LIMIT $1
	OFFSET $2
	`

	var orgParam any
	if organizationId > 0 {
		orgParam = organizationId
	}

	rows, err := repo.db.QueryContext(ctx, query, limitParam(limit), offset, orgParam)
	if err != nil {
		return nil, fmt.Errorf("repository.Repository.GetEmployees: %w", err)
	}
	defer rows.Close()

	result := []models.Employee{}
	for rows.Next() {
		empl, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.Repository.GetEmployees: row scan failed: %w", err)
		}
		result = append(result, empl)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.Repository.GetEmployees: %w", err)
	}

	return result, nil
}

func (repo *Repository) GetEmployeeById(ctx context.Context, id int) (models.Employee, error) {
	query := `
	SELECT` + employeeColumns + `
	FROM employee
	WHERE id = $1
	`

	empl, err := scanEmployee(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return empl, fmt.Errorf("repository.Repository.GetEmployeeById: %w: %d", models.ErrNoEmployee, id)
	} else if err != nil {
		return empl, fmt.Errorf("repository.Repository.GetEmployeeById: %w", err)
	}

	return empl, nil
}

// EmployeeIds returns the set of every stored employee identifier.
func (repo *Repository) EmployeeIds(ctx context.Context) (map[string]struct{}, error) {
	rows, err := repo.db.QueryContext(ctx, "SELECT employee_id FROM employee")
	if err != nil {
		return nil, fmt.Errorf("repository.Repository.EmployeeIds: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	var id string
	for rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repository.Repository.EmployeeIds: rows scan error: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.Repository.EmployeeIds: %w", err)
	}

	return ids, nil
}

func (repo *Repository) AddEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	query := `
	INSERT INTO employee
		(organization_id, name, employee_id, department, role, date_started, date_left, duties)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING` + employeeColumns

	created, err := scanEmployee(repo.db.QueryRowContext(ctx, query, employeeValues(empl)...))
	if err != nil {
		return empl, fmt.Errorf("repository.Repository.AddEmployee: %w", mapPostgresError(err))
	}

	return created, nil
}

func (repo *Repository) UpdateEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	query := `
	UPDATE employee SET
		organization_id = $2,
		name = $3,
		employee_id = $4,
		department = $5,
		role = $6,
		date_started = $7,
		date_left = $8,
		duties = $9,
		updated_at = now()
	WHERE id = $1
	RETURNING` + employeeColumns

	args := append([]any{empl.Id}, employeeValues(empl)...)
	updated, err := scanEmployee(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return empl, fmt.Errorf("repository.Repository.UpdateEmployee: %w: %d", models.ErrNoEmployee, empl.Id)
	} else if err != nil {
		return empl, fmt.Errorf("repository.Repository.UpdateEmployee: %w", mapPostgresError(err))
	}

	return updated, nil
}

func (repo *Repository) DeleteEmployee(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM employee WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("repository.Repository.DeleteEmployee: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository.Repository.DeleteEmployee: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repository.Repository.DeleteEmployee: %w: %d", models.ErrNoEmployee, id)
	}

	return nil
}

// AddEmployees inserts all employees in one transaction. A unique violation on
// employee_id rejects the whole batch with models.ErrDuplicateEmployee.
func (repo *Repository) AddEmployees(ctx context.Context, empls []models.Employee) (int, error) {
	if len(empls) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(empls))
	for _, empl := range empls {
		rows = append(rows, employeeValues(empl))
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository.Repository.AddEmployees: %w", err)
	}

	n, err := bulkInsert(ctx, tx, "employee", employeeInsertColumns, rows)
	if err != nil {
		return 0, fmt.Errorf("repository.Repository.AddEmployees: %w", wrapRollbackErr(tx, mapPostgresError(err)))
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository.Repository.AddEmployees: %w", err)
	}

	return n, nil
}
