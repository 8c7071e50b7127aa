package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"staffdir/internal/models"
)

const organizationColumns = `
		id,
		name,
		registration_date,
		registration_number,
		address,
		contact_person,
		departments,
		number_of_employees,
		contact_phone,
		email,
		created_at,
		updated_at`

var organizationInsertColumns = []string{
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

func scanOrganization(row rowScanner) (models.Organization, error) {
	var org models.Organization
	var departments []byte

	err := row.Scan(
		&org.Id,
		&org.Name,
		&org.RegistrationDate,
		&org.RegistrationNumber,
		&org.Address,
		&org.ContactPerson,
		&departments,
		&org.NumberOfEmployees,
		&org.ContactPhone,
		&org.Email,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	org.Departments = departments
	return org, err
}

func organizationValues(org models.Organization) []any {
	departments := org.Departments
	if len(departments) == 0 {
		departments = models.EmptyDepartments
	}
	return []any{
		org.Name,
		org.RegistrationDate,
		org.RegistrationNumber,
		org.Address,
		org.ContactPerson,
		string(departments),
		org.NumberOfEmployees,
		org.ContactPhone,
		org.Email,
	}
}

func (repo *Repository) GetOrganizations(ctx context.Context, limit, offset int) ([]models.Organization, error) {
	query := `
	SELECT` + organizationColumns + `
	FROM organization
	ORDER BY id
	LIMIT $1
	OFFSET $2
	`

	rows, err := repo.db.QueryContext(ctx, query, limitParam(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("repository.Repository.GetOrganizations: %w", err)
	}
	defer rows.Close()

	result := []models.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.Repository.GetOrganizations: row scan failed: %w", err)
		}
		result = append(result, org)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.Repository.GetOrganizations: %w", err)
	}

	return result, nil
}

func (repo *Repository) GetOrganizationById(ctx context.Context, id int) (models.Organization, error) {
	query := `
	SELECT` + organizationColumns + `
	FROM organization
	WHERE id = $1
	`

	org, err := scanOrganization(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return org, fmt.Errorf("repository.Repository.GetOrganizationById: %w: %d", models.ErrNoOrganization, id)
	} else if err != nil {
		return org, fmt.Errorf("repository.Repository.GetOrganizationById: %w", err)
	}

	return org, nil
}

// OrganizationByName looks an organization up by exact name.
func (repo *Repository) OrganizationByName(ctx context.Context, name string) (models.Organization, bool, error) {
	query := `
	SELECT` + organizationColumns + `
	FROM organization
	WHERE name = $1
	LIMIT 1
	`

	org, err := scanOrganization(repo.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return org, false, nil
	} else if err != nil {
		return org, false, fmt.Errorf("repository.Repository.OrganizationByName: %w", err)
	}

	return org, true, nil
}

func (repo *Repository) AddOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	query := `
	INSERT INTO organization
		(name, registration_date, registration_number, address, contact_person, departments, number_of_employees, contact_phone, email)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING` + organizationColumns

	created, err := scanOrganization(repo.db.QueryRowContext(ctx, query, organizationValues(org)...))
	if err != nil {
		return org, fmt.Errorf("repository.Repository.AddOrganization: %w", mapPostgresError(err))
	}

	return created, nil
}

func (repo *Repository) UpdateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	query := `
	UPDATE organization SET
		name = $2,
		registration_date = $3,
		registration_number = $4,
		address = $5,
		contact_person = $6,
		departments = $7,
		number_of_employees = $8,
		contact_phone = $9,
		email = $10,
		updated_at = now()
	WHERE id = $1
	RETURNING` + organizationColumns

	args := append([]any{org.Id}, organizationValues(org)...)
	updated, err := scanOrganization(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return org, fmt.Errorf("repository.Repository.UpdateOrganization: %w: %d", models.ErrNoOrganization, org.Id)
	} else if err != nil {
		return org, fmt.Errorf("repository.Repository.UpdateOrganization: %w", mapPostgresError(err))
	}

	return updated, nil
}

func (repo *Repository) DeleteOrganization(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM organization WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("repository.Repository.DeleteOrganization: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository.Repository.DeleteOrganization: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("repository.Repository.DeleteOrganization: %w: %d", models.ErrNoOrganization, id)
	}

	return nil
}

// AddOrganizations inserts all organizations in one transaction: either every
// row is stored or none is.
func (repo *Repository) AddOrganizations(ctx context.Context, orgs []models.Organization) (int, error) {
	if len(orgs) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(orgs))
	for _, org := range orgs {
		rows = append(rows, organizationValues(org))
	}

	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository.Repository.AddOrganizations: %w", err)
	}

	n, err := bulkInsert(ctx, tx, "organization", organizationInsertColumns, rows)
	if err != nil {
		return 0, fmt.Errorf("repository.Repository.AddOrganizations: %w", wrapRollbackErr(tx, mapPostgresError(err)))
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository.Repository.AddOrganizations: %w", err)
	}

	return n, nil
}
