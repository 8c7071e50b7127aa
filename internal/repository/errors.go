package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"staffdir/internal/models"
)

const (
	constraintOrganizationName = "organization_name_key"
	constraintEmployeeId       = "employee_employee_id_key"
	constraintEmployeeOrg      = "employee_organization_id_fkey"
)

// mapPostgresError translates constraint violations into model errors.
// Other errors are returned unchanged.
func mapPostgresError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgerrcode.UniqueViolation:
		switch pqErr.Constraint {
		case constraintOrganizationName:
			return fmt.Errorf("%w: %s", models.ErrDuplicateOrganization, pqErr.Detail)
		case constraintEmployeeId:
			return fmt.Errorf("%w: %s", models.ErrDuplicateEmployee, pqErr.Detail)
		}
		return fmt.Errorf("unique constraint violation: %s: %w", pqErr.Constraint, err)
	case pgerrcode.ForeignKeyViolation:
		if pqErr.Constraint == constraintEmployeeOrg {
			return fmt.Errorf("%w: %s", models.ErrNoOrganization, pqErr.Detail)
		}
		return fmt.Errorf("foreign key violation: %s: %w", pqErr.Constraint, err)
	}
	return err
}
