package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoFileProvided        = errors.New("no file provided")
	ErrMissingFields         = errors.New("missing required fields")
	ErrNoOrganization        = errors.New("requested organization does not exist")
	ErrNoEmployee            = errors.New("requested employee does not exist")
	ErrDuplicateOrganization = errors.New("organization with this name already exists")
	ErrDuplicateEmployee     = errors.New("employee with this employee id already exists")
)

// MissingFieldsError aborts a whole import batch: the file lacks required columns.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// OrganizationNotFoundError aborts a whole import batch: a row references an unknown company.
type OrganizationNotFoundError struct {
	Name string
}

func (e *OrganizationNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNoOrganization, e.Name)
}

func (e *OrganizationNotFoundError) Is(target error) bool {
	return target == ErrNoOrganization
}

// RowDecodeError reports a cell that could not be converted to its column type.
type RowDecodeError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowDecodeError) Error() string {
	return fmt.Sprintf("row %d: column %q: cannot decode %q: %s", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowDecodeError) Unwrap() error {
	return e.Err
}
