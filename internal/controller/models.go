package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"staffdir/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Organization request

type OrganizationReq struct {
	Name               string          `json:"name" validate:"required,max=255"`
	RegistrationDate   *models.Date    `json:"registration_date"`
	RegistrationNumber *string         `json:"registration_number" validate:"omitempty,max=100"`
	Address            *string         `json:"address"`
	ContactPerson      *string         `json:"contact_person" validate:"omitempty,max=255"`
	Departments        json.RawMessage `json:"departments"`
	NumberOfEmployees  *int            `json:"number_of_employees" validate:"omitempty,min=0"`
	ContactPhone       *string         `json:"contact_phone" validate:"omitempty,max=50"`
	Email              *string         `json:"email" validate:"omitempty,email,max=254"`
}

// ParseOrganizationReq decodes a request body. For partial updates current
// holds the stored organization and only the fields present in data change.
func ParseOrganizationReq(data []byte, current *models.Organization) (*OrganizationReq, error) {
	req := &OrganizationReq{}
	if current != nil {
		*req = OrganizationReq{
			Name:               current.Name,
			RegistrationDate:   current.RegistrationDate,
			RegistrationNumber: current.RegistrationNumber,
			Address:            current.Address,
			ContactPerson:      current.ContactPerson,
			Departments:        current.Departments,
			NumberOfEmployees:  current.NumberOfEmployees,
			ContactPhone:       current.ContactPhone,
			Email:              current.Email,
		}
	}

	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("malformed request body: %w", err)
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validateReq(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (req *OrganizationReq) Organization(id int) models.Organization {
	departments := req.Departments
	if bytes.Equal(bytes.TrimSpace(departments), []byte("null")) {
		departments = nil
	}

	return models.Organization{
		Id:                 id,
		Name:               req.Name,
		RegistrationDate:   req.RegistrationDate,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		ContactPerson:      req.ContactPerson,
		Departments:        departments,
		NumberOfEmployees:  req.NumberOfEmployees,
		ContactPhone:       req.ContactPhone,
		Email:              req.Email,
	}
}

// Employee request

type EmployeeReq struct {
	Company     int          `json:"company" validate:"required,gt=0"`
	Name        string       `json:"name" validate:"max=255"`
	EmployeeId  string       `json:"employee_id" validate:"required,max=100"`
	Department  *string      `json:"department" validate:"omitempty,max=255"`
	Role        *string      `json:"role" validate:"omitempty,max=255"`
	DateStarted *models.Date `json:"date_started"`
	DateLeft    *models.Date `json:"date_left"`
	Duties      *string      `json:"duties"`
}

func ParseEmployeeReq(data []byte, current *models.Employee) (*EmployeeReq, error) {
	req := &EmployeeReq{}
	if current != nil {
		*req = EmployeeReq{
			Company:     current.OrganizationId,
			Name:        current.Name,
			EmployeeId:  current.EmployeeId,
			Department:  current.Department,
			Role:        current.Role,
			DateStarted: current.DateStarted,
			DateLeft:    current.DateLeft,
			Duties:      current.Duties,
		}
	}

	if err := json.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("malformed request body: %w", err)
	}
	req.EmployeeId = strings.TrimSpace(req.EmployeeId)

	if err := validateReq(req); err != nil {
		return nil, err
	}

	if req.DateStarted != nil && req.DateLeft != nil && req.DateLeft.Before(req.DateStarted.Time) {
		return nil, errors.New("field 'date_left' must not precede 'date_started'")
	}

	return req, nil
}

func (req *EmployeeReq) Employee(id int) models.Employee {
	return models.Employee{
		Id:             id,
		OrganizationId: req.Company,
		Name:           req.Name,
		EmployeeId:     req.EmployeeId,
		Department:     req.Department,
		Role:           req.Role,
		DateStarted:    req.DateStarted,
		DateLeft:       req.DateLeft,
		Duties:         req.Duties,
	}
}

// Service

func validateReq(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s=%s' check", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s' check", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
