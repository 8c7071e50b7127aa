package models

import (
	"encoding/json"
	"time"
)

type Organization struct {
	Id                 int             `json:"id"`
	Name               string          `json:"name"`
	RegistrationDate   *Date           `json:"registration_date"`
	RegistrationNumber *string         `json:"registration_number"`
	Address            *string         `json:"address"`
	ContactPerson      *string         `json:"contact_person"`
	Departments        json.RawMessage `json:"departments"`
	NumberOfEmployees  *int            `json:"number_of_employees"`
	ContactPhone       *string         `json:"contact_phone"`
	Email              *string         `json:"email"`
	CreatedAt          time.Time       `json:"-"`
	UpdatedAt          time.Time       `json:"-"`
}

// EmptyDepartments is stored when no departments value was supplied.
var EmptyDepartments = json.RawMessage(`{}`)
