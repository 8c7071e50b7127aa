package models

import "time"

type Employee struct {
	Id             int       `json:"id"`
	OrganizationId int       `json:"company"`
	Name           string    `json:"name"`
	EmployeeId     string    `json:"employee_id"`
	Department     *string   `json:"department"`
	Role           *string   `json:"role"`
	DateStarted    *Date     `json:"date_started"`
	DateLeft       *Date     `json:"date_left"`
	Duties         *string   `json:"duties"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
