package controller

import (
	"errors"
	"fmt"
	"net/http"

	"staffdir/internal/models"
)

// GET /api/employees/
func (c *Controller) GetEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, offset, ok := c.pageParams(w, query)
	if !ok {
		return
	}

	company, err := c.getQueryInt(query, "company")
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, "invalid value of 'company' query parameter: "+query.Get("company"))
		return
	}

	empls, err := c.service.GetEmployees(r.Context(), limit, offset, company)
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.marshalResponse(w, empls)
}

// POST /api/employees/
func (c *Controller) NewEmployee(w http.ResponseWriter, r *http.Request) {
	data, err := c.readBody(r.Body)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not read request body")
		return
	}

	req, err := ParseEmployeeReq(data, nil)
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	empl, err := c.service.AddEmployee(r.Context(), req.Employee(0))
	if err != nil {
		c.employeeErrorResponse(w, r, req.Company, err)
		return
	}

	c.statusResponse(w, http.StatusCreated, empl)
}

// GET /api/employees/{id}/
func (c *Controller) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	empl, err := c.service.GetEmployee(r.Context(), id)
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.marshalResponse(w, empl)
}

// PUT /api/employees/{id}/
// PATCH /api/employees/{id}/
func (c *Controller) EditEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	current, err := c.service.GetEmployee(r.Context(), id)
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	data, err := c.readBody(r.Body)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not read request body")
		return
	}

	base := &current
	if r.Method == http.MethodPut {
		base = nil
	}

	req, err := ParseEmployeeReq(data, base)
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	empl, err := c.service.UpdateEmployee(r.Context(), req.Employee(id))
	if err != nil {
		c.employeeErrorResponse(w, r, req.Company, err)
		return
	}

	c.marshalResponse(w, empl)
}

// DELETE /api/employees/{id}/
func (c *Controller) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteEmployee(r.Context(), id); err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// employeeErrorResponse reports a missing referenced company as a bad request
// rather than a missing resource.
func (c *Controller) employeeErrorResponse(w http.ResponseWriter, r *http.Request, company int, err error) {
	if !errors.Is(err, models.ErrNoEmployee) && errors.Is(err, models.ErrNoOrganization) {
		c.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Company '%d' does not exist.", company))
		return
	}
	c.serviceErrorResponse(w, r, err)
}
