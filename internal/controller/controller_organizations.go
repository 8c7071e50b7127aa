package controller

import (
	"net/http"
)

// GET /api/companies/
func (c *Controller) GetOrganizations(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := c.pageParams(w, r.URL.Query())
	if !ok {
		return
	}

	orgs, err := c.service.GetOrganizations(r.Context(), limit, offset)
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.marshalResponse(w, orgs)
}

// POST /api/companies/
func (c *Controller) NewOrganization(w http.ResponseWriter, r *http.Request) {
	data, err := c.readBody(r.Body)
	if err != nil {
		c.errorResponse(w, http.StatusInternalServerError, "could not read request body")
		return
	}

	req, err := ParseOrganizationReq(data, nil)
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	org, err := c.service.AddOrganization(r.Context(), req.Organization(0))
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.statusResponse(w, http.StatusCreated, org)
}

// GET /api/companies/{id}/
func (c *Controller) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	org, err := c.service.GetOrganization(r.Context(), id)
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.marshalResponse(w, org)
}

// PUT /api/companies/{id}/
// PATCH /api/companies/{id}/
func (c *Controller) EditOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	current, err := c.service.GetOrganization(r.Context(), id)
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

	req, err := ParseOrganizationReq(data, base)
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	org, err := c.service.UpdateOrganization(r.Context(), req.Organization(id))
	if err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	c.marshalResponse(w, org)
}

// DELETE /api/companies/{id}/
func (c *Controller) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathId(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteOrganization(r.Context(), id); err != nil {
		c.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
