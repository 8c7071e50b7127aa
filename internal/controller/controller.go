package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"staffdir/internal/config"
	"staffdir/internal/logging"
	"staffdir/internal/models"
	"staffdir/internal/tabular"
)

type Service interface {
	GetOrganizations(ctx context.Context, limit, offset int) ([]models.Organization, error)
	GetOrganization(ctx context.Context, id int) (models.Organization, error)
	AddOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	UpdateOrganization(ctx context.Context, org models.Organization) (models.Organization, error)
	DeleteOrganization(ctx context.Context, id int) error
	UploadOrganizations(ctx context.Context, filename string, src io.Reader) (int, error)

	GetEmployees(ctx context.Context, limit, offset, organizationId int) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int) (models.Employee, error)
	AddEmployee(ctx context.Context, empl models.Employee) (models.Employee, error)
	UpdateEmployee(ctx context.Context, empl models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
	UploadEmployees(ctx context.Context, filename string, src io.Reader) (int, error)
}

type Controller struct {
	service Service
	cfg     *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{service: service, cfg: cfg}
}

// GET /api/ping
func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

//// Uploads

type importFunc func(ctx context.Context, filename string, src io.Reader) (int, error)

// POST /api/companies/upload_companies/
func (c *Controller) UploadOrganizations(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.service.UploadOrganizations, "companies")
}

// POST /api/employees/upload_employees/
func (c *Controller) UploadEmployees(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.service.UploadEmployees, "employees")
}

func (c *Controller) upload(w http.ResponseWriter, r *http.Request, importer importFunc, noun string) {
	r.Body = http.MaxBytesReader(w, r.Body, c.cfg.MaxUploadSize)

	file, filename, err := c.formFile(r, "file")
	if err != nil {
		c.uploadErrorResponse(w, r, err)
		return
	}
	defer file.Close()

	n, err := importer(r.Context(), filename, file)
	if err != nil {
		c.uploadErrorResponse(w, r, err)
		return
	}

	c.statusResponse(w, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("%d %s uploaded successfully!", n, noun),
	})
}

func (c *Controller) formFile(r *http.Request, field string) (io.ReadCloser, string, error) {
	err := r.ParseMultipartForm(c.cfg.MaxUploadMemory)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %w", models.ErrNoFileProvided, err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", models.ErrNoFileProvided, err)
	}

	return file, header.Filename, nil
}

func (c *Controller) uploadErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing  *models.MissingFieldsError
		notFound *models.OrganizationNotFoundError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.Is(err, models.ErrNoFileProvided):
		c.errorResponse(w, http.StatusBadRequest, "No file provided.")
	case errors.As(err, &tooLarge):
		c.errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the upload limit of %d bytes.", tooLarge.Limit))
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		c.errorResponse(w, http.StatusBadRequest, "File format not supported.")
	case errors.Is(err, tabular.ErrEmptyFile):
		c.errorResponse(w, http.StatusBadRequest, "The uploaded file is empty.")
	case errors.As(err, &missing):
		c.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("Missing required fields: %s.", strings.Join(missing.Fields, ", ")))
	case errors.As(err, &notFound):
		c.errorResponse(w, http.StatusNotFound, fmt.Sprintf("Company '%s' not found.", notFound.Name))
	case errors.Is(err, models.ErrDuplicateOrganization):
		c.errorResponse(w, http.StatusConflict, "Company with this name already exists.")
	case errors.Is(err, models.ErrDuplicateEmployee):
		c.errorResponse(w, http.StatusConflict, "Employee with this employee_id already exists.")
	default:
		logging.FromContext(r.Context()).WithError(err).Error("file import failed")
		c.errorResponse(w, http.StatusInternalServerError, "An error occurred during file processing.")
	}
}

// Service

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (c *Controller) getQueryInt(query url.Values, key string) (int, error) {
	strs, ok := query[key]
	if ok && len(strs) > 0 && len(strs[0]) > 0 {
		n, err := strconv.Atoi(strs[0])
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, fmt.Errorf("negative value %d", n)
		}
		return n, nil
	}
	return 0, nil
}

// pageParams reads limit and offset; a missing limit falls back to the configured page size.
func (c *Controller) pageParams(w http.ResponseWriter, query url.Values) (int, int, bool) {
	limit, err := c.getQueryInt(query, "limit")
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, "invalid value of 'limit' query parameter: "+query.Get("limit"))
		return 0, 0, false
	}
	if limit == 0 {
		limit = c.cfg.PageSize
	}

	offset, err := c.getQueryInt(query, "offset")
	if err != nil {
		c.errorResponse(w, http.StatusBadRequest, "invalid value of 'offset' query parameter: "+query.Get("offset"))
		return 0, 0, false
	}

	return limit, offset, true
}

func (c *Controller) pathId(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		c.errorResponse(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func (c *Controller) errorResponse(w http.ResponseWriter, status int, text string) {
	c.statusResponse(w, status, ErrorResponse{Error: text})
}

func (c *Controller) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNoOrganization), errors.Is(err, models.ErrNoEmployee):
		c.errorResponse(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, models.ErrDuplicateOrganization):
		c.errorResponse(w, http.StatusConflict, "Company with this name already exists.")
	case errors.Is(err, models.ErrDuplicateEmployee):
		c.errorResponse(w, http.StatusConflict, "Employee with this employee_id already exists.")
	default:
		logging.FromContext(r.Context()).WithError(err).Error("request failed")
		c.errorResponse(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func (c *Controller) marshalResponse(w http.ResponseWriter, data any) {
	c.statusResponse(w, http.StatusOK, data)
}

func (c *Controller) statusResponse(w http.ResponseWriter, status int, data any) {
	d, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(d)
}

func (c *Controller) readBody(src io.ReadCloser) ([]byte, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	src.Close()
	return data, nil
}
