package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	gofakeit "github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffdir/internal/config"
	"staffdir/internal/models"
	"staffdir/internal/tabular"
)

type fakeService struct {
	orgs   map[int]models.Organization
	empls  map[int]models.Employee
	nextId int

	uploadErr  error
	uploadN    int
	uploadName string
	uploadBody string
	lastLimit  int
}

func newFakeService() *fakeService {
	return &fakeService{
		orgs:  make(map[int]models.Organization),
		empls: make(map[int]models.Employee),
	}
}

func (s *fakeService) GetOrganizations(ctx context.Context, limit, offset int) ([]models.Organization, error) {
	s.lastLimit = limit
	result := []models.Organization{}
	for _, org := range s.orgs {
		result = append(result, org)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *fakeService) GetOrganization(ctx context.Context, id int) (models.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return org, fmt.Errorf("fake: %w", models.ErrNoOrganization)
	}
	return org, nil
}

func (s *fakeService) AddOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	for _, existing := range s.orgs {
		if existing.Name == org.Name {
			return org, models.ErrDuplicateOrganization
		}
	}
	s.nextId++
	org.Id = s.nextId
	s.orgs[org.Id] = org
	return org, nil
}

func (s *fakeService) UpdateOrganization(ctx context.Context, org models.Organization) (models.Organization, error) {
	if _, ok := s.orgs[org.Id]; !ok {
		return org, models.ErrNoOrganization
	}
	s.orgs[org.Id] = org
	return org, nil
}

func (s *fakeService) DeleteOrganization(ctx context.Context, id int) error {
	if _, ok := s.orgs[id]; !ok {
		return models.ErrNoOrganization
	}
	delete(s.orgs, id)
	return nil
}

func (s *fakeService) UploadOrganizations(ctx context.Context, filename string, src io.Reader) (int, error) {
	return s.upload(filename, src)
}

func (s *fakeService) GetEmployees(ctx context.Context, limit, offset, organizationId int) ([]models.Employee, error) {
	s.lastLimit = limit
	result := []models.Employee{}
	for _, empl := range s.empls {
		if organizationId == 0 || empl.OrganizationId == organizationId {
			result = append(result, empl)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (s *fakeService) GetEmployee(ctx context.Context, id int) (models.Employee, error) {
	empl, ok := s.empls[id]
	if !ok {
		return empl, models.ErrNoEmployee
	}
	return empl, nil
}

func (s *fakeService) AddEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	if _, ok := s.orgs[empl.OrganizationId]; !ok {
		return empl, fmt.Errorf("fake: %w", models.ErrNoOrganization)
	}
	for _, existing := range s.empls {
		if existing.EmployeeId == empl.EmployeeId {
			return empl, models.ErrDuplicateEmployee
		}
	}
	s.nextId++
	empl.Id = s.nextId
	s.empls[empl.Id] = empl
	return empl, nil
}

func (s *fakeService) UpdateEmployee(ctx context.Context, empl models.Employee) (models.Employee, error) {
	if _, ok := s.orgs[empl.OrganizationId]; !ok {
		return empl, models.ErrNoOrganization
	}
	s.empls[empl.Id] = empl
	return empl, nil
}

func (s *fakeService) DeleteEmployee(ctx context.Context, id int) error {
	if _, ok := s.empls[id]; !ok {
		return models.ErrNoEmployee
	}
	delete(s.empls, id)
	return nil
}

func (s *fakeService) UploadEmployees(ctx context.Context, filename string, src io.Reader) (int, error) {
	return s.upload(filename, src)
}

func (s *fakeService) upload(filename string, src io.Reader) (int, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	s.uploadName = filename
	s.uploadBody = string(data)
	if s.uploadErr != nil {
		return 0, s.uploadErr
	}
	return s.uploadN, nil
}

func testController() (*Controller, *fakeService) {
	svc := newFakeService()
	cfg := &config.Config{
		PageSize:        25,
		MaxUploadSize:   1 << 20,
		MaxUploadMemory: 1 << 16,
	}
	return NewController(svc, cfg), svc
}

func multipartRequest(t *testing.T, target, field, filename, content string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("comment", "no file here"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func jsonRequest(method, target, id, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		req.SetPathValue("id", id)
	}
	return req
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}

func TestPing(t *testing.T) {
	c, _ := testController()

	rec := serve(c.Ping, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUploadSuccess(t *testing.T) {
	c, svc := testController()
	svc.uploadN = 3

	req := multipartRequest(t, "/api/companies/upload_companies/", "file", "companies.csv", "name\nAcme\n")
	rec := serve(c.UploadOrganizations, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message": "3 companies uploaded successfully!"}`, rec.Body.String())
	assert.Equal(t, "companies.csv", svc.uploadName)
	assert.Equal(t, "name\nAcme\n", svc.uploadBody)

	svc.uploadN = 0
	req = multipartRequest(t, "/api/employees/upload_employees/", "file", "staff.xlsx", "data")
	rec = serve(c.UploadEmployees, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message": "0 employees uploaded successfully!"}`, rec.Body.String())
}

func TestUploadNoFile(t *testing.T) {
	c, svc := testController()

	rec := serve(c.UploadEmployees, multipartRequest(t, "/api/employees/upload_employees/", "", "", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file provided.", errorBody(t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/employees/upload_employees/", strings.NewReader("employee_id\nE1\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec = serve(c.UploadEmployees, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file provided.", errorBody(t, rec))

	assert.Empty(t, svc.uploadName)
}

func TestUploadErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unsupported", fmt.Errorf("wrapped: %w", tabular.ErrUnsupportedFormat), http.StatusBadRequest, "File format not supported."},
		{"empty", fmt.Errorf("wrapped: %w", tabular.ErrEmptyFile), http.StatusBadRequest, "The uploaded file is empty."},
		{"missing fields", fmt.Errorf("wrapped: %w", &models.MissingFieldsError{Fields: []string{"email", "address"}}), http.StatusBadRequest, "Missing required fields: email, address."},
		{"unknown company", fmt.Errorf("wrapped: %w", &models.OrganizationNotFoundError{Name: "Umbrella"}), http.StatusNotFound, "Company 'Umbrella' not found."},
		{"duplicate", fmt.Errorf("wrapped: %w", models.ErrDuplicateEmployee), http.StatusConflict, "Employee with this employee_id already exists."},
		{"decode", &models.RowDecodeError{Line: 2, Column: "registration_date", Value: "x", Err: errors.New("bad")}, http.StatusInternalServerError, "An error occurred during file processing."},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "An error occurred during file processing."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, svc := testController()
			svc.uploadErr = tc.err

			rec := serve(c.UploadEmployees, multipartRequest(t, "/api/employees/upload_employees/", "file", "staff.csv", "x"))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, errorBody(t, rec))
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	c, svc := testController()

	content := strings.Repeat("a", 1<<20+1)
	rec := serve(c.UploadOrganizations, multipartRequest(t, "/api/companies/upload_companies/", "file", "companies.csv", content))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "File exceeds the upload limit of 1048576 bytes.", errorBody(t, rec))
	assert.Empty(t, svc.uploadName)
}

func TestOrganizationHandlers(t *testing.T) {
	c, svc := testController()
	name := gofakeit.Company()

	rec := serve(c.NewOrganization, jsonRequest(http.MethodPost, "/api/companies/", "", fmt.Sprintf(`{"name": %q, "email": "info@acme.test", "registration_date": "2001-05-17", "departments": ["HR"]}`, name)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, name, created.Name)
	assert.Equal(t, "2001-05-17", created.RegistrationDate.String())
	assert.JSONEq(t, `["HR"]`, string(created.Departments))
	id := fmt.Sprint(created.Id)

	rec = serve(c.NewOrganization, jsonRequest(http.MethodPost, "/api/companies/", "", fmt.Sprintf(`{"name": %q}`, name)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(c.NewOrganization, jsonRequest(http.MethodPost, "/api/companies/", "", `{"name": "Globex", "email": "not-an-email"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "'email'")

	rec = serve(c.NewOrganization, jsonRequest(http.MethodPost, "/api/companies/", "", `{"name": "  "}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.NewOrganization, jsonRequest(http.MethodPost, "/api/companies/", "", `{"name": `))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.EditOrganization, jsonRequest(http.MethodPatch, "/api/companies/"+id+"/", id, `{"address": "1 Main St", "departments": null}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	org := svc.orgs[created.Id]
	assert.Equal(t, "1 Main St", *org.Address)
	assert.Equal(t, "info@acme.test", *org.Email)
	assert.Nil(t, org.Departments)

	rec = serve(c.EditOrganization, jsonRequest(http.MethodPut, "/api/companies/"+id+"/", id, `{"address": "2 Main St"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "full update requires every mandatory field")

	rec = serve(c.EditOrganization, jsonRequest(http.MethodPut, "/api/companies/"+id+"/", id, `{"name": "Renamed"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.orgs[created.Id].Email)

	rec = serve(c.GetOrganizations, httptest.NewRequest(http.MethodGet, "/api/companies/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, svc.lastLimit)

	rec = serve(c.GetOrganizations, httptest.NewRequest(http.MethodGet, "/api/companies/?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.GetOrganization, jsonRequest(http.MethodGet, "/api/companies/"+id+"/", id, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(c.DeleteOrganization, jsonRequest(http.MethodDelete, "/api/companies/"+id+"/", id, ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, missing := range []string{id, "abc", "0"} {
		rec = serve(c.GetOrganization, jsonRequest(http.MethodGet, "/api/companies/"+missing+"/", missing, ""))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not found.", errorBody(t, rec))
	}
}

func TestEmployeeHandlers(t *testing.T) {
	c, svc := testController()
	svc.orgs[1] = models.Organization{Id: 1, Name: "Acme"}
	svc.nextId = 1

	rec := serve(c.NewEmployee, jsonRequest(http.MethodPost, "/api/employees/", "", `{"company": 9, "employee_id": "E1", "name": "Jane"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Company '9' does not exist.", errorBody(t, rec))

	rec = serve(c.NewEmployee, jsonRequest(http.MethodPost, "/api/employees/", "", `{"company": 1, "name": "Jane"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.NewEmployee, jsonRequest(http.MethodPost, "/api/employees/", "", `{"company": 1, "employee_id": "E1", "date_started": "2024-02-01", "date_left": "2023-01-01"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.NewEmployee, jsonRequest(http.MethodPost, "/api/employees/", "", `{"company": 1, "employee_id": "E1", "name": "Jane", "date_started": "2024-02-01"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.OrganizationId)
	assert.Equal(t, "2024-02-01", created.DateStarted.String())
	id := fmt.Sprint(created.Id)

	rec = serve(c.NewEmployee, jsonRequest(http.MethodPost, "/api/employees/", "", `{"company": 1, "employee_id": "E1"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(c.EditEmployee, jsonRequest(http.MethodPatch, "/api/employees/"+id+"/", id, `{"company": 5}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Company '5' does not exist.", errorBody(t, rec))

	rec = serve(c.EditEmployee, jsonRequest(http.MethodPatch, "/api/employees/"+id+"/", id, `{"role": "CTO"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CTO", *svc.empls[created.Id].Role)
	assert.Equal(t, "Jane", svc.empls[created.Id].Name)

	rec = serve(c.GetEmployees, httptest.NewRequest(http.MethodGet, "/api/employees/?company=1&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastLimit)
	var list []models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(c.GetEmployees, httptest.NewRequest(http.MethodGet, "/api/employees/?company=x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(c.EditEmployee, jsonRequest(http.MethodPut, "/api/employees/77/", "77", `{"company": 1, "employee_id": "E7"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(c.DeleteEmployee, jsonRequest(http.MethodDelete, "/api/employees/"+id+"/", id, ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(c.GetEmployee, jsonRequest(http.MethodGet, "/api/employees/"+id+"/", id, ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
