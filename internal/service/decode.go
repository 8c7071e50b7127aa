package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"staffdir/internal/models"
	"staffdir/internal/tabular"
)

var dateLayouts = []string{
	models.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2.1.2006",
	"2006/01/02",
	"01-02-06",
	"1-2-06",
}

var (
	errNotInteger = errors.New("not an integer")
	errNotDate    = errors.New("not a recognized date")
)

func decodeOrganization(row tabular.Row) (models.Organization, error) {
	name, _ := row.Value("name")
	org := models.Organization{
		Name:               name,
		RegistrationNumber: row.Optional("registration_number"),
		Address:            row.Optional("address"),
		ContactPerson:      row.Optional("contact_person"),
		Departments:        decodeDepartments(row, "departments"),
		ContactPhone:       row.Optional("contact_phone"),
		Email:              row.Optional("email"),
	}

	var err error
	if org.RegistrationDate, err = decodeDate(row, "registration_date"); err != nil {
		return org, err
	}
	if org.NumberOfEmployees, err = decodeInt(row, "number_of_employees"); err != nil {
		return org, err
	}

	return org, nil
}

// decodeEmployeeDetails fills the optional columns of an employee row.
func decodeEmployeeDetails(row tabular.Row, empl *models.Employee) error {
	empl.Department = row.Optional("department")
	empl.Role = row.Optional("role")
	empl.Duties = row.Optional("duties")

	var err error
	if empl.DateStarted, err = decodeDate(row, "date_started"); err != nil {
		return err
	}
	if empl.DateLeft, err = decodeDate(row, "date_left"); err != nil {
		return err
	}
	return nil
}

func decodeDate(row tabular.Row, column string) (*models.Date, error) {
	value, ok := row.Value(column)
	if !ok {
		return nil, nil
	}

	d, err := parseDate(value)
	if err != nil {
		return nil, &models.RowDecodeError{Line: row.Line(), Column: column, Value: value, Err: err}
	}
	return &d, nil
}

// parseDate accepts the textual layouts spreadsheets and exports commonly
// produce, and bare spreadsheet serial numbers.
func parseDate(value string) (models.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.DateOf(t), nil
		}
	}

	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < 1 {
		return models.Date{}, errNotDate
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %w", errNotDate, err)
	}
	return models.DateOf(t), nil
}

func decodeInt(row tabular.Row, column string) (*int, error) {
	value, ok := row.Value(column)
	if !ok {
		return nil, nil
	}

	n, err := parseInt(value)
	if err != nil {
		return nil, &models.RowDecodeError{Line: row.Line(), Column: column, Value: value, Err: err}
	}
	return &n, nil
}

// parseInt also takes integral floats ("12.0"), which is how numeric columns
// with gaps come out of spreadsheets.
func parseInt(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errNotInteger
	}
	return int(f), nil
}

// decodeDepartments keeps JSON cells as they are and stores any other text
// as a JSON string.
func decodeDepartments(row tabular.Row, column string) json.RawMessage {
	value, ok := row.Value(column)
	if !ok {
		return models.EmptyDepartments
	}

	if json.Valid([]byte(value)) {
		return json.RawMessage(value)
	}

	data, _ := json.Marshal(value)
	return data
}
