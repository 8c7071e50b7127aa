package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatFromName(t *testing.T) {
	cases := map[string]Format{
		"companies.csv":      FormatCSV,
		"staff.2024.xlsx":    FormatXLSX,
		"export.txt":         FormatTSV,
		"archive/people.csv": FormatCSV,
	}
	for name, want := range cases {
		got, err := FormatFromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"companies.xls", "companies.CSV", "companies.csv.bak", "", "json"} {
		_, err := FormatFromName(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestReadCSV(t *testing.T) {
	data := "\xEF\xBB\xBFname,email,number_of_employees\n" +
		"Acme,info@acme.test,12\n" +
		"\n" +
		"\"Globex, Inc\",NA,\n" +
		",,\n" +
		"Initech, ops@initech.test ,3\n"

	table, err := Read("companies.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"name", "email", "number_of_employees"}, table.Columns)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, 2, first.Line())
	v, ok := first.Value("name")
	assert.True(t, ok)
	assert.Equal(t, "Acme", v)

	second := table.Rows[1]
	assert.Equal(t, 4, second.Line())
	v, _ = second.Value("name")
	assert.Equal(t, "Globex, Inc", v)
	_, ok = second.Value("email")
	assert.False(t, ok, "NA is a null marker")
	assert.True(t, second.Has("email"), "null cells are still structurally present")
	assert.Nil(t, second.Optional("number_of_employees"))

	third := table.Rows[2]
	v, _ = third.Value("email")
	assert.Equal(t, "ops@initech.test", v)
}

func TestReadTSV(t *testing.T) {
	data := "company_name\temployee_name\temployee_id\n" +
		"Acme\tJane Doe\tE1\n" +
		"Acme\tJohn, Jr.\tE2\n"

	table, err := Read("staff.txt", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	v, ok := table.Rows[1].Value("employee_name")
	require.True(t, ok)
	assert.Equal(t, "John, Jr.", v)
}

func TestReadEmpty(t *testing.T) {
	for name, data := range map[string]string{
		"zero.csv":        "",
		"blank.txt":       "  \n\n",
		"header.csv":      "name,email\n",
		"blank-rows.csv":  "name,email\n,\n , \n",
		"bom-only.csv":    "\xEF\xBB\xBF",
		"zero-bytes.xlsx": "",
	} {
		_, err := Read(name, strings.NewReader(data))
		assert.ErrorIs(t, err, ErrEmptyFile, name)
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read("wide.csv", strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyFile))

	_, err = Read("broken.xlsx", strings.NewReader("this is not a zip archive"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyFile))
}

func TestRowMissing(t *testing.T) {
	table, err := Read("c.csv", strings.NewReader("name,address\nAcme,Main st\n"))
	require.NoError(t, err)

	missing := table.Rows[0].Missing("name", "registration_date", "address", "email")
	assert.Equal(t, []string{"registration_date", "email"}, missing)
	assert.Empty(t, table.Rows[0].Missing("name"))

	table, err = Read("s.csv", strings.NewReader(" employee_id ,company_name\nE1,  Acme  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"employee_id"}, table.Rows[0].Missing("employee_id", "company_name"))

	raw, ok := table.Rows[0].Raw("company_name")
	require.True(t, ok)
	assert.Equal(t, "  Acme  ", raw)
	v, _ := table.Rows[0].Value("company_name")
	assert.Equal(t, "Acme", v)
}

func TestHeaderColumns(t *testing.T) {
	got := headerColumns([]string{"name", " name ", "", "name.1", "name", "  "}, 7)
	assert.Equal(t, []string{"name", " name ", "Unnamed: 2", "name.1", "name.2", "Unnamed: 5", "Unnamed: 6"}, got)
}

func TestIsNull(t *testing.T) {
	for _, cell := range []string{"", "  ", "NaN", "null", "None", "#N/A", " N/A "} {
		assert.True(t, IsNull(cell), cell)
	}
	for _, cell := range []string{"0", "none", "n.a.", "-"} {
		assert.False(t, IsNull(cell), cell)
	}
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"company_name", "employee_name", "employee_id", "role"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Acme", "Jane Doe", "E1", "Engineer"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Acme", "John Roe", "E2"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A5", &[]any{"Globex", "Ann Poe", 1001, nil, "extra"}))

	_, err := f.NewSheet("Ignored")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Ignored", "A1", &[]any{"other"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Read("staff.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, []string{"company_name", "employee_name", "employee_id", "role", "Unnamed: 4"}, table.Columns)
	require.Len(t, table.Rows, 3)

	assert.Nil(t, table.Rows[1].Optional("role"), "short rows are padded with null cells")
	assert.True(t, table.Rows[1].Has("role"))

	last := table.Rows[2]
	assert.Equal(t, 5, last.Line())
	v, ok := last.Value("employee_id")
	require.True(t, ok)
	assert.Equal(t, "1001", v)
}
