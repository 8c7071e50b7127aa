package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-03-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Equal(d.Time))

	require.Error(t, json.Unmarshal([]byte(`"05/03/2024"`), &back))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2021, time.December, 31, 13, 0, 0, 0, time.UTC)))
	require.Equal(t, "2021-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2020-01-02T00:00:00Z")))
	require.Equal(t, "2020-01-02", d.String())

	require.Error(t, d.Scan(42))

	v, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "2020-01-02", v)
}

func TestImportErrors(t *testing.T) {
	err := fmt.Errorf("service.Service.UploadOrganizations: %w", &MissingFieldsError{Fields: []string{"email", "address"}})
	require.True(t, errors.Is(err, ErrMissingFields))

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"email", "address"}, missing.Fields)

	err = fmt.Errorf("wrapped: %w", &OrganizationNotFoundError{Name: "Acme"})
	require.True(t, errors.Is(err, ErrNoOrganization))
	require.False(t, errors.Is(err, ErrMissingFields))

	cause := errors.New("bad int")
	decodeErr := &RowDecodeError{Line: 3, Column: "number_of_employees", Value: "x", Err: cause}
	require.ErrorIs(t, decodeErr, cause)
	require.Contains(t, decodeErr.Error(), "row 3")
}
