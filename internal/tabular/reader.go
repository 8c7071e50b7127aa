package tabular

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Read parses an uploaded file into a table, choosing the parser by the file name.
// A file without data rows fails with ErrEmptyFile.
func Read(name string, src io.Reader) (*Table, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("tabular.Read: could not read %q: %w", name, err)
	}
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return nil, fmt.Errorf("tabular.Read: %w", ErrEmptyFile)
	}

	var records []record
	switch format {
	case FormatCSV:
		records, err = readDelimited(data, ',')
	case FormatTSV:
		records, err = readDelimited(data, '\t')
	case FormatXLSX:
		records, err = readWorkbook(data)
	}
	if err != nil {
		if errors.Is(err, ErrEmptyFile) {
			return nil, fmt.Errorf("tabular.Read: %w", err)
		}
		return nil, fmt.Errorf("tabular.Read: malformed %s file %q: %w", format, name, err)
	}

	table, err := newTable(records, format != FormatXLSX)
	if err != nil {
		if errors.Is(err, ErrEmptyFile) {
			return nil, fmt.Errorf("tabular.Read: %w", err)
		}
		return nil, fmt.Errorf("tabular.Read: malformed %s file %q: %w", format, name, err)
	}
	return table, nil
}
