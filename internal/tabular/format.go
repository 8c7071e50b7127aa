package tabular

import (
	"fmt"
	"strings"
)

type Format int

const (
	FormatCSV Format = iota + 1
	FormatXLSX
	FormatTSV
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FormatFromName picks the parser by file suffix only; content is never sniffed.
func FormatFromName(name string) (Format, error) {
	switch {
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(name, ".xlsx"):
		return FormatXLSX, nil
	case strings.HasSuffix(name, ".txt"):
		return FormatTSV, nil
	}
	return 0, fmt.Errorf("tabular.FormatFromName: %w: %q", ErrUnsupportedFormat, name)
}
