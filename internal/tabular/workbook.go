package tabular

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// readWorkbook reads the first sheet of a spreadsheet as displayed cell text.
func readWorkbook(data []byte) ([]record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	records := make([]record, 0, len(rows))
	for i, cells := range rows {
		if len(records) == 0 && blankRecord(cells) {
			continue
		}
		records = append(records, record{line: i + 1, cells: cells})
	}
	return records, nil
}
