// Package testutil builds synthetic source workbooks for tests.
package testutil

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet describes one sheet of a synthetic workbook: filler rows above the
// header, the header itself and the data rows below it.
type Sheet struct {
	Name    string
	Fillers int
	Header  []interface{}
	Data    [][]interface{}
}

// BuildWorkbook writes sheets into a new workbook and returns its bytes
func BuildWorkbook(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}

		for r := 1; r <= s.Fillers; r++ {
			if err := f.SetCellValue(s.Name, fmt.Sprintf("A%d", r), fmt.Sprintf("%s notes %d", s.Name, r)); err != nil {
				return nil, err
			}
		}

		rows := append([][]interface{}{s.Header}, s.Data...)
		for i, values := range rows {
			cell, err := excelize.CoordinatesToCellName(1, s.Fillers+i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
