package load

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// XLSX reads one worksheet. The first row is the header. An empty sheet
// name selects the first sheet of the workbook.
func XLSX(r io.Reader, sheet string) (*data.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidData, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "sheet %q has no header row", sheet)
	}
	return Table(rows[0], rows[1:]), nil
}
