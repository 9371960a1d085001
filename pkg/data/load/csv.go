package load

import (
	"encoding/csv"
	"io"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// CSV reads a header row followed by data rows. comma defaults to ','.
func CSV(r io.Reader, comma rune) (*data.Dataset, error) {
	cr := csv.NewReader(r)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "parse csv")
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "csv input has no header row")
	}
	return Table(rows[0], rows[1:]), nil
}
