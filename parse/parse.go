package parse

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"github.com/hannes-br/gtfsutils/schema"
	"github.com/hannes-br/gtfsutils/table"
)

// Reads one GTFS file into a table. The BOM reader strips unicode
// BOMs if present, and lazy quoting is required to survive sloppy use
// of quotes in agency-produced files.
func Table(name string, data io.Reader) (*table.Table, error) {
	r := csv.NewReader(bom.NewReader(data))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	t := table.New(name, header)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading row %d", t.Len()+1)
		}
		if err := t.Append(row); err != nil {
			return nil, errors.Wrapf(err, "row %d", t.Len()+1)
		}
	}

	if err := checkColumnTypes(t); err != nil {
		return nil, err
	}

	return t, nil
}

// Verifies the typed columns that filtering depends on: stop
// coordinates must be floating point, enumerated columns must be
// integer or blank. ID columns are carried verbatim.
func checkColumnTypes(t *table.Table) error {
	if t.Name == "stops" {
		for _, column := range []string{"stop_lat", "stop_lon"} {
			if !t.HasColumn(column) {
				continue
			}
			for i := 0; i < t.Len(); i++ {
				v := t.Value(i, column)
				if v == "" {
					continue
				}
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					return errors.Errorf("row %d: %s value '%s' is not a number", i+1, column, v)
				}
			}
		}
	}

	for _, column := range schema.EnumColumns[t.Name] {
		if !t.HasColumn(column) {
			continue
		}
		for i := 0; i < t.Len(); i++ {
			v := t.Value(i, column)
			if v == "" {
				continue
			}
			if _, err := strconv.Atoi(v); err != nil {
				return errors.Errorf("row %d: %s value '%s' is not an integer", i+1, column, v)
			}
		}
	}

	return nil
}

// Writes a table as CSV, header first, rows in order.
func Write(t *table.Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	cw.Flush()
	return cw.Error()
}
