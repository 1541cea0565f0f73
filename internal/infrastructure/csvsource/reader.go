// Package csvsource adapts a CSV stream into import records. The expected
// layout is a header row naming the columns; unknown columns are ignored and
// column order does not matter.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ekklesia/church-directory/internal/application/church"
)

// Reader implements church.RecordSource over encoding/csv.
type Reader struct {
	r       *csv.Reader
	cols    map[string]int
	line    int
	started bool
}

func New(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// rows with a wrong field count are per-record problems, not structural
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{r: cr}
}

// header names accepted for each record field, lowercased
var headerAliases = map[string]string{
	"name":            "name",
	"address":         "address",
	"city":            "city",
	"state":           "state",
	"zipcode":         "zip_code",
	"zip_code":        "zip_code",
	"zip":             "zip_code",
	"phone":           "phone",
	"email":           "email",
	"website":         "website",
	"denomination":    "denomination",
	"latitude":        "latitude",
	"lat":             "latitude",
	"longitude":       "longitude",
	"lng":             "longitude",
	"lon":             "longitude",
	"description":     "description",
}

func (s *Reader) readHeader() error {
	row, err := s.r.Read()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("read csv header: %w", err)
	}
	s.line = 1

	s.cols = make(map[string]int, len(row))
	for i, h := range row {
		key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, " ", "")))
		if canonical, ok := headerAliases[key]; ok {
			s.cols[canonical] = i
		}
	}
	if _, ok := s.cols["name"]; !ok {
		return fmt.Errorf("csv header is missing a name column")
	}
	return nil
}

// Next returns the next record, io.EOF at end of stream. Malformed rows come
// back as *church.RecordError so the importer can skip them; header problems
// and reader failures are returned as-is and abort the batch.
func (s *Reader) Next() (church.Record, error) {
	if !s.started {
		s.started = true
		if err := s.readHeader(); err != nil {
			return church.Record{}, err
		}
	}

	row, err := s.r.Read()
	if err != nil {
		if err == io.EOF {
			return church.Record{}, io.EOF
		}
		if perr, ok := err.(*csv.ParseError); ok {
			s.line = perr.Line
			return church.Record{}, &church.RecordError{Line: perr.Line, Err: perr.Err}
		}
		return church.Record{}, err
	}
	s.line++

	get := func(name string) string {
		i, ok := s.cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := church.Record{
		Name:         get("name"),
		Address:      get("address"),
		City:         get("city"),
		State:        get("state"),
		ZipCode:      get("zip_code"),
		Phone:        get("phone"),
		Email:        get("email"),
		Website:      get("website"),
		Denomination: get("denomination"),
		Description:  get("description"),
	}

	if rec.Latitude, err = parseCoord(get("latitude")); err != nil {
		return church.Record{}, &church.RecordError{Line: s.line, Err: fmt.Errorf("latitude: %w", err)}
	}
	if rec.Longitude, err = parseCoord(get("longitude")); err != nil {
		return church.Record{}, &church.RecordError{Line: s.line, Err: fmt.Errorf("longitude: %w", err)}
	}
	return rec, nil
}

func parseCoord(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
