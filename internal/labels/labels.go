// Package labels reads and writes image label tables.
//
// A label table is a CSV file with an image_name column and a class_id
// column. Column order on input does not matter and extra columns are
// ignored; output always uses the exact header "image_name,class_id".
package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	// ColumnImageName is the identifier column.
	ColumnImageName = "image_name"

	// ColumnClassID is the integer class column.
	ColumnClassID = "class_id"
)

var (
	// ErrMissingColumn is returned when a required header column is absent.
	ErrMissingColumn = errors.New("missing column")

	// ErrDuplicateImage is returned when an image name appears twice in one table.
	ErrDuplicateImage = errors.New("duplicate image name")

	// ErrInvalidClassID is returned when a class_id cell is not an integer.
	ErrInvalidClassID = errors.New("invalid class_id")
)

// Record is one labelled image.
type Record struct {
	ImageName string `json:"image_name"`
	ClassID   int    `json:"class_id"`
}

// Table is an ordered list of records with unique image names.
type Table []Record

// Index maps each image name to its class id.
func (t Table) Index() map[string]int {
	idx := make(map[string]int, len(t))
	for _, r := range t {
		idx[r.ImageName] = r.ClassID
	}
	return idx
}

// ReadFile reads a label table from a CSV file.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label table: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a label table from CSV.
//
// Class ids are coerced to integers: "1" and "1.0" are both accepted, a
// fractional or non-numeric value is an error. Blank lines are skipped.
func Read(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameCol, classCol := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case ColumnImageName:
			nameCol = i
		case ColumnClassID:
			classCol = i
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnImageName)
	}
	if classCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnClassID)
	}

	table := make(Table, 0)
	seen := make(map[string]int)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if nameCol >= len(row) || classCol >= len(row) {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d",
				line, max(nameCol, classCol)+1, len(row))
		}

		name := strings.TrimSpace(row[nameCol])
		classID, err := parseClassID(row[classCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("line %d: %w: %q (first seen on line %d)", line, ErrDuplicateImage, name, prev)
		}
		seen[name] = line

		table = append(table, Record{ImageName: name, ClassID: classID})
	}

	return table, nil
}

func parseClassID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClassID, s)
	}
	return int(f), nil
}

// Write writes the table as CSV with the canonical header.
func Write(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnImageName, ColumnClassID}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range t {
		if err := cw.Write([]string{r.ImageName, strconv.Itoa(r.ClassID)}); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.ImageName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile truncates path and writes the table to it.
func WriteFile(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
