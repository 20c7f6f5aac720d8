// Package dataset loads feature and target matrices from CSV files and
// writes prediction output back out. The first CSV row is the header; the
// named target columns become the target matrix and every other column a
// feature.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// ErrTargetNotFound is wrapped by FromCSV when a requested target column is
// absent from the header.
var ErrTargetNotFound = errors.New("target column not found")

// Dataset pairs a feature matrix with an optional target matrix.
type Dataset struct {
	X        *mat.Dense
	Y        *mat.Dense
	Features []string
	Targets  []string
}

// FromCSV reads the file at path, splitting columns into features and the
// named targets. With no targets every column is a feature and Y is nil.
func FromCSV(path string, targets []string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: need a header and at least one data row", path)
	}
	header := records[0]
	rows := records[1:]

	targetIdx := make(map[int]bool, len(targets))
	seen := make(map[string]bool, len(targets))
	for _, name := range targets {
		if seen[name] {
			return nil, fmt.Errorf("%s: duplicate target column %q", path, name)
		}
		seen[name] = true
		idx := -1
		for i, col := range header {
			if col == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%s: %w: %q", path, ErrTargetNotFound, name)
		}
		targetIdx[idx] = true
	}

	var features []string
	for i, col := range header {
		if !targetIdx[i] {
			features = append(features, col)
		}
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%s: no feature columns left", path)
	}

	x := mat.NewDense(len(rows), len(features), nil)
	var y *mat.Dense
	if len(targets) > 0 {
		y = mat.NewDense(len(rows), len(targets), nil)
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s row %d: %d fields, header has %d", path, i+2, len(row), len(header))
		}
		fi, ti := 0, 0
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", path, i+2, header[j], err)
			}
			if targetIdx[j] {
				y.Set(i, ti, v)
				ti++
			} else {
				x.Set(i, fi, v)
				fi++
			}
		}
	}

	return &Dataset{X: x, Y: y, Features: features, Targets: targets}, nil
}

// WriteCSV stores the matrix at path with the given header columns.
func WriteCSV(path string, m mat.Matrix, header []string) error {
	n, p := m.Dims()
	if len(header) != p {
		return fmt.Errorf("header has %d columns, matrix has %d", len(header), p)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			row[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
