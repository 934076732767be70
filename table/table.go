/*
Copyright © 2026 the HFire authors.
This file is part of HFire.

HFire is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HFire is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HFire.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package table implements the dense 2-D array and line-oriented delimited
// file reader that every tabular HFire input format (WAZ, WSP, DFM, LFM,
// ATM, FMD) is built on.
package table

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	gostats "github.com/GaryBoone/GoStats/stats"

	"github.com/spatialmodel/hfire/herr"
)

// Float2D is a dense rows x cols array of float64, fixed at allocation.
type Float2D struct {
	rows, cols int
	data       [][]float64
}

// NewFloat2D allocates a Float2D of the given dimensions, zero-filled.
func NewFloat2D(rows, cols int) *Float2D {
	d := make([][]float64, rows)
	for i := range d {
		d[i] = make([]float64, cols)
	}
	return &Float2D{rows: rows, cols: cols, data: d}
}

// Rows returns the number of rows.
func (t *Float2D) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Float2D) Cols() int { return t.cols }

// At returns the value at (row,col), or an Internal error if out of bounds.
func (t *Float2D) At(row, col int) (float64, error) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return 0, herr.New(herr.Internal, "", "table index out of bounds")
	}
	return t.data[row][col], nil
}

// Set stores a value at (row,col); it panics on an out-of-bounds index,
// mirroring the array-bounds contract used while building a table during a
// single-threaded load.
func (t *Float2D) Set(row, col int, v float64) {
	t.data[row][col] = v
}

// Row returns a reference to an entire row, for weighted-sum helpers.
func (t *Float2D) Row(row int) []float64 { return t.data[row] }

// Scale multiplies every value in the table by factor, in place.
func (t *Float2D) Scale(factor float64) {
	for r := range t.data {
		for c := range t.data[r] {
			t.data[r][c] *= factor
		}
	}
}

// Describe returns the mean and population standard deviation of column
// col, computed with GoStats. It has no bearing on simulation results.
func (t *Float2D) Describe(col int) (mean, stddev float64) {
	var s gostats.Stats
	for r := 0; r < t.rows; r++ {
		s.Update(t.data[r][col])
	}
	return s.Mean(), s.PopulationStandardDeviation()
}

// String2D is the string-valued analog of Float2D, used for ATM spatial
// index tables whose last column is a raster filename.
type String2D struct {
	rows, cols int
	data       [][]string
}

// NewString2D allocates a String2D of the given dimensions, empty-filled.
func NewString2D(rows, cols int) *String2D {
	d := make([][]string, rows)
	for i := range d {
		d[i] = make([]string, cols)
	}
	return &String2D{rows: rows, cols: cols, data: d}
}

// Rows returns the number of rows.
func (t *String2D) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *String2D) Cols() int { return t.cols }

// At returns the value at (row,col), or an Internal error if out of bounds.
func (t *String2D) At(row, col int) (string, error) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return "", herr.New(herr.Internal, "", "table index out of bounds")
	}
	return t.data[row][col], nil
}

// Set stores a value at (row,col).
func (t *String2D) Set(row, col int, v string) { t.data[row][col] = v }

// commentRune marks a comment line in every HFire tabular file format.
const commentRune = '#'

// separators is the configurable token-separator set spec section 6
// requires: space, '=', ',', and tab.
const separators = " =,\t"

// ReadLines scans r, skipping blank lines and lines beginning with '#', and
// calls fn with the whitespace/=/,/tab-tokenized fields of every remaining
// line. fn returning a non-nil error stops the scan and is returned,
// wrapped with the 1-based line number as context.
func ReadLines(r io.Reader, fn func(fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == commentRune {
			continue
		}
		fields := Tokenize(line)
		if len(fields) == 0 {
			continue
		}
		if err := fn(fields); err != nil {
			return herr.Wrap(herr.Parse, strconv.Itoa(lineNo), "failed to parse line", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return herr.Wrap(herr.Io, "", "failed to read file", err)
	}
	return nil
}

// Tokenize splits a line on any of the recognized separators, collapsing
// runs of separators and discarding empty tokens.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})
}

// ParseFloat parses s as a float64, wrapping any error as a Parse error with
// the given context.
func ParseFloat(s, context string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, herr.Wrap(herr.Parse, context, "expected a number, got "+s, err)
	}
	return v, nil
}

// ParseInt parses s as an int, wrapping any error as a Parse error with the
// given context.
func ParseInt(s, context string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, herr.Wrap(herr.Parse, context, "expected an integer, got "+s, err)
	}
	return v, nil
}
