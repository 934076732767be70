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

package env

import (
	"io"
	"os"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/table"
)

// noDataHour is the sentinel value every WAZ/WSP/DFM hourly table uses to
// mark a cell with no data.
const noDataHour = -1.0

// hourCols is the fixed column count of a year/month/day/hr0..hr23 record.
const hourCols = 27

// hourTable holds the year-month-day-plus-24-hour-columns shape shared by
// the wind azimuth, wind speed, and dead fuel moisture tabular formats.
// Column 0 is year, 1 is month, 2 is day, and 3+h is hour h's value.
type hourTable struct {
	data *table.Float2D
}

// Rows reports how many records the table holds.
func (t *hourTable) Rows() int { return t.data.Rows() }

// RowForDate returns the index of the first record matching (month, day),
// scanning in file order. Ok is false if no record matches.
func (t *hourTable) RowForDate(month, day int) (row int, ok bool) {
	for r := 0; r < t.data.Rows(); r++ {
		m, _ := t.data.At(r, 1)
		d, _ := t.data.At(r, 2)
		if int(m) == month && int(d) == day {
			return r, true
		}
	}
	return 0, false
}

// HourValue returns the value of record row at hour (0-23).
func (t *hourTable) HourValue(row, hour int) (float64, error) {
	return t.data.At(row, 3+hour)
}

// ScaleHours multiplies every hour column (not year/month/day) by factor,
// leaving sentinel cells untouched so -1 still reads as "no data" after
// conversion. Used once at load time to bring a MILEPHR/KMPHR wind-speed
// table to m/s.
func (t *hourTable) ScaleHours(factor float64) {
	for r := 0; r < t.data.Rows(); r++ {
		for c := 3; c < t.data.Cols(); c++ {
			v, _ := t.data.At(r, c)
			if v == noDataHour {
				continue
			}
			t.data.Set(r, c, v*factor)
		}
	}
}

func parseHourRow(fields []string, context string) ([]float64, error) {
	if len(fields) != hourCols {
		return nil, herr.New(herr.Parse, context, "expected year month day plus 24 hourly columns")
	}
	row := make([]float64, hourCols)
	for i, f := range fields {
		v, err := table.ParseFloat(f, context)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}

func newHourTableFromRows(rows [][]float64) *hourTable {
	t := table.NewFloat2D(len(rows), hourCols)
	for r, row := range rows {
		for c, v := range row {
			t.Set(r, c, v)
		}
	}
	return &hourTable{data: t}
}

// loadHourTable reads a plain (no unit header) hourTable file: every
// non-comment line is a 27-field record.
func loadHourTable(path string) (*hourTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open table", err)
	}
	defer f.Close()
	return readHourTable(f, path)
}

func readHourTable(r io.Reader, context string) (*hourTable, error) {
	var rows [][]float64
	err := table.ReadLines(r, func(fields []string) error {
		row, perr := parseHourRow(fields, context)
		if perr != nil {
			return perr
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, herr.New(herr.Parse, context, "table has no data rows")
	}
	return newHourTableFromRows(rows), nil
}
