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
	"strings"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/table"
)

// atmRecord is one row of a spatial index file: a (month, day, hour) key
// and the trailing raster-path columns that follow it. A wind/dead-fuel
// index carries a single trailing path; the live-fuel-moisture index
// carries two (herbaceous, woody).
type atmRecord struct {
	month, day, hour int
	paths            []string
}

// atmIndex is the "month day hhmm ... filename" spatial lookup table every
// SPATIAL strategy uses to decide which raster(s) apply at a given
// (month, day, hour). Records are assumed sorted ascending by date/hour, as
// the original tool's index files are built; lookup returns the latest
// record at or before the requested key, advancing a cursor so repeated
// sequential queries within a run do no backward scanning.
type atmIndex struct {
	recs   []atmRecord
	cursor int
}

// atmKey returns a single comparable integer ordering for (month, day, hour).
func atmKey(month, day, hour int) int { return month*10000 + day*100 + hour }

// At returns the record applicable to (month, day, hour): the last record
// in file order whose key is <= the requested key. ok is false before the
// first record's date.
func (a *atmIndex) At(month, day, hour int) (atmRecord, bool) {
	want := atmKey(month, day, hour)
	for a.cursor+1 < len(a.recs) && atmKey(a.recs[a.cursor+1].month, a.recs[a.cursor+1].day, a.recs[a.cursor+1].hour) <= want {
		a.cursor++
	}
	if len(a.recs) == 0 || atmKey(a.recs[0].month, a.recs[0].day, a.recs[0].hour) > want {
		return atmRecord{}, false
	}
	return a.recs[a.cursor], true
}

func loadAtmIndex(path string) (*atmIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open spatial index", err)
	}
	defer f.Close()
	return readAtmIndex(f, path)
}

// readAtmIndex parses "month day hhmm ... filename[s]" rows, skipping any
// line whose first field is UNITS, and decodes hhmm-encoded hour columns
// (e.g. "1000" means 10:00, so hour = hhmm/100).
func readAtmIndex(r io.Reader, context string) (*atmIndex, error) {
	var recs []atmRecord
	err := table.ReadLines(r, func(fields []string) error {
		if len(fields) > 0 && strings.EqualFold(fields[0], "UNITS") {
			return nil
		}
		if len(fields) < 4 {
			return herr.New(herr.Parse, context, "expected month day hhmm ... filename")
		}
		month, perr := table.ParseInt(fields[0], context)
		if perr != nil {
			return perr
		}
		day, perr := table.ParseInt(fields[1], context)
		if perr != nil {
			return perr
		}
		hhmm, perr := table.ParseInt(fields[2], context)
		if perr != nil {
			return perr
		}
		recs = append(recs, atmRecord{month: month, day: day, hour: hhmm / 100, paths: fields[3:]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, herr.New(herr.Parse, context, "spatial index has no data rows")
	}
	return &atmIndex{recs: recs}, nil
}

// File returns the single trailing path of a record (wind/dead-fuel index).
func (r atmRecord) File() string {
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

// Files2 returns the last two trailing paths of a record (live-fuel-moisture
// index: herbaceous then woody).
func (r atmRecord) Files2() (herb, woody string) {
	if len(r.paths) < 2 {
		return "", ""
	}
	n := len(r.paths)
	return r.paths[n-2], r.paths[n-1]
}
