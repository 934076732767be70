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

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
	"github.com/spatialmodel/hfire/table"
	"github.com/spatialmodel/hfire/wind"
)

// mphToMpsFactor and kmhToMpsFactor are computed once through ctessum/unit's
// dimensional arithmetic (a mile and an hour tagged with their SI
// dimensions, divided) rather than as bare float literals, so a mismatched
// pairing of numerator/denominator dimensions would panic at package init
// instead of silently producing a wrong factor.
var (
	mphToMpsFactor = unit.Div(
		unit.New(1609.344, unit.Dimensions{unit.LengthDim: 1}),
		unit.New(3600, unit.Dimensions{unit.TimeDim: 1}),
	).Value()
	kmhToMpsFactor = unit.Div(
		unit.New(1000, unit.Dimensions{unit.LengthDim: 1}),
		unit.New(3600, unit.Dimensions{unit.TimeDim: 1}),
	).Value()
)

// WspVariant selects a wind-speed strategy.
type WspVariant int

const (
	WspFixed WspVariant = iota
	WspRandu
	WspRandh
	WspSpatial
)

// Wsp is the wind-speed environment variable. Every variant's Get applies
// the package wind's midflame reduction before returning, using waf and
// fuelBedHeightM supplied by the caller (the fuel model currently loaded).
type Wsp struct {
	variant   WspVariant
	path      string
	indexPath string
	rng       *prng.Generator
	waf       wind.Method

	uniformMin, uniformMax float64 // RANDU: WIND_SPEED_UNIFORM_RANGE, m/s

	table *hourTable
	index *atmIndex
	grid  *raster.Grid
	gridFile string
	spatialFactor float64 // ENGLISH|METRIC header for SPATIAL

	loaded                       bool
	lastMonth, lastDay, lastHour int
	cached                       float64
}

// NewWspFixed builds a FIXED/HISTORICAL wind-speed strategy. path's leading
// "UNITS MILEPHR|KMPHR" header converts the whole table to m/s once, at
// load time.
func NewWspFixed(path string, waf wind.Method) *Wsp {
	return &Wsp{variant: WspFixed, path: path, waf: waf}
}

// NewWspRandu builds a RANDU wind-speed strategy drawing uniform within
// [min,max] m/s at each new hour.
func NewWspRandu(min, max float64, waf wind.Method, rng *prng.Generator) *Wsp {
	return &Wsp{variant: WspRandu, uniformMin: min, uniformMax: max, waf: waf, rng: rng}
}

// NewWspRandh builds a RANDH wind-speed strategy, structurally identical to
// NewWazRandh but over a wind-speed table already normalized to m/s.
func NewWspRandh(path string, waf wind.Method, rng *prng.Generator) *Wsp {
	return &Wsp{variant: WspRandh, path: path, waf: waf, rng: rng}
}

// NewWspSpatial builds a SPATIAL wind-speed strategy indexed by indexPath,
// whose ENGLISH|METRIC header selects the per-raster unit conversion.
func NewWspSpatial(indexPath string, waf wind.Method) *Wsp {
	return &Wsp{variant: WspSpatial, indexPath: indexPath, waf: waf}
}

func (w *Wsp) sameHour(month, day, hour int) bool {
	return w.loaded && w.lastMonth == month && w.lastDay == day && w.lastHour == hour
}

// Get returns the midflame wind speed in m/s for (year, month, day, hour),
// reduced from reference height using fuelBedHeightM.
func (w *Wsp) Get(year, month, day, hour int, rwx, rwy, fuelBedHeightM float64) (float64, error) {
	var refMps float64
	var err error
	switch w.variant {
	case WspFixed:
		refMps, err = w.getFixed(month, day, hour)
	case WspRandu:
		refMps, err = w.getRandu(month, day, hour)
	case WspRandh:
		refMps, err = w.getRandh(month, day, hour)
	case WspSpatial:
		refMps, err = w.getSpatial(month, day, hour, rwx, rwy)
	default:
		return 0, herr.New(herr.Internal, "", "unrecognized wind speed strategy variant")
	}
	if err != nil {
		return 0, err
	}
	return wind.Reduce(refMps, wind.RefHeightM, fuelBedHeightM, w.waf), nil
}

func (w *Wsp) getFixed(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	if w.table == nil {
		t, err := loadWspTable(w.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, w.path, "unable to load wind speed table", err)
		}
		w.table = t
		logrus.WithField("path", w.path).Debug("loaded wind speed table")
	}
	if row, ok := w.table.RowForDate(month, day); ok {
		v, err := w.table.HourValue(row, hour)
		if err != nil {
			return 0, err
		}
		if v != noDataHour {
			w.cached = v
		}
	}
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

func (w *Wsp) getRandu(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	w.cached = w.rng.Randu(w.uniformMin, w.uniformMax)
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

func (w *Wsp) getRandh(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	if w.table == nil {
		t, err := loadWspTable(w.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, w.path, "unable to load historical wind speed table", err)
		}
		w.table = t
		logrus.WithField("path", w.path).Debug("loaded historical wind speed table")
	}
	v := noDataHour
	for i := 0; i < maxRandhAttempts && v == noDataHour; i++ {
		row := w.rng.Randi(w.table.Rows())
		cv, err := w.table.HourValue(row, hour)
		if err != nil {
			return 0, err
		}
		v = cv
	}
	if v == noDataHour {
		return 0, herr.New(herr.Numeric, w.path, "historical wind speed table has no usable row for this hour")
	}
	w.cached = v
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

func (w *Wsp) getSpatial(month, day, hour int, rwx, rwy float64) (float64, error) {
	if !w.sameHour(month, day, hour) {
		if w.index == nil {
			idx, factor, err := loadUnitTaggedAtmIndex(w.indexPath)
			if err != nil {
				return 0, herr.Wrap(herr.Config, w.indexPath, "unable to load wind speed spatial index", err)
			}
			w.index, w.spatialFactor = idx, factor
		}
		if rec, ok := w.index.At(month, day, hour); ok {
			file := rec.File()
			if file != w.gridFile {
				g, err := raster.Load(file)
				if err != nil {
					return 0, herr.Wrap(herr.Config, file, "unable to load wind speed raster", err)
				}
				w.grid, w.gridFile = g, file
				logrus.WithField("path", file).Debug("loaded wind speed raster")
			}
		}
		w.lastMonth, w.lastDay, w.lastHour = month, day, hour
		w.loaded = true
	}
	if w.grid == nil {
		return 0, herr.New(herr.Config, w.indexPath, "no wind speed raster indexed for this date")
	}
	return w.grid.At(rwx, rwy) * w.spatialFactor, nil
}

// loadWspTable reads a wind-speed hourTable file, whose first non-comment
// line is a "UNITS MILEPHR|KMPHR" header converting the whole table to m/s
// once at load time.
func loadWspTable(path string) (*hourTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open wind speed table", err)
	}
	defer f.Close()
	return readWspTable(f, path)
}

func readWspTable(r io.Reader, context string) (*hourTable, error) {
	factor := 0.0
	haveUnits := false
	var rows [][]float64
	err := table.ReadLines(r, func(fields []string) error {
		if len(fields) > 0 && strings.EqualFold(fields[0], "UNITS") {
			f, perr := wspUnitFactor(fields, context)
			if perr != nil {
				return perr
			}
			factor, haveUnits = f, true
			return nil
		}
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
	if !haveUnits {
		return nil, herr.New(herr.Parse, context, "wind speed table missing UNITS MILEPHR|KMPHR header")
	}
	if len(rows) == 0 {
		return nil, herr.New(herr.Parse, context, "table has no data rows")
	}
	t := newHourTableFromRows(rows)
	t.ScaleHours(factor)
	return t, nil
}

func wspUnitFactor(fields []string, context string) (float64, error) {
	if len(fields) < 2 {
		return 0, herr.New(herr.Parse, context, "UNITS header missing a unit name")
	}
	switch strings.ToUpper(fields[1]) {
	case "MILEPHR":
		return mphToMpsFactor, nil
	case "KMPHR":
		return kmhToMpsFactor, nil
	default:
		return 0, herr.New(herr.Parse, context, "unrecognized wind speed units "+fields[1])
	}
}

// loadUnitTaggedAtmIndex reads a spatial index whose first line is an
// ENGLISH|METRIC header, returning both the index and the per-cell
// conversion factor to m/s (English rasters are assumed mph, metric km/h).
func loadUnitTaggedAtmIndex(path string) (*atmIndex, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, herr.Wrap(herr.Io, path, "unable to open spatial index", err)
	}
	defer f.Close()

	factor := 0.0
	haveUnits := false
	var recs []atmRecord
	err = table.ReadLines(f, func(fields []string) error {
		if len(fields) > 0 && (strings.EqualFold(fields[0], "ENGLISH") || strings.EqualFold(fields[0], "METRIC")) {
			if strings.EqualFold(fields[0], "ENGLISH") {
				factor = mphToMpsFactor
			} else {
				factor = kmhToMpsFactor
			}
			haveUnits = true
			return nil
		}
		if len(fields) < 4 {
			return herr.New(herr.Parse, path, "expected month day hhmm ... filename")
		}
		month, perr := table.ParseInt(fields[0], path)
		if perr != nil {
			return perr
		}
		day, perr := table.ParseInt(fields[1], path)
		if perr != nil {
			return perr
		}
		hhmm, perr := table.ParseInt(fields[2], path)
		if perr != nil {
			return perr
		}
		recs = append(recs, atmRecord{month: month, day: day, hour: hhmm / 100, paths: fields[3:]})
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if !haveUnits {
		return nil, 0, herr.New(herr.Parse, path, "spatial wind speed index missing ENGLISH|METRIC header")
	}
	if len(recs) == 0 {
		return nil, 0, herr.New(herr.Parse, path, "spatial index has no data rows")
	}
	return &atmIndex{recs: recs}, factor, nil
}
