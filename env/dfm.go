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
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
	"github.com/spatialmodel/hfire/units"
)

// DfmVariant selects a dead-fuel-moisture strategy. There is no RANDU
// variant for dead fuel moisture (the source has no uniform-draw path for
// this variable; only a historical-table draw and a spatial raster swap).
type DfmVariant int

const (
	DfmFixed DfmVariant = iota
	DfmRandh
	DfmSpatial
)

// dfmMoistureFloor is the minimum fraction every returned class is clamped
// to, regardless of strategy.
const dfmMoistureFloor = 0.01

// Dfm is the dead-fuel-moisture environment variable. Its Get returns the
// 1-hour, 10-hour, and 100-hour fuel moisture fractions together: the
// 10-hour class is the one actually measured or modeled, and the 1-hour and
// 100-hour classes are derived from it by fixed increments below and above.
type Dfm struct {
	variant   DfmVariant
	path      string
	indexPath string
	rng       *prng.Generator
	d1Inc, d100Inc float64

	table *hourTable
	index *atmIndex
	grid  *raster.Grid
	gridFile string

	loaded            bool
	lastMonth, lastDay, lastHour int
	randRow           int
	cached10Pct      float64
}

// NewDfmFixed builds a FIXED dead-fuel-moisture strategy reading a 10-hour
// percent table at path, keyed by (month, day).
func NewDfmFixed(path string, d1Inc, d100Inc float64) *Dfm {
	return &Dfm{variant: DfmFixed, path: path, d1Inc: d1Inc, d100Inc: d100Inc}
}

// NewDfmRandh builds a RANDH dead-fuel-moisture strategy: a uniformly
// random row of the historical table is chosen once per new simulated day,
// then its hour columns are read across that day without redrawing -
// unlike wind azimuth's RANDH, a sentinel cell here is not retried, it
// silently keeps the previous cached value.
func NewDfmRandh(path string, d1Inc, d100Inc float64, rng *prng.Generator) *Dfm {
	return &Dfm{variant: DfmRandh, path: path, d1Inc: d1Inc, d100Inc: d100Inc, rng: rng}
}

// NewDfmSpatial builds a SPATIAL dead-fuel-moisture strategy indexed by
// indexPath; the raster is swapped per new hour.
func NewDfmSpatial(indexPath string, d1Inc, d100Inc float64) *Dfm {
	return &Dfm{variant: DfmSpatial, indexPath: indexPath, d1Inc: d1Inc, d100Inc: d100Inc}
}

func (d *Dfm) sameHour(month, day, hour int) bool {
	return d.loaded && d.lastMonth == month && d.lastDay == day && d.lastHour == hour
}

func clampFloor(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}

// Get returns (d1, d10, d100) fuel moisture fractions for (year, month,
// day, hour), each clamped to at least dfmMoistureFloor.
func (d *Dfm) Get(year, month, day, hour int, rwx, rwy float64) (d1, d10, d100 float64, err error) {
	var pct float64
	switch d.variant {
	case DfmFixed:
		pct, err = d.getFixed(month, day, hour)
	case DfmRandh:
		pct, err = d.getRandh(month, day, hour)
	case DfmSpatial:
		pct, err = d.getSpatial(month, day, hour, rwx, rwy)
	default:
		return 0, 0, 0, herr.New(herr.Internal, "", "unrecognized dead fuel moisture strategy variant")
	}
	if err != nil {
		return 0, 0, 0, err
	}
	// Open question (ii): rasters and tables are always a percent in
	// [0,100], never a pre-divided fraction - divide by 100 exactly once.
	frac := units.PctToFrac(pct)
	d10 = clampFloor(frac, dfmMoistureFloor)
	d1 = clampFloor(frac-d.d1Inc, dfmMoistureFloor)
	d100 = clampFloor(frac+d.d100Inc, dfmMoistureFloor)
	return d1, d10, d100, nil
}

func (d *Dfm) getFixed(month, day, hour int) (float64, error) {
	if d.sameHour(month, day, hour) {
		return d.cached10Pct, nil
	}
	if d.table == nil {
		t, err := loadHourTable(d.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, d.path, "unable to load dead fuel moisture table", err)
		}
		d.table = t
		logrus.WithField("path", d.path).Debug("loaded dead fuel moisture table")
	}
	if row, ok := d.table.RowForDate(month, day); ok {
		v, err := d.table.HourValue(row, hour)
		if err != nil {
			return 0, err
		}
		if v != noDataHour {
			d.cached10Pct = v
		}
	}
	d.lastMonth, d.lastDay, d.lastHour = month, day, hour
	d.loaded = true
	return d.cached10Pct, nil
}

func (d *Dfm) getRandh(month, day, hour int) (float64, error) {
	if d.table == nil {
		t, err := loadHourTable(d.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, d.path, "unable to load historical dead fuel moisture table", err)
		}
		d.table = t
		logrus.WithField("path", d.path).Debug("loaded historical dead fuel moisture table")
	}
	if !d.loaded || d.lastMonth != month || d.lastDay != day {
		d.randRow = d.rng.Randi(d.table.Rows())
		d.lastMonth, d.lastDay = month, day
		d.loaded = true
	}
	d.lastHour = hour
	v, err := d.table.HourValue(d.randRow, hour)
	if err != nil {
		return 0, err
	}
	if v != noDataHour {
		d.cached10Pct = v
	}
	return d.cached10Pct, nil
}

func (d *Dfm) getSpatial(month, day, hour int, rwx, rwy float64) (float64, error) {
	if !d.sameHour(month, day, hour) {
		if d.index == nil {
			idx, err := loadAtmIndex(d.indexPath)
			if err != nil {
				return 0, herr.Wrap(herr.Config, d.indexPath, "unable to load dead fuel moisture spatial index", err)
			}
			d.index = idx
		}
		if rec, ok := d.index.At(month, day, hour); ok {
			file := rec.File()
			if file != d.gridFile {
				g, err := raster.Load(file)
				if err != nil {
					return 0, herr.Wrap(herr.Config, file, "unable to load dead fuel moisture raster", err)
				}
				d.grid, d.gridFile = g, file
				logrus.WithField("path", file).Debug("loaded dead fuel moisture raster")
			}
		}
		d.lastMonth, d.lastDay, d.lastHour = month, day, hour
		d.loaded = true
	}
	if d.grid == nil {
		return 0, herr.New(herr.Config, d.indexPath, "no dead fuel moisture raster indexed for this date")
	}
	v := d.grid.At(rwx, rwy)
	if !d.grid.IsNoData(v) {
		d.cached10Pct = v
	}
	return d.cached10Pct, nil
}
