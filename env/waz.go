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

// Package env implements the per-variable environment strategies HFire's
// driver layer queries for wind, fuel moisture, ignition, and Santa Ana
// conditions: one tagged-variant type per variable, each owning its own
// lazily initialized cache, replacing the source's function-pointer plus
// function-local-static dispatch with explicit struct state.
package env

import (
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
)

// WazVariant selects a wind-azimuth strategy.
type WazVariant int

const (
	WazFixed WazVariant = iota
	WazRandu
	WazRandh
	WazSpatial
)

// Waz is the wind-azimuth environment variable, a tagged variant over its
// four strategies. Construct with NewWaz*; Get is idempotent within a
// single (month, day, hour) key, performing I/O only when that key changes.
type Waz struct {
	variant   WazVariant
	path      string
	indexPath string
	rng       *prng.Generator

	table *hourTable
	index *atmIndex
	grid  *raster.Grid
	gridFile string

	loaded                       bool
	lastMonth, lastDay, lastHour int
	cached                       float64
}

// NewWazFixed builds a FIXED wind-azimuth strategy reading a WAZ table from
// path, keyed by (month, day).
func NewWazFixed(path string) *Waz { return &Waz{variant: WazFixed, path: path} }

// NewWazRandu builds a RANDU wind-azimuth strategy drawing uniform[0,360)
// at each new hour.
func NewWazRandu(rng *prng.Generator) *Waz { return &Waz{variant: WazRandu, rng: rng} }

// NewWazRandh builds a RANDH wind-azimuth strategy that, for each new hour,
// redraws a uniformly random row of the historical WAZ table at path and
// reads that hour's column, retrying on the -1 sentinel.
func NewWazRandh(path string, rng *prng.Generator) *Waz {
	return &Waz{variant: WazRandh, path: path, rng: rng}
}

// NewWazSpatial builds a SPATIAL wind-azimuth strategy indexed by indexPath,
// an ATM table mapping (month, day, hour) to a raster of azimuth values.
func NewWazSpatial(indexPath string) *Waz { return &Waz{variant: WazSpatial, indexPath: indexPath} }

func (w *Waz) sameHour(month, day, hour int) bool {
	return w.loaded && w.lastMonth == month && w.lastDay == day && w.lastHour == hour
}

// Get returns the wind azimuth in degrees for (year, month, day, hour),
// transforming (rwx, rwy) for the SPATIAL variant only.
func (w *Waz) Get(year, month, day, hour int, rwx, rwy float64) (float64, error) {
	switch w.variant {
	case WazFixed:
		return w.getFixed(month, day, hour)
	case WazRandu:
		return w.getRandu(month, day, hour)
	case WazRandh:
		return w.getRandh(month, day, hour)
	case WazSpatial:
		return w.getSpatial(month, day, hour, rwx, rwy)
	default:
		return 0, herr.New(herr.Internal, "", "unrecognized wind azimuth strategy variant")
	}
}

func (w *Waz) getFixed(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	if w.table == nil {
		t, err := loadHourTable(w.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, w.path, "unable to load wind azimuth table", err)
		}
		w.table = t
		logrus.WithField("path", w.path).Debug("loaded wind azimuth table")
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
	// No matching row, or a sentinel cell: keep the previously cached value.
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

func (w *Waz) getRandu(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	w.cached = w.rng.Randu(0, 360)
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

// maxRandhAttempts bounds the sentinel-avoidance retry loop so a
// historical table with no non-sentinel data for an hour fails instead of
// spinning forever.
const maxRandhAttempts = 1000

func (w *Waz) getRandh(month, day, hour int) (float64, error) {
	if w.sameHour(month, day, hour) {
		return w.cached, nil
	}
	if w.table == nil {
		t, err := loadHourTable(w.path)
		if err != nil {
			return 0, herr.Wrap(herr.Config, w.path, "unable to load historical wind azimuth table", err)
		}
		w.table = t
		logrus.WithField("path", w.path).Debug("loaded historical wind azimuth table")
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
		return 0, herr.New(herr.Numeric, w.path, "historical wind azimuth table has no usable row for this hour")
	}
	w.cached = v
	w.lastMonth, w.lastDay, w.lastHour = month, day, hour
	w.loaded = true
	return w.cached, nil
}

func (w *Waz) getSpatial(month, day, hour int, rwx, rwy float64) (float64, error) {
	if !w.sameHour(month, day, hour) {
		if w.index == nil {
			idx, err := loadAtmIndex(w.indexPath)
			if err != nil {
				return 0, herr.Wrap(herr.Config, w.indexPath, "unable to load wind azimuth spatial index", err)
			}
			w.index = idx
		}
		if rec, ok := w.index.At(month, day, hour); ok {
			file := rec.File()
			if file != w.gridFile {
				g, err := raster.Load(file)
				if err != nil {
					return 0, herr.Wrap(herr.Config, file, "unable to load wind azimuth raster", err)
				}
				w.grid, w.gridFile = g, file
				logrus.WithField("path", file).Debug("loaded wind azimuth raster")
			}
		}
		w.lastMonth, w.lastDay, w.lastHour = month, day, hour
		w.loaded = true
	}
	if w.grid == nil {
		return 0, herr.New(herr.Config, w.indexPath, "no wind azimuth raster indexed for this date")
	}
	return w.grid.At(rwx, rwy), nil
}
