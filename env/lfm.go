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

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
	"github.com/spatialmodel/hfire/table"
	"github.com/spatialmodel/hfire/units"
)

// LfmVariant selects a live-fuel-moisture strategy.
type LfmVariant int

const (
	LfmFixed LfmVariant = iota
	LfmRandh
	LfmSpatial
)

// dailyRecord is one row of a live-fuel-moisture file: FIXED rows carry a
// value only; RANDH rows additionally carry a per-day standard deviation.
type dailyRecord struct {
	month, day  int
	value, stdev float64
}

func dateKey2(month, day int) int { return month*100 + day }

// dailySeries is a sequentially advanced (month, day) -> value lookup,
// grounded on the source's AdvanceRecToDate: a cursor only ever moves
// forward, so callers must query in non-decreasing date order within a
// simulated year and reset the series at year rollover.
type dailySeries struct {
	recs           []dailyRecord
	cursor         int
	annMean, annStdev float64
}

func (s *dailySeries) reset() { s.cursor = 0 }

// valueForDate advances the cursor to the latest record at or before
// (month, day) and returns it. A date before the first record returns the
// first record (there is no "previous value" to fall back to yet).
func (s *dailySeries) valueForDate(month, day int) dailyRecord {
	want := dateKey2(month, day)
	for s.cursor+1 < len(s.recs) && dateKey2(s.recs[s.cursor+1].month, s.recs[s.cursor+1].day) <= want {
		s.cursor++
	}
	return s.recs[s.cursor]
}

func loadDailySeries(path string, randh bool) (*dailySeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open live fuel moisture file", err)
	}
	defer f.Close()
	return readDailySeries(f, path, randh)
}

func readDailySeries(r io.Reader, context string, randh bool) (*dailySeries, error) {
	s := &dailySeries{}
	haveMean, haveStdev := false, false
	err := table.ReadLines(r, func(fields []string) error {
		if len(fields) >= 2 && strings.EqualFold(fields[0], "ANNMEAN") {
			v, perr := table.ParseFloat(fields[1], context)
			if perr != nil {
				return perr
			}
			s.annMean, haveMean = v, true
			return nil
		}
		if len(fields) >= 2 && strings.EqualFold(fields[0], "ANNSTDEV") {
			v, perr := table.ParseFloat(fields[1], context)
			if perr != nil {
				return perr
			}
			s.annStdev, haveStdev = v, true
			return nil
		}
		if len(fields) < 3 {
			return herr.New(herr.Parse, context, "expected month day value[ stdev]")
		}
		month, perr := table.ParseInt(fields[0], context)
		if perr != nil {
			return perr
		}
		day, perr := table.ParseInt(fields[1], context)
		if perr != nil {
			return perr
		}
		val, perr := table.ParseFloat(fields[2], context)
		if perr != nil {
			return perr
		}
		rec := dailyRecord{month: month, day: day, value: val}
		if randh {
			if len(fields) < 4 {
				return herr.New(herr.Parse, context, "expected month day mean stdev")
			}
			sd, perr := table.ParseFloat(fields[3], context)
			if perr != nil {
				return perr
			}
			rec.stdev = sd
		}
		s.recs = append(s.recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if randh && (!haveMean || !haveStdev) {
		return nil, herr.New(herr.Parse, context, "historical live fuel moisture file missing ANNMEAN/ANNSTDEV header")
	}
	if len(s.recs) == 0 {
		return nil, herr.New(herr.Parse, context, "live fuel moisture file has no data rows")
	}
	return s, nil
}

// Lfm is the live-fuel-moisture environment variable: a herbaceous and a
// woody series (FIXED/RANDH) or a joint raster index (SPATIAL), returning
// both classes together since they are always read side by side.
type Lfm struct {
	variant    LfmVariant
	herbPath, woodyPath string
	indexPath  string
	rng        *prng.Generator

	herb, woody *dailySeries
	lastYear    int
	haveYear    bool
	herbZ, woodyZ float64 // RANDH: one annual z-score per series, redrawn on year rollover

	index      *atmIndex
	herbGrid, woodyGrid *raster.Grid
	herbFile, woodyFile string

	loaded                       bool
	lastMonth, lastDay, lastHour int
	cachedHerb, cachedWoody      float64
}

// NewLfmFixed builds a FIXED live-fuel-moisture strategy reading daily
// herbaceous and woody percent series from two files.
func NewLfmFixed(herbPath, woodyPath string) *Lfm {
	return &Lfm{variant: LfmFixed, herbPath: herbPath, woodyPath: woodyPath}
}

// NewLfmRandh builds a RANDH live-fuel-moisture strategy: each file also
// carries an ANNMEAN/ANNSTDEV header used to draw one Gaussian z-score per
// simulated year, applied to every day's (mean,stdev) row that year.
func NewLfmRandh(herbPath, woodyPath string, rng *prng.Generator) *Lfm {
	return &Lfm{variant: LfmRandh, herbPath: herbPath, woodyPath: woodyPath, rng: rng}
}

// NewLfmSpatial builds a SPATIAL live-fuel-moisture strategy indexed by
// indexPath, a joint ATM table whose trailing two columns are the
// herbaceous and woody raster paths for each (month, day, hour) key.
func NewLfmSpatial(indexPath string) *Lfm { return &Lfm{variant: LfmSpatial, indexPath: indexPath} }

func (l *Lfm) sameHour(month, day, hour int) bool {
	return l.loaded && l.lastMonth == month && l.lastDay == day && l.lastHour == hour
}

// Get returns (herbaceous, woody) live fuel moisture fractions for (year,
// month, day, hour).
func (l *Lfm) Get(year, month, day, hour int, rwx, rwy float64) (herb, woody float64, err error) {
	switch l.variant {
	case LfmFixed:
		herb, woody, err = l.getFixed(year, month, day, hour)
	case LfmRandh:
		herb, woody, err = l.getRandh(year, month, day, hour)
	case LfmSpatial:
		herb, woody, err = l.getSpatial(month, day, hour, rwx, rwy)
	default:
		return 0, 0, herr.New(herr.Internal, "", "unrecognized live fuel moisture strategy variant")
	}
	if err != nil {
		return 0, 0, err
	}
	return units.PctToFrac(herb), units.PctToFrac(woody), nil
}

func (l *Lfm) rolloverIfNewYear(year int) {
	if !l.haveYear || year != l.lastYear {
		if l.herb != nil {
			l.herb.reset()
		}
		if l.woody != nil {
			l.woody.reset()
		}
		l.lastYear, l.haveYear = year, true
	}
}

func (l *Lfm) getFixed(year, month, day, hour int) (float64, float64, error) {
	if l.sameHour(month, day, hour) {
		return l.cachedHerb, l.cachedWoody, nil
	}
	l.rolloverIfNewYear(year)
	if l.herb == nil {
		s, err := loadDailySeries(l.herbPath, false)
		if err != nil {
			return 0, 0, herr.Wrap(herr.Config, l.herbPath, "unable to load herbaceous fuel moisture file", err)
		}
		l.herb = s
		logrus.WithField("path", l.herbPath).Debug("loaded herbaceous fuel moisture file")
	}
	if l.woody == nil {
		s, err := loadDailySeries(l.woodyPath, false)
		if err != nil {
			return 0, 0, herr.Wrap(herr.Config, l.woodyPath, "unable to load woody fuel moisture file", err)
		}
		l.woody = s
		logrus.WithField("path", l.woodyPath).Debug("loaded woody fuel moisture file")
	}
	l.cachedHerb = l.herb.valueForDate(month, day).value
	l.cachedWoody = l.woody.valueForDate(month, day).value
	l.lastMonth, l.lastDay, l.lastHour = month, day, hour
	l.loaded = true
	return l.cachedHerb, l.cachedWoody, nil
}

func (l *Lfm) getRandh(year, month, day, hour int) (float64, float64, error) {
	if l.sameHour(month, day, hour) {
		return l.cachedHerb, l.cachedWoody, nil
	}
	newYear := !l.haveYear || year != l.lastYear
	l.rolloverIfNewYear(year)
	if l.herb == nil {
		s, err := loadDailySeries(l.herbPath, true)
		if err != nil {
			return 0, 0, herr.Wrap(herr.Config, l.herbPath, "unable to load historical herbaceous fuel moisture file", err)
		}
		l.herb = s
		newYear = true
	}
	if l.woody == nil {
		s, err := loadDailySeries(l.woodyPath, true)
		if err != nil {
			return 0, 0, herr.Wrap(herr.Config, l.woodyPath, "unable to load historical woody fuel moisture file", err)
		}
		l.woody = s
		newYear = true
	}
	if newYear {
		l.herbZ = annualZScore(l.rng, l.herb.annMean, l.herb.annStdev)
		l.woodyZ = annualZScore(l.rng, l.woody.annMean, l.woody.annStdev)
	}
	hrec := l.herb.valueForDate(month, day)
	wrec := l.woody.valueForDate(month, day)
	l.cachedHerb = l.herbZ*hrec.stdev + hrec.value
	l.cachedWoody = l.woodyZ*wrec.stdev + wrec.value
	l.lastMonth, l.lastDay, l.lastHour = month, day, hour
	l.loaded = true
	return l.cachedHerb, l.cachedWoody, nil
}

// annualZScore draws one Gaussian sample g(mean,stdev) and standardizes it,
// the one-draw-per-year procedure spec section 4.5 requires for historical
// live fuel moisture.
func annualZScore(rng *prng.Generator, mean, stdev float64) float64 {
	if stdev <= 0 {
		return 0
	}
	g := rng.Randg(mean, stdev)
	return (g - mean) / stdev
}

func (l *Lfm) getSpatial(month, day, hour int, rwx, rwy float64) (float64, float64, error) {
	if !l.sameHour(month, day, hour) {
		if l.index == nil {
			idx, err := loadAtmIndex(l.indexPath)
			if err != nil {
				return 0, 0, herr.Wrap(herr.Config, l.indexPath, "unable to load live fuel moisture spatial index", err)
			}
			l.index = idx
		}
		if rec, ok := l.index.At(month, day, hour); ok {
			herbFile, woodyFile := rec.Files2()
			if herbFile != l.herbFile {
				g, err := raster.Load(herbFile)
				if err != nil {
					return 0, 0, herr.Wrap(herr.Config, herbFile, "unable to load herbaceous fuel moisture raster", err)
				}
				l.herbGrid, l.herbFile = g, herbFile
			}
			if woodyFile != l.woodyFile {
				g, err := raster.Load(woodyFile)
				if err != nil {
					return 0, 0, herr.Wrap(herr.Config, woodyFile, "unable to load woody fuel moisture raster", err)
				}
				l.woodyGrid, l.woodyFile = g, woodyFile
			}
		}
		l.lastMonth, l.lastDay, l.lastHour = month, day, hour
		l.loaded = true
	}
	if l.herbGrid == nil || l.woodyGrid == nil {
		return 0, 0, herr.New(herr.Config, l.indexPath, "no live fuel moisture rasters indexed for this date")
	}
	return l.herbGrid.At(rwx, rwy), l.woodyGrid.At(rwx, rwy), nil
}
