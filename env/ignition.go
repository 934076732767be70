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
	"sort"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
)

// IgnitionVariant selects an ignition strategy. Unlike the other
// environment variables, there is no C source for ignition in the
// retrieval pack (the original ignition scheduler lives outside this
// module's scope) - these three strategies are grounded on spec section
// 4.5's prose alone.
type IgnitionVariant int

const (
	IgnitionFixed IgnitionVariant = iota
	IgnitionRandu
	IgnitionRands
)

// IgnitionTrigger is one FIXED occurrence record.
type IgnitionTrigger struct{ Year, Month, Day, Hour int }

// IgnitionPoint is one FIXED ignition location, paired by index with its
// IgnitionTrigger.
type IgnitionPoint struct{ X, Y float64 }

// maxIgnitionLocationAttempts bounds the NODATA-rejection retry loop for
// RANDU's uniform location draw.
const maxIgnitionLocationAttempts = 1000

// Ignition is the ignition environment variable: an occurrence test and a
// location draw, tagged over three strategies.
type Ignition struct {
	variant IgnitionVariant

	// FIXED
	triggers     []IgnitionTrigger
	points       []IgnitionPoint
	lastFiredIdx int

	// RANDU / RANDS: a single occurrence drawn once at a uniform-random
	// hour within [windowStartHour, windowEndHour] of the first day
	// queried.
	rng                            *prng.Generator
	windowStartHour, windowEndHour int
	haveTrigger                    bool
	triggerYear, triggerMonth, triggerDay, triggerHour int
	fired                          bool

	// RANDU location
	minX, minY, maxX, maxY float64
	terrain                *raster.Grid

	// RANDS location
	probGrid  *raster.Grid
	probCDF   []float64
	probTotal float64
}

// NewIgnitionFixed builds a FIXED ignition strategy: triggers[i] occurring
// reports points[i] as its location. The two slices must be the same
// length.
func NewIgnitionFixed(triggers []IgnitionTrigger, points []IgnitionPoint) *Ignition {
	return &Ignition{variant: IgnitionFixed, triggers: triggers, points: points, lastFiredIdx: -1}
}

// NewIgnitionRandu builds a RANDU ignition strategy: a single trigger at a
// uniform-random hour in [windowStartHour, windowEndHour], located uniform
// over the bounding box [minX,maxX) x [minY,maxY), rejecting draws that
// land on terrain's NODATA cell (terrain may be nil to skip the check).
func NewIgnitionRandu(windowStartHour, windowEndHour int, minX, minY, maxX, maxY float64, terrain *raster.Grid, rng *prng.Generator) *Ignition {
	return &Ignition{
		variant: IgnitionRandu, rng: rng,
		windowStartHour: windowStartHour, windowEndHour: windowEndHour,
		minX: minX, minY: minY, maxX: maxX, maxY: maxY, terrain: terrain,
	}
}

// NewIgnitionRands builds a RANDS ignition strategy: occurrence as in
// RANDU, location sampled proportionally to probGrid's cell values.
func NewIgnitionRands(windowStartHour, windowEndHour int, probGrid *raster.Grid, rng *prng.Generator) *Ignition {
	return &Ignition{
		variant: IgnitionRands, rng: rng,
		windowStartHour: windowStartHour, windowEndHour: windowEndHour,
		probGrid: probGrid,
	}
}

// Occurs reports whether an ignition fires at (year, month, day, hour).
// FIXED may fire more than once per run; RANDU/RANDS fire exactly once.
func (ig *Ignition) Occurs(year, month, day, hour int) (bool, error) {
	switch ig.variant {
	case IgnitionFixed:
		for i, t := range ig.triggers {
			if t.Year == year && t.Month == month && t.Day == day && t.Hour == hour {
				ig.lastFiredIdx = i
				return true, nil
			}
		}
		return false, nil
	case IgnitionRandu, IgnitionRands:
		if !ig.haveTrigger {
			ig.triggerHour = ig.rng.Randi(ig.windowEndHour-ig.windowStartHour+1) + ig.windowStartHour
			ig.triggerYear, ig.triggerMonth, ig.triggerDay = year, month, day
			ig.haveTrigger = true
		}
		if ig.fired {
			return false, nil
		}
		if year == ig.triggerYear && month == ig.triggerMonth && day == ig.triggerDay && hour == ig.triggerHour {
			ig.fired = true
			return true, nil
		}
		return false, nil
	default:
		return false, herr.New(herr.Internal, "", "unrecognized ignition strategy variant")
	}
}

// Location returns the (x,y) of the most recent Occurs==true call.
func (ig *Ignition) Location() (x, y float64, err error) {
	switch ig.variant {
	case IgnitionFixed:
		if ig.lastFiredIdx < 0 || ig.lastFiredIdx >= len(ig.points) {
			return 0, 0, herr.New(herr.Internal, "", "ignition location requested before an occurrence")
		}
		p := ig.points[ig.lastFiredIdx]
		return p.X, p.Y, nil
	case IgnitionRandu:
		return ig.randomLocation()
	case IgnitionRands:
		return ig.sampledLocation()
	default:
		return 0, 0, herr.New(herr.Internal, "", "unrecognized ignition strategy variant")
	}
}

func (ig *Ignition) randomLocation() (float64, float64, error) {
	for i := 0; i < maxIgnitionLocationAttempts; i++ {
		x := ig.rng.Randu(ig.minX, ig.maxX)
		y := ig.rng.Randu(ig.minY, ig.maxY)
		if ig.terrain == nil {
			return x, y, nil
		}
		if v := ig.terrain.At(x, y); !ig.terrain.IsNoData(v) {
			return x, y, nil
		}
	}
	return 0, 0, herr.New(herr.Numeric, "", "unable to find a non-NODATA ignition location")
}

func (ig *Ignition) buildProbCDF() {
	ig.probCDF = make([]float64, 0, ig.probGrid.NRows*ig.probGrid.NCols)
	total := 0.0
	for r := 0; r < ig.probGrid.NRows; r++ {
		for c := 0; c < ig.probGrid.NCols; c++ {
			v, _ := ig.probGrid.Value(r, c)
			if ig.probGrid.IsNoData(v) || v < 0 {
				v = 0
			}
			total += v
			ig.probCDF = append(ig.probCDF, total)
		}
	}
	ig.probTotal = total
}

func (ig *Ignition) sampledLocation() (float64, float64, error) {
	if ig.probCDF == nil {
		ig.buildProbCDF()
	}
	if ig.probTotal <= 0 {
		return 0, 0, herr.New(herr.Numeric, "", "ignition probability raster has no positive mass")
	}
	r := ig.rng.Randu(0, ig.probTotal)
	idx := sort.Search(len(ig.probCDF), func(i int) bool { return ig.probCDF[i] >= r })
	if idx >= len(ig.probCDF) {
		idx = len(ig.probCDF) - 1
	}
	row := idx / ig.probGrid.NCols
	col := idx % ig.probGrid.NCols
	cx, cy := ig.probGrid.Transform.RasterToWorld(row, col)
	half := ig.probGrid.Transform.CellSize / 2
	x := cx + ig.rng.Randu(-half, half)
	y := cy + ig.rng.Randu(-half, half)
	return x, y, nil
}
