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

// Package spread implements the Rothermel (1972) surface-fire rate-of-
// spread kernel: SetFuelBed precomputes a fuel model's bed aggregates,
// SpreadNoWindNoSlope computes the no-wind/no-slope rate of spread, and
// SpreadWindSlopeMax combines wind and slope into the maximum rate of
// spread and its azimuth.
//
// All interior arithmetic is in English units (ft, min, lb, BTU); callers
// working in metric convert at the boundary (fuel.Model.ToEnglish) and
// convert results back on the way out.
package spread

import (
	"math"

	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/units"
)

// sigmaFloor is the minimum surface-area-to-volume ratio (1/ft) a
// non-empty particle class is clamped to before any division, so a
// pathological input can never divide by zero. Below 192/ft (30.5/cm) per
// spec section 4.3.
const sigmaFloor = 1.0

// moistureFloor is the minimum value any moisture fraction is clamped up
// to, per spec section 4.3 ("values clipped to >= 0.01 below").
const moistureFloor = 0.01

func clampSAV(sav float64) float64 {
	if sav < sigmaFloor {
		return sigmaFloor
	}
	return sav
}

// particleSurfaceArea returns the surface-area weighting quantity
// (load * SAV / density) for one particle class, 0 for an empty class.
func particleSurfaceArea(c fuel.DeadClass) float64 {
	if c.Load <= 0 || c.Density <= 0 {
		return 0
	}
	return c.Load * clampSAV(c.SAV) / c.Density
}

// SetFuelBed precomputes m's bed aggregates from its particles: total
// dead/live load, weighted SAV, packing ratio, reaction-velocity
// coefficients, and propagating flux ratio. Results are cached on m. Fails
// with herr.Numeric if every class has zero load, if any SAV <= 0 for a
// non-empty class, or the bed depth is not positive. Fails with
// herr.Internal if m is a CustomBurnup variant.
func SetFuelBed(m *fuel.Model) error {
	if m.Variant != fuel.Rothermel {
		return herr.New(herr.Internal, "", "spread kernel only implements the Rothermel fuel model variant")
	}
	if !units.GreaterThanZero(m.Depth) {
		return herr.New(herr.Numeric, "", "degenerate fuel bed: depth must be positive")
	}

	for _, d := range m.Dead {
		if d.Load > 0 && d.SAV <= 0 {
			return herr.New(herr.Numeric, "", "degenerate fuel bed: non-empty class has non-positive surface-to-volume ratio")
		}
	}
	for _, l := range m.Live {
		if l.Load > 0 && l.SAV <= 0 {
			return herr.New(herr.Numeric, "", "degenerate fuel bed: non-empty class has non-positive surface-to-volume ratio")
		}
	}

	var deadArea [4]float64
	var liveArea [2]float64
	var deadAreaSum, liveAreaSum float64
	for i, d := range m.Dead {
		deadArea[i] = particleSurfaceArea(d)
		deadAreaSum += deadArea[i]
	}
	for i, l := range m.Live {
		liveArea[i] = particleSurfaceArea(l)
		liveAreaSum += liveArea[i]
	}
	totalArea := deadAreaSum + liveAreaSum

	deadLoad, liveLoad := 0.0, 0.0
	for _, d := range m.Dead {
		deadLoad += d.Load
	}
	for _, l := range m.Live {
		liveLoad += l.Load
	}
	if !units.GreaterThanZero(deadLoad + liveLoad) {
		return herr.New(herr.Numeric, "", "degenerate fuel bed: every class has zero load")
	}
	if !units.GreaterThanZero(totalArea) {
		return herr.New(herr.Numeric, "", "degenerate fuel bed: no surface area to weight by")
	}

	bed := fuel.BedAggregate{
		DeadLoad: deadLoad, LiveLoad: liveLoad,
		DeadMoistOfExtinction:     m.DeadMoistExtinction,
		LiveMoistOfExtinctionBase: m.LiveMoistExtinction,
	}

	for i, d := range m.Dead {
		if deadAreaSum > 0 {
			bed.DeadAreaFrac[i] = deadArea[i] / deadAreaSum
		}
		if totalArea > 0 {
			bed.DeadOverallFrac[i] = deadArea[i] / totalArea
		}
		bed.DeadEffHeating[i] = math.Exp(-138.0 / clampSAV(d.SAV))
		if d.Load > 0 {
			bed.DeadSAV += bed.DeadAreaFrac[i] * d.SAV
			bed.DeadHeatWeighted += bed.DeadAreaFrac[i] * d.HeatContent
			bed.DeadMineralDampWeighted += bed.DeadAreaFrac[i] * mineralDamping(d.MineralEffective)
			bed.DeadNetLoad += d.Load * (1 - d.MineralTotal)
		}
	}
	for i, l := range m.Live {
		if liveAreaSum > 0 {
			bed.LiveAreaFrac[i] = liveArea[i] / liveAreaSum
		}
		if totalArea > 0 {
			bed.LiveOverallFrac[i] = liveArea[i] / totalArea
		}
		bed.LiveEffHeating[i] = math.Exp(-138.0 / clampSAV(l.SAV))
		if l.Load > 0 {
			bed.LiveSAV += bed.LiveAreaFrac[i] * l.SAV
			bed.LiveHeatWeighted += bed.LiveAreaFrac[i] * l.HeatContent
			bed.LiveMineralDampWeighted += bed.LiveAreaFrac[i] * mineralDamping(l.MineralEffective)
			bed.LiveNetLoad += l.Load * (1 - l.MineralTotal)
		}
	}

	sigma := (deadAreaSum*bed.DeadSAV + liveAreaSum*bed.LiveSAV) / totalArea
	bed.CharacteristicSAV = sigma

	bed.BulkDensity = (deadLoad + liveLoad) / m.Depth
	meanParticleDensity := weightedDensity(m.Dead[:], m.Live[:], deadArea[:], liveArea[:], totalArea)
	bed.Beta = bed.BulkDensity / meanParticleDensity
	bed.BetaOpt = 3.348 * math.Pow(sigma, -0.8189)

	bed.A = 1.0 / (4.774*math.Pow(sigma, 0.1) - 7.27)
	bed.B = 0.02526 * math.Pow(sigma, 0.54)
	bed.C = 7.47 * math.Exp(-0.133*math.Pow(sigma, 0.55))
	bed.E = 0.715 * math.Exp(-0.000359*sigma)

	bed.PropagatingFluxRatio = math.Exp((0.792+0.681*math.Sqrt(sigma))*(bed.Beta+0.1)) / (192 + 0.2595*sigma)

	m.Bed = bed
	m.State = fuel.BedSet
	return nil
}

// mineralDamping is the Rothermel (1972) eq. 27 mineral damping
// coefficient, capped at 1.
func mineralDamping(effectiveMineralFraction float64) float64 {
	eta := 0.174 * math.Pow(effectiveMineralFraction, -0.19)
	if eta > 1 {
		return 1
	}
	return eta
}

// weightedDensity returns the surface-area-weighted particle density
// across every dead and live class.
func weightedDensity(dead, live []fuel.DeadClass, deadArea, liveArea []float64, totalArea float64) float64 {
	const fallback = 32.0 // a conventional fallback particle density, lb/ft^3.
	if totalArea <= 0 {
		return fallback
	}
	sum := 0.0
	for i, c := range dead {
		sum += c.Density * deadArea[i] / totalArea
	}
	for i, c := range live {
		sum += c.Density * liveArea[i] / totalArea
	}
	if sum <= 0 {
		return fallback
	}
	return sum
}
