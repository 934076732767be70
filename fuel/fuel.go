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

// Package fuel holds the Rothermel fuel-particle/fuel-bed record: the
// per-class load, surface-to-volume ratio, heat content, and moisture of
// extinction that spread.SetFuelBed consumes to precompute bed aggregates.
package fuel

import (
	"fmt"
	"io"

	"github.com/spatialmodel/hfire/herr"
)

// Units identifies the unit system a Model's fields are expressed in.
type Units int

const (
	// English is feet, minutes, pounds, BTU.
	English Units = iota
	// Metric is meters, seconds/hours, kilograms, kilojoules.
	Metric
)

func (u Units) String() string {
	if u == Metric {
		return "METRIC"
	}
	return "ENGLISH"
}

// Variant distinguishes the two FuelModel record shapes spec section 3
// describes. Only Rothermel is implemented by package spread.
type Variant int

const (
	// Rothermel is the classic dead/live particle fuel bed this spec
	// requires spread.SetFuelBed to support.
	Rothermel Variant = iota
	// CustomBurnup is accepted by the data model and configuration façade
	// but not implemented by the spread kernel.
	CustomBurnup
)

// DeadClass is one of up to four dead fuel size classes (1-h, 10-h, 100-h,
// 1000-h).
type DeadClass struct {
	Load             float64 // lb/ft^2 (English) or kg/m^2 (Metric)
	SAV              float64 // surface-area-to-volume ratio, 1/ft or 1/m
	Density          float64 // particle density, lb/ft^3 or kg/m^3
	HeatContent      float64 // BTU/lb or kJ/kg
	MineralTotal     float64 // fraction
	MineralEffective float64 // fraction (silica-free)
}

// LiveClass is one of the two live fuel classes (herbaceous, woody).
type LiveClass = DeadClass

// BedAggregate holds the values spread.SetFuelBed precomputes from a
// Model's particles: everything that does not depend on the moisture
// inputs to SpreadNoWindNoSlope. It is populated exactly once per fuel bed
// and is otherwise read-only.
type BedAggregate struct {
	DeadLoad, LiveLoad float64
	DeadSAV, LiveSAV   float64
	CharacteristicSAV  float64
	Beta, BetaOpt      float64
	A, B, C, E         float64

	PropagatingFluxRatio float64 // ξ
	BulkDensity          float64 // ρ_b, lb/ft^3

	// Per-class surface-area fraction within its own category (dead or
	// live), used to weight moisture, heat content, and mineral damping.
	DeadAreaFrac [4]float64
	LiveAreaFrac [2]float64

	// Per-class surface-area fraction of the whole bed (dead+live
	// combined), used to weight the heat-sink contribution of each class.
	DeadOverallFrac [4]float64
	LiveOverallFrac [2]float64

	// Per-class effective heating number exp(-138/sigma_i).
	DeadEffHeating [4]float64
	LiveEffHeating [2]float64

	DeadNetLoad, LiveNetLoad                   float64 // mineral-free load sum, per category
	DeadHeatWeighted, LiveHeatWeighted         float64 // area-fraction-weighted heat content
	DeadMineralDampWeighted, LiveMineralDampWeighted float64

	DeadMoistOfExtinction     float64
	LiveMoistOfExtinctionBase float64 // the configured value before the herb-load adjustment
}

// Results holds the most recently computed spread outputs, all in English
// (ft/min) units regardless of the Model's configured Units.
type Results struct {
	Ros0        float64
	RosMax      float64
	AzMax       float64
	EffWindMax  float64
}

// State is the per-Model state machine spec section 4.3 requires:
// Empty -> BedSet -> NoWindNoSlopeSolved -> WindSlopeSolved.
type State int

const (
	Empty State = iota
	BedSet
	NoWindNoSlopeSolved
	WindSlopeSolved
)

// Model is the Rothermel fuel-particle/fuel-bed record.
type Model struct {
	Number  int
	Variant Variant
	Units   Units

	Depth               float64 // fuel bed depth, ft or m
	DeadMoistExtinction float64 // fraction
	LiveMoistExtinction float64 // fraction

	Dead [4]DeadClass // 1-h, 10-h, 100-h, 1000-h
	Live [2]LiveClass // herbaceous, woody

	Bed     BedAggregate
	Results Results
	State   State
}

// Validate checks the construction-time invariants from spec section 3:
// negative loads, negative SAV, and extinction moistures <= 0 are rejected.
func (m *Model) Validate() error {
	if m.DeadMoistExtinction <= 0 || m.LiveMoistExtinction <= 0 {
		return herr.New(herr.Numeric, fmt.Sprintf("model %d", m.Number), "moisture of extinction must be positive")
	}
	for i, d := range m.Dead {
		if d.Load < 0 {
			return herr.New(herr.Numeric, fmt.Sprintf("model %d dead class %d", m.Number, i), "load must not be negative")
		}
		if d.Load > 0 && d.SAV <= 0 {
			return herr.New(herr.Numeric, fmt.Sprintf("model %d dead class %d", m.Number, i), "surface-to-volume ratio must be positive for a non-empty class")
		}
	}
	for i, l := range m.Live {
		if l.Load < 0 {
			return herr.New(herr.Numeric, fmt.Sprintf("model %d live class %d", m.Number, i), "load must not be negative")
		}
		if l.Load > 0 && l.SAV <= 0 {
			return herr.New(herr.Numeric, fmt.Sprintf("model %d live class %d", m.Number, i), "surface-to-volume ratio must be positive for a non-empty class")
		}
	}
	return nil
}

// totalLoadSum returns the sum of every dead and live class load, used to
// check the conversion round-trip invariant.
func (m *Model) totalLoadSum() float64 {
	sum := 0.0
	for _, d := range m.Dead {
		sum += d.Load
	}
	for _, l := range m.Live {
		sum += l.Load
	}
	return sum
}

// ErrAlreadyInThatSystem is returned by ToEnglish/ToMetric when the model is
// already in the requested unit system; callers may ignore it.
var ErrAlreadyInThatSystem = herr.New(herr.Internal, "", "model is already in that unit system")

const (
	lbPerFt2ToKgPerM2 = 4.8824
	ftToM             = 0.3048
	lbPerFt3ToKgPerM3 = 16.0185
	btuPerLbToKjPerKg = 2.326
	ftInvToMInv       = 1.0 / 0.3048
)

// ToEnglish converts m in place from Metric to English units. It is
// idempotent: calling it while already English returns
// ErrAlreadyInThatSystem.
func (m *Model) ToEnglish() error {
	if m.Units == English {
		return ErrAlreadyInThatSystem
	}
	before := m.totalLoadSum()
	m.Depth /= ftToM
	for i := range m.Dead {
		m.Dead[i].Load /= lbPerFt2ToKgPerM2
		m.Dead[i].SAV /= ftInvToMInv
		m.Dead[i].Density /= lbPerFt3ToKgPerM3
		m.Dead[i].HeatContent /= btuPerLbToKjPerKg
	}
	for i := range m.Live {
		m.Live[i].Load /= lbPerFt2ToKgPerM2
		m.Live[i].SAV /= ftInvToMInv
		m.Live[i].Density /= lbPerFt3ToKgPerM3
		m.Live[i].HeatContent /= btuPerLbToKjPerKg
	}
	m.Units = English
	after := m.totalLoadSum()
	return checkLoadPreserved(before/lbPerFt2ToKgPerM2, after)
}

// ToMetric converts m in place from English to Metric units. It is
// idempotent: calling it while already Metric returns
// ErrAlreadyInThatSystem.
func (m *Model) ToMetric() error {
	if m.Units == Metric {
		return ErrAlreadyInThatSystem
	}
	before := m.totalLoadSum()
	m.Depth *= ftToM
	for i := range m.Dead {
		m.Dead[i].Load *= lbPerFt2ToKgPerM2
		m.Dead[i].SAV *= ftInvToMInv
		m.Dead[i].Density *= lbPerFt3ToKgPerM3
		m.Dead[i].HeatContent *= btuPerLbToKjPerKg
	}
	for i := range m.Live {
		m.Live[i].Load *= lbPerFt2ToKgPerM2
		m.Live[i].SAV *= ftInvToMInv
		m.Live[i].Density *= lbPerFt3ToKgPerM3
		m.Live[i].HeatContent *= btuPerLbToKjPerKg
	}
	m.Units = Metric
	after := m.totalLoadSum()
	return checkLoadPreserved(before*lbPerFt2ToKgPerM2, after)
}

func checkLoadPreserved(expected, got float64) error {
	if d := expected - got; d > 1e-6 || d < -1e-6 {
		return herr.New(herr.Internal, "", "load sum not preserved across unit conversion")
	}
	return nil
}

// DumpToStream writes a human-readable text dump of m to w, used by
// --verbose. In addition to every contractual field, it reports the mean
// and population standard deviation of each class family's (load, SAV)
// pair — a diagnostic only, computed with GoStats (see fuel_summary.go).
func (m *Model) DumpToStream(w io.Writer) error {
	_, err := fmt.Fprintf(w, "fuel model %d (%s, %s)\n", m.Number, variantName(m.Variant), m.Units)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  depth=%g dead_mx=%g live_mx=%g\n", m.Depth, m.DeadMoistExtinction, m.LiveMoistExtinction)
	names := []string{"1-h", "10-h", "100-h", "1000-h"}
	for i, d := range m.Dead {
		fmt.Fprintf(w, "  dead %-6s load=%-10g sav=%-10g density=%-10g heat=%-10g\n", names[i], d.Load, d.SAV, d.Density, d.HeatContent)
	}
	liveNames := []string{"herbaceous", "woody"}
	for i, l := range m.Live {
		fmt.Fprintf(w, "  live %-10s load=%-10g sav=%-10g density=%-10g heat=%-10g\n", liveNames[i], l.Load, l.SAV, l.Density, l.HeatContent)
	}
	dMean, dStd := dumpSummary(m.Dead[:])
	lMean, lStd := dumpSummary(m.Live[:])
	fmt.Fprintf(w, "  dead load/sav summary: mean=%g stddev=%g\n", dMean, dStd)
	fmt.Fprintf(w, "  live load/sav summary: mean=%g stddev=%g\n", lMean, lStd)
	return nil
}

func variantName(v Variant) string {
	if v == CustomBurnup {
		return "CustomBurnup"
	}
	return "Rothermel"
}
