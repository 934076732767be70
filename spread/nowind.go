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

package spread

import (
	"math"

	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/units"
)

// ErrBelowSpreadThreshold is returned by SpreadNoWindNoSlope when ros_0 is
// effectively zero. It is a legitimate, non-error outcome from the caller's
// perspective ("this fuel bed does not spread with these moistures") — it
// is still surfaced as an error here so the caller cannot mistake a zero
// rate of spread for an uninitialized Results.
var ErrBelowSpreadThreshold = herr.New(herr.Numeric, "", "rate of spread is below the spread threshold")

func clampMoisture(m float64) (float64, error) {
	if m < 0 {
		return 0, herr.New(herr.Numeric, "", "moisture must not be negative")
	}
	if m < moistureFloor {
		return moistureFloor, nil
	}
	return m, nil
}

// moistureDamping is the Rothermel (1972) eq. 29 moisture damping
// coefficient, 0 for a ratio at or beyond the moisture of extinction.
func moistureDamping(ratio float64) float64 {
	if ratio >= 1 {
		return 0
	}
	return 1 - 2.59*ratio + 5.11*ratio*ratio - 3.52*ratio*ratio*ratio
}

// liveMoistOfExtinction computes the adjusted live fuel moisture of
// extinction when live herbaceous load is present, following the Rothermel
// "dynamic" fuel model convention (Albini 1976): the configured live
// extinction moisture is replaced by 2.9*W'*(1 - d1/Mx_dead) - 0.226, where
// W' is the fine dead/live fuel load ratio. It never drops below the
// configured dead moisture of extinction.
func liveMoistOfExtinction(m *fuel.Model, d1 float64) float64 {
	bed := &m.Bed
	if bed.LiveLoad <= 0 || m.Live[0].Load <= 0 {
		return bed.LiveMoistOfExtinctionBase
	}
	fineDead := 0.0
	fineLive := 0.0
	for i, d := range m.Dead {
		fineDead += d.Load * bed.DeadEffHeating[i]
		_ = i
	}
	for i, l := range m.Live {
		fineLive += l.Load * bed.LiveEffHeating[i]
	}
	if fineLive <= 0 {
		return bed.LiveMoistOfExtinctionBase
	}
	wPrime := fineDead / fineLive
	mx := 2.9*wPrime*(1-d1/bed.DeadMoistOfExtinction) - 0.226
	if mx < bed.DeadMoistOfExtinction {
		mx = bed.DeadMoistOfExtinction
	}
	return mx
}

// SpreadNoWindNoSlope computes the no-wind/no-slope rate of spread ros_0
// (ft/min, stored on m.Results) from four dead moistures and two live
// moistures (fractions, clamped to >= 0.01). It fails with
// herr.KernelNotInitialized-equivalent herr.Internal if SetFuelBed has not
// been called, with herr.Numeric on negative moisture, and returns
// ErrBelowSpreadThreshold (a legitimate "does not spread" outcome, not a
// hard failure) when ros_0 < units.Eps.
func SpreadNoWindNoSlope(m *fuel.Model, d1, d10, d100, lh, lw float64) error {
	if m.State == fuel.Empty {
		return herr.New(herr.Internal, "", "kernel not initialized: call SetFuelBed before SpreadNoWindNoSlope")
	}
	d1c, err := clampMoisture(d1)
	if err != nil {
		return err
	}
	d10c, err := clampMoisture(d10)
	if err != nil {
		return err
	}
	d100c, err := clampMoisture(d100)
	if err != nil {
		return err
	}
	lhc, err := clampMoisture(lh)
	if err != nil {
		return err
	}
	lwc, err := clampMoisture(lw)
	if err != nil {
		return err
	}

	bed := &m.Bed
	// The model's fourth dead class (1000-h) has no dedicated input
	// moisture in this operation's signature; it is assumed to track the
	// 100-h value, the conventional approximation when 1000-h fuels are
	// not separately monitored.
	deadMoist := [4]float64{d1c, d10c, d100c, d100c}
	liveMoist := [2]float64{lhc, lwc}

	deadMf := 0.0
	for i := range deadMoist {
		deadMf += bed.DeadAreaFrac[i] * deadMoist[i]
	}
	liveMf := 0.0
	for i := range liveMoist {
		liveMf += bed.LiveAreaFrac[i] * liveMoist[i]
	}

	liveMx := liveMoistOfExtinction(m, d1c)

	etaMDead := moistureDamping(safeRatio(deadMf, bed.DeadMoistOfExtinction))
	etaMLive := moistureDamping(safeRatio(liveMf, liveMx))

	gammaMax := math.Pow(bed.CharacteristicSAV, 1.5) / (495 + 0.0594*math.Pow(bed.CharacteristicSAV, 1.5))
	ratio := bed.Beta / bed.BetaOpt
	gamma := gammaMax * math.Pow(ratio, bed.A) * math.Exp(bed.A*(1-ratio))

	iRDead := 0.0
	if bed.DeadLoad > 0 {
		iRDead = gamma * bed.DeadNetLoad * bed.DeadHeatWeighted * etaMDead * bed.DeadMineralDampWeighted
	}
	iRLive := 0.0
	if bed.LiveLoad > 0 {
		iRLive = gamma * bed.LiveNetLoad * bed.LiveHeatWeighted * etaMLive * bed.LiveMineralDampWeighted
	}
	iR := iRDead + iRLive

	heatSink := 0.0
	for i := range deadMoist {
		qig := 250 + 1116*deadMoist[i]
		heatSink += bed.DeadOverallFrac[i] * bed.DeadEffHeating[i] * qig
	}
	for i := range liveMoist {
		qig := 250 + 1116*liveMoist[i]
		heatSink += bed.LiveOverallFrac[i] * bed.LiveEffHeating[i] * qig
	}
	heatSink *= bed.BulkDensity

	ros0 := 0.0
	if heatSink > 0 {
		ros0 = iR * bed.PropagatingFluxRatio / heatSink
	}

	m.Results.Ros0 = ros0
	m.State = fuel.NoWindNoSlopeSolved

	if !units.GreaterThanZero(ros0) {
		return ErrBelowSpreadThreshold
	}
	return nil
}

func safeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
