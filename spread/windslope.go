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

// windFactor is the Rothermel (1972) eq. 47 wind factor φ_w, clamped to
// zero for non-positive midflame wind.
func windFactor(bed *fuel.BedAggregate, windFpm float64) float64 {
	if windFpm <= 0 {
		return 0
	}
	ratio := bed.Beta / bed.BetaOpt
	return bed.C * math.Pow(windFpm, bed.B) * math.Pow(ratio, -bed.E)
}

// slopeFactor is the Rothermel (1972) eq. 51 slope factor φ_s, clamped to
// zero for non-positive slope.
func slopeFactor(bed *fuel.BedAggregate, slopePct float64) float64 {
	if slopePct <= 0 {
		return 0
	}
	tanTheta := slopePct / 100.0
	return 5.275 * math.Pow(bed.Beta, -0.3) * tanTheta * tanTheta
}

// SpreadWindSlopeMax combines wind and slope into the maximum rate of
// spread, its azimuth, and an effective wind speed consistent with the
// combined factor. wind_fpm is the midflame wind speed (ft/min); wind_az_deg
// is the direction the wind blows toward; slope_pct is rise/run*100;
// aspect_deg is the downhill compass direction, or units.NoAspect (-1) for
// flat ground. eaf is threaded through as an ellipse-eccentricity input for
// downstream elliptical-shape code; it does not affect ros_max or az_max
// here. Fails with herr.Internal if SetFuelBed/SpreadNoWindNoSlope have not
// yet been run.
func SpreadWindSlopeMax(m *fuel.Model, windFpm, windAzDeg, slopePct, aspectDeg, eaf float64) error {
	if m.State < fuel.NoWindNoSlopeSolved {
		return herr.New(herr.Internal, "", "kernel not initialized: call SetFuelBed and SpreadNoWindNoSlope before SpreadWindSlopeMax")
	}

	bed := &m.Bed
	phiW := windFactor(bed, windFpm)
	phiS := slopeFactor(bed, slopePct)

	upslopeDeg, hasAspect := units.UpslopeDirection(aspectDeg)
	if phiS > 0 && !hasAspect {
		return herr.New(herr.Numeric, "", "positive slope requires a valid aspect")
	}

	var dx, dy float64
	switch {
	case phiW <= 0 && phiS <= 0:
		dx, dy = 0, 0
	case phiS <= 0:
		dx = phiW * math.Sin(units.DegToRad(windAzDeg))
		dy = phiW * math.Cos(units.DegToRad(windAzDeg))
	case phiW <= 0:
		dx = phiS * math.Sin(units.DegToRad(upslopeDeg))
		dy = phiS * math.Cos(units.DegToRad(upslopeDeg))
	default:
		wx := phiW * math.Sin(units.DegToRad(windAzDeg))
		wy := phiW * math.Cos(units.DegToRad(windAzDeg))
		sx := phiS * math.Sin(units.DegToRad(upslopeDeg))
		sy := phiS * math.Cos(units.DegToRad(upslopeDeg))
		dx, dy = wx+sx, wy+sy
	}

	d := math.Hypot(dx, dy)
	azMax := units.WrapAzimuth(units.RadToDeg(math.Atan2(dx, dy)))

	m.Results.RosMax = m.Results.Ros0 * (1 + d)
	m.Results.AzMax = azMax
	m.Results.EffWindMax = effectiveWind(bed, d)
	m.State = fuel.WindSlopeSolved

	_ = eaf // threaded through for downstream ellipse construction only
	return nil
}

// effectiveWind inverts the wind-factor formula to find the midflame wind
// speed that alone would produce the combined wind/slope factor d, used by
// downstream elliptical fire-shape code. Returns 0 if d is non-positive or
// the bed's wind exponent is degenerate.
func effectiveWind(bed *fuel.BedAggregate, d float64) float64 {
	if d <= 0 || bed.B <= 0 || bed.C <= 0 {
		return 0
	}
	ratio := bed.Beta / bed.BetaOpt
	base := d * math.Pow(ratio, bed.E) / bed.C
	if base <= 0 {
		return 0
	}
	return math.Pow(base, 1.0/bed.B)
}
