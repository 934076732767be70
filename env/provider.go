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

// Reading is one (year, month, day, hour, x, y) snapshot of every
// environmental variable the spread kernel needs.
type Reading struct {
	WindAzDeg                       float64
	WindSpeedMps                    float64
	DeadFM1h, DeadFM10h, DeadFM100h float64
	LiveFMHerb, LiveFMWoody         float64
}

// Provider binds one concrete strategy per environmental variable plus an
// optional Santa Ana override. It is not safe for concurrent use - every
// strategy it owns draws from a shared PRNG stream.
type Provider struct {
	Waz      *Waz
	Wsp      *Wsp
	Dfm      *Dfm
	Lfm      *Lfm
	Ignition *Ignition
	SantaAna *SantaAna // nil disables the override entirely
}

// Get returns the environmental Reading for (year, month, day, hour, rwx,
// rwy), substituting the Santa Ana wind/dead-fuel-moisture tuple whenever
// an event is active that day. fuelBedHeightM is passed through to the
// wind-speed reduction (Component 4.4).
func (p *Provider) Get(year, month, day, hour int, rwx, rwy, fuelBedHeightM float64) (Reading, error) {
	herb, woody, err := p.Lfm.Get(year, month, day, hour, rwx, rwy)
	if err != nil {
		return Reading{}, err
	}

	if p.SantaAna != nil {
		now, err := p.SantaAna.IsNow(year, month, day)
		if err != nil {
			return Reading{}, err
		}
		if now {
			sa, err := p.SantaAna.GetEnv(year, month, day, hour, fuelBedHeightM)
			if err != nil {
				return Reading{}, err
			}
			return Reading{
				WindAzDeg: sa.WindAzDeg, WindSpeedMps: sa.WindSpeedMps,
				DeadFM1h: sa.DeadFM1h, DeadFM10h: sa.DeadFM10h, DeadFM100h: sa.DeadFM100h,
				LiveFMHerb: herb, LiveFMWoody: woody,
			}, nil
		}
	}

	az, err := p.Waz.Get(year, month, day, hour, rwx, rwy)
	if err != nil {
		return Reading{}, err
	}
	spd, err := p.Wsp.Get(year, month, day, hour, rwx, rwy, fuelBedHeightM)
	if err != nil {
		return Reading{}, err
	}
	d1, d10, d100, err := p.Dfm.Get(year, month, day, hour, rwx, rwy)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		WindAzDeg: az, WindSpeedMps: spd,
		DeadFM1h: d1, DeadFM10h: d10, DeadFM100h: d100,
		LiveFMHerb: herb, LiveFMWoody: woody,
	}, nil
}
