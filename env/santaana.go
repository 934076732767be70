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
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/units"
	"github.com/spatialmodel/hfire/wind"
)

// SantaAnaEnv is the wind/dead-fuel-moisture tuple a Santa Ana event
// substitutes for the provider's regular readings while the event lasts.
type SantaAnaEnv struct {
	WindAzDeg                      float64
	WindSpeedMps                   float64
	DeadFM1h, DeadFM10h, DeadFM100h float64
}

// SantaAna tracks Santa Ana wind-event occurrence and, while an event is
// active, supplies the replacement wind/dead-fuel-moisture reading drawn
// from paired tables.
type SantaAna struct {
	freqPerYear     float64
	daysInSeason    int
	numDaysDuration int
	eventsFile      string
	d1Inc, d100Inc  float64
	waf             wind.Method
	rng             *prng.Generator

	wazPath, wspPath, dfmPath string
	waz, dfm                  *hourTable
	wsp                       *hourTable

	lastYear          int
	haveYear          bool
	lastMonth, lastDay int
	haveDay           bool
	remainingDays     int
	active            bool
	today             bool

	rowMonth, rowDay int
	rowLoaded        bool
	row              int
}

// NewSantaAna builds a Santa Ana strategy. freqPerYear/daysInSeason set the
// daily occurrence probability (freqPerYear/daysInSeason); numDaysDuration
// is how many consecutive days one event lasts; eventsFile, if non-empty,
// receives one appended "year month day" line per event's first day.
func NewSantaAna(freqPerYear float64, daysInSeason, numDaysDuration int, eventsFile string, wazPath, wspPath, dfmPath string, d1Inc, d100Inc float64, waf wind.Method, rng *prng.Generator) *SantaAna {
	return &SantaAna{
		freqPerYear: freqPerYear, daysInSeason: daysInSeason, numDaysDuration: numDaysDuration,
		eventsFile: eventsFile, wazPath: wazPath, wspPath: wspPath, dfmPath: dfmPath,
		d1Inc: d1Inc, d100Inc: d100Inc, waf: waf, rng: rng,
	}
}

// IsNow reports whether (year, month, day) falls within a Santa Ana event,
// advancing the event/countdown state machine at most once per calendar
// day. On year rollover both the event flag and the remaining-days
// countdown are cleared together - the source clears only the countdown,
// which can leave the flag set into the next year; this is the fix spec
// section 9(i) requires.
func (s *SantaAna) IsNow(year, month, day int) (bool, error) {
	if !s.haveYear || year != s.lastYear {
		s.remainingDays = 0
		s.active = false
		s.lastYear, s.haveYear = year, true
	}
	if s.haveDay && s.lastMonth == month && s.lastDay == day {
		return s.today, nil
	}
	s.lastMonth, s.lastDay, s.haveDay = month, day, true

	if s.active {
		s.remainingDays--
		if s.remainingDays <= 0 {
			s.active = false
		}
		s.today = true
		return true, nil
	}

	s.today = false
	p := s.freqPerYear / float64(s.daysInSeason)
	if s.rng.Randu(0, 1) < p {
		s.remainingDays = s.numDaysDuration - 1
		s.active = s.remainingDays > 0
		if err := s.recordEventStart(year, month, day); err != nil {
			return false, err
		}
		s.today = true
		return true, nil
	}
	return false, nil
}

func (s *SantaAna) recordEventStart(year, month, day int) error {
	if s.eventsFile == "" {
		return nil
	}
	f, err := os.OpenFile(s.eventsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return herr.Wrap(herr.Io, s.eventsFile, "unable to append Santa Ana event record", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%04d %02d %02d\n", year, month, day); err != nil {
		return herr.Wrap(herr.Io, s.eventsFile, "unable to write Santa Ana event record", err)
	}
	logrus.WithFields(logrus.Fields{"year": year, "month": month, "day": day}).Info("Santa Ana event began")
	return nil
}

func (s *SantaAna) ensureLoaded() error {
	if s.waz == nil {
		t, err := loadHourTable(s.wazPath)
		if err != nil {
			return herr.Wrap(herr.Config, s.wazPath, "unable to load Santa Ana wind azimuth table", err)
		}
		s.waz = t
	}
	if s.wsp == nil {
		t, err := loadWspTable(s.wspPath)
		if err != nil {
			return herr.Wrap(herr.Config, s.wspPath, "unable to load Santa Ana wind speed table", err)
		}
		s.wsp = t
	}
	if s.dfm == nil {
		t, err := loadHourTable(s.dfmPath)
		if err != nil {
			return herr.Wrap(herr.Config, s.dfmPath, "unable to load Santa Ana dead fuel moisture table", err)
		}
		s.dfm = t
	}
	return nil
}

// GetEnv returns the Santa Ana wind/dead-fuel-moisture override for (year,
// month, day, hour): a row chosen uniformly at random once per new day,
// with that row's hour column read from each of the three paired tables.
// Wind speed passes through the same midflame reduction as regular wind,
// using fuelBedHeightM.
func (s *SantaAna) GetEnv(year, month, day, hour int, fuelBedHeightM float64) (SantaAnaEnv, error) {
	if err := s.ensureLoaded(); err != nil {
		return SantaAnaEnv{}, err
	}
	if !s.rowLoaded || s.rowMonth != month || s.rowDay != day {
		s.row = s.rng.Randi(s.waz.Rows())
		s.rowMonth, s.rowDay, s.rowLoaded = month, day, true
	}
	az, err := s.waz.HourValue(s.row, hour)
	if err != nil {
		return SantaAnaEnv{}, err
	}
	spd, err := s.wsp.HourValue(s.row, hour)
	if err != nil {
		return SantaAnaEnv{}, err
	}
	dfm10, err := s.dfm.HourValue(s.row, hour)
	if err != nil {
		return SantaAnaEnv{}, err
	}
	frac := units.PctToFrac(dfm10)
	return SantaAnaEnv{
		WindAzDeg:    az,
		WindSpeedMps: wind.Reduce(spd, wind.RefHeightM, fuelBedHeightM, s.waf),
		DeadFM1h:     clampFloor(frac-s.d1Inc, dfmMoistureFloor),
		DeadFM10h:    clampFloor(frac, dfmMoistureFloor),
		DeadFM100h:   clampFloor(frac+s.d100Inc, dfmMoistureFloor),
	}, nil
}
