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

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spatialmodel/hfire/env"
	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/prng"
	"github.com/spatialmodel/hfire/raster"
	"github.com/spatialmodel/hfire/table"
	"github.com/spatialmodel/hfire/wind"
)

// dfmD1IncDefault and dfmD100IncDefault are the configured-increment
// defaults spec section 4.5 specifies for dead fuel moisture derivation.
const (
	dfmD1IncDefault   = 0.02
	dfmD100IncDefault = 0.02
	wspWafDefault     = wind.AB79
)

// EnvProvider selects a strategy per environmental variable based on its
// "_TYPE" key, binds the strategy's file paths, and returns a ready-to-query
// provider. All strategies draw from the process-wide PRNG (prng.Global),
// matching spec section 5's "PRNG is a process-wide resource" contract.
func EnvProvider(store *PropertyStore) (*env.Provider, error) {
	waz, err := buildWaz(store)
	if err != nil {
		return nil, err
	}
	wsp, err := buildWsp(store)
	if err != nil {
		return nil, err
	}
	dfm, err := buildDfm(store)
	if err != nil {
		return nil, err
	}
	lfm, err := buildLfm(store)
	if err != nil {
		return nil, err
	}
	ignition, err := buildIgnition(store)
	if err != nil {
		return nil, err
	}
	santaAna, err := buildSantaAna(store)
	if err != nil {
		return nil, err
	}
	return &env.Provider{Waz: waz, Wsp: wsp, Dfm: dfm, Lfm: lfm, Ignition: ignition, SantaAna: santaAna}, nil
}

func d1Inc(store *PropertyStore) float64 {
	if v, ok := GetFloat(store, "DFM_D1H_INC"); ok {
		return v
	}
	return dfmD1IncDefault
}

func d100Inc(store *PropertyStore) float64 {
	if v, ok := GetFloat(store, "DFM_D100H_INC"); ok {
		return v
	}
	return dfmD100IncDefault
}

func wafMethod(store *PropertyStore) wind.Method {
	s := Get(store, "WSP_WAF")
	if s == NullValue {
		return wspWafDefault
	}
	if m, ok := wind.ParseMethod(strings.ToUpper(s)); ok {
		return m
	}
	return wspWafDefault
}

func requiredPath(store *PropertyStore, key string) (string, error) {
	p := Get(store, key)
	if p == NullValue {
		return "", herr.New(herr.Config, key, "required file path not configured")
	}
	return p, nil
}

func buildWaz(store *PropertyStore) (*env.Waz, error) {
	switch strings.ToUpper(Get(store, "WIND_AZIMUTH_TYPE")) {
	case "RANDU":
		return env.NewWazRandu(prng.Global()), nil
	case "RANDH":
		path, err := requiredPath(store, "WIND_AZIMUTH_HISTORICAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWazRandh(path, prng.Global()), nil
	case "SPATIAL":
		path, err := requiredPath(store, "WIND_AZIMUTH_SPATIAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWazSpatial(path), nil
	default: // "FIXED" and unrecognized both fall back to FIXED, spec's silent-default policy
		path, err := requiredPath(store, "WIND_AZIMUTH_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWazFixed(path), nil
	}
}

func parseUniformRange(s string) (min, max float64, err error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return 0, 0, herr.New(herr.Config, "WIND_SPEED_UNIFORM_RANGE", "expected \"min;max\"")
	}
	min, perr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if perr != nil {
		return 0, 0, herr.Wrap(herr.Config, "WIND_SPEED_UNIFORM_RANGE", "malformed min", perr)
	}
	max, perr = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if perr != nil {
		return 0, 0, herr.Wrap(herr.Config, "WIND_SPEED_UNIFORM_RANGE", "malformed max", perr)
	}
	return min, max, nil
}

func buildWsp(store *PropertyStore) (*env.Wsp, error) {
	waf := wafMethod(store)
	switch strings.ToUpper(Get(store, "WIND_SPEED_TYPE")) {
	case "RANDU":
		rangeStr := Get(store, "WIND_SPEED_UNIFORM_RANGE")
		if rangeStr == NullValue {
			return nil, herr.New(herr.Config, "WIND_SPEED_UNIFORM_RANGE", "required for WIND_SPEED_TYPE RANDU")
		}
		min, max, err := parseUniformRange(rangeStr)
		if err != nil {
			return nil, err
		}
		return env.NewWspRandu(min, max, waf, prng.Global()), nil
	case "RANDH":
		path, err := requiredPath(store, "WIND_SPEED_HISTORICAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWspRandh(path, waf, prng.Global()), nil
	case "SPATIAL":
		path, err := requiredPath(store, "WIND_SPEED_SPATIAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWspSpatial(path, waf), nil
	default:
		path, err := requiredPath(store, "WIND_SPEED_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewWspFixed(path, waf), nil
	}
}

func buildDfm(store *PropertyStore) (*env.Dfm, error) {
	d1, d100 := d1Inc(store), d100Inc(store)
	switch strings.ToUpper(Get(store, "DEAD_FUEL_MOIST_TYPE")) {
	case "RANDH":
		path, err := requiredPath(store, "DEAD_FUEL_MOIST_HISTORICAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewDfmRandh(path, d1, d100, prng.Global()), nil
	case "SPATIAL":
		path, err := requiredPath(store, "DEAD_FUEL_MOIST_SPATIAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewDfmSpatial(path, d1, d100), nil
	default:
		path, err := requiredPath(store, "DEAD_FUEL_MOIST_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewDfmFixed(path, d1, d100), nil
	}
}

func buildLfm(store *PropertyStore) (*env.Lfm, error) {
	switch strings.ToUpper(Get(store, "LIVE_FUEL_MOIST_TYPE")) {
	case "RANDH":
		herbPath, err := requiredPath(store, "LIVE_FUEL_MOIST_HERB_HISTORICAL_FILE")
		if err != nil {
			return nil, err
		}
		woodyPath, err := requiredPath(store, "LIVE_FUEL_MOIST_WOODY_HISTORICAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewLfmRandh(herbPath, woodyPath, prng.Global()), nil
	case "SPATIAL":
		path, err := requiredPath(store, "LIVE_FUEL_MOIST_SPATIAL_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewLfmSpatial(path), nil
	default:
		herbPath, err := requiredPath(store, "LIVE_FUEL_MOIST_HERB_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		woodyPath, err := requiredPath(store, "LIVE_FUEL_MOIST_WOODY_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		return env.NewLfmFixed(herbPath, woodyPath), nil
	}
}

// readIgnitionTriggers parses "year month day hour x y" rows into paired
// IgnitionTrigger/IgnitionPoint slices for the FIXED strategy.
func readIgnitionTriggers(path string) ([]env.IgnitionTrigger, []env.IgnitionPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, herr.Wrap(herr.Io, path, "unable to open ignition trigger file", err)
	}
	defer f.Close()

	var triggers []env.IgnitionTrigger
	var points []env.IgnitionPoint
	err = table.ReadLines(f, func(fields []string) error {
		if len(fields) < 6 {
			return herr.New(herr.Parse, path, "expected year month day hour x y")
		}
		year, perr := table.ParseInt(fields[0], "year")
		if perr != nil {
			return perr
		}
		month, perr := table.ParseInt(fields[1], "month")
		if perr != nil {
			return perr
		}
		day, perr := table.ParseInt(fields[2], "day")
		if perr != nil {
			return perr
		}
		hour, perr := table.ParseInt(fields[3], "hour")
		if perr != nil {
			return perr
		}
		x, perr := table.ParseFloat(fields[4], "x")
		if perr != nil {
			return perr
		}
		y, perr := table.ParseFloat(fields[5], "y")
		if perr != nil {
			return perr
		}
		triggers = append(triggers, env.IgnitionTrigger{Year: year, Month: month, Day: day, Hour: hour})
		points = append(points, env.IgnitionPoint{X: x, Y: y})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return triggers, points, nil
}

func buildIgnition(store *PropertyStore) (*env.Ignition, error) {
	switch strings.ToUpper(Get(store, "IGNITION_TYPE")) {
	case "RANDU":
		startHour, _ := GetInt(store, "IGNITION_WINDOW_START_HOUR")
		endHour, _ := GetInt(store, "IGNITION_WINDOW_END_HOUR")
		minX, _ := GetFloat(store, "IGNITION_MIN_X")
		minY, _ := GetFloat(store, "IGNITION_MIN_Y")
		maxX, _ := GetFloat(store, "IGNITION_MAX_X")
		maxY, _ := GetFloat(store, "IGNITION_MAX_Y")
		var terrain *raster.Grid
		if p := Get(store, "IGNITION_TERRAIN_FILE"); p != NullValue {
			g, err := raster.Load(p)
			if err != nil {
				return nil, err
			}
			terrain = g
		}
		return env.NewIgnitionRandu(startHour, endHour, minX, minY, maxX, maxY, terrain, prng.Global()), nil
	case "RANDS":
		startHour, _ := GetInt(store, "IGNITION_WINDOW_START_HOUR")
		endHour, _ := GetInt(store, "IGNITION_WINDOW_END_HOUR")
		path, err := requiredPath(store, "IGNITION_PROB_FILE")
		if err != nil {
			return nil, err
		}
		grid, err := raster.Load(path)
		if err != nil {
			return nil, err
		}
		return env.NewIgnitionRands(startHour, endHour, grid, prng.Global()), nil
	default:
		path, err := requiredPath(store, "IGNITION_FIXED_FILE")
		if err != nil {
			return nil, err
		}
		triggers, points, err := readIgnitionTriggers(path)
		if err != nil {
			return nil, err
		}
		return env.NewIgnitionFixed(triggers, points), nil
	}
}

func buildSantaAna(store *PropertyStore) (*env.SantaAna, error) {
	freq, ok := GetFloat(store, "SANTA_ANA_FREQUENCY_PER_YEAR")
	if !ok {
		return nil, nil // no Santa Ana override configured
	}
	daysInSeason, ok := GetInt(store, "SANTA_ANA_DAYS_IN_SEASON")
	if !ok {
		daysInSeason = 365
	}
	numDaysDuration, ok := GetInt(store, "SANTA_ANA_NUM_DAYS_DURATION")
	if !ok {
		numDaysDuration = 1
	}
	eventsFile := Get(store, "SANTA_ANA_EVENTS_FILE")
	if eventsFile == NullValue {
		eventsFile = ""
	}
	wazPath, err := requiredPath(store, "SANTA_ANA_WIND_AZIMUTH_FILE")
	if err != nil {
		return nil, err
	}
	wspPath, err := requiredPath(store, "SANTA_ANA_WIND_SPEED_FILE")
	if err != nil {
		return nil, err
	}
	dfmPath, err := requiredPath(store, "SANTA_ANA_DEAD_FUEL_MOIST_FILE")
	if err != nil {
		return nil, err
	}
	return env.NewSantaAna(freq, daysInSeason, numDaysDuration, eventsFile, wazPath, wspPath, dfmPath,
		d1Inc(store), d100Inc(store), wafMethod(store), prng.Global()), nil
}
