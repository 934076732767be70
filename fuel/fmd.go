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

package fuel

import (
	"io"
	"os"
	"strings"

	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/table"
)

// FMD record layout (one line per fuel model, using the same '#'-comment,
// space/=/,/tab-separated grammar as every other HFire tabular file):
//
//   num unit_system depth dead_mx live_mx \
//     load1 load10 load100 load1000 loadherb loadwoody \
//     sav1 sav10 sav100 sav1000 savherb savwoody \
//     density1 density10 density100 density1000 densityherb densitywoody \
//     heat_dead heat_live mineral_total mineral_effective
//
// unit_system is "ENGLISH" or "METRIC". All four dead classes and both live
// classes carry a load, SAV, and density even when the class is unused
// (load 0), so every record has exactly 27 whitespace/=/,/tab-separated
// fields: model number, unit system, and 25 numeric fields.
const (
	numDeadClasses  = 4
	numLiveClasses  = 2
	fmdNumericCount = 3 + 3*(numDeadClasses+numLiveClasses) + 2 + 2
	fmdFieldCount   = 2 + fmdNumericCount
)

// LoadFMDFile reads the FMD-format file at path, returning the record whose
// model number matches num. It fails with herr.NotFound if the number is
// absent and herr.Parse if a matching record cannot be parsed.
func LoadFMDFile(path string, num int) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open fuel model file", err)
	}
	defer f.Close()
	return LoadFMD(f, num, path)
}

// LoadFMD reads an FMD-format stream, returning the record whose model
// number matches num. context names the source for error messages.
func LoadFMD(r io.Reader, num int, context string) (*Model, error) {
	var found *Model
	err := table.ReadLines(r, func(fields []string) error {
		if found != nil {
			return nil
		}
		n, perr := table.ParseInt(fields[0], "model number")
		if perr != nil {
			// A non-numeric leading field is not an FMD record; skip it
			// rather than failing the whole file.
			return nil
		}
		if n != num {
			return nil
		}
		m, perr := parseFMDRecord(fields)
		if perr != nil {
			return perr
		}
		found = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, herr.New(herr.NotFound, context, "fuel model number not present in file")
	}
	return found, nil
}

// ListFMDFile reads every record in an FMD-format file, keyed by model
// number, for config.fuel_model_list.
func ListFMDFile(path string) (map[int]*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open fuel model file", err)
	}
	defer f.Close()

	models := map[int]*Model{}
	err = table.ReadLines(f, func(fields []string) error {
		if _, perr := table.ParseInt(fields[0], "model number"); perr != nil {
			return nil
		}
		m, perr := parseFMDRecord(fields)
		if perr != nil {
			return perr
		}
		models[m.Number] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return models, nil
}

func parseFMDRecord(fields []string) (*Model, error) {
	if len(fields) < fmdFieldCount {
		return nil, herr.New(herr.Parse, "", "fuel model record has too few fields")
	}
	num, err := table.ParseInt(fields[0], "model number")
	if err != nil {
		return nil, err
	}
	var units Units
	switch strings.ToUpper(fields[1]) {
	case "ENGLISH":
		units = English
	case "METRIC":
		units = Metric
	default:
		return nil, herr.New(herr.Parse, fields[1], "unrecognized unit system, expected ENGLISH or METRIC")
	}

	nums := make([]float64, 0, fmdNumericCount)
	for _, f := range fields[2:fmdFieldCount] {
		v, err := table.ParseFloat(f, "fuel model record")
		if err != nil {
			return nil, err
		}
		nums = append(nums, v)
	}

	const n = numDeadClasses + numLiveClasses // 6
	depth, deadMx, liveMx := nums[0], nums[1], nums[2]
	load := nums[3 : 3+n]
	sav := nums[3+n : 3+2*n]
	density := nums[3+2*n : 3+3*n]
	heatDead, heatLive := nums[3+3*n], nums[3+3*n+1]
	mineralTotal, mineralEff := nums[3+3*n+2], nums[3+3*n+3]

	m := &Model{
		Number:              num,
		Variant:             Rothermel,
		Units:               units,
		Depth:               depth,
		DeadMoistExtinction: deadMx,
		LiveMoistExtinction: liveMx,
	}
	for i := 0; i < numDeadClasses; i++ {
		m.Dead[i] = DeadClass{
			Load: load[i], SAV: sav[i], Density: density[i],
			HeatContent: heatDead, MineralTotal: mineralTotal, MineralEffective: mineralEff,
		}
	}
	for i := 0; i < numLiveClasses; i++ {
		m.Live[i] = LiveClass{
			Load: load[numDeadClasses+i], SAV: sav[numDeadClasses+i], Density: density[numDeadClasses+i],
			HeatContent: heatLive, MineralTotal: mineralTotal, MineralEffective: mineralEff,
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
