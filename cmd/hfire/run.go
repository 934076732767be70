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

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/hfire/config"
	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/spread"
	"github.com/spatialmodel/hfire/units"
)

const minutesPerTick = 60.0

func runHfire(cmd *cobra.Command, args []string) error {
	store, err := config.Load(cfg.GetString("config"))
	if err != nil {
		return err
	}
	config.RandomInit(store)

	provider, err := config.EnvProvider(store)
	if err != nil {
		return err
	}
	models, err := config.FuelModelList(store)
	if err != nil {
		return err
	}
	num := cfg.GetInt("fuel_model_num")
	model, ok := models[num]
	if !ok {
		return herr.New(herr.NotFound, fmt.Sprint(num), "fuel model number not present in the configured FMD file")
	}
	if err := model.ToEnglish(); err != nil && err != fuel.ErrAlreadyInThatSystem {
		return err
	}
	if err := spread.SetFuelBed(model); err != nil {
		return err
	}

	start := time.Date(cfg.GetInt("start_year"), time.Month(cfg.GetInt("start_month")), cfg.GetInt("start_day"),
		cfg.GetInt("start_hour"), 0, 0, 0, time.UTC)

	if _, err := provider.Ignition.Occurs(start.Year(), int(start.Month()), start.Day(), start.Hour()); err != nil {
		return err
	}
	x, y, err := provider.Ignition.Location()
	if err != nil {
		return err
	}

	slpPcnt := cfg.GetFloat64("slp_pcnt")
	aspDeg := cfg.GetFloat64("asp_deg")
	eaf := cfg.GetFloat64("eaf")
	fuelBedHeightM := units.FtToM(model.Depth) * 2.0

	fmt.Fprintf(cmd.OutOrStdout(), "# %-19s %6s %6s %9s %9s %10s\n",
		"TIME", "WAZ", "WSP", "ROS_0", "ROS_MAX", "RADIUS_M")

	var radiusFt float64
	for tick := 0; tick < cfg.GetInt("ticks"); tick++ {
		now := start.Add(time.Duration(tick) * time.Hour)

		reading, err := provider.Get(now.Year(), int(now.Month()), now.Day(), now.Hour(), x, y, fuelBedHeightM)
		if err != nil {
			return err
		}
		windSpdFpm := units.MpsToFpm(reading.WindSpeedMps)

		if err := spread.SpreadNoWindNoSlope(model, reading.DeadFM1h, reading.DeadFM10h, reading.DeadFM100h,
			reading.LiveFMHerb, reading.LiveFMWoody); err != nil && err != spread.ErrBelowSpreadThreshold {
			return err
		}
		if err := spread.SpreadWindSlopeMax(model, windSpdFpm, reading.WindAzDeg, slpPcnt, aspDeg, eaf); err != nil {
			return err
		}

		radiusFt += model.Results.RosMax * minutesPerTick
		radiusM := units.FtToM(radiusFt)

		fmt.Fprintf(cmd.OutOrStdout(), "  %-19s %6.1f %6.2f %9.4f %9.4f %10.2f\n",
			now.Format("2006-01-02T15"), reading.WindAzDeg, reading.WindSpeedMps,
			model.Results.Ros0, model.Results.RosMax, radiusM)

		logrus.WithFields(logrus.Fields{
			"tick":      tick,
			"wind_az":   reading.WindAzDeg,
			"wind_mps":  reading.WindSpeedMps,
			"ros_max":   model.Results.RosMax,
			"radius_m":  radiusM,
		}).Debug("advanced the ignition point's perimeter radius")
	}
	return nil
}
