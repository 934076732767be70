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

// Command calcros computes the no-wind/no-slope and maximum rate of fire
// spread for a single fuel model, moisture set, wind, slope, and aspect,
// using the Rothermel (1972) model.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/herr"
	"github.com/spatialmodel/hfire/spread"
	"github.com/spatialmodel/hfire/units"
	"github.com/spatialmodel/hfire/wind"
)

var (
	fuelModelFname string
	fuelModelNum   int
	d1hfm          float64
	d10hfm         float64
	d100hfm        float64
	lhfm           float64
	lwfm           float64
	windSpdMps     float64
	windAzDeg      float64
	slpPcnt        float64
	aspDeg         float64
	eaf            float64
	waf            string
	verbose        bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "calcros",
		Short:        "Compute the maximum rate of fire spread using Rothermel (1972).",
		SilenceUsage: true,
		RunE:         runCalcros,
	}
	flags := cmd.Flags()
	flags.StringVarP(&fuelModelFname, "fuel_model_fname", "f", "", "fuel model filename")
	flags.IntVarP(&fuelModelNum, "fuel_model_num", "n", 1, "fuel model number")
	flags.Float64Var(&d1hfm, "d1hfm", 0.02, "dead 1 hour fuel moisture")
	flags.Float64Var(&d10hfm, "d10hfm", 0.04, "dead 10 hour fuel moisture")
	flags.Float64Var(&d100hfm, "d100hfm", 0.05, "dead 100 hour fuel moisture")
	flags.Float64Var(&lhfm, "lhfm", 0.90, "live herbaceous fuel moisture")
	flags.Float64Var(&lwfm, "lwfm", 0.70, "live woody fuel moisture")
	flags.Float64Var(&windSpdMps, "wind_spd_mps", 0.0, "wind speed, in m/s")
	flags.Float64Var(&windAzDeg, "wind_az_deg", 0.0, "azimuth from which wind is blowing, in degrees")
	flags.Float64Var(&slpPcnt, "slp_pcnt", 0.0, "slope percent, eg 100 means 100% slope = 1 unit rise / 1 unit run")
	flags.Float64Var(&aspDeg, "asp_deg", units.NoAspect, "terrain aspect in 0-360 degrees; -1 is perfectly level terrain")
	flags.Float64Var(&eaf, "eaf", 1.0, "ellipse adjustment factor")
	flags.StringVar(&waf, "waf", "BHP", "windspeed adjustment factor: NOWAF, AB79, or BHP")
	flags.BoolVarP(&verbose, "verbose", "v", false, "run program with verbose output")
	cmd.MarkFlagRequired("fuel_model_fname")
	return cmd
}

func runCalcros(cmd *cobra.Command, args []string) error {
	method, ok := wind.ParseMethod(waf)
	if !ok {
		return herr.New(herr.Usage, waf, "unrecognized windspeed adjustment factor, expected NOWAF, AB79, or BHP")
	}

	model, err := fuel.LoadFMDFile(fuelModelFname, fuelModelNum)
	if err != nil {
		return err
	}

	if verbose {
		logrus.WithFields(logrus.Fields{
			"fuel_model_num": fuelModelNum,
			"units":          model.Units,
			"depth":          model.Depth,
		}).Info("loaded fuel model")
	}

	// The spread kernel's interior arithmetic is English throughout;
	// convert a Metric-authored model once at the boundary.
	if err := model.ToEnglish(); err != nil && err != fuel.ErrAlreadyInThatSystem {
		return err
	}

	fuelBedHeightM := units.FtToM(model.Depth) * 2.0
	reducedWindMps := wind.Reduce(windSpdMps, wind.RefHeightM, fuelBedHeightM, method)
	windSpdFpm := units.MpsToFpm(reducedWindMps)

	if err := spread.SetFuelBed(model); err != nil {
		return err
	}
	if err := spread.SpreadNoWindNoSlope(model, d1hfm, d10hfm, d100hfm, lhfm, lwfm); err != nil && err != spread.ErrBelowSpreadThreshold {
		return err
	}
	if err := spread.SpreadWindSlopeMax(model, windSpdFpm, windAzDeg, slpPcnt, aspDeg, eaf); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "# %3s %6s %6s %6s %6s %6s %8s %3s %3s %3s %3s %4s %9s %9s\n",
		"NUM", "D1H", "D10H", "D100H", "LH", "LW", "WSP_MPS", "WAZ", "SLP", "ASP", "EAF", "WAF", "ROS_0", "ROS_MAX")
	fmt.Fprintf(cmd.OutOrStdout(), "  %3d %6.2f %6.2f %6.2f %6.2f %6.2f %8.4f %3.0f %3.0f %3.0f %3.1f %4s %9.4f %9.4f\n",
		fuelModelNum, d1hfm, d10hfm, d100hfm, lhfm, lwfm, windSpdMps, windAzDeg, slpPcnt, aspDeg, eaf, waf,
		units.FpmToMps(model.Results.Ros0), units.FpmToMps(model.Results.RosMax))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(herr.ExitCode(err))
	}
}
