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

// Command hfire is a minimal illustration of the driver that would consume
// the fire-spread packages in this module: it builds an environment
// provider and a fuel bed from a property file, then steps simulated time
// forward at a single ignition point, printing the advancing perimeter
// radius. It does not schedule ignitions, regrow fuels, or propagate a
// cell-raster fire front - a complete driver is an external collaborator.
package main

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/hfire/herr"
)

// cfg binds every hfire flag to an environment variable of the form
// HFIRE_var, the way inmaputil.InitializeConfig binds INMAP_var.
var cfg = viper.New()

var options = []struct {
	name, usage     string
	shorthand       string
	defaultVal      interface{}
	isRequired      bool
}{
	{name: "config", usage: "property file describing the fuel models, environment provider, and ignition point", shorthand: "c", isRequired: true},
	{name: "fuel_model_num", usage: "fuel model number to simulate", defaultVal: 1},
	{name: "start_year", usage: "simulation start year", defaultVal: 2026},
	{name: "start_month", usage: "simulation start month (1-12)", defaultVal: 1},
	{name: "start_day", usage: "simulation start day of month", defaultVal: 1},
	{name: "start_hour", usage: "simulation start hour (0-23)", defaultVal: 0},
	{name: "ticks", usage: "number of hourly ticks to simulate", defaultVal: 24},
	{name: "slp_pcnt", usage: "slope percent at the ignition point", defaultVal: 0.0},
	{name: "asp_deg", usage: "terrain aspect in 0-360 degrees at the ignition point; -1 is perfectly level", defaultVal: -1.0},
	{name: "eaf", usage: "ellipse adjustment factor", defaultVal: 1.0},
}

func bindOptions(cmd *cobra.Command) {
	set := cmd.Flags()
	for _, option := range options {
		switch d := option.defaultVal.(type) {
		case int:
			set.IntP(option.name, option.shorthand, d, option.usage)
		case float64:
			set.Float64P(option.name, option.shorthand, d, option.usage)
		default:
			set.StringP(option.name, option.shorthand, "", option.usage)
		}
		cfg.BindPFlag(option.name, set.Lookup(option.name))
		if option.isRequired {
			cmd.MarkFlagRequired(option.name)
		}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hfire",
		Short: "A raster wildfire spread simulator driver illustration.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Step a single ignition point forward in simulated time.",
		Long: `run loads a property file's fuel models and environment provider and, for
the property file's configured ignition point, steps simulated time forward
one hour per tick, printing the rate of spread and advancing perimeter
radius. It is an illustration of how the packages in this module compose,
not a complete fire-spread driver.

Configuration can also be supplied via HFIRE_var environment variables,
where var is the flag name in upper case (eg HFIRE_CONFIG).`,
		SilenceUsage: true,
		RunE:         runHfire,
	}
	bindOptions(runCmd)
	root.AddCommand(runCmd)
	return root
}

func main() {
	cfg.SetEnvPrefix("HFIRE")
	cfg.AutomaticEnv()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(herr.ExitCode(err))
	}
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
