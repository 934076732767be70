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
	"github.com/spatialmodel/hfire/fuel"
	"github.com/spatialmodel/hfire/herr"
)

// fuelModelFileKey names the property holding the path to the FMD file the
// fuel model collection is read from.
const fuelModelFileKey = "FUEL_MODEL_FNAME"

// FuelModelList builds the keyed collection of fuel models named by the
// store's FUEL_MODEL_FNAME entry.
func FuelModelList(store *PropertyStore) (map[int]*fuel.Model, error) {
	path := Get(store, fuelModelFileKey)
	if path == NullValue {
		return nil, herr.New(herr.Config, fuelModelFileKey, "no fuel model file configured")
	}
	return fuel.ListFMDFile(path)
}
