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

import "github.com/spatialmodel/hfire/prng"

// simulationRandNumSeedKey names the property carrying a literal PRNG seed.
// Its absence means "seed from the built-in table at a wall-clock-chosen
// row", matching the original's fallback seed policy.
const simulationRandNumSeedKey = "SIMULATION_RAND_NUM_SEED"

// RandomInit seeds the process-wide PRNG from the store's
// SIMULATION_RAND_NUM_SEED entry when present, otherwise from the built-in
// 215x2 seed table at a row chosen by wall-clock time. It returns the
// wall-clock-chosen row, or -1 when a literal seed was used instead.
func RandomInit(store *PropertyStore) int {
	if seed, ok := GetInt(store, simulationRandNumSeedKey); ok {
		prng.InitLiteral(int64(seed))
		return -1
	}
	return prng.InitFromWallClock()
}
