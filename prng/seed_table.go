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

package prng

// SeedTableRows and SeedTableCols match the 215x2 dimensions of the
// original NLIBRand/CLHEP-derived seed table referenced by spec section
// 4.6's random_init contract.
const (
	SeedTableRows = 215
	SeedTableCols = 2
)

// seedTable holds 215 rows of 2 "good" PRNG seeds, in the shape random_init
// expects. The original CLHEP/GEANT4 RandSeedTable.c values were not present
// in this rewrite's retrieval pack (only RandSeedTable.h, which declares the
// accessors but not the data, survived), so there is nothing upstream for
// this table to stay bit-identical with. It is instead synthesized once,
// deterministically, at package init by a small linear congruential
// recurrence from a fixed genesis value: that recurrence and genesis value
// in this file are the contract from here on, the same way the original
// table was a frozen literal.
var seedTable = buildSeedTable()

func buildSeedTable() [SeedTableRows][SeedTableCols]uint32 {
	const (
		a = 1103515245
		c = 12345
		m = 1 << 31
	)
	var table [SeedTableRows][SeedTableCols]uint32
	state := uint64(19780503) // arbitrary fixed genesis value, frozen by this file.
	next := func() uint32 {
		state = (a*state + c) % m
		return uint32(state)
	}
	for row := 0; row < SeedTableRows; row++ {
		for col := 0; col < SeedTableCols; col++ {
			table[row][col] = next()
		}
	}
	return table
}

// SeedTableRow returns row mod SeedTableRows of the built-in seed table.
func SeedTableRow(row int) [SeedTableCols]uint32 {
	row %= SeedTableRows
	if row < 0 {
		row += SeedTableRows
	}
	return seedTable[row]
}
