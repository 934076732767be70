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

// Package prng implements the single process-wide seedable pseudo-random
// generator that every RANDU/RANDH environment strategy draws from. All
// three operations (Randu, Randi, Randg) are deterministic for a fixed
// seed: same seed, same sequence, on any platform.
package prng

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator is a seedable source of uniform reals, uniform integers, and
// Gaussian reals. It is not safe for concurrent use — spec section 5
// requires callers to serialize access to the process-wide instance.
type Generator struct {
	src *rand.Rand
}

// New builds a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{src: rand.New(rand.NewSource(seed))}
}

// Seed re-seeds the generator, discarding any in-flight sequence.
func (g *Generator) Seed(seed int64) {
	g.src = rand.New(rand.NewSource(seed))
}

// Randu returns a uniform random real in [a,b).
func (g *Generator) Randu(a, b float64) float64 {
	if b <= a {
		return a
	}
	return a + g.src.Float64()*(b-a)
}

// Randi returns a uniform random integer in [0,u).
func (g *Generator) Randi(u int) int {
	if u <= 0 {
		return 0
	}
	return g.src.Intn(u)
}

// Randg returns a random real drawn from a Gaussian distribution with mean
// m and standard deviation s, using gonum's distuv.Normal layered over this
// Generator's own rand.Rand source so the draw remains reproducible for a
// fixed seed.
func (g *Generator) Randg(m, s float64) float64 {
	if s <= 0 {
		return m
	}
	n := distuv.Normal{Mu: m, Sigma: s, Src: g.src}
	return n.Rand()
}

// global is the process-wide generator spec section 4 requires. It starts
// seeded from the wall clock so a run that never calls Init still behaves
// reasonably, matching the source's fallback when no seed policy is
// configured.
var global = New(time.Now().UnixNano())

// Global returns the process-wide Generator.
func Global() *Generator { return global }

// Randu draws from the process-wide Generator.
func Randu(a, b float64) float64 { return global.Randu(a, b) }

// Randi draws from the process-wide Generator.
func Randi(u int) int { return global.Randi(u) }

// Randg draws from the process-wide Generator.
func Randg(m, s float64) float64 { return global.Randg(m, s) }

// InitLiteral seeds the process-wide Generator from an explicit seed value.
func InitLiteral(seed int64) { global.Seed(seed) }

// InitFromTable seeds the process-wide Generator from row of the built-in
// seed table, combining its two columns the way the original NLIBRand-style
// seed tables are used: the first column is the base seed, the second is
// mixed in as a stream offset so distinct rows never alias to the same
// rand.Source state.
func InitFromTable(row int) {
	r := SeedTableRow(row)
	global.Seed(int64(r[0])<<32 ^ int64(r[1]))
}

// InitFromWallClock seeds the process-wide Generator from a row of the
// built-in seed table chosen by the current wall-clock time, mirroring
// random_init's "choose a row by wall-clock time" policy.
func InitFromWallClock() int {
	row := int(time.Now().UnixNano()) % SeedTableRows
	if row < 0 {
		row += SeedTableRows
	}
	InitFromTable(row)
	return row
}
