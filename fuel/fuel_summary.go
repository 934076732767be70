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

import gostats "github.com/GaryBoone/GoStats/stats"

// dumpSummary computes the mean and population standard deviation across
// both the load and SAV fields of classes, for DumpToStream's --verbose
// diagnostic section.
func dumpSummary(classes []DeadClass) (mean, stddev float64) {
	var s gostats.Stats
	for _, c := range classes {
		s.Update(c.Load)
		s.Update(c.SAV)
	}
	return s.Mean(), s.PopulationStandardDeviation()
}
