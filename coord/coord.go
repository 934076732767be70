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

// Package coord implements the bidirectional map between real-world (x,y)
// coordinates and raster (row,col) indices, given an ASCII-raster style
// origin (the lower-left corner), a uniform cell size, and a row count.
package coord

import "math"

// Transform converts between real-world coordinates and 0-based raster
// indices for a grid whose lower-left corner is at (XllCorner, YllCorner),
// whose cells are CellSize on a side, and which has NRows rows. Row 0 is the
// northernmost (top) row, matching the row-major north-to-south order of an
// ASCII raster's data section.
type Transform struct {
	XllCorner, YllCorner float64
	CellSize             float64
	NRows                int
}

// WorldToRaster converts a real-world (x,y) to a 0-based (row,col). The
// result is not bounds-checked against NRows/ncols; callers that need
// NODATA-on-out-of-range behavior (as Grid.At does) check separately.
func (t Transform) WorldToRaster(x, y float64) (row, col int) {
	col = int(math.Floor((x - t.XllCorner) / t.CellSize))
	rowFromBottom := int(math.Floor((y - t.YllCorner) / t.CellSize))
	row = t.NRows - 1 - rowFromBottom
	return row, col
}

// RasterToWorld converts a 0-based (row,col) to the real-world coordinate of
// that cell's center.
func (t Transform) RasterToWorld(row, col int) (x, y float64) {
	x = t.XllCorner + t.CellSize*(float64(col)+0.5)
	rowFromBottom := t.NRows - 1 - row
	y = t.YllCorner + t.CellSize*(float64(rowFromBottom)+0.5)
	return x, y
}

// InBounds reports whether (row,col) falls within a grid of the given
// dimensions.
func InBounds(row, col, nrows, ncols int) bool {
	return row >= 0 && row < nrows && col >= 0 && col < ncols
}
