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

// Package raster reads the standard six-line-header ASCII raster format and
// provides world-coordinate lookups over it. A Grid is immutable after Load;
// spatial environment strategies load a new Grid wholesale when their
// (day,hour) key changes and discard the old one.
package raster

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spatialmodel/hfire/coord"
	"github.com/spatialmodel/hfire/herr"
)

// Grid is an immutable ASCII-raster-backed matrix of doubles.
type Grid struct {
	NCols, NRows int
	Transform    coord.Transform
	NoData       float64
	data         [][]float64
}

// Load reads an ASCII raster from path.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herr.Wrap(herr.Io, path, "unable to open raster file", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses an ASCII raster from r. context is used only in error
// messages (typically the source path).
func Read(r io.Reader, context string) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	header := map[string]float64{}
	headerKeys := []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"}
	for _, key := range headerKeys {
		if !scanner.Scan() {
			return nil, herr.New(herr.Parse, context, "truncated raster header, expected "+key)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || !strings.EqualFold(fields[0], key) {
			return nil, herr.New(herr.Parse, context, "expected header key "+key+", got "+scanner.Text())
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, herr.Wrap(herr.Parse, context, "malformed header value for "+key, err)
		}
		header[key] = v
	}

	ncols := int(header["ncols"])
	nrows := int(header["nrows"])
	if ncols <= 0 || nrows <= 0 {
		return nil, herr.New(herr.Parse, context, "raster must have positive ncols and nrows")
	}

	g := &Grid{
		NCols:  ncols,
		NRows:  nrows,
		NoData: header["nodata_value"],
		Transform: coord.Transform{
			XllCorner: header["xllcorner"],
			YllCorner: header["yllcorner"],
			CellSize:  header["cellsize"],
			NRows:     nrows,
		},
		data: make([][]float64, nrows),
	}

	row, col := 0, 0
	for scanner.Scan() && row < nrows {
		for _, tok := range strings.Fields(scanner.Text()) {
			if col == 0 {
				g.data[row] = make([]float64, ncols)
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, herr.Wrap(herr.Parse, context, "malformed raster cell value", err)
			}
			g.data[row][col] = v
			col++
			if col == ncols {
				col = 0
				row++
				if row == nrows {
					break
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, herr.Wrap(herr.Io, context, "failed reading raster body", err)
	}
	if row != nrows {
		return nil, herr.New(herr.Parse, context, "raster body shorter than ncols*nrows")
	}
	return g, nil
}

// At looks up the value at real-world (x,y), first transforming to
// (row,col). Out-of-range coordinates yield NoData.
func (g *Grid) At(x, y float64) float64 {
	row, col := g.Transform.WorldToRaster(x, y)
	if !coord.InBounds(row, col, g.NRows, g.NCols) {
		return g.NoData
	}
	return g.data[row][col]
}

// IsNoData reports whether v equals this grid's NODATA sentinel.
func (g *Grid) IsNoData(v float64) bool { return v == g.NoData }

// Value returns the cell at a 0-based (row,col), for callers that already
// have a raster index rather than a world coordinate (e.g. building a
// cumulative distribution over every cell for probability-weighted
// sampling). ok is false for an out-of-bounds index.
func (g *Grid) Value(row, col int) (v float64, ok bool) {
	if !coord.InBounds(row, col, g.NRows, g.NCols) {
		return 0, false
	}
	return g.data[row][col], true
}

// Bounds returns the real-world bounding box covered by the grid.
func (g *Grid) Bounds() (minX, minY, maxX, maxY float64) {
	minX = g.Transform.XllCorner
	minY = g.Transform.YllCorner
	maxX = minX + g.Transform.CellSize*float64(g.NCols)
	maxY = minY + g.Transform.CellSize*float64(g.NRows)
	return minX, minY, maxX, maxY
}
