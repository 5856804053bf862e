/*
Copyright © 2022 the OOI CGSN authors.
This file is part of the OOI CGSN data tools.

The OOI CGSN data tools are free software: you can redistribute them and/or
modify them under the terms of the GNU General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The OOI CGSN data tools are distributed in the hope that they will be
useful, but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the OOI CGSN data tools.  If not, see <http://www.gnu.org/licenses/>.
*/

package echogram

import (
	"fmt"
	"math"
	"os"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ctessum/sparse"
)

const (
	panelWidth  = 9 * vg.Inch
	panelHeight = 2 * vg.Inch
	barHeight   = 0.6 * vg.Inch
	plotDPI     = 150
)

// svGrid adapts one frequency channel of a Dataset to the
// plotter.GridXYZ interface. Y values are negated for downward
// looking instruments so depth increases toward the bottom of
// the panel.
type svGrid struct {
	times    []time.Time
	rng      []float64
	sv       *sparse.DenseArray
	downward bool
}

func (g *svGrid) Dims() (int, int) { return len(g.times), len(g.rng) }

func (g *svGrid) X(c int) float64 { return float64(g.times[c].Unix()) }

func (g *svGrid) Y(r int) float64 {
	if g.downward {
		return -g.rng[r]
	}
	return g.rng[r]
}

func (g *svGrid) Z(c, r int) float64 { return g.sv.Get(c, r) }

// absTicks wraps a tick marker, relabeling ticks with their absolute
// value. Used with negated depth axes.
type absTicks struct{ plot.Ticker }

func (a absTicks) Ticks(min, max float64) []plot.Tick {
	tks := a.Ticker.Ticks(min, max)
	for i, t := range tks {
		if t.Label != "" {
			tks[i].Label = fmt.Sprintf("%g", math.Abs(t.Value))
		}
	}
	return tks
}

// PlotOptions control echogram rendering.
type PlotOptions struct {
	Title         string
	ColorbarRange [2]float64 // Sv limits [min, max] in dB
	VerticalRange [2]float64 // range limits [min, max] in m
	Downward      bool
}

// Render draws one heat map panel per frequency, stacked vertically
// with a shared color bar at the bottom, and writes the figure to
// path as a PNG.
func Render(path string, d *Dataset, opts PlotOptions) error {
	nF := len(d.Frequencies)
	if nF == 0 || len(d.Times) == 0 {
		return fmt.Errorf("echogram: nothing to plot")
	}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(opts.ColorbarRange[0])
	cmap.SetMax(opts.ColorbarRange[1])
	pal := cmap.Palette(255)

	img := vgimg.NewWith(
		vgimg.UseWH(panelWidth, panelHeight*vg.Length(nF)+barHeight),
		vgimg.UseDPI(plotDPI),
	)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: nF + 1,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}

	for ch := 0; ch < nF; ch++ {
		g := &svGrid{
			times:    d.Times,
			rng:      d.Range[ch],
			sv:       d.Sv[ch],
			downward: opts.Downward,
		}
		hm := plotter.NewHeatMap(g, pal)
		hm.Min = opts.ColorbarRange[0]
		hm.Max = opts.ColorbarRange[1]

		p := plot.New()
		if ch == 0 && opts.Title != "" {
			p.Title.Text = opts.Title
		}
		p.Add(hm)
		p.X.Tick.Marker = plot.TimeTicks{Format: "Jan-02"}
		p.Y.Label.Text = fmt.Sprintf("%.0f kHz range (m)", d.Frequencies[ch]/1000)
		if opts.VerticalRange[1] > opts.VerticalRange[0] {
			if opts.Downward {
				p.Y.Min = -opts.VerticalRange[1]
				p.Y.Max = -opts.VerticalRange[0]
			} else {
				p.Y.Min = opts.VerticalRange[0]
				p.Y.Max = opts.VerticalRange[1]
			}
		}
		if opts.Downward {
			p.Y.Tick.Marker = absTicks{plot.DefaultTicks{}}
		}
		if ch != nF-1 {
			p.X.Tick.Label.Font.Size = 0
		}
		c := tiles.At(dc, 0, ch)
		p.Draw(c)
	}

	bp := plot.New()
	bp.Add(&plotter.ColorBar{ColorMap: cmap})
	bp.HideY()
	bp.X.Label.Text = "Sv (dB)"
	bc := tiles.At(dc, 0, nF)
	// Narrow the bar so it does not span the full panel width.
	bc = draw.Crop(bc, bc.Size().X/6, -bc.Size().X/6, 0, 0)
	bp.Draw(bc)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("echogram: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("echogram: rendering %s: %w", path, err)
	}
	return f.Close()
}

// PlotTitle composes the figure heading from the mooring long name
// and the deployment details that are known.
func PlotTitle(longName, subsite string, deployment int, depth float64, start, end time.Time) string {
	name := longName
	if name == "" {
		name = subsite
	}
	s := name
	if deployment > 0 {
		s = fmt.Sprintf("%s, deployment %d", s, deployment)
	}
	if depth > 0 {
		s = fmt.Sprintf("%s (%.0f m)", s, depth)
	}
	return fmt.Sprintf("%s: %s to %s", s,
		start.UTC().Format("2006-01-02"), end.UTC().Format("2006-01-02"))
}
