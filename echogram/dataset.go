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

// Package echogram assembles calibrated AZFP backscatter into gridded
// time series and renders them as NetCDF files and echogram plots.
package echogram

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/stat"

	"github.com/oceanobservatories/ooicgsn-data-tools/azfp"
)

// Dataset is backscatter for one instrument over a plotting window: a
// shared time axis and, for each acoustic frequency, a vertical range
// vector and a time × bin Sv grid.
type Dataset struct {
	SerialNumber int
	Frequencies  []float64 // Hz
	Times        []time.Time
	Range        [][]float64          // per frequency [m]
	Sv           []*sparse.DenseArray // per frequency, shape [time, bin]
}

// Assemble reads and calibrates the given raw files in order, producing
// one combined dataset. An unreadable or inconsistent file is skipped
// with a warning; Assemble fails only when nothing could be decoded at
// all. tiltDeg > 0 shortens the vertical range for a tilted instrument.
func Assemble(files []string, cal *azfp.Coefficients, env azfp.Environment, tiltDeg float64) (*Dataset, error) {
	var (
		d    *Dataset
		rows [][][]float64 // [frequency][time][bin]
	)
	for _, file := range files {
		pings, err := azfp.ReadFile(file)
		if err != nil {
			log.Printf("echogram: skipping %s: %v", file, err)
			continue
		}
		prof, err := azfp.Convert(pings, cal, env)
		if err != nil {
			log.Printf("echogram: skipping %s: %v", file, err)
			continue
		}
		if d == nil {
			d = &Dataset{SerialNumber: prof.SerialNumber}
			for _, ch := range prof.Channels {
				d.Frequencies = append(d.Frequencies, ch.Frequency)
				d.Range = append(d.Range, ch.Range)
			}
			rows = make([][][]float64, len(prof.Channels))
		}
		if len(prof.Channels) != len(d.Frequencies) {
			log.Printf("echogram: skipping %s: channel count %d does not match %d",
				file, len(prof.Channels), len(d.Frequencies))
			continue
		}
		mismatch := false
		for ch := range prof.Channels {
			if len(prof.Channels[ch].Range) != len(d.Range[ch]) {
				log.Printf("echogram: skipping %s: bin count changed on channel %d", file, ch+1)
				mismatch = true
				break
			}
		}
		if mismatch {
			continue
		}
		d.Times = append(d.Times, prof.Times...)
		for ch := range prof.Channels {
			rows[ch] = append(rows[ch], prof.Channels[ch].Sv...)
		}
	}
	if d == nil || len(d.Times) == 0 {
		return nil, fmt.Errorf("echogram: no usable data in %d files", len(files))
	}
	for ch := range rows {
		bins := len(d.Range[ch])
		grid := sparse.ZerosDense(len(d.Times), bins)
		for i, row := range rows[ch] {
			for j, v := range row {
				grid.Set(v, i, j)
			}
		}
		d.Sv = append(d.Sv, grid)
		if tiltDeg > 0 {
			azfp.CorrectRange(d.Range[ch], tiltDeg)
		}
	}
	return d, nil
}

// BurstMedian resamples the dataset onto a uniform axis of the given
// interval, taking the median of each bin's samples within each
// interval. Intervals with no pings are omitted rather than filled.
func (d *Dataset) BurstMedian(interval time.Duration) *Dataset {
	out := &Dataset{
		SerialNumber: d.SerialNumber,
		Frequencies:  d.Frequencies,
		Range:        d.Range,
	}
	if len(d.Times) == 0 {
		return out
	}

	// Group ping indices by interval start.
	groups := make(map[time.Time][]int)
	var starts []time.Time
	for i, t := range d.Times {
		b := t.Truncate(interval)
		if _, ok := groups[b]; !ok {
			starts = append(starts, b)
		}
		groups[b] = append(groups[b], i)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	out.Times = starts

	scratch := make([]float64, 0, 16)
	for ch := range d.Sv {
		bins := len(d.Range[ch])
		grid := sparse.ZerosDense(len(starts), bins)
		for bi, b := range starts {
			idx := groups[b]
			for j := 0; j < bins; j++ {
				scratch = scratch[:0]
				for _, i := range idx {
					scratch = append(scratch, d.Sv[ch].Get(i, j))
				}
				sort.Float64s(scratch)
				grid.Set(stat.Quantile(0.5, stat.Empirical, scratch, nil), bi, j)
			}
		}
		out.Sv = append(out.Sv, grid)
	}
	return out
}
