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

	"github.com/ctessum/cdf"
)

// WriteNetCDF saves the dataset to path in NetCDF(classic) form, one Sv
// grid per frequency. Channels with fewer bins than the widest are
// padded with NaN.
func WriteNetCDF(path string, d *Dataset) error {
	nT := len(d.Times)
	nF := len(d.Frequencies)
	bins := 0
	for _, r := range d.Range {
		if len(r) > bins {
			bins = len(r)
		}
	}
	if nT == 0 || nF == 0 || bins == 0 {
		return fmt.Errorf("echogram: nothing to write")
	}

	h := cdf.NewHeader([]string{"time", "range_bin", "frequency"}, []int{nT, bins, nF})
	h.AddAttribute("", "title", "ZPLSC/G volume acoustic backscatter")
	h.AddAttribute("", "instrument_serial_number", []int32{int32(d.SerialNumber)})

	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "seconds since 1970-01-01 00:00:00 0:00")
	h.AddAttribute("time", "long_name", "Time")
	h.AddAttribute("time", "calendar", "gregorian")

	h.AddVariable("frequency", []string{"frequency"}, []float32{0})
	h.AddAttribute("frequency", "units", "Hz")
	h.AddAttribute("frequency", "long_name", "Acoustic Frequency")

	h.AddVariable("range", []string{"frequency", "range_bin"}, []float32{0})
	h.AddAttribute("range", "units", "m")
	h.AddAttribute("range", "long_name", "Vertical Range")

	h.AddVariable("Sv", []string{"frequency", "time", "range_bin"}, []float32{0})
	h.AddAttribute("Sv", "units", "dB")
	h.AddAttribute("Sv", "long_name", "Volume Acoustic Backscattering Strength")

	h.Define()
	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("echogram: %w", err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		ff.Close()
		return fmt.Errorf("echogram: creating %s: %w", path, err)
	}

	times := make([]float64, nT)
	for i, t := range d.Times {
		times[i] = float64(t.UnixNano()) / 1e9
	}
	freqs := make([]float32, nF)
	for i, fq := range d.Frequencies {
		freqs[i] = float32(fq)
	}
	ranges := make([]float32, nF*bins)
	for i := range ranges {
		ranges[i] = float32(math.NaN())
	}
	for ch, r := range d.Range {
		for j, v := range r {
			ranges[ch*bins+j] = float32(v)
		}
	}
	sv := make([]float32, nF*nT*bins)
	for i := range sv {
		sv[i] = float32(math.NaN())
	}
	for ch := range d.Sv {
		nb := len(d.Range[ch])
		for i := 0; i < nT; i++ {
			for j := 0; j < nb; j++ {
				sv[ch*nT*bins+i*bins+j] = float32(d.Sv[ch].Get(i, j))
			}
		}
	}

	for _, v := range []struct {
		name string
		data interface{}
	}{
		{"time", times},
		{"frequency", freqs},
		{"range", ranges},
		{"Sv", sv},
	} {
		end := f.Header.Lengths(v.name)
		start := make([]int, len(end))
		w := f.Writer(v.name, start, end)
		if _, err := w.Write(v.data); err != nil {
			ff.Close()
			return fmt.Errorf("echogram: writing %s to %s: %w", v.name, path, err)
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		ff.Close()
		return fmt.Errorf("echogram: %w", err)
	}
	return ff.Close()
}
