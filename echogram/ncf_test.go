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
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

func testDataset() *Dataset {
	base := time.Date(2020, 1, 18, 0, 0, 0, 0, time.UTC)
	d := &Dataset{
		SerialNumber: 55067,
		Frequencies:  []float64{125000, 250000},
		Times:        []time.Time{base, base.Add(time.Hour)},
		Range:        [][]float64{{1, 2, 3}, {1.5, 3}},
	}
	a := sparse.ZerosDense(2, 3)
	b := sparse.ZerosDense(2, 2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			a.Set(-80+float64(i*3+j), i, j)
		}
		for j := 0; j < 2; j++ {
			b.Set(-60+float64(i*2+j), i, j)
		}
	}
	d.Sv = []*sparse.DenseArray{a, b}
	return d
}

func TestWriteNetCDF(t *testing.T) {
	d := testDataset()
	path := filepath.Join(t.TempDir(), "SN55067_20200118-20200118.nc")
	if err := WriteNetCDF(path, d); err != nil {
		t.Fatal(err)
	}

	ff, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}

	if l := f.Header.Lengths("Sv"); !reflect.DeepEqual(l, []int{2, 2, 3}) {
		t.Errorf("Sv dims: %v", l)
	}
	if u := f.Header.GetAttribute("time", "units"); u != "seconds since 1970-01-01 00:00:00 0:00" {
		t.Errorf("time units: %v", u)
	}
	if u := f.Header.GetAttribute("Sv", "units"); u != "dB" {
		t.Errorf("Sv units: %v", u)
	}

	r := f.Reader("time", nil, nil)
	times := r.Zero(-1).([]float64)
	if _, err := r.Read(times); err != nil {
		t.Fatal(err)
	}
	if times[0] != float64(d.Times[0].Unix()) || times[1] != float64(d.Times[1].Unix()) {
		t.Errorf("times: %v", times)
	}

	r = f.Reader("Sv", nil, nil)
	sv := r.Zero(-1).([]float32)
	if _, err := r.Read(sv); err != nil {
		t.Fatal(err)
	}
	// Channel 0, ping 1, bin 2 lives at offset 0*2*3 + 1*3 + 2.
	if sv[5] != float32(d.Sv[0].Get(1, 2)) {
		t.Errorf("Sv[0][1][2]: have %v, want %v", sv[5], d.Sv[0].Get(1, 2))
	}
	// Channel 1 has only two bins, so its third bin is NaN padding.
	if !math.IsNaN(float64(sv[1*2*3+2])) {
		t.Errorf("expected NaN padding, have %v", sv[1*2*3+2])
	}
	if sv[1*2*3+0] != float32(d.Sv[1].Get(0, 0)) {
		t.Errorf("Sv[1][0][0]: have %v, want %v", sv[1*2*3+0], d.Sv[1].Get(0, 0))
	}
}

func TestWriteNetCDFEmpty(t *testing.T) {
	if err := WriteNetCDF(filepath.Join(t.TempDir(), "x.nc"), &Dataset{}); err == nil {
		t.Error("expected an error for an empty dataset")
	}
}
