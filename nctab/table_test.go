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

package nctab

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ctessum/cdf"
)

// ncVariable describes one variable for fixture files.
type ncVariable struct {
	dims  []string
	data  interface{} // []float64 or []float32, typed as stored
	units string
	desc  string
}

// writeNC builds a small NetCDF fixture: define the header, create
// the file, then write every variable.
func writeNC(t *testing.T, path string, dims []string, lengths []int, vars map[string]ncVariable) {
	t.Helper()
	h := cdf.NewHeader(dims, lengths)
	for name, v := range vars {
		switch v.data.(type) {
		case []float64:
			h.AddVariable(name, v.dims, []float64{0})
		case []float32:
			h.AddVariable(name, v.dims, []float32{0})
		case []int32:
			h.AddVariable(name, v.dims, []int32{0})
		default:
			t.Fatalf("unsupported fixture type %T", v.data)
		}
		if v.units != "" {
			h.AddAttribute(name, "units", v.units)
		}
		if v.desc != "" {
			h.AddAttribute(name, "long_name", v.desc)
		}
	}
	h.Define()
	ff, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	for name, v := range vars {
		end := f.Header.Lengths(name)
		start := make([]int, len(end))
		w := f.Writer(name, start, end)
		if _, err := w.Write(v.data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := cdf.UpdateNumRecs(ff); err != nil {
		t.Fatal(err)
	}
	if err := ff.Close(); err != nil {
		t.Fatal(err)
	}
}

// fixture writes a file with one variable of every orientation class.
func fixture(t *testing.T, rawTime []float64) string {
	path := filepath.Join(t.TempDir(), "fixture.nc")
	n := len(rawTime)
	writeNC(t, path,
		[]string{"time", "depth", "k", "one"}, []int{n, 3, 2, 1},
		map[string]ncVariable{
			"time": {dims: []string{"time"}, data: rawTime,
				units: "seconds since 1970-01-01"},
			"obs": {dims: []string{"time"}, data: []int32{0, 1, 2, 3}},
			"temperature": {dims: []string{"time"}, data: []float32{10, 11, 12, 13},
				units: "degrees_Celsius", desc: "Seawater Temperature"},
			// Time-minor: comes back transposed.
			"pressure": {dims: []string{"one", "time"}, data: []float32{25, 26, 27, 28},
				units: "dbar"},
			// (N, 1) column: same normalized form as (1, N).
			"conductivity": {dims: []string{"time", "one"},
				data: []float32{3.1, 3.2, 3.3, 3.4}},
			// Time-major matrix: kept as-is.
			"velocity": {dims: []string{"time", "depth"},
				data: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
			// Scalar: broadcast.
			"latitude": {dims: []string{"one"}, data: []float64{44.657},
				units: "degrees_north"},
			// Neither dimension matches the axis: dropped.
			"mismatch": {dims: []string{"depth", "k"},
				data: []float32{1, 2, 3, 4, 5, 6}},
		})
	return path
}

func TestBuildTable(t *testing.T) {
	base := time.Date(2020, 1, 18, 0, 0, 0, 0, time.UTC)
	raw := make([]float64, 4)
	for i := range raw {
		raw[i] = float64(base.Add(time.Duration(i) * 15 * time.Minute).Unix())
	}
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	tab, err := buildTable(fixture(t, raw), now)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 4 {
		t.Fatalf("have %d rows, want 4", tab.Len())
	}
	if !tab.Times[0].Equal(base) {
		t.Errorf("times[0]: have %v, want %v", tab.Times[0], base)
	}

	if _, ok := tab.Column("obs"); ok {
		t.Error("row counter variable should be excluded")
	}
	if _, ok := tab.Column("mismatch"); ok {
		t.Error("non-conforming variable should be dropped")
	}

	temp, ok := tab.Column("temperature")
	if !ok {
		t.Fatal("temperature column missing")
	}
	if temp.Units != "degrees_Celsius" || temp.Description != "Seawater Temperature" {
		t.Errorf("metadata: %q %q", temp.Units, temp.Description)
	}
	if temp.Width() != 1 || temp.Data.Get(2) != 12 {
		t.Errorf("temperature data: %v", temp.Data.Elements)
	}

	// (1, N) normalizes to a length-N column.
	press, ok := tab.Column("pressure")
	if !ok {
		t.Fatal("pressure column missing")
	}
	if press.Width() != 1 {
		t.Fatalf("pressure width: have %d, want 1", press.Width())
	}
	for i, want := range []float64{25, 26, 27, 28} {
		if press.Data.Get(i) != want {
			t.Errorf("pressure[%d]: have %v, want %v", i, press.Data.Get(i), want)
		}
	}

	cond, ok := tab.Column("conductivity")
	if !ok {
		t.Fatal("conductivity column missing")
	}
	if cond.Width() != 1 || math.Abs(cond.Data.Get(3)-3.4) > 1e-6 {
		t.Errorf("conductivity: width %d, [3]=%v", cond.Width(), cond.Data.Get(3))
	}

	vel, ok := tab.Column("velocity")
	if !ok {
		t.Fatal("velocity column missing")
	}
	if vel.Width() != 3 || vel.Data.Get(1, 2) != 6 {
		t.Errorf("velocity: width %d, [1][2]=%v", vel.Width(), vel.Data.Get(1, 2))
	}

	lat, ok := tab.Column("latitude")
	if !ok {
		t.Fatal("latitude column missing")
	}
	for i := 0; i < tab.Len(); i++ {
		if lat.Data.Get(i) != 44.657 {
			t.Errorf("latitude[%d]: %v", i, lat.Data.Get(i))
		}
	}

	// Attributes default to empty strings when absent.
	if vel.Units != "" || vel.Description != "" {
		t.Errorf("velocity metadata should be empty: %q %q", vel.Units, vel.Description)
	}
}

func TestBuildTableNoTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notime.nc")
	writeNC(t, path, []string{"x"}, []int{3}, map[string]ncVariable{
		"temperature": {dims: []string{"x"}, data: []float32{1, 2, 3}},
	})
	_, err := BuildTable(path)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("have %T (%v), want *FormatError", err, err)
	}
}

func TestEpochFallback(t *testing.T) {
	// Times recorded as seconds since 1900: the naive 1970 decoding of
	// 2020 data lands around 2090, which is in the future.
	base := time.Date(2020, 1, 18, 0, 0, 0, 0, time.UTC)
	raw := make([]float64, 4)
	for i := range raw {
		raw[i] = base.Add(time.Duration(i) * time.Hour).Sub(Epoch1900).Seconds()
	}
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := ReferenceEpoch(raw[0], now); !got.Equal(Epoch1900) {
		t.Fatalf("epoch: have %v, want 1900", got)
	}
	tab, err := buildTable(fixture(t, raw), now)
	if err != nil {
		t.Fatal(err)
	}
	for i, tm := range tab.Times {
		if tm.After(now) {
			t.Errorf("times[%d]=%v is in the future", i, tm)
		}
	}
	if !tab.Times[0].Equal(base) {
		t.Errorf("times[0]: have %v, want %v", tab.Times[0], base)
	}
}

func TestReferenceEpochUnix(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	raw := float64(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC).Unix())
	if got := ReferenceEpoch(raw, now); !got.Equal(EpochUnix) {
		t.Errorf("epoch: have %v, want unix", got)
	}
}

func TestWriteCSV(t *testing.T) {
	base := time.Date(2020, 1, 18, 0, 0, 0, 0, time.UTC)
	raw := make([]float64, 4)
	for i := range raw {
		raw[i] = float64(base.Add(time.Duration(i) * time.Minute).Unix())
	}
	tab, err := buildTable(fixture(t, raw), time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("have %d lines, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,") {
		t.Errorf("header: %s", lines[0])
	}
	if !strings.Contains(lines[0], "velocity_1,velocity_2,velocity_3") {
		t.Errorf("multi-valued header missing: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2020-01-18T00:00:00Z,") {
		t.Errorf("first row: %s", lines[1])
	}
}

func TestBuildTableMissingFile(t *testing.T) {
	if _, err := BuildTable(filepath.Join(t.TempDir(), "nope.nc")); err == nil {
		t.Error("expected an error")
	}
}

func TestFromEpochPrecision(t *testing.T) {
	tm := fromEpoch(EpochUnix, 1579305600.5)
	if want := time.Date(2020, 1, 18, 0, 0, 0, 5e8, time.UTC); !tm.Equal(want) {
		t.Errorf("have %v, want %v", tm, want)
	}
	if math.Abs(tm.Sub(EpochUnix).Seconds()-1579305600.5) > 1e-6 {
		t.Errorf("round trip drift: %v", tm)
	}
}
