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

package azfp

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testXML = `<?xml version="1.0"?>
<InstrumentConfig>
  <SerialNumber>55067</SerialNumber>
  <TiltX a="-12.5" b="0.0004" c="0" d="0"/>
  <TiltY a="-12.5" b="0.0004" c="0" d="0"/>
  <Channel number="1">
    <Frequency>125</Frequency>
    <ELMax>142.5</ELMax>
    <DS>0.02413</DS>
    <TVR>169.7</TVR>
    <VTX>106.4</VTX>
    <BP>0.0077</BP>
    <PulseLength>300</PulseLength>
  </Channel>
  <Channel number="2">
    <Frequency>250</Frequency>
    <ELMax>141.95</ELMax>
    <DS>0.02398</DS>
    <TVR>171.3</TVR>
    <VTX>92.6</VTX>
    <BP>0.0042</BP>
    <PulseLength>300</PulseLength>
  </Channel>
</InstrumentConfig>
`

func writeTestXML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "55067.XML")
	if err := os.WriteFile(path, []byte(testXML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCoefficients(t *testing.T) {
	cal, err := ReadCoefficients(writeTestXML(t))
	if err != nil {
		t.Fatal(err)
	}
	if cal.SerialNumber != 55067 {
		t.Errorf("serial: have %d, want 55067", cal.SerialNumber)
	}
	ch, err := cal.Channel(2)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Frequency != 250 || ch.TVR != 171.3 {
		t.Errorf("channel 2: %+v", ch)
	}
	if _, err := cal.Channel(3); err == nil {
		t.Error("channel 3: expected an error")
	}
	if _, err := ReadCoefficients(filepath.Join(t.TempDir(), "nope.XML")); err == nil {
		t.Error("missing file: expected an error")
	}
}

func TestConvert(t *testing.T) {
	cal, err := ReadCoefficients(writeTestXML(t))
	if err != nil {
		t.Fatal(err)
	}
	when := time.Date(2020, 1, 18, 0, 0, 0, 0, time.UTC)
	var pings []Ping
	for i := 0; i < 3; i++ {
		raw := encodeBurst(testBurst{profile: i + 1, serial: 55067,
			when: when.Add(time.Duration(i) * 15 * time.Minute),
			counts: [][]float64{
				{20000, 25000, 30000, 35000},
				{21000, 26000, 31000, 36000},
			}})
		path := filepath.Join(t.TempDir(), "fixture.01A")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatal(err)
		}
		p, err := ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		pings = append(pings, p...)
	}

	env := NominalEnvironment(10, 25)
	prof, err := Convert(pings, cal, env)
	if err != nil {
		t.Fatal(err)
	}
	if len(prof.Times) != 3 || len(prof.Channels) != 2 {
		t.Fatalf("have %d times, %d channels", len(prof.Times), len(prof.Channels))
	}
	ch := prof.Channels[0]
	if ch.Frequency != 125000 {
		t.Errorf("frequency: have %v, want 125000", ch.Frequency)
	}
	for j := 1; j < len(ch.Range); j++ {
		if ch.Range[j] <= ch.Range[j-1] {
			t.Fatalf("range not increasing: %v", ch.Range)
		}
	}
	if ch.Range[0] <= 0 {
		t.Errorf("range starts at %v", ch.Range[0])
	}
	for _, svRow := range ch.Sv {
		for _, v := range svRow {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite Sv: %v", svRow)
			}
		}
	}
	// Counts rise with bin index in the fixture, and the range and
	// absorption terms only add with distance, so Sv must increase too.
	for j := 1; j < len(ch.Sv[0]); j++ {
		if ch.Sv[0][j] <= ch.Sv[0][j-1] {
			t.Errorf("Sv not increasing with counts: %v", ch.Sv[0])
		}
	}
}

func TestEnvironment(t *testing.T) {
	env := NominalEnvironment(10, 25)
	c := env.SoundSpeed().Value()
	if c < 1400 || c > 1600 {
		t.Errorf("sound speed %v m/s out of seawater bounds", c)
	}
	a125 := env.Absorption(125000).Value()
	a455 := env.Absorption(455000).Value()
	if a125 <= 0 || a455 <= a125 {
		t.Errorf("absorption should grow with frequency: %v, %v", a125, a455)
	}
}

func TestTiltCorrection(t *testing.T) {
	cal := &Coefficients{
		TiltX: TiltPoly{A: -15, B: 0.001},
		TiltY: TiltPoly{A: 0},
	}
	p := Ping{TiltX: 30000, TiltY: 0} // -15 + 0.001*30000 = 15 degrees
	deg := TiltDegrees(cal, p)
	if math.Abs(deg-15) > 1e-9 {
		t.Errorf("tilt: have %v, want 15", deg)
	}

	r := []float64{10, 20, 30}
	CorrectRange(r, 15)
	cos := math.Cos(15 * math.Pi / 180)
	for i, want := range []float64{10 * cos, 20 * cos, 30 * cos} {
		if math.Abs(r[i]-want) > 1e-12 {
			t.Errorf("range[%d]: have %v, want %v", i, r[i], want)
		}
	}
}
