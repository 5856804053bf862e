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
	"fmt"
	"log"
	"math"
	"time"
)

// ChannelData is the calibrated output for one acoustic frequency: the
// vertical range of each bin and the volume backscattering strength for
// every ping.
type ChannelData struct {
	Frequency float64     // Hz
	Range     []float64   // m from the transducer face
	Sv        [][]float64 // [ping][bin], dB re 1 m-1
}

// Profile is the calibrated content of one or more burst files.
type Profile struct {
	SerialNumber int
	Times        []time.Time
	Channels     []ChannelData
}

// rangeVector computes the distance from the transducer face to the
// center of each bin for channel ch of ping p, given sound speed c [m/s].
func rangeVector(p Ping, ch int, c float64) []float64 {
	dig := float64(p.DigRate[ch])
	binSize := c * float64(p.RangeSamples[ch]) / (2 * dig)
	blank := c * float64(p.LockoutIndex[ch]) / (2 * dig)
	tau := p.PulseLength[ch] * 1e-6
	r := make([]float64, p.Bins[ch])
	for j := range r {
		r[j] = blank + (float64(j)+0.5)*binSize + c*tau/4
	}
	return r
}

// TiltDegrees converts the raw tilt sensor counts of ping p to the
// effective off-vertical angle, combining the two axes as
// cosθ = cos(x)·cos(y).
func TiltDegrees(cal *Coefficients, p Ping) float64 {
	x := cal.TiltX.Degrees(p.TiltX) * math.Pi / 180
	y := cal.TiltY.Degrees(p.TiltY) * math.Pi / 180
	cos := math.Cos(x) * math.Cos(y)
	if cos > 1 {
		cos = 1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// CorrectRange shortens the vertical range to account for an instrument
// tilted off vertical by deg degrees.
func CorrectRange(r []float64, deg float64) {
	cos := math.Cos(deg * math.Pi / 180)
	for i := range r {
		r[i] *= cos
	}
}

// sv converts one channel's raw counts to volume backscattering strength
// following the manufacturer's sonar equation.
func sv(counts []float64, ch Channel, r []float64, c, alpha float64) []float64 {
	tau := ch.PulseLength * 1e-6
	spread := 10 * math.Log10(0.5*c*tau*ch.BP)
	out := make([]float64, len(counts))
	for j, n := range counts {
		out[j] = ch.ELMax - 2.5/ch.DS + n/(26214*ch.DS) -
			ch.TVR - 20*math.Log10(ch.VTX) +
			20*math.Log10(r[j]) + 2*alpha*r[j] - spread
	}
	return out
}

// Convert calibrates a sequence of pings (typically one or more
// consecutive burst files from the same instrument) into Sv profiles per
// channel. All pings must share the acquisition setup of the first one.
func Convert(pings []Ping, cal *Coefficients, env Environment) (*Profile, error) {
	if len(pings) == 0 {
		return nil, fmt.Errorf("azfp: no pings to convert")
	}
	first := pings[0]
	if cal.SerialNumber != 0 && cal.SerialNumber != first.SerialNumber {
		log.Printf("azfp: calibration serial %d does not match instrument serial %d",
			cal.SerialNumber, first.SerialNumber)
	}
	c := env.SoundSpeed().Value()
	prof := &Profile{
		SerialNumber: first.SerialNumber,
		Times:        make([]time.Time, 0, len(pings)),
		Channels:     make([]ChannelData, first.NumChannels),
	}
	chCals := make([]Channel, first.NumChannels)
	alphas := make([]float64, first.NumChannels)
	for ch := 0; ch < first.NumChannels; ch++ {
		chCal, err := cal.Channel(ch + 1)
		if err != nil {
			return nil, err
		}
		chCals[ch] = chCal
		freq := first.Frequency[ch] * 1000 // header stores kHz
		alphas[ch] = env.Absorption(freq).Value()
		prof.Channels[ch] = ChannelData{
			Frequency: freq,
			Range:     rangeVector(first, ch, c),
		}
	}
	for _, p := range pings {
		if p.NumChannels != first.NumChannels {
			return nil, fmt.Errorf("azfp: channel count changed from %d to %d mid-file",
				first.NumChannels, p.NumChannels)
		}
		prof.Times = append(prof.Times, p.Time)
		for ch := 0; ch < p.NumChannels; ch++ {
			if p.Bins[ch] != first.Bins[ch] {
				return nil, fmt.Errorf("azfp: bin count changed from %d to %d mid-file on channel %d",
					first.Bins[ch], p.Bins[ch], ch+1)
			}
			prof.Channels[ch].Sv = append(prof.Channels[ch].Sv,
				sv(p.Counts[ch], chCals[ch], prof.Channels[ch].Range, c, alphas[ch]))
		}
	}
	return prof, nil
}
