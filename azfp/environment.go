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

	"github.com/ctessum/unit"
)

// PerMeter is the dimension of an attenuation coefficient [dB m-1]; the
// decibel itself is dimensionless.
var PerMeter = unit.Dimensions{unit.LengthDim: -1}

// Environment holds the nominal seawater properties used for calibration
// when in-situ measurements are not available. The zero value is not
// useful; use NominalEnvironment.
type Environment struct {
	Temperature float64 // °C
	Salinity    float64 // PSU
	Depth       *unit.Unit
	PH          float64
}

// NominalEnvironment returns the site environment assumed by the OOI
// mooring deployments: 33 PSU salinity, pH 8, and the nominal deployed
// depth of the instrument.
func NominalEnvironment(temperature, depthM float64) Environment {
	return Environment{
		Temperature: temperature,
		Salinity:    33,
		Depth:       unit.New(depthM, unit.Meter),
		PH:          8,
	}
}

// SoundSpeed estimates the speed of sound in seawater using the
// Mackenzie (1981) nine-term equation.
func (e Environment) SoundSpeed() *unit.Unit {
	t := e.Temperature
	s := e.Salinity
	d := e.Depth.Value()
	c := 1448.96 + 4.591*t - 5.304e-2*t*t + 2.374e-4*t*t*t +
		1.340*(s-35) + 1.630e-2*d + 1.675e-7*d*d -
		1.025e-2*t*(s-35) - 7.139e-13*t*d*d*d
	return unit.New(c, unit.MeterPerSecond)
}

// Absorption estimates the acoustic absorption coefficient for the given
// frequency [Hz] using the Ainslie and McColm (1998) simplification of
// the Francois-Garrison model.
func (e Environment) Absorption(freq float64) *unit.Unit {
	f := freq / 1000 // kHz
	t := e.Temperature
	s := e.Salinity
	d := e.Depth.Value() / 1000 // km

	f1 := 0.78 * math.Sqrt(s/35) * math.Exp(t/26) // boric acid relaxation [kHz]
	f2 := 42 * math.Exp(t/17)                     // magnesium sulphate relaxation [kHz]

	boric := 0.106 * (f1 * f * f / (f1*f1 + f*f)) * math.Exp((e.PH-8)/0.56)
	mgso4 := 0.52 * (1 + t/43) * (s / 35) * (f2 * f * f / (f2*f2 + f*f)) * math.Exp(-d/6)
	water := 0.00049 * f * f * math.Exp(-(t/27 + d/17))

	// Ainslie & McColm give dB/km.
	return unit.New((boric+mgso4+water)/1000, PerMeter)
}
