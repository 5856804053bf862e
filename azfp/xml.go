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
	"encoding/xml"
	"fmt"
	"os"
)

// TiltPoly holds the third-order polynomial that converts raw tilt sensor
// counts to degrees: deg = A + B*N + C*N² + D*N³.
type TiltPoly struct {
	A float64 `xml:"a,attr"`
	B float64 `xml:"b,attr"`
	C float64 `xml:"c,attr"`
	D float64 `xml:"d,attr"`
}

// Degrees evaluates the polynomial for raw counts n.
func (p TiltPoly) Degrees(n float64) float64 {
	return p.A + p.B*n + p.C*n*n + p.D*n*n*n
}

// Channel holds the per-frequency calibration constants from the
// instrument configuration file.
type Channel struct {
	Number      int     `xml:"number,attr"`
	Frequency   float64 `xml:"Frequency"`   // kHz
	ELMax       float64 `xml:"ELMax"`       // echo level at max counts [dB]
	DS          float64 `xml:"DS"`          // detector slope [counts/dB]
	TVR         float64 `xml:"TVR"`         // transmit voltage response [dB]
	VTX         float64 `xml:"VTX"`         // transmit voltage [V]
	BP          float64 `xml:"BP"`          // equivalent beam pattern factor [sr]
	PulseLength float64 `xml:"PulseLength"` // μs
}

// Coefficients is the parsed instrument calibration/configuration file
// shipped with each AZFP deployment.
type Coefficients struct {
	XMLName      xml.Name  `xml:"InstrumentConfig"`
	SerialNumber int       `xml:"SerialNumber"`
	TiltX        TiltPoly  `xml:"TiltX"`
	TiltY        TiltPoly  `xml:"TiltY"`
	Channels     []Channel `xml:"Channel"`
}

// Channel returns the calibration constants for the 1-based channel
// number n.
func (c *Coefficients) Channel(n int) (Channel, error) {
	for _, ch := range c.Channels {
		if ch.Number == n {
			return ch, nil
		}
	}
	return Channel{}, fmt.Errorf("azfp: no calibration for channel %d", n)
}

// ReadCoefficients parses the instrument XML file at path.
func ReadCoefficients(path string) (*Coefficients, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("azfp: opening calibration file: %w", err)
	}
	defer f.Close()
	c := new(Coefficients)
	if err := xml.NewDecoder(f).Decode(c); err != nil {
		return nil, fmt.Errorf("azfp: parsing calibration file %s: %w", path, err)
	}
	if len(c.Channels) == 0 {
		return nil, fmt.Errorf("azfp: calibration file %s defines no channels", path)
	}
	return c, nil
}
