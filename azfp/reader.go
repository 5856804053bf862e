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
	"encoding/binary"
	"fmt"
	"os"
	"time"
)

const (
	// recordFlag marks the start of each burst record in a .01A file.
	recordFlag = 0xFD02

	// headerSize is the fixed burst header length in bytes, including
	// the flag word.
	headerSize = 124

	// maxChannels is the number of channel slots in the burst header.
	maxChannels = 4
)

// Ping is one decoded burst record: a time stamp, the acquisition
// parameters for each channel, and the (possibly board-averaged) raw
// counts.
type Ping struct {
	Time          time.Time
	ProfileNumber int
	SerialNumber  int
	NumChannels   int

	// Per-channel acquisition parameters, indexed 0..NumChannels-1.
	Frequency    []float64 // kHz
	DigRate      []int     // digitization rate [Hz]
	LockoutIndex []int     // samples discarded after transmit
	Bins         []int     // number of range bins
	RangeSamples []int     // samples averaged per bin
	PulseLength  []float64 // μs

	// Counts holds the raw backscatter counts per channel; board-averaged
	// data has already been divided back down to a per-ping mean.
	Counts [][]float64

	// Raw ancillary sensor counts.
	TiltX, TiltY float64
	Battery      float64
	Temperature  float64
}

// decodeHeader fills p from the 124-byte burst header b. The layout is
// fixed by the instrument firmware; all fields are big-endian.
func decodeHeader(b []byte, p *Ping) error {
	u16 := func(off int) int { return int(binary.BigEndian.Uint16(b[off:])) }
	if u16(0) != recordFlag {
		return fmt.Errorf("azfp: bad record flag %#04x", u16(0))
	}
	p.ProfileNumber = u16(2)
	p.SerialNumber = u16(4)
	// 6: ping status, 8: burst interval (u32).
	year, month, day := u16(12), u16(14), u16(16)
	hour, min, sec, hund := u16(18), u16(20), u16(22), u16(24)
	if month < 1 || month > 12 {
		return fmt.Errorf("azfp: bad burst date %04d-%02d-%02d", year, month, day)
	}
	p.Time = time.Date(year, time.Month(month), day, hour, min, sec, hund*1e7, time.UTC)

	p.Frequency = make([]float64, 0, maxChannels)
	p.DigRate = make([]int, 0, maxChannels)
	p.LockoutIndex = make([]int, 0, maxChannels)
	p.Bins = make([]int, 0, maxChannels)
	p.RangeSamples = make([]int, 0, maxChannels)
	p.PulseLength = make([]float64, 0, maxChannels)
	for ch := 0; ch < maxChannels; ch++ {
		p.DigRate = append(p.DigRate, u16(26+2*ch))
		p.LockoutIndex = append(p.LockoutIndex, u16(34+2*ch))
		p.Bins = append(p.Bins, u16(42+2*ch))
		p.RangeSamples = append(p.RangeSamples, u16(50+2*ch))
		p.PulseLength = append(p.PulseLength, float64(u16(84+2*ch)))
		p.Frequency = append(p.Frequency, float64(u16(100+2*ch)))
	}
	p.NumChannels = int(b[78])
	if p.NumChannels < 1 || p.NumChannels > maxChannels {
		return fmt.Errorf("azfp: bad channel count %d", p.NumChannels)
	}
	p.TiltX = float64(u16(110))
	p.TiltY = float64(u16(112))
	p.Battery = float64(u16(114))
	p.Temperature = float64(u16(118))
	return nil
}

// dataType reports whether channel ch of the header stores board-averaged
// u32 sums rather than single-ping u16 counts, along with the ping count
// to divide the sums by.
func dataType(b []byte, ch int) (averaged bool, pings int) {
	averaged = b[70+ch]&1 == 1
	pings = int(binary.BigEndian.Uint16(b[62:]))
	if pings == 0 {
		pings = 1
	}
	return averaged, pings
}

// ReadFile decodes every burst record in the per-hour raw file at path.
// A truncated trailing record is fatal for the file so a damaged download
// is not silently shortened.
func ReadFile(path string) ([]Ping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("azfp: %w", err)
	}
	var pings []Ping
	off := 0
	for off < len(raw) {
		if len(raw)-off < headerSize {
			return nil, fmt.Errorf("azfp: %s: truncated header at offset %d", path, off)
		}
		var p Ping
		if err := decodeHeader(raw[off:off+headerSize], &p); err != nil {
			return nil, fmt.Errorf("azfp: %s: record at offset %d: %w", path, off, err)
		}
		hdr := raw[off : off+headerSize]
		off += headerSize
		p.Counts = make([][]float64, p.NumChannels)
		for ch := 0; ch < p.NumChannels; ch++ {
			n := p.Bins[ch]
			averaged, acqPings := dataType(hdr, ch)
			width := 2
			if averaged {
				width = 4
			}
			if len(raw)-off < n*width {
				return nil, fmt.Errorf("azfp: %s: truncated channel %d data at offset %d", path, ch+1, off)
			}
			counts := make([]float64, n)
			for j := 0; j < n; j++ {
				if averaged {
					counts[j] = float64(binary.BigEndian.Uint32(raw[off+4*j:])) / float64(acqPings)
				} else {
					counts[j] = float64(binary.BigEndian.Uint16(raw[off+2*j:]))
				}
			}
			p.Counts[ch] = counts
			off += n * width
		}
		pings = append(pings, p)
	}
	if len(pings) == 0 {
		return nil, fmt.Errorf("azfp: %s: no burst records", path)
	}
	return pings, nil
}
