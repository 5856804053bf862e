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

// Mooring holds the per-site plotting and deployment defaults for a
// ZPLSC/G installation. Command line flags override individual fields.
type Mooring struct {
	LongName       string
	TiltCorrection float64    // degrees
	ColorbarRange  [2]float64 // Sv dB
	VerticalRange  [2]float64 // m
	DeployedDepth  float64    // m
	Downward       bool       // downward-looking instrument
}

// builtinMoorings lists the OOI surface and profiler moorings carrying
// this instrument. The Global profiler moorings host two instruments,
// one looking up and one looking down from the 150 m sphere.
var builtinMoorings = map[string]Mooring{
	"CE01ISSM": {
		LongName:       "Oregon Inshore Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-90, -50},
		VerticalRange:  [2]float64{0, 25},
		DeployedDepth:  25,
	},
	"CE06ISSM": {
		LongName:       "Washington Inshore Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-90, -50},
		VerticalRange:  [2]float64{0, 30},
		DeployedDepth:  29,
	},
	"CE07SHSM": {
		LongName:       "Washington Shelf Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-90, -50},
		VerticalRange:  [2]float64{0, 87},
		DeployedDepth:  87,
	},
	"CE09OSSM": {
		LongName:       "Washington Offshore Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-90, -50},
		VerticalRange:  [2]float64{0, 540},
		DeployedDepth:  542,
	},
	"CP01CNSM": {
		LongName:       "Central Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{0, 130},
		DeployedDepth:  130,
	},
	"CP03ISSM": {
		LongName:       "Inshore Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{0, 90},
		DeployedDepth:  90,
	},
	"CP04OSSM": {
		LongName:       "Offshore Surface Mooring",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{0, 450},
		DeployedDepth:  450,
	},
	"GI02HYPM_Upper": {
		LongName:       "Apex Profiler Mooring, Upward Looking",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{0, 150},
		DeployedDepth:  150,
	},
	"GI02HYPM_Lower": {
		LongName:       "Apex Profiler Mooring, Downward Looking",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{150, 300},
		DeployedDepth:  150,
		Downward:       true,
	},
	"GP02HYPM_Upper": {
		LongName:       "Apex Profiler Mooring, Upward Looking",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{0, 150},
		DeployedDepth:  150,
	},
	"GP02HYPM_Lower": {
		LongName:       "Apex Profiler Mooring, Downward Looking",
		TiltCorrection: 15,
		ColorbarRange:  [2]float64{-150, 0},
		VerticalRange:  [2]float64{150, 300},
		DeployedDepth:  150,
		Downward:       true,
	},
}

// Moorings returns a copy of the builtin mooring table, optionally
// merged with site entries from a configuration file. Config entries
// replace builtin ones wholesale.
func Moorings(extra map[string]Mooring) map[string]Mooring {
	out := make(map[string]Mooring, len(builtinMoorings)+len(extra))
	for k, v := range builtinMoorings {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
