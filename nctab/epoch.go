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

import "time"

// The two time reference conventions found in OOI data files. Files
// produced through the M2M system count seconds from the Unix epoch,
// while files produced by the original instrument drivers count from
// 1900-01-01; neither kind declares which one it uses.
var (
	EpochUnix = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	Epoch1900 = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
)

// ReferenceEpoch decides which epoch a raw time coordinate counts from:
// the first value is decoded against the Unix epoch, and if that lands in
// the future relative to now the 1900 convention is assumed instead.
//
// The wall clock is a fragile oracle near the epoch boundary and for
// synthetic inputs; it is kept as an explicit parameter so both
// conventions can be exercised in tests. This mirrors the behavior of
// the producer systems and is not safe to "fix" unilaterally.
func ReferenceEpoch(firstRaw float64, now time.Time) time.Time {
	if fromEpoch(EpochUnix, firstRaw).After(now) {
		return Epoch1900
	}
	return EpochUnix
}

// fromEpoch converts raw seconds since epoch to a time, keeping
// sub-second precision.
func fromEpoch(epoch time.Time, seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * 1e9)
	return epoch.Add(time.Duration(sec)*time.Second + time.Duration(nsec))
}
