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

package wfp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// Firmware 5.34 rolled the clock back to 1940 at the 2019 to 2020
// transition. Timestamps decoding before this cutoff get 80 years
// added, per the vendor's guidance (1940 + 80 = 2020).
var timeCutoff = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

// eFileMarkers are the profile exit condition codes that interrupt
// the fixed-stride data records in an E-file.
var eFileMarkers = [][]byte{
	{0xff, 0xff, 0xff, 0xfe},
	{0xff, 0xff, 0xff, 0xfd},
	{0xff, 0xff, 0xff, 0xfc},
	{0xff, 0xff, 0xff, 0xfb},
	{0xff, 0xff, 0xff, 0xfa},
}

var eFileEnd = []byte{0xff, 0xff, 0xff, 0xff}

// cFileEnd separates the C-file data records from its trailer.
var cFileEnd = bytes.Repeat([]byte{0xff}, 11)

// patchTime decodes the big-endian epoch-second field at off and, if
// it lands before the cutoff, adds 80 years in place. It reports
// whether the field was rewritten.
func patchTime(b []byte, off int) bool {
	if off < 0 || off+4 > len(b) {
		return false
	}
	sec := int32(binary.BigEndian.Uint32(b[off:]))
	t := time.Unix(int64(sec), 0).UTC()
	if !t.Before(timeCutoff) {
		return false
	}
	fixed := t.AddDate(80, 0, 0)
	binary.BigEndian.PutUint32(b[off:], uint32(fixed.Unix()))
	return true
}

// fixAFile patches the acm_stop_time field, the final four bytes.
func fixAFile(b []byte) bool {
	return patchTime(b, len(b)-4)
}

// fixCFile patches the sensor start and stop times in the trailer
// following the 11 byte end-of-file marker.
func fixCFile(b []byte) (bool, error) {
	i := bytes.Index(b, cFileEnd)
	if i < 0 {
		return false, fmt.Errorf("no end-of-file marker")
	}
	changed := patchTime(b, i+11)
	changed = patchTime(b, i+15) || changed
	return changed, nil
}

// fixEFile patches the header start times, each data record's
// timestamp, the restart times following exit condition markers, and
// the trailing vehicle and sensor end times.
func fixEFile(b []byte) bool {
	changed := patchTime(b, 16) // sensor start
	changed = patchTime(b, 20) || changed

	i := 24
	for i+4 <= len(b) && !bytes.Equal(b[i:i+4], eFileEnd) {
		marker := false
		for _, m := range eFileMarkers {
			if bytes.Equal(b[i:i+4], m) {
				marker = true
				break
			}
		}
		if marker {
			i += 8
			changed = patchTime(b, i) || changed
			i += 8
		} else {
			changed = patchTime(b, i) || changed
			i += 30
		}
	}
	if i+4 <= len(b) {
		i += 8
		changed = patchTime(b, i) || changed // vehicle end
		changed = patchTime(b, i+4) || changed
	}
	return changed
}

// fixMFile patches the timestamp leading each fixed-size motion
// record, then the motion start and end times in the trailer.
func fixMFile(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	size := int(binary.BigEndian.Uint16(b))
	if size == 0 {
		return false
	}
	changed := false
	i := 2
	for len(b)-i > 64 {
		changed = patchTime(b, i) || changed
		i += size
	}
	i += size
	if i < len(b) {
		changed = patchTime(b, i) || changed
		changed = patchTime(b, i+4) || changed
	}
	return changed
}

var profilePattern = regexp.MustCompile(`^[ACEM](\d{7})\.DAT$`)

// CorrectTimestamps repairs the epoch-second fields of every profile
// file in dir. The A-file fix is limited to profiles at or below
// maxProfile, matching the range the firmware bug affected. Missing
// files for a profile are skipped; running twice is harmless since
// repaired times sit past the cutoff.
func CorrectTimestamps(dir string, maxProfile int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("wfp: %w", err)
	}
	fixed := 0
	for _, e := range entries {
		m := profilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		profile, _ := strconv.Atoi(m[1])
		path := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			log.Printf("wfp: skipping %s: %v", e.Name(), err)
			continue
		}

		var changed bool
		switch e.Name()[0] {
		case 'A':
			if profile > maxProfile {
				continue
			}
			changed = fixAFile(b)
		case 'C':
			changed, err = fixCFile(b)
			if err != nil {
				log.Printf("wfp: skipping %s: %v", e.Name(), err)
				continue
			}
		case 'E':
			changed = fixEFile(b)
		case 'M':
			changed = fixMFile(b)
		}
		if !changed {
			continue
		}
		if err := os.WriteFile(path, b, 0o644); err != nil {
			return fmt.Errorf("wfp: %w", err)
		}
		log.Printf("wfp: repaired timestamps in %s", e.Name())
		fixed++
	}
	log.Printf("wfp: repaired %d of the profile files in %s", fixed, dir)
	return nil
}
