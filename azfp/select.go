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
	"io/fs"
	"log"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Raw file names encode a compact timestamp: 2-digit year, month, day and
// hour, optionally followed by a sequence number, with a .01A extension.
// The instrument stores them under YYYYMM subdirectories, but selection
// keys on the name alone.
var rawNamePattern = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})(\d{2})`)

// ParseFileTime decodes the timestamp embedded in a raw file name such as
// "20011800.01A" (2020-01-18, hour 00). The name must be a base name, not
// a path.
func ParseFileTime(name string) (time.Time, error) {
	m := rawNamePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, fmt.Errorf("azfp: file name %q does not encode a timestamp", name)
	}
	yy, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	dd, _ := strconv.Atoi(m[3])
	hh, _ := strconv.Atoi(m[4])
	if mm < 1 || mm > 12 || hh > 23 {
		return time.Time{}, fmt.Errorf("azfp: file name %q does not encode a timestamp", name)
	}
	t := time.Date(2000+yy, time.Month(mm), dd, hh, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (e.g. Feb 30); reject those.
	if t.Day() != dd {
		return time.Time{}, fmt.Errorf("azfp: file name %q does not encode a timestamp", name)
	}
	return t, nil
}

// SelectFiles walks the directory tree rooted at dir and returns the raw
// .01A files whose encoded calendar day falls within [start, end]
// inclusive. Files whose names do not decode are skipped with a warning.
// The result is sorted ascending by encoded timestamp, with the full path
// breaking ties, so downstream plot order is deterministic.
func SelectFiles(dir string, start, end time.Time) ([]string, error) {
	type entry struct {
		t    time.Time
		path string
	}
	var entries []entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".01A") {
			return nil
		}
		t, err := ParseFileTime(d.Name())
		if err != nil {
			log.Printf("azfp: skipping %s: %v", path, err)
			return nil
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start) || day.After(end) {
			return nil
		}
		entries = append(entries, entry{t: t, path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("azfp: scanning %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].t.Equal(entries[j].t) {
			return entries[i].t.Before(entries[j].t)
		}
		return entries[i].path < entries[j].path
	})
	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.path
	}
	return files, nil
}
