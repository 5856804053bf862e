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

// Package wfp repairs raw McLane wire-following profiler files
// recovered through the mooring controller: renaming them so the
// vendor unpacker accepts them, and patching the bad timestamps
// written by firmware version 5.34.
package wfp

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
)

// The controller prefixes each profile file with the inductive modem
// ID. The vendor unpacker wants plain seven digit profile numbers,
// so A1230042.DEC becomes A0000042.DAT.
var renamePatterns = []struct {
	re  *regexp.Regexp
	sub string
}{
	{regexp.MustCompile(`^A\d{3}(\d{4})\.DEC$`), "A000$1.DAT"},
	{regexp.MustCompile(`^C\d{3}(\d{4})\.DAT$`), "C000$1.DAT"},
	{regexp.MustCompile(`^E\d{3}(\d{4})\.DAT$`), "E000$1.DAT"},
}

// Rename rewrites controller-downloaded profile file names in dir to
// the form the McLane unpacker expects, dropping the inductive ID
// digits. It returns the number of files renamed.
func Rename(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("wfp: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, p := range renamePatterns {
			if !p.re.MatchString(e.Name()) {
				continue
			}
			name := p.re.ReplaceAllString(e.Name(), p.sub)
			if name == e.Name() {
				break
			}
			if err := os.Rename(filepath.Join(dir, e.Name()), filepath.Join(dir, name)); err != nil {
				return n, fmt.Errorf("wfp: %w", err)
			}
			log.Printf("wfp: %s -> %s", e.Name(), name)
			n++
			break
		}
	}
	return n, nil
}
