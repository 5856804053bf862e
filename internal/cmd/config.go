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

package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/oceanobservatories/ooicgsn-data-tools/echogram"
)

// ConfigData holds the optional configuration file contents. Mooring
// entries replace the builtin site table wholesale, letting a review
// adjust plotting ranges for a nonstandard deployment.
type ConfigData struct {
	// Temperature is the nominal water temperature [°C] used for the
	// sound speed and absorption models.
	Temperature float64

	Moorings map[string]echogram.Mooring
}

// defaultConfig applies when no configuration file is given.
var defaultConfig = ConfigData{Temperature: 10}

// readConfig loads a TOML configuration file, expanding environment
// variables in its text first.
func readConfig(path string) (*ConfigData, error) {
	cfg := defaultConfig
	if path == "" {
		return &cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if _, err := toml.Decode(os.ExpandEnv(string(b)), &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}
	return &cfg, nil
}
