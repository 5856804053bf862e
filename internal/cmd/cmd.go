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

// Package cmd wires the ooitools command line interface together.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the ooitools release number.
const Version = "1.2.0"

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(echogramCmd)
	Root.AddCommand(nctableCmd)
	Root.AddCommand(wfpCmd)
	wfpCmd.AddCommand(wfpRenameCmd)
	wfpCmd.AddCommand(wfpTimefixCmd)
	Root.AddCommand(ingestCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "ooitools",
	Short: "Utilities for reviewing OOI coastal and global mooring data.",
	Long: `ooitools collects the data review utilities used by the OOI
Coastal and Global Scale Nodes team: echogram generation from ZPLSC/G
bioacoustic sonar data, NetCDF table extraction, McLane profiler raw
file repair, and ingestion request preparation.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ooitools v%s\n", Version)
	},
	DisableAutoGenTag: true,
}
