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
	"os"

	"github.com/spf13/cobra"

	"github.com/oceanobservatories/ooicgsn-data-tools/nctab"
)

var nctableCmd = &cobra.Command{
	Use:   "nctable input.nc [output.csv]",
	Short: "Flatten a NetCDF data file into a CSV table",
	Long: `nctable loads a downloaded NetCDF data file, orients every variable
along the time axis, and writes the result as a CSV table to the given
output path or standard output. Variables that cannot be aligned with
the time axis are dropped with a warning.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := nctab.BuildTable(args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return tbl.WriteCSV(os.Stdout)
		}
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		if err := tbl.WriteCSV(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
	DisableAutoGenTag: true,
}
