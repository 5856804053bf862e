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

	"github.com/spf13/cobra"

	"github.com/oceanobservatories/ooicgsn-data-tools/wfp"
)

var maxProfile int

func init() {
	wfpTimefixCmd.Flags().IntVar(&maxProfile, "max-profile", 178,
		"Highest profile number with the A-file clock fault.")
}

var wfpCmd = &cobra.Command{
	Use:   "wfp",
	Short: "Repair raw McLane wire-following profiler files",
	Long: `wfp repairs raw profile files recovered from a McLane wire-following
profiler through the mooring controller, preparing them for the vendor
unpacker. Use the subcommands below.`,
	DisableAutoGenTag: true,
}

var wfpRenameCmd = &cobra.Command{
	Use:   "rename directory",
	Short: "Strip the inductive ID from controller file names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := wfp.Rename(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Renamed %d files in %s\n", n, args[0])
		return nil
	},
	DisableAutoGenTag: true,
}

var wfpTimefixCmd = &cobra.Command{
	Use:   "timefix directory",
	Short: "Repair the firmware 5.34 timestamp fault",
	Long: `timefix adds 80 years to the timestamps the profiler recorded as 1940
after its firmware rolled the clock back at the 2019 to 2020
transition, following the vendor's guidance. Already correct files
are left untouched, so the repair can be re-run safely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wfp.CorrectTimestamps(args[0], maxProfile)
	},
	DisableAutoGenTag: true,
}
