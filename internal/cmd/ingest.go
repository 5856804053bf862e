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
	"log"

	"github.com/spf13/cobra"

	"github.com/oceanobservatories/ooicgsn-data-tools/ingest"
)

var (
	ingestOut  string
	ingestUser string
)

func init() {
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "Directory to write the request files to.")
	ingestCmd.Flags().StringVar(&ingestUser, "user", "", "Email address to submit the requests under.")
	ingestCmd.MarkFlagRequired("out")
	ingestCmd.MarkFlagRequired("user")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest sheet.csv... --out directory --user email",
	Short: "Shape ingestion sheets into ingest request files",
	Long: `ingest parses OOI ingestion sheets and writes one JSON ingest request
per usable row to the output directory. Rows with malformed reference
designators or unknown data sources are reported and skipped, as are
cabled platforms, which are ingested through a different system.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		total := 0
		for _, sheet := range args {
			rows, err := ingest.ReadSheet(sheet)
			if err != nil {
				log.Printf("%v", err)
				continue
			}
			n, err := ingest.WriteRequests(rows, ingestUser, ingestOut)
			if err != nil {
				return err
			}
			total += n
		}
		if total == 0 {
			return fmt.Errorf("no ingest requests produced from %d sheets", len(args))
		}
		fmt.Printf("Wrote %d ingest requests to %s\n", total, ingestOut)
		return nil
	},
	DisableAutoGenTag: true,
}
