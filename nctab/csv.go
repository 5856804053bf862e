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

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes the table with one row per time step. Multi-valued
// columns fan out into name_1..name_M headers.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{timeVar}
	for _, c := range t.columns {
		if m := c.Width(); m > 1 {
			for j := 1; j <= m; j++ {
				header = append(header, fmt.Sprintf("%s_%d", c.Name, j))
			}
		} else {
			header = append(header, c.Name)
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("nctab: writing csv: %w", err)
	}
	row := make([]string, 0, len(header))
	for i, tm := range t.Times {
		row = row[:0]
		row = append(row, tm.UTC().Format(time.RFC3339Nano))
		for _, c := range t.columns {
			m := c.Width()
			for j := 0; j < m; j++ {
				var v float64
				if m > 1 {
					v = c.Data.Get(i, j)
				} else {
					v = c.Data.Get(i)
				}
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("nctab: writing csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
