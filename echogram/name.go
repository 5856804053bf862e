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

package echogram

import (
	"fmt"
	"time"
)

// OutputName builds the base name shared by the NetCDF and PNG outputs:
// {subsite_}{Rdeployment_}SN{serial}_{start}-{end}. The subsite and
// deployment segments are omitted entirely, not left blank, when
// unspecified.
func OutputName(serial int, start, end time.Time, subsite, deployment string) string {
	name := ""
	if subsite != "" {
		name += subsite + "_"
	}
	if deployment != "" {
		name += "R" + deployment + "_"
	}
	return fmt.Sprintf("%sSN%d_%s-%s", name, serial,
		start.Format("20060102"), end.Format("20060102"))
}
