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

// Package azfp handles raw data from the ASL Acoustic Zooplankton and Fish
// Profiler (the OOI ZPLSC/G instrument): per-hour .01A burst files, the
// instrument calibration XML, and conversion of raw counts to volume
// backscattering strength.
package azfp

import (
	"fmt"
	"time"
)

// Date layouts accepted for command line date tokens.
const (
	dayFormat   = "20060102"
	monthFormat = "200601"
)

// A ParseError indicates a date token that is not an 8-digit YYYYMMDD day
// or a 6-digit YYYYMM month.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("azfp: invalid date token %q: expected YYYYMMDD or YYYYMM: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// A RangeError indicates a resolved date range whose start falls after
// its end.
type RangeError struct {
	Start, End time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("azfp: start date %s is after end date %s",
		e.Start.Format(dayFormat), e.End.Format(dayFormat))
}

// parseToken resolves a single date token to the first and last calendar
// days it covers. A day token covers itself; a month token covers the
// whole month, accounting for the month's actual length.
func parseToken(token string) (first, last time.Time, err error) {
	switch len(token) {
	case 8:
		t, err := time.ParseInLocation(dayFormat, token, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, &ParseError{Token: token, Err: err}
		}
		return t, t, nil
	case 6:
		t, err := time.ParseInLocation(monthFormat, token, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, &ParseError{Token: token, Err: err}
		}
		return t, t.AddDate(0, 1, -1), nil
	default:
		return time.Time{}, time.Time{}, &ParseError{Token: token,
			Err: fmt.Errorf("token has %d digits", len(token))}
	}
}

// ResolveRange expands one or two date tokens into a closed calendar-day
// interval [start, end]. A single day token yields a one-day range, a
// single month token the whole month, and a pair of tokens the span from
// the earliest boundary of the first to the latest boundary of the second.
// Times are UTC midnights.
func ResolveRange(tokens []string) (start, end time.Time, err error) {
	switch len(tokens) {
	case 1:
		return parseToken(tokens[0])
	case 2:
		start, _, err = parseToken(tokens[0])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		_, end, err = parseToken(tokens[1])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, &RangeError{Start: start, End: end}
		}
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("azfp: expected one or two date tokens, got %d", len(tokens))
	}
}
