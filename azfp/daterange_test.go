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
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		tokens     []string
		start, end time.Time
	}{
		{[]string{"20200118"}, day(2020, 1, 18), day(2020, 1, 18)},
		{[]string{"202001"}, day(2020, 1, 1), day(2020, 1, 31)},
		{[]string{"202002"}, day(2020, 2, 1), day(2020, 2, 29)}, // leap year
		{[]string{"201902"}, day(2019, 2, 1), day(2019, 2, 28)},
		{[]string{"201904"}, day(2019, 4, 1), day(2019, 4, 30)},
		{[]string{"20200118", "20200220"}, day(2020, 1, 18), day(2020, 2, 20)},
		{[]string{"202001", "202002"}, day(2020, 1, 1), day(2020, 2, 29)},
		{[]string{"20200118", "202002"}, day(2020, 1, 18), day(2020, 2, 29)},
		{[]string{"202001", "20200205"}, day(2020, 1, 1), day(2020, 2, 5)},
	}
	for _, test := range tests {
		start, end, err := ResolveRange(test.tokens)
		if err != nil {
			t.Errorf("%v: %v", test.tokens, err)
			continue
		}
		if !start.Equal(test.start) || !end.Equal(test.end) {
			t.Errorf("%v: have [%v, %v], want [%v, %v]",
				test.tokens, start, end, test.start, test.end)
		}
	}
}

func TestResolveRangeParseError(t *testing.T) {
	for _, tokens := range [][]string{
		{"2020"},
		{"2020011"},
		{"20200132"},  // day out of range
		{"20190229"},  // not a leap year
		{"202013"},    // month out of range
		{"2020018a"},  // not numeric
		{"20200101", "20x00102"},
		{},
		{"20200101", "20200102", "20200103"},
	} {
		_, _, err := ResolveRange(tokens)
		if err == nil {
			t.Errorf("%v: expected an error", tokens)
		}
	}

	var perr *ParseError
	_, _, err := ResolveRange([]string{"202013"})
	if !errors.As(err, &perr) {
		t.Errorf("202013: have %T, want *ParseError", err)
	}
}

func TestResolveRangeInverted(t *testing.T) {
	var rerr *RangeError
	_, _, err := ResolveRange([]string{"20200220", "20200118"})
	if !errors.As(err, &rerr) {
		t.Fatalf("have %T (%v), want *RangeError", err, err)
	}
	// Month tokens resolve to boundaries before the ordering check.
	if _, _, err := ResolveRange([]string{"202003", "202002"}); err == nil {
		t.Error("202003..202002: expected a RangeError")
	}
	// Overlapping months are fine: start of the first precedes the end
	// of the second.
	if _, _, err := ResolveRange([]string{"202002", "202002"}); err != nil {
		t.Errorf("202002..202002: %v", err)
	}
}
