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

// Package nctab reshapes NetCDF files into time-indexed tables. Every
// variable in the file is aligned to the length of the variable named
// "time": time-major arrays are kept, time-minor arrays transposed,
// scalars broadcast, and anything else dropped with a warning.
package nctab

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// timeVar is the required time coordinate; obsVar is the explicit row
// counter some producers add, which carries no information beyond the
// row index.
const (
	timeVar = "time"
	obsVar  = "obs"
)

// A FormatError indicates a structured file that cannot be tabulated at
// all, as opposed to a single non-conforming variable.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("nctab: %s: %s", e.Path, e.Reason)
}

// Column is one variable aligned to the table's time axis. Data has
// shape [N] for simple variables or [N, M] for time-major matrices.
type Column struct {
	Name        string
	Units       string
	Description string
	Data        *sparse.DenseArray
}

// Width is the number of scalar values the column holds per time step.
func (c *Column) Width() int {
	if len(c.Data.Shape) < 2 {
		return 1
	}
	return c.Data.Shape[1]
}

// Table is a time-indexed view of one structured file. Column order
// follows the order of variables in the file.
type Table struct {
	Times   []time.Time
	columns []*Column
	byName  map[string]*Column
}

// Len is the number of rows (time steps).
func (t *Table) Len() int { return len(t.Times) }

// Columns lists the table's columns in file order.
func (t *Table) Columns() []*Column { return t.columns }

// Column finds a column by variable name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.byName[name]
	return c, ok
}

func (t *Table) add(c *Column) {
	t.columns = append(t.columns, c)
	t.byName[c.Name] = c
}

// BuildTable reads the NetCDF file at path and aligns its variables to
// the time axis. A missing "time" variable is fatal for the file; a
// single non-conforming variable is dropped with a warning and the rest
// of the table is still returned.
func BuildTable(path string) (*Table, error) {
	return buildTable(path, time.Now())
}

func buildTable(path string, now time.Time) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nctab: %w", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("nctab: %s: %w", path, err)
	}

	names := ff.Header.Variables()
	hasTime := false
	for _, v := range names {
		if v == timeVar {
			hasTime = true
			break
		}
	}
	if !hasTime {
		return nil, &FormatError{Path: path, Reason: "no variable named \"time\""}
	}

	rawTime, err := readVar(ff, timeVar)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: err.Error()}
	}
	if len(rawTime) == 0 {
		return nil, &FormatError{Path: path, Reason: "empty time axis"}
	}

	epoch := ReferenceEpoch(rawTime[0], now)
	t := &Table{
		Times:  make([]time.Time, len(rawTime)),
		byName: make(map[string]*Column),
	}
	for i, raw := range rawTime {
		t.Times[i] = fromEpoch(epoch, raw)
	}
	n := len(t.Times)

	for _, name := range names {
		if name == timeVar || name == obsVar {
			continue
		}
		data, err := orient(ff, name, n)
		if err != nil {
			log.Printf("nctab: %s: dropping variable %s: %v", path, name, err)
			continue
		}
		t.add(&Column{
			Name:        name,
			Units:       textAttribute(ff, name, "units"),
			Description: textAttribute(ff, name, "long_name"),
			Data:        data,
		})
	}
	return t, nil
}

// orient reads variable name and reshapes it so the row dimension
// matches the time axis length n.
func orient(ff *cdf.File, name string, n int) (*sparse.DenseArray, error) {
	dims := ff.Header.Lengths(name)
	vals, err := readVar(ff, name)
	if err != nil {
		return nil, err
	}
	if len(vals) == 1 { // scalar: broadcast to the axis length
		out := sparse.ZerosDense(n)
		for i := 0; i < n; i++ {
			out.Elements[i] = vals[0]
		}
		return out, nil
	}
	switch len(dims) {
	case 1:
		if dims[0] != n {
			return nil, fmt.Errorf("length %d does not match time axis length %d", dims[0], n)
		}
		out := sparse.ZerosDense(n)
		copy(out.Elements, vals)
		return out, nil
	case 2:
		rows, cols := dims[0], dims[1]
		switch {
		case rows == n && cols == 1:
			out := sparse.ZerosDense(n)
			copy(out.Elements, vals)
			return out, nil
		case rows == n:
			out := sparse.ZerosDense(n, cols)
			copy(out.Elements, vals)
			return out, nil
		case cols == n && rows == 1:
			out := sparse.ZerosDense(n)
			copy(out.Elements, vals)
			return out, nil
		case cols == n:
			out := sparse.ZerosDense(n, rows)
			for i := 0; i < rows; i++ {
				for j := 0; j < cols; j++ {
					out.Set(vals[i*cols+j], j, i)
				}
			}
			return out, nil
		default:
			return nil, fmt.Errorf("shape %v does not match time axis length %d", dims, n)
		}
	default:
		return nil, fmt.Errorf("unsupported rank %d", len(dims))
	}
}

// readVar reads a whole variable as float64 regardless of its on-disk
// numeric type.
func readVar(ff *cdf.File, name string) ([]float64, error) {
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	switch v := buf.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int8:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("variable %s has non-numeric type %T", name, buf)
	}
}

// textAttribute fetches a string attribute, defaulting to "".
func textAttribute(ff *cdf.File, v, a string) string {
	if s, ok := ff.Header.GetAttribute(v, a).(string); ok {
		return s
	}
	return ""
}
