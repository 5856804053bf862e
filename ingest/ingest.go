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

// Package ingest turns OOI ingestion sheets, the per-deployment CSV
// files kept under asset management, into ingest request records
// ready for submission to the data system.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const priority = 1

// refDesPattern is the SITE-NODE-NN-SENSOR reference designator shape,
// e.g. CE01ISSM-MFD37-07-ZPLSCC000.
var refDesPattern = regexp.MustCompile(`^[A-Z0-9]{8}-[A-Z0-9]{5}-[0-9]{2}-[A-Z0-9]+$`)

// Cabled platforms are ingested through a different system and are
// dropped from the sheet.
var cabledPrefixes = []string{"RS", "CE02SHBP", "CE04OSBP", "CE04OSPD", "CE04OSPS"}

// The mobile CTDMO units are decoded against the wildcard designator,
// so their rows must not pin refDes as final.
var wildcardRefDes = map[string]bool{
	"GA03FLMA-RIM01-02-CTDMOG000": true,
	"GA03FLMB-RIM01-02-CTDMOG000": true,
	"GI03FLMA-RIM01-02-CTDMOG000": true,
	"GI03FLMB-RIM01-02-CTDMOG000": true,
	"GP03FLMA-RIM01-02-CTDMOG000": true,
	"GP03FLMB-RIM01-02-CTDMOG000": true,
	"GS03FLMA-RIM01-02-CTDMOG000": true,
	"GS03FLMB-RIM01-02-CTDMOG000": true,
}

var dataSources = map[string]bool{
	"telemetered":    true,
	"recovered_host": true,
	"recovered_inst": true,
}

// Row is one entry of an ingestion sheet.
type Row struct {
	FileMask     string
	RefDes       string
	DataSource   string
	ParserDriver string
	Deployment   int
}

// FileMaskEntry is the per-mask portion of an ingest request.
type FileMaskEntry struct {
	ParserDriver string `json:"parserDriver"`
	FileMask     string `json:"fileMask"`
	DataSource   string `json:"dataSource"`
	Deployment   int    `json:"deployment"`
	RefDes       string `json:"refDes"`
	RefDesFinal  string `json:"refDesFinal"`
}

// Request is the payload the data system expects for one ingestion.
type Request struct {
	Username  string          `json:"username"`
	State     string          `json:"state"`
	FileMasks []FileMaskEntry `json:"ingestRequestFileMasks"`
	Type      string          `json:"type"`
	Priority  int             `json:"priority"`
}

// deploymentPattern is the deployment path component of a file mask,
// R00015 for recovered deployments or D00015 for telemetered ones.
var deploymentPattern = regexp.MustCompile(`^[RD]([0-9]+)$`)

// deploymentNumber pulls the deployment out of the file mask, the
// path component shaped like .../R00015/....
func deploymentNumber(mask string) (int, error) {
	for _, part := range strings.Split(mask, "/") {
		if m := deploymentPattern.FindStringSubmatch(part); m != nil {
			return strconv.Atoi(m[1])
		}
	}
	return 0, fmt.Errorf("no deployment number in mask %q", mask)
}

// validate checks one parsed row against the sheet conventions.
func validate(r Row) error {
	if r.FileMask == "" {
		return fmt.Errorf("empty filename_mask")
	}
	if !strings.HasPrefix(r.FileMask, "/") {
		return fmt.Errorf("filename_mask %q is not an absolute path", r.FileMask)
	}
	if !refDesPattern.MatchString(r.RefDes) {
		return fmt.Errorf("malformed reference designator %q", r.RefDes)
	}
	if !dataSources[r.DataSource] {
		return fmt.Errorf("unknown data source %q", r.DataSource)
	}
	if r.ParserDriver == "" {
		return fmt.Errorf("empty parser driver")
	}
	return nil
}

func cabled(refDes string) bool {
	for _, p := range cabledPrefixes {
		if strings.HasPrefix(refDes, p) {
			return true
		}
	}
	return false
}

// ReadSheet parses an ingestion CSV. The header row names the columns;
// rows that fail validation, are commented out, or belong to cabled
// platforms are logged and skipped rather than failing the sheet.
func ReadSheet(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading header of %s: %w", path, err)
	}
	col := make(map[string]int)
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	field := func(rec []string, names ...string) string {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
		}
		return ""
	}
	for _, want := range []string{"filename_mask", "reference_designator", "data_source"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("ingest: %s has no %s column", path, want)
		}
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("ingest: %s line %d: %v", path, line, err)
			continue
		}
		r := Row{
			FileMask:     field(rec, "filename_mask"),
			RefDes:       field(rec, "reference_designator"),
			DataSource:   field(rec, "data_source"),
			ParserDriver: field(rec, "parser_driver", "parser"),
		}
		if r.ParserDriver == "" || strings.HasPrefix(r.FileMask, "#") ||
			strings.Contains(r.ParserDriver, "#") {
			continue // commented out
		}
		if cabled(r.RefDes) {
			log.Printf("ingest: %s line %d: skipping cabled platform %s", path, line, r.RefDes)
			continue
		}
		if err := validate(r); err != nil {
			log.Printf("ingest: %s line %d: %v", path, line, err)
			continue
		}
		if r.Deployment, err = deploymentNumber(r.FileMask); err != nil {
			log.Printf("ingest: %s line %d: %v", path, line, err)
			continue
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ingest: no usable rows in %s", path)
	}
	return rows, nil
}

// BuildRequest shapes one sheet row into an ingest request for the
// given user. Requests start in the RUN state at the standard
// priority; telemetered rows produce recurring requests.
func BuildRequest(r Row, username string) *Request {
	final := "true"
	if wildcardRefDes[r.RefDes] {
		final = "false"
	}
	typ := "RECOVERED"
	if r.DataSource == "telemetered" {
		typ = "TELEMETERED"
	}
	return &Request{
		Username: username,
		State:    "RUN",
		Type:     typ,
		Priority: priority,
		FileMasks: []FileMaskEntry{{
			ParserDriver: r.ParserDriver,
			FileMask:     r.FileMask,
			DataSource:   r.DataSource,
			Deployment:   r.Deployment,
			RefDes:       r.RefDes,
			RefDesFinal:  final,
		}},
	}
}

// WriteRequests shapes every row and writes each request to outDir as
// {refdes}_R{deployment}_{source}.json. Rows that repeat the same
// designator, deployment, and source get a numeric suffix so no
// request file overwrites another. It returns the number of request
// files written.
func WriteRequests(rows []Row, username, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("ingest: %w", err)
	}
	n := 0
	seen := make(map[string]int)
	for _, r := range rows {
		req := BuildRequest(r, username)
		b, err := json.MarshalIndent(req, "", "  ")
		if err != nil {
			return n, fmt.Errorf("ingest: %w", err)
		}
		name := fmt.Sprintf("%s_R%05d_%s", r.RefDes, r.Deployment, r.DataSource)
		seen[name]++
		if c := seen[name]; c > 1 {
			log.Printf("ingest: %d rows share %s, writing copy %d", c, name, c)
			name = fmt.Sprintf("%s_%d", name, c)
		}
		name += ".json"
		if err := os.WriteFile(filepath.Join(outDir, name), b, 0o644); err != nil {
			return n, fmt.Errorf("ingest: %w", err)
		}
		n++
	}
	return n, nil
}
