// Package catalog loads the internship posting catalog from a CSV source and
// validates it into typed PostingRecord values.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/internship-matcher/internal/skills"
	"github.com/jonathan/internship-matcher/internal/types"
)

// Required catalog columns. Header names are whitespace-trimmed before
// matching.
const (
	columnTitle          = "title"
	columnDescription    = "description"
	columnRequiredSkills = "required_skills"
	columnCompany        = "company"
)

// linkColumns are the accepted application-link column names, in priority
// order; the first one present is normalized to the record's Link field.
var linkColumns = []string{"link", "url", "apply_link", "apply_url", "application_link"}

// Report summarizes one catalog load for operator visibility.
type Report struct {
	Rows      int // rows parsed into records
	Malformed int // rows that needed per-row recovery
}

// Load reads and validates the catalog at path. A missing file or a missing
// required column is an error; malformed rows are recovered per-row (empty
// skill list, blank fields) and counted in the report, so they still
// participate in ranking on the remaining signals. An empty catalog is valid
// and yields zero records.
func Load(path string) ([]types.PostingRecord, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Report{}, &NotFoundError{Path: path}
		}
		return nil, Report{}, err
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) ([]types.PostingRecord, Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		// A file without even a header carries no postings.
		return nil, Report{}, &ColumnError{Column: columnTitle}
	}
	if err != nil {
		return nil, Report{}, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnTitle, columnDescription, columnRequiredSkills} {
		if _, ok := index[required]; !ok {
			return nil, Report{}, &ColumnError{Column: required}
		}
	}

	linkIdx := -1
	for _, name := range linkColumns {
		if i, ok := index[name]; ok {
			linkIdx = i
			break
		}
	}
	companyIdx := -1
	if i, ok := index[columnCompany]; ok {
		companyIdx = i
	}

	validate := validator.New()

	var records []types.PostingRecord
	var report Report
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Unreadable row: recover by skipping it rather than failing
			// the whole catalog.
			report.Malformed++
			continue
		}

		rec := types.PostingRecord{
			ID:                int64(len(records)),
			Title:             strings.TrimSpace(field(row, index[columnTitle])),
			Description:       strings.TrimSpace(field(row, index[columnDescription])),
			RequiredSkillsRaw: strings.TrimSpace(field(row, index[columnRequiredSkills])),
		}
		if companyIdx >= 0 {
			rec.Company = strings.TrimSpace(field(row, companyIdx))
		}
		if linkIdx >= 0 {
			rec.Link = strings.TrimSpace(field(row, linkIdx))
		}
		rec.RequiredSkills = skills.SplitRequiredSkills(rec.RequiredSkillsRaw)

		if len(row) <= maxIndex(index[columnTitle], index[columnDescription], index[columnRequiredSkills]) {
			report.Malformed++
		} else if err := validate.Struct(&rec); err != nil {
			report.Malformed++
		}

		records = append(records, rec)
		report.Rows++
	}

	return records, report, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func maxIndex(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// FileSource adapts a catalog file path to the pipeline's posting source
// interface, logging the load report.
type FileSource struct {
	Path string
	Log  zerolog.Logger
}

// Postings loads the catalog, reporting malformed rows to the operator log.
func (s *FileSource) Postings(_ context.Context) ([]types.PostingRecord, error) {
	records, report, err := Load(s.Path)
	if err != nil {
		return nil, err
	}
	if report.Malformed > 0 {
		s.Log.Warn().
			Int("rows", report.Rows).
			Int("malformed", report.Malformed).
			Str("path", s.Path).
			Msg("catalog rows recovered with defaults")
	}
	return records, nil
}
