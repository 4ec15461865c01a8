package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"career-sync/internal/domain/career"
)

var ErrInvalidTable = errors.New("invalid table")

const (
	colSampleID       = "sample_id"
	colSkills         = "skills"
	colCareer         = "career"
	colAverageSalary  = "average_salary"
	colRequiredSkills = "required_skills"
	colJobGrowth      = "job_growth"
	colIndustry       = "industry"
)

type csvTable struct {
	name    string
	header  []string
	columns map[string]int
	rows    [][]string
}

func readTable(name string, r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: missing header", ErrInvalidTable, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, name, err)
	}

	t := &csvTable{name: name, columns: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.header = append(t.header, h)
		if _, dup := t.columns[h]; !dup {
			t.columns[h] = i
		}
	}
	for _, c := range required {
		if _, ok := t.columns[c]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrInvalidTable, name, c)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, name, err)
		}
		if blankRecord(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) float(row []string, line int, col string) (float64, error) {
	raw := t.get(row, col)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s row %d: %s is empty", ErrInvalidTable, t.name, line, col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s row %d: %s=%q is not a number", ErrInvalidTable, t.name, line, col, raw)
	}
	return v, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func ParseSkillSamples(name string, r io.Reader) ([]career.SkillSample, error) {
	t, err := readTable(name, r, colSkills)
	if err != nil {
		return nil, err
	}
	out := make([]career.SkillSample, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, career.SkillSample{
			SampleID: t.get(row, colSampleID),
			Skills:   t.get(row, colSkills),
		})
	}
	return out, nil
}

func ParseCareerRecords(name string, r io.Reader) ([]career.CareerRecord, error) {
	t, err := readTable(name, r, colCareer, colAverageSalary, colRequiredSkills, colJobGrowth, colIndustry)
	if err != nil {
		return nil, err
	}
	out := make([]career.CareerRecord, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		salary, err := t.float(row, line, colAverageSalary)
		if err != nil {
			return nil, err
		}
		if salary < 0 {
			return nil, fmt.Errorf("%w: %s row %d: %s=%v is negative", ErrInvalidTable, name, line, colAverageSalary, salary)
		}
		growth, err := t.float(row, line, colJobGrowth)
		if err != nil {
			return nil, err
		}
		out = append(out, career.CareerRecord{
			SampleID:       t.get(row, colSampleID),
			Career:         t.get(row, colCareer),
			AverageSalary:  salary,
			RequiredSkills: t.get(row, colRequiredSkills),
			JobGrowth:      growth,
			Industry:       t.get(row, colIndustry),
		})
	}
	return out, nil
}

// ParseIndustryTrends keeps every column besides industry as an attribute of the row.
func ParseIndustryTrends(name string, r io.Reader) ([]career.IndustryTrend, error) {
	t, err := readTable(name, r, colIndustry)
	if err != nil {
		return nil, err
	}
	out := make([]career.IndustryTrend, 0, len(t.rows))
	for _, row := range t.rows {
		attrs := make(map[string]any, len(t.header)-1)
		for i, h := range t.header {
			if h == colIndustry || h == "" {
				continue
			}
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			attrs[h] = ParseAttribute(raw)
		}
		out = append(out, career.IndustryTrend{Industry: t.get(row, colIndustry), Attributes: attrs})
	}
	return out, nil
}

// ParseAttribute types a raw cell: integers as int64, other numbers as float64, empty or NaN
// as nil, anything else as the trimmed string.
func ParseAttribute(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) {
			return nil
		}
		if !math.IsInf(v, 0) {
			return v
		}
	}
	return s
}
