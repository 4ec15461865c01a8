package repository

import (
	"context"
	"fmt"
	"io"

	"career-sync/internal/domain/career"
)

// TableSource loads the three training tables in one go. Implementations return rows in
// table order.
type TableSource interface {
	Name() string
	LoadCorpus(ctx context.Context) (career.Corpus, error)
}

type TableNames struct {
	Skills  string
	Careers string
	Trends  string
}

func DefaultTableNames() TableNames {
	return TableNames{
		Skills:  "skills_data.csv",
		Careers: "career_data.csv",
		Trends:  "industry_trends.csv",
	}
}

func (n TableNames) withDefaults() TableNames {
	d := DefaultTableNames()
	if n.Skills == "" {
		n.Skills = d.Skills
	}
	if n.Careers == "" {
		n.Careers = d.Careers
	}
	if n.Trends == "" {
		n.Trends = d.Trends
	}
	return n
}

type openFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// loadCSVCorpus reads the three CSV tables through open, one at a time.
func loadCSVCorpus(ctx context.Context, names TableNames, open openFunc) (career.Corpus, error) {
	var corpus career.Corpus

	err := withTable(ctx, names.Skills, open, func(r io.Reader) (err error) {
		corpus.Skills, err = ParseSkillSamples(names.Skills, r)
		return err
	})
	if err != nil {
		return career.Corpus{}, err
	}

	err = withTable(ctx, names.Careers, open, func(r io.Reader) (err error) {
		corpus.Careers, err = ParseCareerRecords(names.Careers, r)
		return err
	})
	if err != nil {
		return career.Corpus{}, err
	}

	err = withTable(ctx, names.Trends, open, func(r io.Reader) (err error) {
		corpus.Trends, err = ParseIndustryTrends(names.Trends, r)
		return err
	})
	if err != nil {
		return career.Corpus{}, err
	}

	return corpus, nil
}

func withTable(ctx context.Context, name string, open openFunc, parse func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rc, err := open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	return parse(rc)
}
