package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-sync/internal/database"
	"career-sync/internal/domain/career"
)

// PostgresTableSource reads the corpus from skill_samples, career_records and
// industry_trends, each ordered by position.
type PostgresTableSource struct {
	db database.DB
}

func NewPostgresTableSource(db database.DB) *PostgresTableSource {
	return &PostgresTableSource{db: db}
}

func (s *PostgresTableSource) Name() string { return "postgres" }

func (s *PostgresTableSource) LoadCorpus(ctx context.Context) (career.Corpus, error) {
	if s == nil || s.db == nil {
		return career.Corpus{}, errors.New("nil db")
	}

	skills, err := s.listSkillSamples(ctx)
	if err != nil {
		return career.Corpus{}, fmt.Errorf("load skill_samples: %w", err)
	}
	careers, err := s.listCareerRecords(ctx)
	if err != nil {
		return career.Corpus{}, fmt.Errorf("load career_records: %w", err)
	}
	trends, err := s.listIndustryTrends(ctx)
	if err != nil {
		return career.Corpus{}, fmt.Errorf("load industry_trends: %w", err)
	}

	return career.Corpus{Skills: skills, Careers: careers, Trends: trends}, nil
}

func (s *PostgresTableSource) listSkillSamples(ctx context.Context) ([]career.SkillSample, error) {
	rows, err := s.db.Query(ctx,
		`SELECT COALESCE(sample_id, ''), skills
		 FROM skill_samples
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]career.SkillSample, 0)
	for rows.Next() {
		var r career.SkillSample
		if err := rows.Scan(&r.SampleID, &r.Skills); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresTableSource) listCareerRecords(ctx context.Context) ([]career.CareerRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT COALESCE(sample_id, ''), career, average_salary, required_skills, job_growth, industry
		 FROM career_records
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]career.CareerRecord, 0)
	for rows.Next() {
		var r career.CareerRecord
		if err := rows.Scan(&r.SampleID, &r.Career, &r.AverageSalary, &r.RequiredSkills, &r.JobGrowth, &r.Industry); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresTableSource) listIndustryTrends(ctx context.Context) ([]career.IndustryTrend, error) {
	rows, err := s.db.Query(ctx,
		`SELECT industry, COALESCE(attributes::text, '{}')
		 FROM industry_trends
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]career.IndustryTrend, 0)
	for rows.Next() {
		var industry, raw string
		if err := rows.Scan(&industry, &raw); err != nil {
			return nil, err
		}
		attrs, err := decodeAttributes(raw)
		if err != nil {
			return nil, fmt.Errorf("industry %q: %w", industry, err)
		}
		out = append(out, career.IndustryTrend{Industry: industry, Attributes: attrs})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceCorpus rewrites all three tables inside one transaction.
func (s *PostgresTableSource) ReplaceCorpus(ctx context.Context, corpus career.Corpus) (err error) {
	if s == nil || s.db == nil {
		return errors.New("nil db")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `TRUNCATE skill_samples, career_records, industry_trends RESTART IDENTITY`); err != nil {
		return err
	}

	for i, r := range corpus.Skills {
		if _, err = tx.Exec(ctx,
			`INSERT INTO skill_samples (position, sample_id, skills) VALUES ($1, NULLIF($2, ''), $3)`,
			i, r.SampleID, r.Skills,
		); err != nil {
			return fmt.Errorf("insert skill sample %d: %w", i, err)
		}
	}

	for i, r := range corpus.Careers {
		if _, err = tx.Exec(ctx,
			`INSERT INTO career_records (position, sample_id, career, average_salary, required_skills, job_growth, industry)
			 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)`,
			i, r.SampleID, r.Career, r.AverageSalary, r.RequiredSkills, r.JobGrowth, r.Industry,
		); err != nil {
			return fmt.Errorf("insert career record %d: %w", i, err)
		}
	}

	for i, r := range corpus.Trends {
		attrs := r.Attributes
		if attrs == nil {
			attrs = map[string]any{}
		}
		b, mErr := json.Marshal(attrs)
		if mErr != nil {
			err = mErr
			return err
		}
		if _, err = tx.Exec(ctx,
			`INSERT INTO industry_trends (position, industry, attributes) VALUES ($1, $2, $3::jsonb)`,
			i, r.Industry, string(b),
		); err != nil {
			return fmt.Errorf("insert industry trend %d: %w", i, err)
		}
	}

	err = tx.Commit(ctx)
	return err
}

// decodeAttributes keeps integral JSON numbers as int64 so trends read from the database
// look the same as trends parsed from CSV.
func decodeAttributes(raw string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	for k, v := range m {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			m[k] = i
			continue
		}
		if f, err := n.Float64(); err == nil {
			m[k] = f
			continue
		}
		m[k] = n.String()
	}
	return m, nil
}
