package seeder

import (
	"context"
	"errors"

	"career-sync/internal/database"
	"career-sync/internal/repository"
)

// CorpusSeeder copies the three training tables from Source into Postgres, replacing
// whatever was stored before.
type CorpusSeeder struct {
	Source repository.TableSource
}

func (s CorpusSeeder) Name() string {
	if s.Source == nil {
		return "corpus"
	}
	return "corpus(" + s.Source.Name() + ")"
}

func (s CorpusSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Source == nil {
		return errors.New("corpus seeder: nil source")
	}
	corpus, err := s.Source.LoadCorpus(ctx)
	if err != nil {
		return err
	}
	return repository.NewPostgresTableSource(db).ReplaceCorpus(ctx, corpus)
}
