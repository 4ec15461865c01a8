package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"career-sync/internal/domain/career"
)

type CSVTableSource struct {
	dir   string
	names TableNames
}

func NewCSVTableSource(dir string, names TableNames) *CSVTableSource {
	return &CSVTableSource{dir: dir, names: names.withDefaults()}
}

func (s *CSVTableSource) Name() string { return "csv:" + s.dir }

func (s *CSVTableSource) LoadCorpus(ctx context.Context) (career.Corpus, error) {
	return loadCSVCorpus(ctx, s.names, func(_ context.Context, name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(s.dir, name))
	})
}
