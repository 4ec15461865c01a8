package pipeline

import (
	"context"
	"errors"
	"time"

	"career-sync/internal/domain/recommend"
	"career-sync/internal/repository"

	"github.com/rs/zerolog"
)

// TrainingPipeline loads the corpus from its source and fits a fresh snapshot.
type TrainingPipeline struct {
	source repository.TableSource
	opts   recommend.Options
	log    zerolog.Logger
}

func NewTrainingPipeline(source repository.TableSource, opts recommend.Options, logger zerolog.Logger) *TrainingPipeline {
	return &TrainingPipeline{
		source: source,
		opts:   opts,
		log:    logger.With().Str("pipeline", "training").Logger(),
	}
}

func (p *TrainingPipeline) Source() string {
	if p == nil || p.source == nil {
		return ""
	}
	return p.source.Name()
}

func (p *TrainingPipeline) Train(ctx context.Context) (*recommend.Snapshot, error) {
	if p == nil || p.source == nil {
		return nil, errors.New("training pipeline: nil source")
	}
	start := time.Now()
	p.log.Info().Str("source", p.source.Name()).Str("status", "started").Msg("training")

	stepStart := time.Now()
	p.log.Info().Str("step", "load").Str("status", "started").Msg("training")
	corpus, err := p.source.LoadCorpus(ctx)
	if err != nil {
		p.log.Error().Err(err).Str("step", "load").Str("status", "error").Msg("training")
		return nil, err
	}
	p.log.Info().
		Str("step", "load").
		Str("status", "finished").
		Int("skill_rows", len(corpus.Skills)).
		Int("career_rows", len(corpus.Careers)).
		Int("trend_rows", len(corpus.Trends)).
		Dur("duration", time.Since(stepStart)).
		Msg("training")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stepStart = time.Now()
	p.log.Info().Str("step", "build").Str("status", "started").Msg("training")
	snap, err := recommend.Build(corpus, p.opts)
	if err != nil {
		p.log.Error().Err(err).Str("step", "build").Str("status", "error").Msg("training")
		return nil, err
	}
	info := snap.Info()
	p.log.Info().
		Str("step", "build").
		Str("status", "finished").
		Str("snapshot_id", info.ID.String()).
		Int("samples", info.Samples).
		Int("classes", len(info.Classes)).
		Int("vocabulary", info.Vocabulary).
		Dur("duration", time.Since(stepStart)).
		Msg("training")

	for _, c := range info.CareerConflicts {
		p.log.Warn().Str("career", c.Career).Int("rows", c.Rows).Msg("career rows disagree, first row wins")
	}
	for _, d := range info.TrendDuplicates {
		p.log.Warn().Str("industry", d.Industry).Int("rows", d.Rows).Msg("duplicate industry trend, first row wins")
	}

	p.log.Info().Str("status", "finished").Dur("duration", time.Since(start)).Msg("training")
	return snap, nil
}
