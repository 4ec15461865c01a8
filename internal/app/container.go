package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-sync/internal/config"
	"career-sync/internal/database"
	dbpostgres "career-sync/internal/database/postgres"
	"career-sync/internal/domain/model/forest"
	"career-sync/internal/domain/recommend"
	"career-sync/internal/infrastructure/cache"
	"career-sync/internal/logger"
	"career-sync/internal/pipeline"
	"career-sync/internal/repository"
	"career-sync/internal/usecase"
	"career-sync/internal/ws"

	"github.com/rs/zerolog"
)

type Container struct {
	Config config.Config
	Logger zerolog.Logger

	DB     database.DB
	Cache  *cache.Redis
	Source repository.TableSource
	Hub    *ws.Hub

	Store          *usecase.SnapshotStore
	Recommendation *usecase.Recommendation
	Model          *usecase.Model
}

func NewContainer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: log}

	if cfg.Database.Enabled() {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(dbCtx, cfg.Database)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db
	}

	source, err := NewTableSource(ctx, cfg, c.DB)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Source = source

	c.Cache = cache.NewRedis(cfg.Redis, logger.Component(log, "cache"))
	c.Hub = ws.NewHub(logger.Component(log, "ws"))
	ws.SetDefaultHub(c.Hub)

	c.Store = usecase.NewSnapshotStore()
	c.Recommendation = usecase.NewRecommendationUsecase(c.Store)

	trainer := pipeline.NewTrainingPipeline(source, modelOptions(cfg.Model), logger.Component(log, "pipeline"))
	c.Model = usecase.NewModelUsecase(trainer, c.Store, c.Cache, usecase.ModelOptions{
		LockTTL:   cfg.Model.RetrainLock,
		StatusTTL: cfg.Model.StatusTTL,
		OnUpdated: func(info recommend.Info, source string) {
			ws.NotifyModelUpdated(info.ID.String(), info.Samples, len(info.Classes), source)
		},
	}, logger.Component(log, "model"))

	return c, nil
}

func modelOptions(cfg config.ModelConfig) recommend.Options {
	fo := forest.Options{Trees: cfg.Trees, Seed: cfg.Seed, Workers: cfg.Workers}
	return recommend.Options{Classifier: fo, Regressor: fo, TopK: cfg.TopK}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
