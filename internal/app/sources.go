package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-sync/internal/config"
	"career-sync/internal/database"
	"career-sync/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var errDatabaseRequired = errors.New("postgres data source requires database configuration")

func tableNames(cfg config.DataConfig) repository.TableNames {
	return repository.TableNames{
		Skills:  cfg.SkillsTable,
		Careers: cfg.CareersTable,
		Trends:  cfg.TrendsTable,
	}
}

// NewTableSource selects where the training tables are read from.
func NewTableSource(ctx context.Context, cfg config.Config, db database.DB) (repository.TableSource, error) {
	names := tableNames(cfg.Data)

	switch cfg.Data.Source {
	case config.DataSourceCSV, "":
		return repository.NewCSVTableSource(cfg.Data.Dir, names), nil
	case config.DataSourceHTTP:
		return repository.NewRemoteCSVSource(cfg.Data.BaseURL, names, cfg.Data.FetchTimeout), nil
	case config.DataSourceS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return repository.NewS3TableSource(client, cfg.S3.Bucket, cfg.S3.Prefix, names), nil
	case config.DataSourcePostgres:
		if db == nil {
			return nil, errDatabaseRequired
		}
		return repository.NewPostgresTableSource(db), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
