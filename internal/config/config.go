package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Data     DataConfig     `yaml:"data"`
	Model    ModelConfig    `yaml:"model"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
}

type AppConfig struct {
	AppName     string `yaml:"name"`
	Environment string `yaml:"env"`
	HTTPPort    string `yaml:"http_port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

const (
	DataSourceCSV      = "csv"
	DataSourceHTTP     = "http"
	DataSourceS3       = "s3"
	DataSourcePostgres = "postgres"
)

type DataConfig struct {
	Source       string        `yaml:"source"`
	Dir          string        `yaml:"dir"`
	BaseURL      string        `yaml:"base_url"`
	SkillsTable  string        `yaml:"skills_table"`
	CareersTable string        `yaml:"careers_table"`
	TrendsTable  string        `yaml:"trends_table"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type ModelConfig struct {
	Trees         int           `yaml:"trees"`
	Seed          *int64        `yaml:"seed"`
	TopK          int           `yaml:"top_k"`
	Workers       int           `yaml:"workers"`
	RetrainLock   time.Duration `yaml:"retrain_lock"`
	StatusTTL     time.Duration `yaml:"status_ttl"`
	MigrationsDir string        `yaml:"migrations_dir"`
}

type DatabaseConfig struct {
	DBHost     string `yaml:"host"`
	DBPort     string `yaml:"port"`
	DBName     string `yaml:"name"`
	DBUser     string `yaml:"user"`
	DBPassword string `yaml:"password"`
	DBSSLMode  string `yaml:"ssl_mode"`

	ConnectTimeout        time.Duration `yaml:"connect_timeout"`
	PoolMaxConns          int32         `yaml:"pool_max_conns"`
	PoolMinConns          int32         `yaml:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `yaml:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `yaml:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `yaml:"pool_health_check_period"`
}

func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DBHost) != "" && strings.TrimSpace(d.DBName) != ""
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Disabled bool   `yaml:"disabled"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads .env (when present), then CONFIG_FILE as defaults, then the process
// environment, which wins over both.
func Load() (Config, error) {
	_ = godotenv.Load()

	base, err := loadFile(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
	if err != nil {
		return Config{}, err
	}
	return fromEnv(base)
}

func loadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func fromEnv(base Config) (Config, error) {
	cfg := base

	var missing, invalid []string
	str := func(key, fallback string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(fallback)
	}
	req := func(key, fallback string) string {
		v := str(key, fallback)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	integer := func(key string, fallback int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}
	duration := func(key string, fallback time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		if secs, err := strconv.Atoi(raw); err == nil {
			return time.Duration(secs) * time.Second
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}
	seed := func(key string, fallback *int64) *int64 {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			return fallback
		}
		return &v
	}
	boolean := func(key string, fallback bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME", base.App.AppName),
		Environment: req("APP_ENV", base.App.Environment),
		HTTPPort:    req("HTTP_PORT", base.App.HTTPPort),
	}

	cfg.Log = LogConfig{
		Level:  strings.ToLower(str("LOG_LEVEL", or(base.Log.Level, "info"))),
		Format: strings.ToLower(str("LOG_FORMAT", or(base.Log.Format, "json"))),
		Output: str("LOG_OUTPUT", or(base.Log.Output, "stdout")),
	}

	cfg.Data = DataConfig{
		Source:       strings.ToLower(str("DATA_SOURCE", or(base.Data.Source, DataSourceCSV))),
		Dir:          str("DATA_DIR", or(base.Data.Dir, ".")),
		BaseURL:      str("DATA_BASE_URL", base.Data.BaseURL),
		SkillsTable:  str("DATA_SKILLS_TABLE", base.Data.SkillsTable),
		CareersTable: str("DATA_CAREERS_TABLE", base.Data.CareersTable),
		TrendsTable:  str("DATA_TRENDS_TABLE", base.Data.TrendsTable),
		FetchTimeout: duration("DATA_FETCH_TIMEOUT", base.Data.FetchTimeout),
	}
	switch cfg.Data.Source {
	case DataSourceCSV, DataSourceHTTP, DataSourceS3, DataSourcePostgres:
	default:
		invalid = append(invalid, "DATA_SOURCE")
	}

	cfg.Model = ModelConfig{
		Trees:         integer("MODEL_TREES", base.Model.Trees),
		Seed:          seed("MODEL_SEED", base.Model.Seed),
		TopK:          integer("MODEL_TOP_K", base.Model.TopK),
		Workers:       integer("MODEL_WORKERS", base.Model.Workers),
		RetrainLock:   duration("MODEL_RETRAIN_LOCK_TTL", orDuration(base.Model.RetrainLock, 5*time.Minute)),
		StatusTTL:     duration("MODEL_STATUS_TTL", orDuration(base.Model.StatusTTL, 24*time.Hour)),
		MigrationsDir: str("MIGRATIONS_DIR", base.Model.MigrationsDir),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     str("DB_HOST", base.Database.DBHost),
		DBPort:     str("DB_PORT", or(base.Database.DBPort, "5432")),
		DBName:     str("DB_NAME", base.Database.DBName),
		DBUser:     str("DB_USER", base.Database.DBUser),
		DBPassword: str("DB_PASSWORD", base.Database.DBPassword),
		DBSSLMode:  str("DB_SSL_MODE", or(base.Database.DBSSLMode, "disable")),

		ConnectTimeout:        duration("DB_CONNECT_TIMEOUT", base.Database.ConnectTimeout),
		PoolMaxConns:          int32(integer("DB_POOL_MAX_CONNS", int(base.Database.PoolMaxConns))),
		PoolMinConns:          int32(integer("DB_POOL_MIN_CONNS", int(base.Database.PoolMinConns))),
		PoolMaxConnLifetime:   duration("DB_POOL_MAX_CONN_LIFETIME", base.Database.PoolMaxConnLifetime),
		PoolMaxConnIdleTime:   duration("DB_POOL_MAX_CONN_IDLE_TIME", base.Database.PoolMaxConnIdleTime),
		PoolHealthCheckPeriod: duration("DB_POOL_HEALTH_CHECK_PERIOD", base.Database.PoolHealthCheckPeriod),
	}

	cfg.Redis = RedisConfig{
		Host:     str("REDIS_HOST", or(base.Redis.Host, "localhost")),
		Port:     str("REDIS_PORT", or(base.Redis.Port, "6379")),
		Password: str("REDIS_PASSWORD", base.Redis.Password),
		DB:       integer("REDIS_DB", base.Redis.DB),
		Disabled: boolean("REDIS_DISABLED", base.Redis.Disabled),
	}

	cfg.S3 = S3Config{
		Bucket:          str("S3_BUCKET", base.S3.Bucket),
		Prefix:          str("S3_PREFIX", base.S3.Prefix),
		Region:          str("S3_REGION", or(base.S3.Region, "auto")),
		Endpoint:        str("S3_ENDPOINT", base.S3.Endpoint),
		AccessKeyID:     str("S3_ACCESS_KEY_ID", base.S3.AccessKeyID),
		SecretAccessKey: str("S3_SECRET_ACCESS_KEY", base.S3.SecretAccessKey),
	}

	switch cfg.Data.Source {
	case DataSourceHTTP:
		if cfg.Data.BaseURL == "" {
			missing = append(missing, "DATA_BASE_URL")
		}
	case DataSourceS3:
		if cfg.S3.Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
	case DataSourcePostgres:
		if !cfg.Database.Enabled() {
			missing = append(missing, "DB_HOST", "DB_NAME")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
