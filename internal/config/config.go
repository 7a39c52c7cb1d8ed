// config реализует конфигурацию shorts-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
//
// Поверх файла всегда накладываются переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Redis      RedisConfig      `yaml:"redis"`
	S3         S3Config         `yaml:"s3"`
	Upload     UploadConfig     `yaml:"upload"`
	Auth       AuthConfig       `yaml:"auth"`
	Limits     LimitsConfig     `yaml:"limits"`
	Cache      CacheConfig      `yaml:"cache"`
	Moderation ModerationConfig `yaml:"moderation"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	CORS       CORSConfig       `yaml:"cors"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// HTTPConfig — публичный HTTP API.
type HTTPConfig struct {
	Host              string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig — отдельный HTTP для /metrics, /livez, /healthz.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9090"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// MongoConfig — комментарии и видео.
type MongoConfig struct {
	URL      string `yaml:"url" env:"MONGO_URL" env-required:"true"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"shorts"`
}

// PostgresConfig — учётные записи пользователей.
type PostgresConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// RedisConfig — кэш выдачи. Пустой URL отключает кэширование.
type RedisConfig struct {
	URL    string `yaml:"url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix" env:"REDIS_PREFIX"`
}

// S3Config — хранилище видеофайлов и превью (MinIO/S3).
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	AccessKey     string        `yaml:"access_key" env:"S3_ACCESS_KEY" env-required:"true"`
	SecretKey     string        `yaml:"secret_key" env:"S3_SECRET_KEY" env-required:"true"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-default:"shorts"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"15m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// UploadConfig — ограничения на загружаемые файлы.
type UploadConfig struct {
	MaxVideoBytes         int64    `yaml:"max_video_bytes" env:"UPLOAD_MAX_VIDEO_BYTES" env-default:"104857600"`
	VideoContentTypes     []string `yaml:"video_content_types" env:"UPLOAD_VIDEO_CONTENT_TYPES" env-separator:"," env-default:"video/mp4,video/webm,video/quicktime"`
	MaxThumbnailBytes     int64    `yaml:"max_thumbnail_bytes" env:"UPLOAD_MAX_THUMBNAIL_BYTES" env-default:"2097152"`
	ThumbnailContentTypes []string `yaml:"thumbnail_content_types" env:"UPLOAD_THUMBNAIL_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp"`
}

// AuthConfig — выпуск и проверка токенов доступа.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"24h"`
	Issuer     string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"shorts-service"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// LimitsConfig — лимиты на выдачу и глубину дерева.
type LimitsConfig struct {
	// Пагинация корневых комментариев: limit=0 -> Default; верхняя граница — Max.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int32 `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
	// Максимальный level. Корень = 0; на комментарий уровня MaxDepth ответить нельзя.
	MaxDepth int32 `yaml:"max_depth" env:"MAX_DEPTH" env-default:"5"`
	// Превью ответов под корневым комментарием.
	PreviewReplies int32  `yaml:"preview_replies" env:"PREVIEW_REPLIES" env-default:"3"`
	PreviewOrder   string `yaml:"preview_order" env:"PREVIEW_ORDER" env-default:"newest"`
	ThreadDefault  int32  `yaml:"thread_default" env:"THREAD_DEFAULT_LIMIT" env-default:"50"`
	ThreadMax      int32  `yaml:"thread_max" env:"THREAD_MAX_LIMIT" env-default:"200"`
}

// CacheConfig — TTL представлений и параметры circuit breaker для Redis.
type CacheConfig struct {
	ListTTL         time.Duration `yaml:"list_ttl" env:"CACHE_LIST_TTL" env-default:"10m"`
	ThreadTTL       time.Duration `yaml:"thread_ttl" env:"CACHE_THREAD_TTL" env-default:"5m"`
	OpTimeout       time.Duration `yaml:"op_timeout" env:"CACHE_OP_TIMEOUT" env-default:"200ms"`
	BreakerFailures uint32        `yaml:"breaker_failures" env:"CACHE_BREAKER_FAILURES" env-default:"5"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown" env:"CACHE_BREAKER_COOLDOWN" env-default:"30s"`
}

// ModerationConfig — порог жалоб для перевода комментария в pending.
type ModerationConfig struct {
	ReportThreshold int32 `yaml:"report_threshold" env:"REPORT_THRESHOLD" env-default:"5"`
}

// ReconcilerConfig — фоновый пересчёт счётчиков.
type ReconcilerConfig struct {
	Enabled  bool          `yaml:"enabled" env:"RECONCILER_ENABLED" env-default:"true"`
	Interval time.Duration `yaml:"interval" env:"RECONCILER_INTERVAL" env-default:"10m"`
	// Окно: видео, обновлённые за последние Window, попадают в пересчёт.
	Window time.Duration `yaml:"window" env:"RECONCILER_WINDOW" env-default:"1h"`
	Batch  int64         `yaml:"batch" env:"RECONCILER_BATCH" env-default:"200"`
}

// RateLimitConfig — лимит запросов на IP (go-chi/httprate). Requests=0 отключает.
type RateLimitConfig struct {
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS" env-default:"100"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"1m"`
}

// CORSConfig — разрешённые источники для браузерных клиентов.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// TimeoutConfig — общий дедлайн обработки запроса и время на остановку.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"10s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	var errs []error

	switch c.Env {
	case "local", "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("env must be one of local|dev|prod, got %q", c.Env))
	}

	if c.Mongo.URL == "" {
		errs = append(errs, errors.New("mongo.url is required"))
	}

	if c.Postgres.URL == "" {
		errs = append(errs, errors.New("postgres.url is required"))
	}

	if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 16 bytes"))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be > 0"))
	}

	if c.Limits.Default <= 0 || c.Limits.Max <= 0 || c.Limits.Default > c.Limits.Max {
		errs = append(errs, errors.New("limits: 0 < default <= max required"))
	}

	if c.Limits.MaxDepth <= 0 || c.Limits.MaxDepth > models.MaxThreadLevel {
		errs = append(errs, fmt.Errorf("limits.max_depth must be in (0, %d]", models.MaxThreadLevel))
	}

	if c.Limits.ThreadDefault <= 0 || c.Limits.ThreadDefault > c.Limits.ThreadMax {
		errs = append(errs, errors.New("limits: 0 < thread_default <= thread_max required"))
	}

	if c.Limits.PreviewReplies < 0 {
		errs = append(errs, errors.New("limits.preview_replies must be >= 0"))
	}

	if c.Limits.PreviewOrder != "newest" && c.Limits.PreviewOrder != "oldest" {
		errs = append(errs, errors.New("limits.preview_order must be newest|oldest"))
	}

	if c.Cache.ListTTL <= 0 || c.Cache.ThreadTTL <= 0 {
		errs = append(errs, errors.New("cache ttl values must be > 0"))
	}

	if c.Moderation.ReportThreshold <= 0 {
		errs = append(errs, errors.New("moderation.report_threshold must be > 0"))
	}

	if c.Reconciler.Enabled && c.Reconciler.Interval <= 0 {
		errs = append(errs, errors.New("reconciler.interval must be > 0"))
	}

	if c.Upload.MaxVideoBytes <= 0 || len(c.Upload.VideoContentTypes) == 0 {
		errs = append(errs, errors.New("upload: max_video_bytes and video_content_types are required"))
	}

	return errors.Join(errs...)
}
