package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	GCP     GCPConfig
	GCS     GCSConfig
	Pricing PricingConfig
	Docs    DocsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COTIZA_APP_ENV" required:"true"`
	Port         string `envconfig:"COTIZA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COTIZA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COTIZA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN         string `envconfig:"COTIZA_DB_DSN"`
	Driver      string `envconfig:"COTIZA_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"COTIZA_DB_AUTO_MIGRATE" default:"false"`

	LegacyHost     string `envconfig:"COTIZA_DB_HOST"`
	LegacyPort     int    `envconfig:"COTIZA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COTIZA_DB_USER"`
	LegacyPassword string `envconfig:"COTIZA_DB_PASSWORD"`
	LegacyName     string `envconfig:"COTIZA_DB_NAME"`
	LegacySSLMode  string `envconfig:"COTIZA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COTIZA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COTIZA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COTIZA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COTIZA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COTIZA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COTIZA_REDIS_ADDR"`
	Password     string        `envconfig:"COTIZA_REDIS_PASSWORD"`
	DB           int           `envconfig:"COTIZA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COTIZA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COTIZA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COTIZA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COTIZA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COTIZA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"COTIZA_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"COTIZA_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"COTIZA_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"COTIZA_GCS_BUCKET_NAME" required:"true"`
}

// PricingConfig holds the tenant-wide pricing defaults.
type PricingConfig struct {
	DefaultIVAPercent int `envconfig:"COTIZA_PRICING_DEFAULT_IVA_PERCENT" default:"13"`
}

// DocsConfig configures PDF generation and its logo asset cache.
type DocsConfig struct {
	LogoURL       string        `envconfig:"COTIZA_DOCS_LOGO_URL"`
	AssetCacheTTL time.Duration `envconfig:"COTIZA_DOCS_ASSET_CACHE_TTL" default:"30m"`
	AssetMaxBytes int64         `envconfig:"COTIZA_DOCS_ASSET_MAX_BYTES" default:"52428800"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
