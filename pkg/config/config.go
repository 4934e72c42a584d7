package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	SubmitLimit  SubmitRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Orders       OrdersConfig
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
	Env          string `envconfig:"MERCHORDER_APP_ENV" required:"true"`
	Port         string `envconfig:"MERCHORDER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MERCHORDER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MERCHORDER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MERCHORDER_DB_DSN"`
	Driver string `envconfig:"MERCHORDER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MERCHORDER_DB_HOST"`
	LegacyPort     int    `envconfig:"MERCHORDER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MERCHORDER_DB_USER"`
	LegacyPassword string `envconfig:"MERCHORDER_DB_PASSWORD"`
	LegacyName     string `envconfig:"MERCHORDER_DB_NAME"`
	LegacySSLMode  string `envconfig:"MERCHORDER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MERCHORDER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MERCHORDER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MERCHORDER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MERCHORDER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MERCHORDER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MERCHORDER_REDIS_ADDR"`
	Password     string        `envconfig:"MERCHORDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERCHORDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERCHORDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERCHORDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERCHORDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERCHORDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERCHORDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig drives the anonymous session tokens handed to submitters.
type SessionConfig struct {
	Secret            string `envconfig:"MERCHORDER_SESSION_SECRET" required:"true"`
	Issuer            string `envconfig:"MERCHORDER_SESSION_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MERCHORDER_SESSION_EXPIRATION_MINUTES" default:"720"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(s.ExpirationMinutes) * time.Minute
}

type SubmitRateLimitConfig struct {
	Window       time.Duration `envconfig:"MERCHORDER_SUBMIT_RATE_LIMIT_WINDOW" default:"1m"`
	SessionLimit int           `envconfig:"MERCHORDER_SUBMIT_RATE_LIMIT_SESSION_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MERCHORDER_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"MERCHORDER_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"MERCHORDER_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"MERCHORDER_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"MERCHORDER_PUBSUB_ORDERS_TOPIC" required:"true"`
	OrdersSubscription string `envconfig:"MERCHORDER_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

// OrdersConfig scopes the order store to one logical collection and sets the
// safety-net refresh interval for the live feed.
type OrdersConfig struct {
	CollectionPath string        `envconfig:"MERCHORDER_ORDERS_COLLECTION" default:"order-system-v1/orders"`
	RefreshEvery   time.Duration `envconfig:"MERCHORDER_ORDERS_REFRESH_EVERY" default:"1m"`
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
