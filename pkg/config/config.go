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
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Audit        AuditConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"TESOURARIA_APP_ENV" required:"true"`
	Port         string `envconfig:"TESOURARIA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TESOURARIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TESOURARIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TESOURARIA_DB_DSN"`
	Driver string `envconfig:"TESOURARIA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TESOURARIA_DB_HOST"`
	LegacyPort     int    `envconfig:"TESOURARIA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TESOURARIA_DB_USER"`
	LegacyPassword string `envconfig:"TESOURARIA_DB_PASSWORD"`
	LegacyName     string `envconfig:"TESOURARIA_DB_NAME"`
	LegacySSLMode  string `envconfig:"TESOURARIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TESOURARIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TESOURARIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TESOURARIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TESOURARIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the service runs against the embedded sqlite driver
// instead of Postgres. Used for local development only.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"TESOURARIA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TESOURARIA_REDIS_ADDR"`
	Password     string        `envconfig:"TESOURARIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TESOURARIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TESOURARIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TESOURARIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TESOURARIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TESOURARIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TESOURARIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TESOURARIA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TESOURARIA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TESOURARIA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"TESOURARIA_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"TESOURARIA_RATE_LIMIT_MAX_REQUESTS" default:"100"`
}

type AuditConfig struct {
	QueueSize    int           `envconfig:"TESOURARIA_AUDIT_QUEUE_SIZE" default:"256"`
	WriteTimeout time.Duration `envconfig:"TESOURARIA_AUDIT_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TESOURARIA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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
