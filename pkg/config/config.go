package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Builder       BuilderConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"PCFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"PCFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PCFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PCFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PCFORGE_DB_DSN"`
	Driver string `envconfig:"PCFORGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PCFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"PCFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PCFORGE_DB_USER"`
	LegacyPassword string `envconfig:"PCFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PCFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PCFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PCFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PCFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PCFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PCFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PCFORGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PCFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"PCFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PCFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PCFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PCFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PCFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PCFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PCFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PCFORGE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PCFORGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PCFORGE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PCFORGE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PCFORGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PCFORGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PCFORGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PCFORGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PCFORGE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PCFORGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PCFORGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PCFORGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PCFORGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PCFORGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PCFORGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// BuilderConfig tunes the server-side build sessions.
type BuilderConfig struct {
	SessionTTLMinutes int `envconfig:"PCFORGE_BUILDER_SESSION_TTL_MINUTES" default:"1440"`
	DefaultBudget     int `envconfig:"PCFORGE_BUILDER_DEFAULT_BUDGET" default:"2000000"`
}

// SessionTTL returns the builder session TTL as a duration.
func (b BuilderConfig) SessionTTL() time.Duration {
	if b.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(b.SessionTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PCFORGE_AUTO_MIGRATE" default:"false"`
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
