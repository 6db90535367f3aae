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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Routing      RoutingConfig
	Earnings     EarningsConfig
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
	Env          string `envconfig:"VELOWAY_APP_ENV" required:"true"`
	Port         string `envconfig:"VELOWAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VELOWAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VELOWAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VELOWAY_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VELOWAY_DB_DSN"`
	Driver string `envconfig:"VELOWAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VELOWAY_DB_HOST"`
	LegacyPort     int    `envconfig:"VELOWAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VELOWAY_DB_USER"`
	LegacyPassword string `envconfig:"VELOWAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"VELOWAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"VELOWAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VELOWAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VELOWAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VELOWAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VELOWAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VELOWAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VELOWAY_REDIS_ADDR"`
	Password     string        `envconfig:"VELOWAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"VELOWAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VELOWAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VELOWAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VELOWAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VELOWAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VELOWAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VELOWAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VELOWAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"VELOWAY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// RoutingConfig carries the tunables for route synthesis and the batch sweep.
// They are injected into constructors so tests can pin deterministic values.
type RoutingConfig struct {
	SweepInterval          time.Duration `envconfig:"VELOWAY_ROUTING_SWEEP_INTERVAL" default:"30s"`
	StopHandlingMinutes    int           `envconfig:"VELOWAY_ROUTING_STOP_HANDLING_MINUTES" default:"10"`
	InterStopTravelMinutes int           `envconfig:"VELOWAY_ROUTING_INTER_STOP_TRAVEL_MINUTES" default:"15"`
	IntercityTravelMinutes int           `envconfig:"VELOWAY_ROUTING_INTERCITY_TRAVEL_MINUTES" default:"120"`
}

type EarningsConfig struct {
	// BaseDeliveryAmount is the flat payable amount recorded per delivered
	// order, expressed as a decimal string (e.g. "4.50").
	BaseDeliveryAmount string `envconfig:"VELOWAY_EARNINGS_BASE_DELIVERY_AMOUNT" default:"4.50"`
	Currency           string `envconfig:"VELOWAY_EARNINGS_CURRENCY" default:"USD"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VELOWAY_AUTO_MIGRATE" default:"false"`
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
