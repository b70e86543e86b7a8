package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cron         CronConfig
	PubSub       PubSubConfig
	GCP          GCPConfig
	Commission   CommissionConfig
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
	if err := cfg.Commission.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FREIGHTOPS_APP_ENV" required:"true"`
	Port         string `envconfig:"FREIGHTOPS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FREIGHTOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FREIGHTOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FREIGHTOPS_DB_DSN"`
	Driver string `envconfig:"FREIGHTOPS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FREIGHTOPS_DB_HOST"`
	Port     int    `envconfig:"FREIGHTOPS_DB_PORT" default:"5432"`
	User     string `envconfig:"FREIGHTOPS_DB_USER"`
	Password string `envconfig:"FREIGHTOPS_DB_PASSWORD"`
	Name     string `envconfig:"FREIGHTOPS_DB_NAME"`
	SSLMode  string `envconfig:"FREIGHTOPS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FREIGHTOPS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FREIGHTOPS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FREIGHTOPS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FREIGHTOPS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FREIGHTOPS_REDIS_URL"`
	Address      string        `envconfig:"FREIGHTOPS_REDIS_ADDR"`
	Password     string        `envconfig:"FREIGHTOPS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FREIGHTOPS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FREIGHTOPS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FREIGHTOPS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FREIGHTOPS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FREIGHTOPS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FREIGHTOPS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"FREIGHTOPS_CRON_INTERVAL" default:"24h"`
	LockKey  string        `envconfig:"FREIGHTOPS_CRON_LOCK_KEY" default:"freightops:cron:lock"`
	LockTTL  time.Duration `envconfig:"FREIGHTOPS_CRON_LOCK_TTL" default:"25h"`
}

type PubSubConfig struct {
	EventsTopic string `envconfig:"FREIGHTOPS_PUBSUB_EVENTS_TOPIC" default:"fo-domain-events"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"FREIGHTOPS_GCP_PROJECT_ID"`
}

// CommissionConfig holds defaults applied when a dispatch policy predates the
// dispatch_rate / per_truck_bonus fields.
type CommissionConfig struct {
	DefaultDispatchRate  decimal.Decimal `envconfig:"FREIGHTOPS_COMMISSION_DISPATCH_RATE" default:"0.01"`
	DefaultPerTruckBonus decimal.Decimal `envconfig:"FREIGHTOPS_COMMISSION_PER_TRUCK_BONUS" default:"10.00"`
}

func (c CommissionConfig) validate() error {
	if c.DefaultDispatchRate.IsNegative() || c.DefaultDispatchRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("dispatch rate must be within [0,1], got %s", c.DefaultDispatchRate)
	}
	if c.DefaultPerTruckBonus.IsNegative() {
		return fmt.Errorf("per-truck bonus must not be negative, got %s", c.DefaultPerTruckBonus)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FREIGHTOPS_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"FREIGHTOPS_USE_SQLITE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
