package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    AuthRateLimitConfig
	Loans        LoanConfig
	Storage      StorageConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureURL(); err != nil {
		return nil, err
	}
	// envconfig's required tag accepts a set-but-empty variable.
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET must not be empty")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"dev"`
	Port         string `envconfig:"APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	URL    string `envconfig:"DATABASE_URL"`
	Client string `envconfig:"DATABASE_CLIENT" default:"postgres"`

	Host     string `envconfig:"DATABASE_HOST"`
	Port     int    `envconfig:"DATABASE_PORT" default:"5432"`
	User     string `envconfig:"DATABASE_USER"`
	Password string `envconfig:"DATABASE_PASSWORD"`
	Name     string `envconfig:"DATABASE_NAME"`
	SSLMode  string `envconfig:"DATABASE_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DATABASE_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDR"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	Issuer string        `envconfig:"ACCESS_TOKEN_ISSUER" default:"litera"`
	TTL    time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type LoanConfig struct {
	// Window is how long a member may keep a book once it is handed out.
	Window time.Duration `envconfig:"LOAN_WINDOW" default:"336h"`
}

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"local"`

	LocalDir string `envconfig:"STORAGE_LOCAL_DIR" default:"./uploads"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"litera"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

type CronConfig struct {
	Interval    time.Duration `envconfig:"CRON_INTERVAL" default:"1h"`
	MetricsPort string        `envconfig:"CRON_METRICS_PORT" default:"9090"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureURL() error {
	if db.URL != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"DATABASE_HOST": db.Host,
		"DATABASE_USER": db.User,
		"DATABASE_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either DATABASE_URL or %s are required", strings.Join(missing, ", "))
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

	db.URL = u.String()
	return nil
}
