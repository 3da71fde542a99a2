package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, limits, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"3000"`
	Env     string `envconfig:"APP_ENV" required:"true"`
	Version string `envconfig:"APP_VERSION" default:"3.0.0"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Jakarta"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Requested-With"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"WIB"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_EXPIRATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:"localhost"`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Strict"`
}

type RateLimitConfig struct {
	GeneralWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	GeneralMax    int           `envconfig:"RATE_LIMIT_MAX" default:"100"`
	AuthWindow    time.Duration `envconfig:"AUTH_RATE_LIMIT_WINDOW" default:"15m"`
	AuthMax       int           `envconfig:"AUTH_RATE_LIMIT_MAX" default:"5"`
	BookingWindow time.Duration `envconfig:"BOOKING_RATE_LIMIT_WINDOW" default:"1h"`
	BookingMax    int           `envconfig:"BOOKING_RATE_LIMIT_MAX" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

const minJWTSecretLength = 32

// Validate enforces boot-time invariants that envconfig tags cannot express.
func (c Config) Validate() error {
	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters long", minJWTSecretLength)
	}

	switch c.Server.Env {
	case EnvDevelopment, EnvStaging, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("APP_ENV must be one of development/staging/production/test, got %q", c.Server.Env)
	}

	if c.Server.Env == EnvProduction && !c.Cookie.Secure {
		return fmt.Errorf("COOKIE_SECURE must be true in production (requires HTTPS)")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:    "8889", // Test port
			Env:     EnvTest,
			Version: "test",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Jakarta",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "WIB",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-test-secret-test-secret!",
			Duration: "24h",
		},
		Cookie: CookieConfig{
			Domain:   "localhost",
			Secure:   false,
			SameSite: "Strict",
		},
		RateLimit: RateLimitConfig{
			GeneralWindow: 15 * time.Minute,
			GeneralMax:    100,
			AuthWindow:    15 * time.Minute,
			AuthMax:       5,
			BookingWindow: time.Hour,
			BookingMax:    10,
		},
	}
}
