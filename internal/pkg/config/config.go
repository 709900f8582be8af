package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials), security settings
// - default: Values common across all environments (timeouts, limits)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Gateway GatewayConfig
	Redis   RedisConfig
	MQ      MQConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Warsaw"`
	Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Warsaw"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"`
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// GatewayConfig holds the payment provider credentials. Sign verification
// uses MerchantID/PosID/CRC; API calls authenticate with PosID/APIKey.
type GatewayConfig struct {
	BaseURL    string        `envconfig:"GATEWAY_BASE_URL" required:"true"`
	MerchantID int64         `envconfig:"GATEWAY_MERCHANT_ID" required:"true"`
	PosID      int64         `envconfig:"GATEWAY_POS_ID" required:"true"`
	CRC        string        `envconfig:"GATEWAY_CRC" required:"true"`
	APIKey     string        `envconfig:"GATEWAY_API_KEY" required:"true"`
	ReturnURL  string        `envconfig:"GATEWAY_RETURN_URL" required:"true"`
	StatusURL  string        `envconfig:"GATEWAY_STATUS_URL" required:"true"`
	Currency   string        `envconfig:"GATEWAY_CURRENCY" default:"PLN"`
	Timeout    time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	MaxRetries int           `envconfig:"GATEWAY_MAX_RETRIES" default:"2"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`

	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type MQConfig struct {
	URL      string `envconfig:"MQ_URL" default:""`
	Exchange string `envconfig:"MQ_EXCHANGE" default:"booking.events"`
}

// BookingConfig carries the request-validation limits as typed fields
// assembled once at process start.
type BookingConfig struct {
	MaxDurationMin int           `envconfig:"BOOKING_MAX_DURATION_MIN" default:"240"`
	MaxItems       int           `envconfig:"BOOKING_MAX_ITEMS" default:"10"`
	MaxPeople      int           `envconfig:"BOOKING_MAX_PEOPLE" default:"30"`
	SweepInterval  time.Duration `envconfig:"SWEEP_INTERVAL" default:"1m"`
	SweepTimeout   time.Duration `envconfig:"SWEEP_TIMEOUT" default:"30s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Warsaw",
		},
		Log: LogConfig{
			Level:          "error",
			TimeZone:       "Europe/Warsaw",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		Gateway: GatewayConfig{
			BaseURL:    "https://sandbox.gateway.example",
			MerchantID: 12345,
			PosID:      12345,
			CRC:        "testcrc",
			APIKey:     "testkey",
			ReturnURL:  "http://localhost:3000/payment/return",
			StatusURL:  "http://localhost:8889/api/payments/webhook",
			Currency:   "PLN",
			Timeout:    2 * time.Second,
			MaxRetries: 1,
		},
	}
}
