package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

type KafkaConfig struct {
	Brokers       []string
	EventsTopic   string
	SettingsTopic string
	ConsumerGroup string
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// FeeRuleTTL bounds how stale a cached fee rule may be; 0 disables caching.
	FeeRuleTTL time.Duration
}

type TelemetryConfig struct {
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
	TraceRatio   float64
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// PricingConfig holds the static pricing defaults used when a collaborator
// has nothing configured.
type PricingConfig struct {
	// DefaultDailyMaxFee is the fallback fee cap in percent per day.
	DefaultDailyMaxFee   decimal.Decimal
	SmallAmountThreshold decimal.Decimal
	Currency             string
	RequestTimeout       time.Duration
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	GRPCReflection bool
	ServiceName    string
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Redis          RedisConfig
	Telemetry      TelemetryConfig
	TLS            TLSConfig
	Pricing        PricingConfig
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Password == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must be positive"))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", c.GRPCPort))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS must list at least one broker"))
	}
	if c.Kafka.EventsTopic == "" {
		errs = append(errs, errors.New("KAFKA_EVENTS_TOPIC is required"))
	}
	if !c.Pricing.DefaultDailyMaxFee.IsPositive() {
		errs = append(errs, errors.New("PRICING_DEFAULT_DAILY_MAX_FEE must be positive"))
	}
	if c.Pricing.SmallAmountThreshold.IsNegative() {
		errs = append(errs, errors.New("PRICING_SMALL_AMOUNT_THRESHOLD must not be negative"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.Telemetry.TraceRatio < 0 || c.Telemetry.TraceRatio > 1 {
		errs = append(errs, errors.New("OTEL_TRACE_SAMPLE_RATIO must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 9090),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		ServiceName:    getEnv("SERVICE_NAME", "loan-pricing"),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "pricing"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			EventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "pricing-events"),
			SettingsTopic: getEnv("KAFKA_SETTINGS_TOPIC", ""),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "loan-pricing"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvInt("REDIS_DB", 0),
			FeeRuleTTL: getEnvDuration("REDIS_FEE_RULE_TTL", 5*time.Minute),
		},
		Telemetry: TelemetryConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", "json"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			TraceRatio:   getEnvFloat("OTEL_TRACE_SAMPLE_RATIO", 1),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
		},
		Pricing: PricingConfig{
			DefaultDailyMaxFee:   getEnvDecimal("PRICING_DEFAULT_DAILY_MAX_FEE", decimal.RequireFromString("0.4")),
			SmallAmountThreshold: getEnvDecimal("PRICING_SMALL_AMOUNT_THRESHOLD", decimal.NewFromInt(100_000)),
			Currency:             getEnv("PRICING_CURRENCY", "IDR"),
			RequestTimeout:       getEnvDuration("PRICING_REQUEST_TIMEOUT", 5*time.Second),
		},
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
