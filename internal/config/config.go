package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	LogLevel         string
	OperationTimeout time.Duration

	DB        DB
	Routing   Routing
	Matching  Matching
	Kafka     Kafka
	Redis     Redis
	RateLimit RateLimitConfig
	Pprof     PprofConfig
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		d.User, d.Pass, net.JoinHostPort(d.Host, d.Port), d.Name)
}

// Routing stores routing provider and planner settings.
type Routing struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	MaxAttempts       int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestsPerSecond float64
	AverageSpeedKmh   float64
	RoadFactor        float64
	SolverBudget      time.Duration
	DefaultVehicles   int
}

// Enabled reports whether the external provider is configured.
func (r Routing) Enabled() bool { return strings.TrimSpace(r.APIKey) != "" }

// Matching stores matching engine settings.
type Matching struct {
	WeightProfilesFile string
}

// Kafka stores broker settings for the job queue and the event stream.
type Kafka struct {
	Brokers     []string
	JobsTopic   string
	EventsTopic string
	Group       string
	MaxAttempts int
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Redis stores pub/sub fan-out settings.
type Redis struct {
	URL           string
	ChannelPrefix string
}

// Enabled reports whether a redis URL is configured.
func (r Redis) Enabled() bool { return strings.TrimSpace(r.URL) != "" }

// RateLimitConfig stores per-client HTTP rate limit settings.
type RateLimitConfig struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores pprof listener settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.StringVar(&cfg.Matching.WeightProfilesFile, "weights", cfg.Matching.WeightProfilesFile,
		"path to the matching weight profiles yaml file")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             DefaultPort(),
		LogLevel:         envString("LOG_LEVEL", DefaultLogLevel()),
		OperationTimeout: DefaultOperationTimeout(),
		DB:               DefaultDB(),
		Routing:          DefaultRouting(),
		Kafka:            DefaultKafka(),
		Redis:            DefaultRedis(),
		RateLimit:        DefaultRateLimit(),
		Pprof:            DefaultPprof(),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envInt("PORT", &cfg.Port))
	collect(envDuration("OPERATION_TIMEOUT", &cfg.OperationTimeout))

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		collect(fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err))
	}

	cfg.Routing.APIKey = envString("ORS_API_KEY", cfg.Routing.APIKey)
	cfg.Routing.BaseURL = envString("ORS_BASE_URL", cfg.Routing.BaseURL)
	collect(envDuration("ROUTING_TIMEOUT", &cfg.Routing.Timeout))
	collect(envInt("ROUTING_MAX_ATTEMPTS", &cfg.Routing.MaxAttempts))
	collect(envDuration("ROUTING_BASE_DELAY", &cfg.Routing.BaseDelay))
	collect(envDuration("ROUTING_MAX_DELAY", &cfg.Routing.MaxDelay))
	collect(envFloat("ROUTING_RPS", &cfg.Routing.RequestsPerSecond))
	collect(envDuration("ROUTING_SOLVER_BUDGET", &cfg.Routing.SolverBudget))
	collect(envInt("ROUTING_DEFAULT_VEHICLES", &cfg.Routing.DefaultVehicles))

	cfg.Matching.WeightProfilesFile = envString("WEIGHT_PROFILES_FILE", "")

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.JobsTopic = envString("KAFKA_JOBS_TOPIC", cfg.Kafka.JobsTopic)
	cfg.Kafka.EventsTopic = envString("KAFKA_EVENTS_TOPIC", cfg.Kafka.EventsTopic)
	cfg.Kafka.Group = envString("KAFKA_GROUP", cfg.Kafka.Group)
	collect(envInt("KAFKA_JOB_MAX_ATTEMPTS", &cfg.Kafka.MaxAttempts))

	cfg.Redis.URL = envString("REDIS_URL", cfg.Redis.URL)
	cfg.Redis.ChannelPrefix = envString("REDIS_CHANNEL_PREFIX", cfg.Redis.ChannelPrefix)

	collect(envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled))
	collect(envFloat("RATE_LIMIT_RATE", &cfg.RateLimit.Rate))
	collect(envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst))
	collect(envDuration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL))
	collect(envInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets))

	collect(envBool("PPROF_ENABLED", &cfg.Pprof.Enabled))
	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	if c.Routing.MaxAttempts < 1 {
		return fmt.Errorf("invalid routing max attempts: %d", c.Routing.MaxAttempts)
	}
	if c.Routing.Timeout <= 0 || c.Routing.SolverBudget <= 0 {
		return errors.New("routing timeout and solver budget must be positive")
	}
	if c.Routing.DefaultVehicles < 1 {
		return fmt.Errorf("invalid default vehicles: %d", c.Routing.DefaultVehicles)
	}
	if c.Kafka.MaxAttempts < 1 {
		return fmt.Errorf("invalid kafka job max attempts: %d", c.Kafka.MaxAttempts)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit requires positive rate and burst")
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
