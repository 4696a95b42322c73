package config

import "time"

const (
	defaultPort             = 8080
	defaultLogLevel         = "info"
	defaultOperationTimeout = 3 * time.Second
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultRouting = Routing{
	BaseURL:           "https://api.openrouteservice.org",
	Timeout:           8 * time.Second,
	MaxAttempts:       3,
	BaseDelay:         150 * time.Millisecond,
	MaxDelay:          time.Second,
	RequestsPerSecond: 5,
	AverageSpeedKmh:   35,
	RoadFactor:        1.3,
	SolverBudget:      30 * time.Second,
	DefaultVehicles:   3,
}

var defaultKafka = Kafka{
	JobsTopic:   "dispatch.jobs",
	EventsTopic: "dispatch.events",
	Group:       "dispatch-worker",
	MaxAttempts: 3,
}

var defaultRedis = Redis{
	ChannelPrefix: "notifications:user:",
}

var defaultRateLimit = RateLimitConfig{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = PprofConfig{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultLogLevel returns the default log level.
func DefaultLogLevel() string {
	return defaultLogLevel
}

// DefaultOperationTimeout returns the default per-operation timeout.
func DefaultOperationTimeout() time.Duration {
	return defaultOperationTimeout
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRouting returns the default routing settings.
func DefaultRouting() Routing {
	return defaultRouting
}

// DefaultKafka returns the default kafka settings. Brokers are empty, which disables kafka.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRedis returns the default redis settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimitConfig {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof settings.
func DefaultPprof() PprofConfig {
	return defaultPprof
}
