package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

const (
	AuthIntrospect = "introspect"
	AuthJWT        = "jwt"
)

const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	BackendDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	BackendRESTURL          string
	BackendRESTAPIKey       string
	BackendRESTTimeout      time.Duration
	BackendRESTMaxRetries   int
	BackendRESTRetryBackoff time.Duration
	BackendCircuit          resilience.CircuitBreakerConfig

	AuthMode          string
	AuthIntrospectURL string
	AuthAdminKey      string
	AuthTimeout       time.Duration
	AuthCacheTTL      time.Duration
	AuthCircuit       resilience.CircuitBreakerConfig
	AuthJWTSecret     string
	AuthJWTAudience   string

	TransferDeadline           time.Time
	RosterRulesFile            string
	RosterEnforcePositionMatch bool
	RosterFormWorkers          int
	SessionIdleTTL             time.Duration

	CacheDriver   string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAllowedOrigins []string
	MetricsEnabled     bool
	PprofEnabled       bool
	PprofAddr          string

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "fantasy-roster-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           logLevel,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if err := loadBackend(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAuth(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadRoster(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadCache(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadBackend(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("BACKEND_DRIVER", BackendMemory)))
	switch driver {
	case BackendMemory, BackendPostgres, BackendREST:
	default:
		return fmt.Errorf("invalid BACKEND_DRIVER %q: valid values are %s, %s, %s", driver, BackendMemory, BackendPostgres, BackendREST)
	}
	cfg.BackendDriver = driver

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if driver == BackendPostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when BACKEND_DRIVER=%s", BackendPostgres)
	}
	disablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = disablePreparedBinary

	cfg.BackendRESTURL = strings.TrimSpace(getEnv("BACKEND_REST_URL", ""))
	cfg.BackendRESTAPIKey = strings.TrimSpace(getEnv("BACKEND_REST_API_KEY", ""))
	if driver == BackendREST {
		if cfg.BackendRESTURL == "" {
			return fmt.Errorf("BACKEND_REST_URL is required when BACKEND_DRIVER=%s", BackendREST)
		}
		if cfg.BackendRESTAPIKey == "" {
			return fmt.Errorf("BACKEND_REST_API_KEY is required when BACKEND_DRIVER=%s", BackendREST)
		}
	}
	cfg.BackendRESTTimeout, err = getEnvAsPositiveDuration("BACKEND_REST_TIMEOUT", "10s")
	if err != nil {
		return err
	}
	cfg.BackendRESTMaxRetries, err = getEnvAsInt("BACKEND_REST_MAX_RETRIES", 2)
	if err != nil {
		return err
	}
	if cfg.BackendRESTMaxRetries < 0 {
		return fmt.Errorf("BACKEND_REST_MAX_RETRIES must be >= 0")
	}
	cfg.BackendRESTRetryBackoff, err = getEnvAsPositiveDuration("BACKEND_REST_RETRY_BACKOFF", "250ms")
	if err != nil {
		return err
	}

	cfg.BackendCircuit, err = loadCircuit("BACKEND_CIRCUIT")
	return err
}

func loadAuth(cfg *Config) error {
	mode := strings.ToLower(strings.TrimSpace(getEnv("AUTH_MODE", AuthJWT)))
	cfg.AuthMode = mode
	cfg.AuthIntrospectURL = strings.TrimSpace(getEnv("AUTH_INTROSPECT_URL", ""))
	cfg.AuthAdminKey = strings.TrimSpace(getEnv("AUTH_ADMIN_KEY", ""))
	cfg.AuthJWTSecret = getEnv("AUTH_JWT_SECRET", "")
	cfg.AuthJWTAudience = strings.TrimSpace(getEnv("AUTH_JWT_AUDIENCE", ""))

	switch mode {
	case AuthIntrospect:
		if cfg.AuthIntrospectURL == "" {
			return fmt.Errorf("AUTH_INTROSPECT_URL is required when AUTH_MODE=%s", AuthIntrospect)
		}
	case AuthJWT:
		if strings.TrimSpace(cfg.AuthJWTSecret) == "" {
			if cfg.AppEnv != EnvDev {
				return fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE=%s", AuthJWT)
			}
			cfg.AuthJWTSecret = "dev-secret"
		}
	default:
		return fmt.Errorf("invalid AUTH_MODE %q: valid values are %s, %s", mode, AuthIntrospect, AuthJWT)
	}

	var err error
	cfg.AuthTimeout, err = getEnvAsPositiveDuration("AUTH_TIMEOUT", "3s")
	if err != nil {
		return err
	}
	cfg.AuthCacheTTL, err = getEnvAsDuration("AUTH_CACHE_TTL", "30s")
	if err != nil {
		return err
	}
	cfg.AuthCircuit, err = loadCircuit("AUTH_CIRCUIT")
	return err
}

func loadRoster(cfg *Config) error {
	if raw := strings.TrimSpace(getEnv("TRANSFER_DEADLINE", "")); raw != "" {
		deadline, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("parse TRANSFER_DEADLINE: %w", err)
		}
		cfg.TransferDeadline = deadline.UTC()
	}

	cfg.RosterRulesFile = strings.TrimSpace(getEnv("ROSTER_RULES_FILE", ""))

	enforce, err := strconv.ParseBool(getEnv("ROSTER_ENFORCE_POSITION_MATCH", "false"))
	if err != nil {
		return fmt.Errorf("parse ROSTER_ENFORCE_POSITION_MATCH: %w", err)
	}
	cfg.RosterEnforcePositionMatch = enforce

	workers, err := getEnvAsInt("ROSTER_FORM_WORKERS", 4)
	if err != nil {
		return fmt.Errorf("parse ROSTER_FORM_WORKERS: %w", err)
	}
	if workers < 1 {
		return fmt.Errorf("ROSTER_FORM_WORKERS must be >= 1")
	}
	cfg.RosterFormWorkers = workers

	cfg.SessionIdleTTL, err = getEnvAsPositiveDuration("SESSION_IDLE_TTL", "30m")
	return err
}

func loadCache(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("CACHE_DRIVER", CacheMemory)))
	switch driver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid CACHE_DRIVER %q: valid values are %s, %s, %s", driver, CacheNone, CacheMemory, CacheRedis)
	}
	cfg.CacheDriver = driver

	var err error
	cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "60s")
	if err != nil {
		return err
	}

	cfg.RedisAddr = strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if driver == CacheRedis && cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_DRIVER=%s", CacheRedis)
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	return nil
}

func loadObservability(cfg *Config) error {
	var err error
	cfg.MetricsEnabled, err = strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	return err
}

// loadCircuit reads <prefix>_ENABLED, _FAILURE_COUNT, _OPEN_TIMEOUT and
// _HALF_OPEN_MAX_REQ.
func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_ENABLED", "true"))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}

	failureCount, err := getEnvAsInt(prefix+"_FAILURE_COUNT", 5)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_FAILURE_COUNT must be >= 1", prefix)
	}

	openTimeout, err := getEnvAsPositiveDuration(prefix+"_OPEN_TIMEOUT", "15s")
	if err != nil {
		return resilience.CircuitBreakerConfig{}, err
	}

	halfOpenMaxReq, err := getEnvAsInt(prefix+"_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out < 0 {
		return 0, fmt.Errorf("%s must be >= 0", key)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := getEnvAsDuration(key, fallback)
	if err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
