package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CacheTypeSimple = "simple"
	CacheTypeRedis  = "redis"

	DefaultGeolocationURL = "https://ipinfo.io/json"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Dataset  DatasetConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	GatewayPort  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type AppConfig struct {
	Debug         bool
	Testing       bool
	WeatherAPIKey string
}

type CacheConfig struct {
	Type           string
	DefaultTimeout time.Duration
}

type RedisConfig struct {
	Addr string
}

type UpstreamConfig struct {
	GeolocationURL   string
	IPInfoToken      string
	Timeout          time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

type DatasetConfig struct {
	StartDate time.Time
	Days      int
	Seed      int64
	UnitPrice int64
}

type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

type LogConfig struct {
	Dir string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8050"),
			GatewayPort:  getEnv("GATEWAY_PORT", ":5000"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		App: AppConfig{
			Debug:         getEnvBool("DEBUG", true),
			Testing:       getEnvBool("TESTING", false),
			WeatherAPIKey: getEnv("WEATHER_API_KEY", ""),
		},
		Cache: CacheConfig{
			Type:           strings.ToLower(getEnv("CACHE_TYPE", CacheTypeSimple)),
			DefaultTimeout: time.Duration(getEnvInt("CACHE_DEFAULT_TIMEOUT", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Upstream: UpstreamConfig{
			GeolocationURL:   getEnv("GEOLOCATION_API_URL", DefaultGeolocationURL),
			IPInfoToken:      getEnv("IPINFO_TOKEN", ""),
			Timeout:          getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			FailureThreshold: uint32(getEnvInt("BREAKER_FAILURE_THRESHOLD", 5)),
			OpenTimeout:      getEnvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Dataset: DatasetConfig{
			StartDate: getEnvDate("DATASET_START_DATE", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)),
			Days:      getEnvInt("DATASET_DAYS", 10),
			Seed:      int64(getEnvInt("DATASET_SEED", 0)),
			UnitPrice: int64(getEnvInt("UNIT_PRICE", 100)),
		},
		HTTP: HTTPConfig{
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRequests:  getEnvInt("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:    getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Dir: getEnv("LOG_DIR", "logs"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDate(key string, defaultValue time.Time) time.Time {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.Parse("2006-01-02", value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
