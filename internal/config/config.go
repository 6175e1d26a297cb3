package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg is the global configuration loaded at startup.
var Cfg Config

// Config holds all application configuration.
type Config struct {
	// Backend
	BackendURL     string
	RequestTimeout time.Duration

	// Share
	ShareURL string

	// Web surface
	Port           string
	GzipEnabled    bool
	RateLimitRPS   int
	RateLimitBurst int

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Metrics
	MetricsEnabled bool

	// Export
	ReportDir string
}

// Load reads .env (if present), an optional govscheme.yaml, and GOVSCHEME_*
// environment variables, then populates Cfg.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config: ignoring unreadable config file: %v", err)
		}
	}

	Cfg = fromViper(v)

	log.Printf("config: loaded (backend=%s, port=%s, timeout=%s, sentry=%s)",
		Cfg.BackendURL, Cfg.Port, timeoutLabel(Cfg.RequestTimeout), maskDSN(Cfg.SentryDSN))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("govscheme")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("GOVSCHEME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("share_url", "http://localhost:8000")
	v.SetDefault("port", "8080")
	v.SetDefault("gzip_enabled", true)
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_file", "")
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("sentry_environment", "production")
	v.SetDefault("sentry_release", "govscheme@1.0.0")
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("report_dir", ".")
	return v
}

func fromViper(v *viper.Viper) Config {
	return Config{
		BackendURL:     strings.TrimRight(v.GetString("backend_url"), "/"),
		RequestTimeout: v.GetDuration("request_timeout"),

		ShareURL: v.GetString("share_url"),

		Port:           v.GetString("port"),
		GzipEnabled:    v.GetBool("gzip_enabled"),
		RateLimitRPS:   v.GetInt("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogFile:   v.GetString("log_file"),

		SentryDSN:         v.GetString("sentry_dsn"),
		SentryEnvironment: v.GetString("sentry_environment"),
		SentryRelease:     v.GetString("sentry_release"),

		MetricsEnabled: v.GetBool("metrics_enabled"),

		ReportDir: v.GetString("report_dir"),
	}
}

func timeoutLabel(d time.Duration) string {
	if d <= 0 {
		return "(transport default)"
	}
	return d.String()
}

func maskDSN(dsn string) string {
	if dsn == "" {
		return "(disabled)"
	}
	return "(enabled)"
}
