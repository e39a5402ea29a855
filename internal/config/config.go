// Package config reads the dashboard settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
)

var logger = loggo.GetLogger("printa.config")

// Environment variable names.
const (
	EnvAPIURL      = "DASHBOARD_API_URL"
	EnvPort        = "APP_PORT"
	EnvCookieJar   = "COOKIE_JAR_PATH"
	EnvImgBBKey    = "IMGBB_API_KEY"
	EnvImgBBURL    = "IMGBB_UPLOAD_URL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvHTTPTimeout = "HTTP_TIMEOUT"
)

const (
	DefaultPort        = "8080"
	DefaultImgBBURL    = "https://api.imgbb.com/1/upload"
	DefaultLogLevel    = "<root>=INFO"
	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds the settings of the dashboard service.
type Config struct {
	APIURL        string
	Port          string
	CookieJarPath string
	ImgBBKey      string
	ImgBBURL      string
	LogLevel      string
	HTTPTimeout   time.Duration
}

// Load reads .env (if present) and the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !os.IsNotExist(err) {
			return nil, errors.Annotate(err, "loading env file")
		}
		logger.Debugf("no .env file, using the environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		APIURL:        getenv(EnvAPIURL),
		Port:          withDefault(getenv(EnvPort), DefaultPort),
		CookieJarPath: getenv(EnvCookieJar),
		ImgBBKey:      getenv(EnvImgBBKey),
		ImgBBURL:      withDefault(getenv(EnvImgBBURL), DefaultImgBBURL),
		LogLevel:      withDefault(getenv(EnvLogLevel), DefaultLogLevel),
		HTTPTimeout:   DefaultHTTPTimeout,
	}
	if raw := getenv(EnvHTTPTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.NotValidf("%s %q", EnvHTTPTimeout, raw)
		}
		cfg.HTTPTimeout = d
	}
	if cfg.CookieJarPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Annotate(err, "locating home directory for the cookie jar")
		}
		cfg.CookieJarPath = filepath.Join(home, ".printa-dashboard", "cookies")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.NotValidf("empty %s", EnvAPIURL)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.NotValidf("%s %q", EnvAPIURL, c.APIURL)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.NotValidf("%s %q", EnvPort, c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return errors.NotValidf("%s %v", EnvHTTPTimeout, c.HTTPTimeout)
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
