package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		EnvAPIURL:    "https://api.example.com/api/v1",
		EnvCookieJar: "/tmp/jar",
	}))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultImgBBURL, cfg.ImgBBURL)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/jar", cfg.CookieJarPath)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		EnvAPIURL:      "http://localhost:5000",
		EnvPort:        "9000",
		EnvCookieJar:   "/tmp/jar",
		EnvImgBBKey:    "k",
		EnvLogLevel:    "<root>=DEBUG",
		EnvHTTPTimeout: "5s",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "k", cfg.ImgBBKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing url":  {EnvCookieJar: "/tmp/jar"},
		"relative url": {EnvAPIURL: "/api", EnvCookieJar: "/tmp/jar"},
		"bad port":     {EnvAPIURL: "http://x", EnvPort: "http", EnvCookieJar: "/tmp/jar"},
		"bad timeout":  {EnvAPIURL: "http://x", EnvHTTPTimeout: "soon", EnvCookieJar: "/tmp/jar"},
		"zero timeout": {EnvAPIURL: "http://x", EnvHTTPTimeout: "0s", EnvCookieJar: "/tmp/jar"},
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(m))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("DASHBOARD_API_URL=https://env-file.example.com\nCOOKIE_JAR_PATH=/tmp/jar\n"), 0o600))
	t.Setenv(EnvAPIURL, "")
	os.Unsetenv(EnvAPIURL)
	t.Setenv(EnvCookieJar, "")
	os.Unsetenv(EnvCookieJar)

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "https://env-file.example.com", cfg.APIURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
