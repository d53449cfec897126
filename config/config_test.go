package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habiliai/toolserver/config"
	"github.com/habiliai/toolserver/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.NewConfig()

	require.NoError(t, c.Validate())
	assert.Equal(t, "0.0.0.0", c.Server.Host)
	assert.Equal(t, 8088, c.Server.Port)
	assert.Equal(t, ".", c.Server.StaticDir)
	assert.Equal(t, "https://duckduckgo.com/html/", c.Web.SearchURL)
	assert.Equal(t, "Mozilla/5.0", c.Web.UserAgent)
	assert.Equal(t, 15*time.Second, c.Web.FetchTimeout)
	assert.Equal(t, 10, c.Knowledge.SearchLimit)
	assert.Equal(t, 3, c.Knowledge.SummarySentences)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toolserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: info
  handler: json
server:
  port: 9090
  staticDir: ./public
web:
  fetchTimeout: 3s
knowledge:
  wikiApiUrl: https://de.wikipedia.org/w/api.php
`), 0o600))

	c := config.NewConfig()
	require.NoError(t, config.LoadFile(c, path))

	assert.Equal(t, "info", c.Log.LogLevel)
	assert.Equal(t, "json", c.Log.LogHandler)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, "0.0.0.0", c.Server.Host, "unset keys keep their defaults")
	assert.Equal(t, "./public", c.Server.StaticDir)
	assert.Equal(t, 3*time.Second, c.Web.FetchTimeout)
	assert.Equal(t, "https://de.wikipedia.org/w/api.php", c.Knowledge.WikiAPIURL)
}

func TestLoadFileMissing(t *testing.T) {
	err := config.LoadFile(config.NewConfig(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("FETCH_TIMEOUT", "750ms")
	t.Setenv("WIKI_CONCURRENCY", "8")

	c := config.NewConfig()
	require.NoError(t, config.ApplyEnv(c))

	assert.Equal(t, 9999, c.Server.Port)
	assert.Equal(t, "127.0.0.1", c.Server.Host)
	assert.Equal(t, 750*time.Millisecond, c.Web.FetchTimeout)
	assert.Equal(t, 8, c.Knowledge.Concurrency)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout, "unset durations keep their defaults")
}

func TestApplyEnvDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nLOG_LEVEL=info\nUSER_AGENT=toolserver-test\n"), 0o600))
	t.Setenv("PORT", "9999")

	c := config.NewConfig()
	require.NoError(t, config.ApplyEnv(c, path))

	assert.Equal(t, 9999, c.Server.Port, "process environment wins over the dotenv file")
	assert.Equal(t, "info", c.Log.LogLevel)
	assert.Equal(t, "toolserver-test", c.Web.UserAgent)
}

func TestLoadUsesEnvFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "toolserver.yaml")
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(yamlPath, []byte("server:\n  port: 9090\n  host: 10.0.0.1\n"), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("PORT=7070\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)

	c, err := config.Load(yamlPath)
	require.NoError(t, err)

	assert.Equal(t, 7070, c.Server.Port, "env layer overrides the yaml file")
	assert.Equal(t, "10.0.0.1", c.Server.Host)
}

func TestApplyEnvInvalid(t *testing.T) {
	testCases := []struct {
		key, value string
	}{
		{key: "PORT", value: "eighty"},
		{key: "FETCH_TIMEOUT", value: "soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			err := config.ApplyEnv(config.NewConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "bad port", mutate: func(c *config.Config) { c.Server.Port = 0 }},
		{name: "bad level", mutate: func(c *config.Config) { c.Log.LogLevel = "trace" }},
		{name: "zero timeout", mutate: func(c *config.Config) { c.Web.FetchTimeout = 0 }},
		{name: "no search url", mutate: func(c *config.Config) { c.Web.SearchURL = "" }},
		{name: "no concurrency", mutate: func(c *config.Config) { c.Knowledge.Concurrency = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.NewConfig()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}
