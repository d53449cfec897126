package config

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	goconfig "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/habiliai/toolserver/errors"
)

// Load resolves the configuration in layers: defaults, then the YAML file at
// path (skipped when path is empty), then variables from .env (or ENV_FILE),
// then the process environment.
func Load(path string) (*Config, error) {
	c := NewConfig()

	if path != "" {
		if err := LoadFile(c, path); err != nil {
			return nil, err
		}
	}

	filename := ".env"
	if v := os.Getenv("ENV_FILE"); v != "" {
		filename = v
	}
	var dotEnvPaths []string
	if _, err := os.Stat(filename); !os.IsNotExist(err) {
		dotEnvPaths = append(dotEnvPaths, filename)
	}

	if err := ApplyEnv(c, dotEnvPaths...); err != nil {
		return nil, err
	}

	return c, c.Validate()
}

func LoadFile(c *Config, path string) error {
	yamlBytes, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(yamlBytes, c); err != nil {
		return errors.Wrapf(err, "failed to unmarshal config file %s", path)
	}

	return nil
}

// durationEnv carries the duration settings as text, the env feeder only
// parses plain numbers.
type durationEnv struct {
	FetchTimeout    string `env:"FETCH_TIMEOUT"`
	ShutdownTimeout string `env:"SHUTDOWN_TIMEOUT"`
}

// ApplyEnv feeds the env-tagged fields of c from the given dotenv files and
// then from the process environment, which wins over the files.
func ApplyEnv(c *Config, dotEnvPaths ...string) error {
	var durations durationEnv

	configReader := goconfig.New()
	for _, p := range dotEnvPaths {
		configReader = configReader.AddFeeder(feeder.DotEnv{Path: p})
	}
	configReader = configReader.AddFeeder(feeder.Env{}).
		AddStruct(&c.Log).
		AddStruct(&c.Server).
		AddStruct(&c.Web).
		AddStruct(&c.Knowledge).
		AddStruct(&c.Feed).
		AddStruct(&durations)
	if err := configReader.Feed(); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "failed to load config from env: %v", err)
	}

	if err := setDuration(&c.Web.FetchTimeout, "FETCH_TIMEOUT", durations.FetchTimeout); err != nil {
		return err
	}
	return setDuration(&c.Server.ShutdownTimeout, "SHUTDOWN_TIMEOUT", durations.ShutdownTimeout)
}

func setDuration(dst *time.Duration, key, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "%s=%q: %v", key, v, err)
	}
	*dst = d
	return nil
}
