package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable that points at an explicit
// config file. When set, the file must exist and parse.
const EnvConfigPath = "FWBUILD_CONFIG_PATH"

// Loader loads configuration using Viper.
//
// Use [NewLoader] to create a Loader and [Loader.Load] to produce a [Config].
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load resolves the effective configuration.
//
// Load starts from [DefaultConfig], merges an optional config file on top
// (FWBUILD_CONFIG_PATH, falling back to ./fwbuild.yaml), and finally applies
// FWBUILD_-prefixed environment variables. A missing fwbuild.yaml is not an
// error; a missing or unparseable explicit FWBUILD_CONFIG_PATH file is.
func (l *Loader) Load() (*Config, error) {
	v := l.v

	v.SetEnvPrefix("FWBUILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys Viper already knows about, so bind
	// the scalar override points explicitly.
	for _, key := range []string{
		"toolchain.binary_path",
		"project.marker_file",
		"assets.staging_dir",
		"monitor.baud",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	explicit := os.Getenv(EnvConfigPath)
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("fwbuild")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if explicit != "" {
			return nil, fmt.Errorf("read config %s: %w", explicit, err)
		}
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
