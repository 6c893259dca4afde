package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/aither64/haveup/profile"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "HAVEUP"

	// EnvConfigFile names the config file when --config is not given.
	EnvConfigFile = "HAVEUP_CONFIG"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for haveup.
type Config struct {
	// Class is the profile used when -c is not given.
	Class     string          `mapstructure:"class"`
	Log       LogConfig       `mapstructure:"log"`
	Digest    DigestConfig    `mapstructure:"digest"`
	Transport TransportConfig `mapstructure:"transport"`
	Clipboard ClipboardConfig `mapstructure:"clipboard"`
	Notify    NotifyConfig    `mapstructure:"notify"`

	// Default holds the DEFAULT profile section.
	Default map[string]any `mapstructure:"default"`

	// Profiles are the named sections in declaration order. Each entry
	// carries its name under the "name" key.
	Profiles []map[string]any `mapstructure:"profiles" validate:"dive,required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// DigestConfig selects how checksums are computed.
type DigestConfig struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=native command"`
}

// TransportConfig holds settings shared by the upload transports.
// A zero Timeout means HTTP and Stowry uploads run until they finish.
type TransportConfig struct {
	SCP     string        `mapstructure:"scp" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// ClipboardConfig configures the link side channel. An empty command
// disables it.
type ClipboardConfig struct {
	Command string `mapstructure:"command"`
}

// NotifyConfig configures desktop notifications.
type NotifyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Command string `mapstructure:"command" validate:"required_if=Enabled true"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"class":       "class",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"digest-mode": "digest.mode",
}

// bindFlags binds explicitly set CLI flags to viper keys. Flags without a
// mapping are not configuration and are skipped.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("class", profile.DefaultName)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("digest.mode", "native")

	v.SetDefault("transport.scp", "scp")
	v.SetDefault("transport.timeout", 0)

	v.SetDefault("clipboard.command", "xsel -pi")

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.command", "notify-send")
}

// DefaultPath returns ~/.haveup/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".haveup", "config.yaml"), nil
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// configFiles are merged left to right and must exist. When none are given
// the file named by HAVEUP_CONFIG is used, and failing that DefaultPath,
// which may be absent.
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) == 0 {
		if env := os.Getenv(EnvConfigFile); env != "" {
			configFiles = []string{env}
		} else if path, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				configFiles = []string{path}
			}
		}
	}

	for i, cf := range configFiles {
		v.SetConfigFile(cf)
		read := v.MergeInConfig
		if i == 0 {
			read = v.ReadInConfig
		}
		if err := read(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cf, err)
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Store converts the default and profile sections into a profile.Store,
// keeping the declared order of the profiles.
func (c *Config) Store() (profile.Store, error) {
	def, err := profile.NewSection(profile.DefaultName, c.Default)
	if err != nil {
		return profile.Store{}, fmt.Errorf("default section: %w", err)
	}

	store := profile.Store{
		Default:  def,
		Sections: make([]profile.Section, 0, len(c.Profiles)),
	}

	for i, raw := range c.Profiles {
		values := make(map[string]any, len(raw))
		var name string
		for k, val := range raw {
			if strings.EqualFold(k, "name") {
				if val != nil {
					name = strings.TrimSpace(fmt.Sprint(val))
				}
				continue
			}
			values[k] = val
		}

		section, err := profile.NewSection(name, values)
		if err != nil {
			return profile.Store{}, fmt.Errorf("profile %d: %w", i+1, err)
		}
		store.Sections = append(store.Sections, section)
	}

	return store, nil
}
