// Package config loads quint settings from defaults, an optional quint.toml
// and QUINT_* environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/m0n0x41d/quint-audit/errors"
)

// FileName is the project configuration file looked up in the root directory.
const FileName = "quint.toml"

// Config is the full quint configuration.
type Config struct {
	Root      string          `mapstructure:"root" toml:"root,omitempty"`
	Database  DatabaseConfig  `mapstructure:"database" toml:"database"`
	Assurance AssuranceConfig `mapstructure:"assurance" toml:"assurance"`
	Decisions DecisionsConfig `mapstructure:"decisions" toml:"decisions"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

type DatabaseConfig struct {
	// Path is resolved against Root when relative
	Path string `mapstructure:"path" toml:"path"`
}

// AssuranceConfig holds the constants of the reliability calculus.
type AssuranceConfig struct {
	SelfReliability       float64 `mapstructure:"self_reliability" toml:"self_reliability"`
	BiasEvidenceThreshold int     `mapstructure:"bias_evidence_threshold" toml:"bias_evidence_threshold"`
	HighReliability       float64 `mapstructure:"high_reliability" toml:"high_reliability"`
	MediumReliability     float64 `mapstructure:"medium_reliability" toml:"medium_reliability"`
	WeakLinkThreshold     float64 `mapstructure:"weak_link_threshold" toml:"weak_link_threshold"`
}

type DecisionsConfig struct {
	Dir string `mapstructure:"dir" toml:"dir"`
}

type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Level string `mapstructure:"level" toml:"level"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("database.path", filepath.Join(".quint", "quint.db"))

	v.SetDefault("assurance.self_reliability", 0.95)
	v.SetDefault("assurance.bias_evidence_threshold", 2)
	v.SetDefault("assurance.high_reliability", 0.90)
	v.SetDefault("assurance.medium_reliability", 0.75)
	v.SetDefault("assurance.weak_link_threshold", 0.80)

	v.SetDefault("decisions.dir", filepath.Join(".quint", "decisions"))

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "warn")
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Unmarshal of plain defaults cannot fail
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration for the project rooted at root. configPath, when
// set, names an explicit file; otherwise root/quint.toml is used if present.
func Load(root, configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	if root != "" {
		v.SetDefault("root", root)
	}

	if configPath == "" && root != "" {
		candidate := filepath.Join(root, FileName)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if root != "" {
		cfg.Root = root
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the reliability calculus cannot work with.
func (c *Config) Validate() error {
	a := c.Assurance
	if a.SelfReliability <= 0 || a.SelfReliability > 1 {
		return errors.Wrapf(errors.ErrInvalidArgument,
			"assurance.self_reliability %.2f must be in (0, 1]", a.SelfReliability)
	}
	if a.BiasEvidenceThreshold < 0 {
		return errors.Wrapf(errors.ErrInvalidArgument,
			"assurance.bias_evidence_threshold %d must not be negative", a.BiasEvidenceThreshold)
	}
	if a.MediumReliability > a.HighReliability {
		return errors.Wrapf(errors.ErrInvalidArgument,
			"assurance.medium_reliability %.2f exceeds high_reliability %.2f", a.MediumReliability, a.HighReliability)
	}
	return nil
}

// DatabasePath returns the database location resolved against Root.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database.Path)
}

// DecisionsDir returns the decision record directory resolved against Root.
func (c *Config) DecisionsDir() string {
	return c.resolve(c.Decisions.Dir)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || p == ":memory:" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// WriteDefault writes the default configuration to path as TOML. An
// existing file is left untouched and reported as an error.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf("config file %s already exists", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	cfg := Default()
	cfg.Root = ""
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}

// Encode renders cfg as TOML, used by `quint config show`.
func Encode(cfg *Config) (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return "", errors.Wrap(err, "encode config")
	}
	return sb.String(), nil
}
