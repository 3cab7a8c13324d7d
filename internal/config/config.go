// Package config loads mdtree settings from .mdtree.yaml, MDTREE_*
// environment variables (after .env) and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/morozRed/mdtree/internal/listing"
)

const (
	FileName  = ".mdtree.yaml"
	EnvPrefix = "MDTREE"
)

// Keys shared by the config file, the environment and flags.
const (
	KeyAnnotations    = "annotations"
	KeyListingCommand = "listing-command"
	KeyJobs           = "jobs"
	KeyIgnore         = "ignore"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
)

var Keys = []string{KeyAnnotations, KeyListingCommand, KeyJobs, KeyIgnore, KeyLogLevel, KeyLogFormat}

const (
	DefaultJobs      = 4
	MaxJobs          = 64
	DefaultLogLevel  = "error"
	DefaultLogFormat = "console"
)

type Config struct {
	// Annotations is an explicit annotation file, relative to Root.
	Annotations    string   `mapstructure:"annotations" yaml:"annotations,omitempty"`
	ListingCommand string   `mapstructure:"listing-command" yaml:"listing-command"`
	Jobs           int      `mapstructure:"jobs" yaml:"jobs"`
	Ignore         []string `mapstructure:"ignore" yaml:"ignore,omitempty"`
	LogLevel       string   `mapstructure:"log-level" yaml:"log-level"`
	LogFormat      string   `mapstructure:"log-format" yaml:"log-format"`

	// Root is the repository root the config was loaded for.
	Root string `mapstructure:"-" yaml:"-"`
	// File is the config file that was read, empty when none existed.
	File string `mapstructure:"-" yaml:"-"`
}

func Default() Config {
	return Config{
		ListingCommand: listing.DefaultBinary,
		Jobs:           DefaultJobs,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// Load resolves the configuration for root. Changed flags in flags override
// environment variables, which override the config file.
func Load(root string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load(filepath.Join(root, ".env"))

	v := viper.New()
	defaults := Default()
	v.SetDefault(KeyListingCommand, defaults.ListingCommand)
	v.SetDefault(KeyJobs, defaults.Jobs)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)
	v.SetDefault(KeyAnnotations, "")
	v.SetDefault(KeyIgnore, []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range Keys {
			if flag := flags.Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{Root: root}
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		cfg.File = path
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ListingCommand, validation.Required),
		validation.Field(&c.Jobs, validation.Required, validation.Min(1), validation.Max(MaxJobs)),
		validation.Field(&c.LogLevel, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.Required, validation.In("console", "json", "pretty")),
		validation.Field(&c.Annotations, validation.By(func(value any) error {
			path, _ := value.(string)
			if strings.TrimSpace(path) == "" {
				return nil
			}
			if _, err := os.Stat(c.AnnotationsPath()); err != nil {
				return validation.NewError("mdtree.config.annotations_missing", "annotation file does not exist")
			}
			return nil
		})),
	)
}

// AnnotationsPath returns the explicit annotation file as an absolute path,
// or "" when none is configured.
func (c Config) AnnotationsPath() string {
	path := strings.TrimSpace(c.Annotations)
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) || c.Root == "" {
		return path
	}
	return filepath.Join(c.Root, path)
}

// Marshal renders c in the config file format.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
