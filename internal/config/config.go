// Package config provides configuration management for the fbadmin CLI.
//
// It implements the disciplined Viper pattern where Viper stays contained
// in this package and the rest of the codebase receives explicit Config structs.
// Configuration sources are resolved in this order: flags > env > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultCredentialsFile is resolved relative to the working directory.
	DefaultCredentialsFile = "src/main/resources/service-account-key.json"

	// DefaultPageSize is the number of users requested by `users list`.
	DefaultPageSize = 10

	// MaxPageSize is the largest page the Auth service accepts.
	MaxPageSize = 1000

	// EnvPrefix is prepended to every environment variable override.
	EnvPrefix = "FBADMIN"

	// FirebaseEmulatorHostEnv is the SDK's own emulator variable, used when
	// emulator-host is not set any other way.
	FirebaseEmulatorHostEnv = "FIREBASE_AUTH_EMULATOR_HOST"
)

// Output formats accepted by the users renderers.
var outputFormats = []string{"text", "json", "yaml", "table"}

// Config is the explicit configuration struct
// This is what the rest of the codebase sees
type Config struct {
	CredentialsFile string
	ProjectID       string
	EmulatorHost    string
	PageSize        int
	Output          string
	Verbose         bool
}

// Init initializes viper with defaults and config file paths
func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath("$HOME/.fbadmin")
	viper.AddConfigPath(".")

	setDefaults()
	if err := bindEnv(); err != nil {
		return err
	}

	// Read config file (ignore if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("credentials-file", DefaultCredentialsFile)
	viper.SetDefault("project-id", "")
	viper.SetDefault("emulator-host", "")
	viper.SetDefault("page-size", DefaultPageSize)
	viper.SetDefault("output", "text")
	viper.SetDefault("verbose", false)
}

func bindEnv() error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// first set variable wins
	if err := viper.BindEnv("emulator-host", EnvPrefix+"_EMULATOR_HOST", FirebaseEmulatorHostEnv); err != nil {
		return fmt.Errorf("failed to bind emulator-host: %w", err)
	}
	return nil
}

// Load reads from all sources and returns explicit Config
func Load() (*Config, error) {
	cfg := &Config{
		CredentialsFile: viper.GetString("credentials-file"),
		ProjectID:       viper.GetString("project-id"),
		EmulatorHost:    viper.GetString("emulator-host"),
		PageSize:        viper.GetInt("page-size"),
		Output:          viper.GetString("output"),
		Verbose:         viper.GetBool("verbose"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures config is sane
func (c *Config) Validate() error {
	if c.CredentialsFile == "" {
		return fmt.Errorf("credentials-file must not be empty")
	}

	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("invalid page-size: %d (must be between 1 and %d)", c.PageSize, MaxPageSize)
	}

	valid := false
	for _, f := range outputFormats {
		if c.Output == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output: %s (must be text, json, yaml, or table)", c.Output)
	}

	return nil
}

// Display shows current config (for fbadmin config get)
func Display() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "(not found)"
	}

	return fmt.Sprintf(`Configuration:
  credentials-file:   %s
  project-id:         %s
  emulator-host:      %s
  page-size:          %d
  output:             %s
  verbose:            %t

Sources:
  Config file:        %s
  Environment:        %s_*
  Flags:              (per command)
`,
		cfg.CredentialsFile,
		orUnset(cfg.ProjectID),
		orUnset(cfg.EmulatorHost),
		cfg.PageSize,
		cfg.Output,
		cfg.Verbose,
		configFile,
		EnvPrefix,
	), nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
