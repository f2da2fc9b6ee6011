package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Catalog      string   `mapstructure:"catalog" validate:"oneof=chat voice"`
	OutputDir    string   `mapstructure:"output_dir" validate:"required"`
	Formats      []string `mapstructure:"formats" validate:"min=1,dive,oneof=html pdf png json"`
	LogMode      string   `mapstructure:"log_mode" validate:"oneof=development production"`
	LogLevel     string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	DatabasePath string   `mapstructure:"database_path" validate:"required"`

	Voice VoiceConfig `mapstructure:"voice"`
	PDF   PDFConfig   `mapstructure:"pdf"`
}

// VoiceConfig tunes the spoken interview
type VoiceConfig struct {
	Language        string        `mapstructure:"language" validate:"required"`
	Rate            float64       `mapstructure:"rate" validate:"gt=0,lte=10"`
	Pitch           float64       `mapstructure:"pitch" validate:"gte=0,lte=2"`
	Volume          float64       `mapstructure:"volume" validate:"gte=0,lte=1"`
	StartDelay      time.Duration `mapstructure:"start_delay" validate:"gte=0"`
	ListenDelay     time.Duration `mapstructure:"listen_delay" validate:"gte=0"`
	ProcessingDelay time.Duration `mapstructure:"processing_delay" validate:"gte=0"`
}

// PDFConfig controls headless Chrome printing
type PDFConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ChromePath string        `mapstructure:"chrome_path"`
}

const (
	configFileName = "config.yaml"
	envPrefix      = "TRADECV"
)

// DefaultDir returns ~/.tradecv
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tradecv"), nil
}

// Path returns the config file path inside dir
func Path(dir string) string {
	return filepath.Join(dir, configFileName)
}

// Load reads dir/config.yaml, creating it with defaults on first run.
// TRADECV_* environment variables override file values.
func Load(dir string) (*Config, error) {
	v, err := open(dir)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Set updates a single key in dir/config.yaml. The resulting configuration
// must still be valid or nothing is written.
func Set(dir, key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	v, err := open(dir)
	if err != nil {
		return err
	}
	v.Set(key, value)

	if _, err := decode(v); err != nil {
		return err
	}
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Keys lists every settable configuration key
func Keys() []string {
	keys := make([]string, 0, len(staticDefaults)+2)
	for k := range staticDefaults {
		keys = append(keys, k)
	}
	keys = append(keys, "output_dir", "database_path")
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known configuration key
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

var staticDefaults = map[string]interface{}{
	"catalog":                "chat",
	"formats":                []string{"html"},
	"log_mode":               "development",
	"log_level":              "warn",
	"voice.language":         "en-US",
	"voice.rate":             0.9,
	"voice.pitch":            1.0,
	"voice.volume":           1.0,
	"voice.start_delay":      "500ms",
	"voice.listen_delay":     "500ms",
	"voice.processing_delay": "1s",
	"pdf.timeout":            "30s",
	"pdf.chrome_path":        "",
}

func open(dir string) (*viper.Viper, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := Path(dir)
	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		if err := createDefaultConfig(configFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	for k, val := range staticDefaults {
		v.SetDefault(k, val)
	}
	v.SetDefault("output_dir", filepath.Join(dir, "resumes"))
	v.SetDefault("database_path", filepath.Join(dir, "tradecv.db"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: failed to read config: %v", ErrLoadConfig, err)
	}
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# tradecv configuration
# Question catalog: chat (short, 8 questions) or voice (full profile, 10 questions)
catalog: chat

# Export formats: html, pdf, png, json
formats:
  - html

# Logging: development or production, level debug/info/warn/error
log_mode: development
log_level: warn

voice:
  language: en-US
  rate: 0.9
  pitch: 1
  volume: 1
  start_delay: 500ms
  listen_delay: 500ms
  processing_delay: 1s

pdf:
  timeout: 30s
  chrome_path: ""
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}
