// Package conf loads and validates the application configuration.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/riceguard/riceguard-go/internal/errors"
)

// WebServerSettings holds the HTTP server configuration.
type WebServerSettings struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	Debug      bool   `yaml:"debug"`
	AdminToken string `yaml:"admintoken"` // value expected in the X-Admin-Token header
	RateLimit  int    `yaml:"ratelimit"`  // detect endpoint requests per second, 0 disables
}

// SQLiteSettings holds the SQLite output configuration.
type SQLiteSettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputSettings holds persistence and file output paths.
type OutputSettings struct {
	SQLite  SQLiteSettings `yaml:"sqlite"`
	Uploads string         `yaml:"uploads"` // original images
	Results string         `yaml:"results"` // annotated images
	Reports string         `yaml:"reports"` // generated PDF reports
	Logs    string         `yaml:"logs"`    // rotating service log files
}

// RiceNETSettings holds the detection model configuration.
type RiceNETSettings struct {
	ModelPath  string  `yaml:"modelpath"`
	LabelPath  string  `yaml:"labelpath"` // optional, embedded labels used when empty
	Threshold  float64 `yaml:"threshold"` // minimum box confidence, 0.0-1.0
	Threads    int     `yaml:"threads"`   // 0 means use all CPUs
	UseXNNPACK bool    `yaml:"usexnnpack"`
	InputSize  int     `yaml:"inputsize"` // model input edge length in pixels
}

// Settings is the root configuration structure.
type Settings struct {
	Debug     bool              `yaml:"debug"`
	Version   string            `yaml:"-"`
	BuildDate string            `yaml:"-"`
	WebServer WebServerSettings `yaml:"webserver"`
	Output    OutputSettings    `yaml:"output"`
	RiceNET   RiceNETSettings   `yaml:"ricenet"`
}

// Load reads the configuration into a new Settings instance.
func Load() (*Settings, error) {
	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, errors.New(fmt.Errorf("error initializing viper: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error unmarshaling config into struct: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error validating settings: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml,
// in priority order: working directory, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// No home directory, working directory only
		return paths, nil
	}

	return append(paths, filepath.Join(userConfigDir, "riceguard")), nil
}

// createDefaultConfig materializes the registered defaults and persists them
// to the first config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	defaults := &Settings{}
	if err := viper.Unmarshal(defaults); err != nil {
		return fmt.Errorf("error unmarshaling default config: %w", err)
	}
	if err := SaveYAMLConfig(configPath, defaults); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// SaveYAMLConfig writes settings to configPath atomically via a temp file rename.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
