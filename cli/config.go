package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/yangkit/xpath/nsctx"
)

// Config represents the yxpath configuration
type Config struct {
	// Namespaces are prefix/URI bindings used as the default namespace
	// context when no --nsc file is given.
	Namespaces []nsctx.Binding `yaml:"namespaces"`

	// Legacy selects prefix-literal name matching by default.
	Legacy bool `yaml:"legacy"`

	// Trace is the default evaluation trace verbosity.
	Trace int `yaml:"trace"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Missing config file means default configuration
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand environment variables in namespace URIs
	for i := range config.Namespaces {
		config.Namespaces[i].URI = os.ExpandEnv(config.Namespaces[i].URI)
	}

	return &config, nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
