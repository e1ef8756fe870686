// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultAddress         = ":8080"
	DefaultMaxBodyBytes    = 10 << 20
	DefaultRendererTimeout = 30000
	DefaultCurrencySymbols = "£"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and
// applies environment overrides (server.address -> SERVER_ADDRESS).
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnvKeys registers the scalar keys so AutomaticEnv overrides work without a config file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"server.address", "server.read_timeout", "server.write_timeout",
		"server.shutdown_timeout", "server.max_body_bytes",
		"logging.level", "logging.format", "logging.output",
		"metrics.enabled", "metrics.path",
		"tracing.enabled", "tracing.exporter", "tracing.endpoint", "tracing.sample_ratio",
		"invoice.currency_symbols",
	} {
		_ = v.BindEnv(key)
	}
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sheetsmith"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = "jaeger"
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}

	if cfg.Invoice.CurrencySymbols == "" {
		cfg.Invoice.CurrencySymbols = DefaultCurrencySymbols
	}

	for key, r := range cfg.Renderers {
		if r.Timeout == 0 {
			r.Timeout = DefaultRendererTimeout
		}
		cfg.Renderers[key] = r
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be between 0 and 1")
	}
	for key, r := range cfg.Renderers {
		if r.Timeout < 0 {
			return fmt.Errorf("renderers.%s.timeout must not be negative", key)
		}
	}
	return nil
}

// GetRendererConfig retrieves renderer-specific configuration with fallback to defaults
func GetRendererConfig(cfg *Config, taskType string) RendererConfig {
	if r, exists := cfg.Renderers[taskType]; exists {
		return r
	}
	return RendererConfig{
		Enabled: true,
		Timeout: DefaultRendererTimeout,
	}
}

// IsRendererEnabled checks if a specific renderer is enabled
func IsRendererEnabled(cfg *Config, taskType string) bool {
	if r, exists := cfg.Renderers[taskType]; exists {
		return r.Enabled
	}
	return true
}
