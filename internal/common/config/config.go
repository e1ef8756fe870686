// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig                 `mapstructure:"app"`
	Server    ServerConfig              `mapstructure:"server"`
	Logging   LoggingConfig             `mapstructure:"logging"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
	Tracing   TracingConfig             `mapstructure:"tracing"`
	Renderers map[string]RendererConfig `mapstructure:"renderers"`
	Invoice   InvoiceConfig             `mapstructure:"invoice"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings. Timeouts are in milliseconds.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64  `mapstructure:"max_body_bytes"`
}

// RendererConfig holds the settings applicable to every spreadsheet renderer.
type RendererConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TracingConfig enables render spans. Exporter is "jaeger"; Endpoint is the
// collector URL.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// InvoiceConfig holds settings for the invoice layout builder.
type InvoiceConfig struct {
	// CurrencySymbols are stripped from unit prices before numeric coercion.
	CurrencySymbols string `mapstructure:"currency_symbols"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
