// internal/workers/spreadsheet/build-invoice-xlsx/config.go
package buildinvoicexlsx

import (
	"time"

	"sheetsmith/internal/common/config"
)

type Config struct {
	Enabled bool
	Timeout time.Duration
	// CurrencySymbols are removed from unit price text before coercion.
	CurrencySymbols string
}

func LoadConfig(cfg *config.Config) *Config {
	rc := config.GetRendererConfig(cfg, TaskType)
	symbols := cfg.Invoice.CurrencySymbols
	if symbols == "" {
		symbols = config.DefaultCurrencySymbols
	}
	return &Config{
		Enabled:         rc.Enabled,
		Timeout:         config.GetDuration(rc.Timeout),
		CurrencySymbols: symbols,
	}
}

// DefaultConfig is used by the CLI and tests.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Timeout:         config.GetDuration(config.DefaultRendererTimeout),
		CurrencySymbols: config.DefaultCurrencySymbols,
	}
}
