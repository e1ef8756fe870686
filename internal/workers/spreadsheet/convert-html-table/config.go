// internal/workers/spreadsheet/convert-html-table/config.go
package converthtmltable

import (
	"time"

	"sheetsmith/internal/common/config"
)

type Config struct {
	Enabled bool
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	rc := config.GetRendererConfig(cfg, TaskType)
	return &Config{
		Enabled: rc.Enabled,
		Timeout: config.GetDuration(rc.Timeout),
	}
}

func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Timeout: config.GetDuration(config.DefaultRendererTimeout),
	}
}
