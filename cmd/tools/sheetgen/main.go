// cmd/tools/sheetgen/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sheetsmith/internal/common/config"
	"sheetsmith/internal/common/logger"
	"sheetsmith/internal/common/observability"
	"sheetsmith/internal/models"
	"sheetsmith/pkg/registry"

	bix "sheetsmith/internal/workers/spreadsheet/build-invoice-xlsx"
	cht "sheetsmith/internal/workers/spreadsheet/convert-html-table"
)

var (
	configPath string
	inPath     string
	outDir     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sheetgen",
	Short: "Render sheetsmith spreadsheets from local files",
	Long: `Render the same workbooks the sheetsmith service returns, without running it.

Commands:
  invoice   Build an invoice workbook from a JSON payload.
  html      Convert the first table of an HTML file.
  registry  Print the endpoint catalog as JSON.

Examples:
  sheetgen invoice --in payload.json --out ./out
  sheetgen html --in page.html --out ./out`,
	SilenceUsage: true,
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Build an invoice workbook from a JSON payload",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}
		payload, err := models.DecodeInvoicePayload(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", inPath, err)
		}

		h := bix.NewHandler(bix.LoadConfig(cfg), log, observability.NewNoop())
		out, err := h.Execute(context.Background(), &bix.Input{Invoice: payload})
		if err != nil {
			return err
		}
		return save(cmd, out.Filename, out.Content)
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Convert the first table of an HTML file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}

		h := cht.NewHandler(cht.LoadConfig(cfg), log, observability.NewNoop())
		out, err := h.Execute(context.Background(), &cht.Input{HTML: string(data)})
		if err != nil {
			return err
		}
		return save(cmd, out.Filename, out.Content)
	},
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Print the endpoint catalog as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		reg := registry.New(cfg.App.Name, cfg.App.Version)
		if err := reg.Register(bix.NewHandler(bix.LoadConfig(cfg), log, nil).Endpoint()); err != nil {
			return err
		}
		if err := reg.Register(cht.NewHandler(cht.LoadConfig(cfg), log, nil).Endpoint()); err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reg.Catalog())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config.yaml (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	for _, c := range []*cobra.Command{invoiceCmd, htmlCmd} {
		c.Flags().StringVar(&inPath, "in", "", "Input file")
		c.Flags().StringVar(&outDir, "out", ".", "Output directory")
		_ = c.MarkFlagRequired("in")
	}

	rootCmd.AddCommand(invoiceCmd, htmlCmd, registryCmd)
}

func setup() (*config.Config, logger.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.NewStructured(logger.Options{Level: level, Format: "console", Output: "stderr"})

	if configPath == "" {
		return &config.Config{
			App:     config.AppConfig{Name: "sheetsmith", Version: "dev"},
			Invoice: config.InvoiceConfig{CurrencySymbols: config.DefaultCurrencySymbols},
		}, log, nil
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// save writes content into outDir. Only the base name of filename is used, since it
// may come from payload data.
func save(cmd *cobra.Command, filename string, content []byte) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outDir, filepath.Base(filepath.Clean("/"+filename)))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
