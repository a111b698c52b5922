// =============================================================================
// PNP Vendor Generator - Root Command
// =============================================================================
//
// This file defines the root command. Called with a spreadsheet path it runs
// the generator; subcommands provide the supporting tools.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pnpgen <spreadsheet>)
//   ├── inspectCmd (pnpgen inspect <spreadsheet>)
//   └── versionCmd (pnpgen version)
//
// CONFIGURATION:
//   Settings come from defaults, the optional --config YAML file, PNPGEN_*
//   environment variables and finally the flags below.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pnp-vendors/internal/codegen"
	"github.com/ginjaninja78/pnp-vendors/internal/config"
	"github.com/ginjaninja78/pnp-vendors/internal/driver"
	"github.com/ginjaninja78/pnp-vendors/internal/spreadsheet"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional YAML configuration file.
var cfgFile string

// inputEncoding overrides the configured input encoding.
var inputEncoding string

// verbose enables debug logging.
var verbose bool

// outputPath overrides the configured output file.
var outputPath string

// packageName overrides the configured package of the generated file.
var packageName string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "pnpgen <spreadsheet>",
	Short: "Generate the PNP vendor table from the UEFI PNP ID registry export",
	Long: `pnpgen converts the UEFI PNP ID registry export into a Go source file
holding a static map from 3-character PNP vendor IDs to vendor records.

The registry export is downloaded as an .xls file but is really an HTML
table; real XLSX workbooks are accepted too. The output file is overwritten
on every run.

Example Usage:
  pnpgen ~/Downloads/pnp_export.xls
  pnpgen -o internal/pnp/vendors.go --package pnp pnp_export.xls
  pnpgen inspect pnp_export.xls`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are shared with the subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file",
	)
	rootCmd.PersistentFlags().StringVar(
		&inputEncoding,
		"encoding",
		"",
		`Character encoding of HTML exports, or "auto" (default utf-8)`,
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Generated Go file (default pnp/vendors.go)",
	)
	rootCmd.Flags().StringVar(
		&packageName,
		"package",
		"",
		"Package name of the generated file (default pnp)",
	)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runGenerate loads the configuration and runs the generator.
func runGenerate(ctx context.Context, cmd *cobra.Command, spreadsheetPath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)

	_, err = driver.Run(ctx, driver.Options{
		InputPath:   spreadsheetPath,
		OutputPath:  cfg.OutputPath,
		Spreadsheet: spreadsheetOptions(cfg),
		Codegen: codegen.Options{
			PackageName:      cfg.PackageName,
			VendorImportPath: cfg.VendorImportPath,
		},
		Logger: logger,
	})
	return err
}

// loadConfig loads the configuration and applies flags given on the command
// line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputPath = outputPath
	}
	if flags.Changed("package") {
		cfg.PackageName = packageName
	}
	if flags.Changed("encoding") {
		cfg.InputEncoding = inputEncoding
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// spreadsheetOptions maps the configuration onto parser options.
func spreadsheetOptions(cfg *config.Config) spreadsheet.Options {
	opts := spreadsheet.DefaultOptions()
	opts.Encoding = cfg.InputEncoding
	if cfg.HeaderRows != nil {
		opts.HeaderRows = *cfg.HeaderRows
	}
	return opts
}

// newLogger creates the text logger used for progress output.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
