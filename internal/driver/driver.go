// =============================================================================
// PNP Vendor Generator - Driver
// =============================================================================
//
// This module wires the pipeline together for a single run.
//
// PROCESSING PIPELINE:
//   1. Parse the spreadsheet into vendor records
//   2. Reject duplicate PNP IDs
//   3. Generate the vendor table source
//   4. Format the source with gofmt
//   5. Overwrite the output file atomically
//
// ERROR HANDLING:
//   There is no recovery. The first error ends the run and is returned to the
//   caller; the output file is only replaced when every step succeeded.
//
// =============================================================================

package driver

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/pnp-vendors/internal/codegen"
	"github.com/ginjaninja78/pnp-vendors/internal/spreadsheet"
	"github.com/ginjaninja78/pnp-vendors/internal/validation"
	"github.com/ginjaninja78/pnp-vendors/pkg/utils"
	"github.com/ginjaninja78/pnp-vendors/pnp"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options describes a single generator run.
type Options struct {
	// InputPath is the spreadsheet export.
	InputPath string

	// OutputPath is the generated Go file. It is fully overwritten.
	OutputPath string

	// Spreadsheet controls how the input is read.
	Spreadsheet spreadsheet.Options

	// Codegen controls the generated file. Codegen.Source defaults to the
	// base name of InputPath.
	Codegen codegen.Options

	// Logger receives progress messages. Nil disables logging.
	Logger Logger
}

// Logger is the logging interface used by the driver. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Result represents the outcome of a successful run.
type Result struct {
	// OutputPath is the file that was written.
	OutputPath string

	// Stats contains statistics about the run.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	// VendorsWritten is the number of entries in the generated table.
	VendorsWritten int

	// BytesWritten is the size of the generated file.
	BytesWritten int

	// ProcessingTime is the total time taken.
	ProcessingTime time.Duration
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run parses the spreadsheet, generates the vendor table and writes it.
func Run(ctx context.Context, opts Options) (Result, error) {
	startTime := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	if opts.InputPath == "" {
		return Result{}, errors.New("no spreadsheet given")
	}
	if opts.OutputPath == "" {
		return Result{}, errors.New("no output path given")
	}

	genOpts := opts.Codegen
	if genOpts.Source == "" {
		genOpts.Source = filepath.Base(opts.InputPath)
	}

	logger.Info("parsing spreadsheet", "path", opts.InputPath)

	vendors := validation.UniqueIDs(spreadsheet.Parse(opts.InputPath, opts.Spreadsheet))
	counted := 0
	vendors = observe(ctx, vendors, func(v pnp.Vendor) {
		counted++
		logger.Debug("vendor", "pnp_id", v.PNPID, "name", v.Name, "approved", v.ApprovalDate.Format(time.DateOnly))
	})

	src, err := codegen.Render(vendors, genOpts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate vendor table: %w", err)
	}

	logger.Debug("generated vendor table", "vendors", counted, "bytes", len(src))
	if counted == 0 {
		logger.Warn("no vendor rows found", "path", opts.InputPath)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := utils.WriteFileAtomic(opts.OutputPath, src); err != nil {
		return Result{}, fmt.Errorf("failed to write output: %w", err)
	}

	result := Result{
		OutputPath: opts.OutputPath,
		Stats: Stats{
			VendorsWritten: counted,
			BytesWritten:   len(src),
			ProcessingTime: time.Since(startTime),
		},
	}

	logger.Info("wrote vendor table",
		"path", result.OutputPath,
		"vendors", result.Stats.VendorsWritten,
		"elapsed", result.Stats.ProcessingTime,
	)

	return result, nil
}

// observe calls fn for every record passing through vendors and stops with
// the context error once ctx is done.
func observe(ctx context.Context, vendors iter.Seq2[pnp.Vendor, error], fn func(pnp.Vendor)) iter.Seq2[pnp.Vendor, error] {
	return func(yield func(pnp.Vendor, error) bool) {
		for vendor, err := range vendors {
			if err == nil {
				err = ctx.Err()
			}
			if err != nil {
				yield(pnp.Vendor{}, err)
				return
			}

			fn(vendor)
			if !yield(vendor, nil) {
				return
			}
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
