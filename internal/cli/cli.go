package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/specialistvlad/colengine/internal/app"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// options are the flags shared by every command.
type options struct {
	logLevel     string
	logFormat    string
	logFile      string
	defaults     bool
	cacheSize    int
	healthPort   int
	columns      []string
	kind         string
	index        int
	outPath      string
	logMaxSizeMB int
}

// NewRootCommand builds the colengine command tree. Command results are
// written to outW and logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "colengine",
		Short: "Computed column engine for graph datasets",
		Long: `colengine registers derived columns over a graph dataset, keeps their
dependency graph acyclic and materializes them on demand.

Column and dataset definitions are read from .hcl files or directories
passed as arguments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&opts.logFile, "log-file", "", "Write logs to this file, rotated by size, instead of stderr.")
	pf.IntVar(&opts.logMaxSizeMB, "log-max-size", 100, "Maximum size in megabytes of the log file before rotation.")
	pf.BoolVar(&opts.defaults, "defaults", false, "Register the default host and local buffers before the definitions.")
	pf.IntVar(&opts.cacheSize, "cache-size", 0, "Number of dense arrays kept for single-value reads. 0 disables the cache.")

	root.AddCommand(
		newEvalCommand(opts, errW),
		newGraphCommand(opts, errW),
		newExportCommand(opts, errW),
		newServeCommand(opts, errW),
	)
	return root
}

// loadApp validates the flags, builds the app and loads every definition.
func loadApp(ctx context.Context, opts *options, paths []string, errW io.Writer) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		DefinitionPaths: paths,
		LoadDefaults:    opts.defaults,
		DenseCacheSize:  opts.cacheSize,
		LogFormat:       strings.ToLower(opts.logFormat),
		LogLevel:        strings.ToLower(opts.logLevel),
		LogFile:         opts.logFile,
		LogMaxSizeMB:    opts.logMaxSizeMB,
		HealthcheckPort: opts.healthPort,
	})
	if err != nil {
		return nil, usageError(err)
	}

	a := app.NewApp(errW, cfg)
	if err := a.Load(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// selectColumns resolves the --column and --kind flags. With neither set
// every registered column is selected.
func selectColumns(a *app.App, opts *options) ([]colid.ID, error) {
	if len(opts.columns) > 0 && opts.kind != "" {
		return nil, usageError(errors.New("--column and --kind are mutually exclusive"))
	}
	if len(opts.columns) > 0 {
		ids, err := colid.ParseAll(opts.columns)
		if err != nil {
			return nil, usageError(err)
		}
		return ids, nil
	}
	if opts.kind != "" {
		kind, err := column.ParseComponentKind(opts.kind)
		if err != nil {
			return nil, usageError(err)
		}
		return a.ColumnsOfKind(kind), nil
	}
	return a.Registry().ActiveIDs(), nil
}

func formatIDs(ids []colid.ID) string {
	if len(ids) == 0 {
		return "-"
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.Key()
	}
	return strings.Join(keys, ",")
}

func formatShape(t column.ElementType, arity int) string {
	if arity == 1 {
		return t.String()
	}
	return fmt.Sprintf("%s[%d]", t, arity)
}
