package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newEvalCommand(opts *options, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [definition paths...]",
		Short: "Materialize columns and print their values",
		Long: `Materialize the selected columns and print their values. Without
--index the whole dense column is printed; with --index only the values of
that component.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts, args, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			ids, err := selectColumns(a, opts)
			if err != nil {
				return err
			}
			results, err := a.Eval(cmd.Context(), ids, opts.index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%-40s  v%-4d  %-12s  %s\n", r.ID.Key(), r.Version, formatShape(r.Values.Type(), r.Arity), r.Values)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts.columns, "column", "c", nil, "Column identity (class:name) to evaluate. Repeatable.")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Evaluate every column of this component kind ('point' or 'edge').")
	cmd.Flags().IntVarP(&opts.index, "index", "i", -1, "Component index to evaluate. Negative evaluates the whole column.")
	return cmd
}

func newGraphCommand(opts *options, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "graph [definition paths...]",
		Short: "Print registered columns with their versions and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context(), opts, args, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-40s  %-7s  %-5s  %-12s  %-10s  %s\n", "COLUMN", "VERSION", "KIND", "TYPE", "STRATEGY", "DEPENDS ON")
			for _, info := range a.Registry().Describe() {
				fmt.Fprintf(out, "%-40s  %-7d  %-5s  %-12s  %-10s  %s\n",
					info.ID.Key(), info.Version, info.Kind, formatShape(info.ElementType, info.Arity), info.Strategy, formatIDs(info.Dependencies))
			}
			nodes, edges := a.Registry().GraphSize()
			fmt.Fprintf(out, "\n%d nodes, %d edges\n", nodes, edges)
			return nil
		},
	}
}

func newExportCommand(opts *options, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [definition paths...]",
		Short: "Write columns of one component kind as an Arrow IPC stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.outPath == "" {
				return usageError(errors.New("--out is required"))
			}
			a, err := loadApp(cmd.Context(), opts, args, errW)
			if err != nil {
				return err
			}
			defer a.Close()

			ids, err := selectColumns(a, opts)
			if err != nil {
				return err
			}

			f, err := os.Create(opts.outPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			n, err := a.Export(cmd.Context(), f, ids)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d columns (%s) to %s\n", len(ids), humanize.Bytes(uint64(n)), opts.outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Destination file for the Arrow IPC stream.")
	cmd.Flags().StringSliceVarP(&opts.columns, "column", "c", nil, "Column identity (class:name) to export. Repeatable.")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Export every column of this component kind ('point' or 'edge').")
	return cmd
}

func newServeCommand(opts *options, errW io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [definition paths...]",
		Short: "Load the definitions and serve /health and /metrics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.healthPort <= 0 {
				return usageError(errors.New("--healthcheck-port is required"))
			}
			a, err := loadApp(cmd.Context(), opts, args, errW)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&opts.healthPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server.")
	return cmd
}
