package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/oclhpp/internal/version"
	"github.com/macropower/oclhpp/pkg/generator"
	"github.com/macropower/oclhpp/pkg/log"
	"github.com/macropower/oclhpp/pkg/oclerrors"
	"github.com/macropower/oclhpp/pkg/tracing"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

// NewRootCmd returns the root command. It takes exactly two positional
// arguments: the kernel directory and the header directory.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	var logger *slog.Logger

	cmd := &cobra.Command{
		Use:           name + " <kernel_dir> <header_dir>",
		Short:         shortDesc,
		Long:          longDesc,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	cmd.Flags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.Flags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")
	cmd.Flags().IntVarP(args.jobs, "jobs", "j", 1, "Number of kernels to process concurrently")
	cmd.Flags().StringVar(args.manifest, "manifest", "", "Write a YAML manifest of generated headers to this file")

	if err := cmd.MarkFlagFilename("manifest", "yaml", "yml"); err != nil {
		panic(err)
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", oclerrors.ErrUsage, err)
	})

	cmd.PreRunE = func(cc *cobra.Command, _ []string) error {
		var merr error

		if args.GetJobs() < 1 {
			merr = multierror.Append(merr, fmt.Errorf("--jobs must be at least 1, got %d", args.GetJobs()))
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), args.GetLogLevel(), args.GetLogFormat())
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %w", ErrLogHandlerFailed, err))
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", oclerrors.ErrInvalidArguments, merr)
		}

		logger = slog.New(h)
		slog.SetDefault(logger)

		logger.Debug("ready to go", slog.String("version", version.String()))

		return nil
	}

	cmd.RunE = func(cc *cobra.Command, posArgs []string) error {
		kernelDir, headerDir := posArgs[0], posArgs[1]

		g := generator.New(
			generator.WithStdout(cc.OutOrStdout()),
			generator.WithLogger(logger),
			generator.WithTracer(tracing.NewLoggingTracer(logger)),
			generator.WithJobs(args.GetJobs()),
		)

		res, err := g.Generate(cc.Context(), kernelDir, headerDir)
		if err != nil {
			return fmt.Errorf("generate headers: %w", err)
		}

		if path := args.GetManifest(); path != "" {
			if err := res.Manifest.WriteFile(path); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}

			logger.Info("wrote manifest", slog.String("path", path))
		}

		logger.Debug("shutting down", slog.Int("headers", len(res.Manifest.Headers)))

		return nil
	}

	return cmd
}

// Execute runs cmd and returns the process exit code. Usage errors print the
// usage line for program to the command's standard output.
func Execute(ctx context.Context, cmd *cobra.Command, program string) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, oclerrors.ErrUsage) {
		fmt.Fprintf(cmd.OutOrStdout(), "Usage: %s <kernel_dir> <header_dir>\n", program)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+strings.TrimLeft(err.Error(), "\n"))

	return 1
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: accepts %d arg(s), received %d", oclerrors.ErrUsage, n, len(args))
		}

		return nil
	}
}
