// Command giocalc is a calculator with a keypad, an expression display and a
// history of past computations.
//
// Run without arguments it opens a desktop window. The tui subcommand runs the
// same calculator in a terminal, and eval computes a single expression.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fjl/giocalc/giocalc/internal/config"
	"github.com/fjl/giocalc/giocalc/internal/logx"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("giocalc command failed")
		return 1
	}
	return 0
}

// options are shared by all commands.
type options struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "giocalc",
		Short:         "Calculator with expression history",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd.Context(), opts.cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: <user config dir>/giocalc/config.toml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn or error")
	flags.String("error-reset", "delayed", "after a failed evaluation: delayed or immediate")
	flags.Duration("error-display", time.Second, "how long the error message stays visible")
	flags.String("transcript", "", "append history events as JSON lines to this file")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newEvalCmd(opts))
	root.AddCommand(newTranscriptCmd())
	return root
}

// load reads the configuration and installs a logger at the configured level.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logx.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	o.cfg = cfg
	cmd.SetContext(pslog.ContextWithLogger(cmd.Context(), logger))
	logger.Debug("config loaded", "path", o.configPath, "error_reset", cfg.ErrorReset, "transcript", cfg.Transcript)
	return nil
}
