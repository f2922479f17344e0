package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fjl/giocalc/giocalc/internal/history"
	"github.com/fjl/giocalc/giocalc/internal/logx"
	"github.com/fjl/giocalc/giocalc/internal/tui"
)

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calculator in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logx.WithUI(cmd.Context(), "tui")
			// Log output would garble the alternate screen.
			quiet, err := logx.New(io.Discard, opts.cfg.LogLevel)
			if err != nil {
				return err
			}
			session, closeHistory, err := newSession(opts.cfg, quiet)
			if err != nil {
				return err
			}
			log.Debug("tui started")
			err = tui.Run(cmd.Context(), session, quiet)
			if cerr := closeHistory(); err == nil {
				err = cerr
			}
			log.Debug("tui stopped", "entries", session.History().Len())
			return err
		},
	}
}

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate an expression and print the result",
		Long: `Evaluate joins its arguments with spaces, evaluates the expression and prints
the result the way the calculator display would. Use -- before expressions
starting with a minus sign.`,
		Example: "  giocalc eval '1/6'\n  giocalc eval -- -2 '*' 3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logx.WithUI(cmd.Context(), "eval")
			session, closeHistory, err := newSession(opts.cfg, log)
			if err != nil {
				return err
			}
			session.Paste(strings.Join(args, " "))
			res := session.Evaluate()
			if cerr := closeHistory(); cerr != nil {
				return cerr
			}
			if !res.Outcome.OK() {
				return res.Outcome.Err()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Outcome.Text())
			return err
		},
	}
}

func newTranscriptCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "transcript FILE",
		Short: "Print the computations recorded in a transcript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open transcript")
			}
			defer f.Close()

			events, err := history.ReadTranscript(f)
			out := cmd.OutOrStdout()
			for _, ev := range events {
				switch ev := ev.(type) {
				case *history.EntryAdded:
					fmt.Fprintf(out, "%s = %s\n", ev.Entry.Expression, ev.Entry.Result)
				case *history.EntrySelected:
					if all {
						fmt.Fprintf(out, "# replay %d\n", ev.Index)
					}
				}
			}
			return errors.Wrap(err, "read transcript")
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also print history replays")
	return cmd
}
