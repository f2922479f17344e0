package main

import (
	"github.com/fjl/giocalc/giocalc/internal/calc"
	"github.com/fjl/giocalc/giocalc/internal/config"
	"github.com/fjl/giocalc/giocalc/internal/eval"
	"github.com/fjl/giocalc/giocalc/internal/history"
	"pkt.systems/pslog"
)

// newSession creates a calculator session for cfg. The returned close
// function flushes the transcript, if one is configured.
func newSession(cfg config.Config, log pslog.Logger) (*calc.Session, func() error, error) {
	mode, err := cfg.ResetMode()
	if err != nil {
		return nil, nil, err
	}
	hist := history.NewLog()
	closeFn := func() error { return nil }
	if cfg.Transcript != "" {
		tr := history.OpenTranscript(cfg.Transcript, log)
		hist.Subscribe(tr)
		closeFn = tr.Close
	}
	s := calc.NewSession(calc.Options{
		Evaluator:  eval.NewGovaluate(),
		History:    hist,
		Logger:     log,
		ResetMode:  mode,
		ErrorText:  cfg.ErrorText,
		ErrorDelay: cfg.ErrorDisplay,
	})
	return s, closeFn, nil
}
