package main

import (
	"context"
	"os"
	"os/signal"
)

// psi relies on Unix process groups and signals, so Windows gets a plain
// interrupt-aware context.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := submain(ctx)
	stop()
	os.Exit(code)
}
