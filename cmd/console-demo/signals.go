package main

import (
	"context"
	"os"
	"os/signal"
)

// signalContext will set up a context that will be cancelled if any of the given signals are received.
// If a second signal is received, then [os.Exit] will be called with a non-zero exit code.
// The returned function stops listening for signals.
func signalContext(parent context.Context, signals ...os.Signal) (context.Context, func()) {
	if len(signals) == 0 {
		panic("no signals passed to signalContext")
	}
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, signals...)
	go func() {
		defer cancel()
		select {
		case <-sigs:
		case <-done:
			return
		}
		cancel()
		select {
		case <-sigs:
			os.Exit(1)
		case <-done:
		}
	}()
	return ctx, func() {
		signal.Stop(sigs)
		close(done)
	}
}
