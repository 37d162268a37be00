package base

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// WaitForSignal blocks until SIGINT, SIGTERM or SIGHUP and then shuts down like WaitForGoroutines.
func WaitForSignal(logger *slog.Logger, cancelCtx context.CancelFunc, wg *sync.WaitGroup, timeout time.Duration) error {
	// setup signal handling
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signalChannel)

	// block until signal received
	sig := <-signalChannel
	logger.Info("shutdown signal received", "signal", sig.String())

	return WaitForGoroutines(logger, cancelCtx, wg, timeout)
}

// WaitForGoroutines cancels the shared context and waits up to timeout for the wait group.
func WaitForGoroutines(logger *slog.Logger, cancelCtx context.CancelFunc, wg *sync.WaitGroup, timeout time.Duration) error {
	// cancel context to signal all goroutines to stop
	cancelCtx()

	// wait for all goroutines to finish
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all goroutines have finished")
		return nil
	case <-time.After(timeout):
		logger.Warn("shutdown timeout reached, forcing exit")
		return fmt.Errorf("shutdown timeout reached")
	}
}
