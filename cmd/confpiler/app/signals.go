package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mattcl/confpiler/pkg/logger"
)

// setupSignalHandling cancels the application context on the first SIGINT
// or SIGTERM and exits on the second.
func (a *App) setupSignalHandling() {
	a.log.Debug("Initializing signal handlers")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	a.stop = func() {
		signal.Stop(sigChan)
		close(done)
	}

	go a.handleSignals(sigChan, done)
}

func (a *App) handleSignals(sigChan <-chan os.Signal, done <-chan struct{}) {
	var interrupted atomic.Bool

	for {
		select {
		case <-done:
			return
		case sig := <-sigChan:
			a.log.WithFields(logger.Fields{
				"signal": sig.String(),
			}).Debug("Received system signal")

			if !interrupted.CompareAndSwap(false, true) {
				a.log.Warn("Received second interrupt, exiting")
				os.Exit(1)
			}

			a.log.Info("Cancelling in-flight checks")
			a.cancel()
		}
	}
}
