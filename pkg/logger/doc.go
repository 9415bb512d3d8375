/*
Package logger provides a structured logging solution for confpiler.
It wraps uber-go/zap behind a small interface with verbosity levels.

Basic Usage:

	log := logger.NewLogger(logger.Config{
	    Verbosity: 0,  // Default level (WARN)
	})

	log.Warn("Source overrides a value with the same value")
	log.Info("Compiled configuration")   // Only shown with verbosity >= 1
	log.Debug("Loading source")          // Only shown with verbosity >= 2
	log.Trace("Visiting key")            // Only shown with verbosity >= 3

The CLI maps repeated -v flags (or CONFPILER_VERBOSE) onto Verbosity. The
default keeps stderr free of anything but warnings and errors, because
compiled output is usually captured from stdout by a shell.

Structured Logging:

	log.WithFields(logger.Fields{
	    "source": "conf/production.yaml",
	    "keys":   12,
	}).Debug("Flattened source")

Output Example (JSON):

	{
	    "level": "debug",
	    "ts": "2024-01-20T15:04:05.000Z",
	    "logger": "confpiler",
	    "message": "Flattened source",
	    "source": "conf/production.yaml",
	    "keys": 12
	}

Library callers that do not care about logs can pass logger.Nop().

Thread Safety:

The logger is safe for concurrent use by multiple goroutines.
*/
package logger
