package app

import (
	"context"
	"fmt"

	"github.com/mattcl/confpiler/pkg/flatconfig"
	"github.com/mattcl/confpiler/pkg/logger"
	"github.com/mattcl/confpiler/pkg/output"
	"github.com/mattcl/confpiler/pkg/worker"
)

// envCheck is the outcome of checking a single environment.
type envCheck struct {
	environment string
	warnings    []flatconfig.MergeWarning
	err         error
}

func (c envCheck) failed(strict bool) bool {
	return c.err != nil || (strict && len(c.warnings) > 0)
}

// CheckAll checks the default configuration and every environment found in
// the directories among paths. Each environment is compiled independently
// on the worker pool; results are reported in environment order.
func (a *App) CheckAll(paths []string) error {
	envs, err := a.discoverer.AllEnvironments(paths, a.config.Default)
	if err != nil {
		return err
	}
	envs = append([]string{""}, envs...)

	workers := a.config.Workers
	if workers <= 0 {
		workers = 1
	}

	pool, err := worker.NewPool(worker.Config{
		Workers:   workers,
		RateLimit: a.config.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	if err := pool.Start(a.ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer pool.Stop()

	a.log.WithFields(logger.Fields{
		"environments": len(envs),
		"workers":      workers,
	}).Info("Checking all environments")

	for i, env := range envs {
		err := pool.Submit(worker.Task{
			ID: i,
			Execute: func(ctx context.Context) (worker.Result, error) {
				if err := ctx.Err(); err != nil {
					return worker.Result{}, err
				}
				_, warnings, err := a.Compile(paths, env)
				return worker.Result{
					ID:   i,
					Data: envCheck{environment: env, warnings: warnings, err: err},
				}, nil
			},
		})
		if err != nil {
			return fmt.Errorf("failed to submit check for %q: %w", env, err)
		}
	}

	results, err := pool.Wait()
	stats := pool.GetStats()
	a.log.WithFields(logger.Fields{
		"completed": stats.CompletedTasks,
		"failed":    stats.FailedTasks,
		"status":    string(stats.Status),
		"uptime":    stats.Uptime.String(),
	}).Debug("Worker pool drained")
	if err != nil {
		return fmt.Errorf("check interrupted: %w", err)
	}

	failures := 0
	for _, r := range results {
		check := r.Data.(envCheck)
		a.report(check)
		if check.failed(a.config.Strict) {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d environments failed the check", failures, len(envs))
	}

	fmt.Fprintln(a.out, "\nok")
	return nil
}

func (a *App) report(check envCheck) {
	name := check.environment
	if name == "" {
		name = a.config.Default
	}

	fmt.Fprintf(a.out, "Checking configuration (%s)...\n", name)

	if check.err != nil {
		fmt.Fprintf(a.out, "    error: %v\n", check.err)
		return
	}

	if len(check.warnings) > 0 {
		fmt.Fprintln(a.out, "Warnings:")
		fmt.Fprintln(a.out, output.FormatWarnings(check.warnings, a.colorEnabled()))
	}
}
