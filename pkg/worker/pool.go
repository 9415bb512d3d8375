/*
Package worker provides a bounded worker pool for running independent tasks
concurrently, with optional rate limiting and context cancellation.

Results come back in submission order regardless of which worker finished
first.

Basic usage:

	pool, err := worker.NewPool(worker.Config{
		Workers:   4,
		RateLimit: 10, // 10 ops/sec
	})

	pool.Start(ctx)

	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: "compiled"}, nil
		},
	})

	results, err := pool.Wait()
*/
package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Task represents a unit of work to be processed by the worker pool
type Task struct {
	// ID identifies the task in results and errors
	ID int

	// Execute performs the work. It receives the pool's context.
	Execute func(context.Context) (Result, error)
}

// Result represents the output of a processed task
type Result struct {
	// ID matches the task ID that produced this result
	ID int

	// Data holds the actual result data
	Data interface{}

	// order is the submission index of the producing task
	order int
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// RateLimit is the maximum number of tasks started per second (0 for unlimited)
	RateLimit int
}

// Pool defines the interface for a worker pool
type Pool interface {
	// Start starts the workers
	Start(context.Context) error

	// Submit queues a task, blocking while the queue is full
	Submit(Task) error

	// Wait closes the queue, blocks until every submitted task is done and
	// returns the successful results in submission order along with the
	// joined task errors
	Wait() ([]Result, error)

	// GetStats returns current statistics about the pool
	GetStats() Stats

	// Status returns the current status of the pool
	Status() Status

	// Stop cancels outstanding work and shuts the pool down
	Stop() error
}

type pool struct {
	config  Config
	tasks   chan orderedTask
	limiter *rate.Limiter
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	started bool
	closed  bool
	stopped bool
	next    int

	resultsMu sync.Mutex
	results   []Result
	errs      []error

	startTime time.Time
	active    atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
}

type orderedTask struct {
	Task
	order int
}

// NewPool creates a new worker pool with the given configuration
func NewPool(config Config) (Pool, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool{
		config:  config,
		tasks:   make(chan orderedTask, config.Workers*2),
		limiter: limiter,
	}, nil
}

func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

// Start initializes and starts the worker pool
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.startTime = time.Now()

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return nil
}

// Submit adds a task to the pool for processing
func (p *pool) Submit(task Task) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return fmt.Errorf("pool not started")
	}
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("pool no longer accepts tasks")
	}
	order := p.next
	p.next++
	ctx := p.ctx
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", ctx.Err())
	case p.tasks <- orderedTask{Task: task, order: order}:
		return nil
	}
}

// Wait blocks until all submitted tasks are processed
func (p *pool) Wait() ([]Result, error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	p.closeTasks()
	p.mu.Unlock()

	p.wg.Wait()

	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()

	results := make([]Result, len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	return results, errors.Join(p.errs...)
}

// Stop gracefully shuts down the pool
func (p *pool) Stop() error {
	p.mu.Lock()
	if p.stopped || !p.started {
		p.stopped = true
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.cancel()
	p.closeTasks()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

// closeTasks must be called with p.mu held.
func (p *pool) closeTasks() {
	if !p.closed {
		close(p.tasks)
		p.closed = true
	}
}

func (p *pool) GetStats() Stats {
	var uptime time.Duration
	p.mu.Lock()
	if p.started {
		uptime = time.Since(p.startTime)
	}
	p.mu.Unlock()

	return Stats{
		ActiveWorkers:  int(p.active.Load()),
		QueuedTasks:    len(p.tasks),
		CompletedTasks: int(p.completed.Load()),
		FailedTasks:    int(p.failed.Load()),
		Status:         p.Status(),
		Uptime:         uptime,
	}
}

func (p *pool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case !p.started || p.stopped:
		return StatusStopped
	case p.closed && p.active.Load() == 0 && len(p.tasks) == 0:
		return StatusStopped
	case p.closed:
		return StatusShuttingDown
	case p.active.Load() > 0 || len(p.tasks) > 0:
		return StatusProcessing
	default:
		return StatusIdle
	}
}

func (p *pool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.active.Add(1)
		result, err := p.run(task)
		p.active.Add(-1)

		p.resultsMu.Lock()
		if err != nil {
			p.failed.Add(1)
			p.errs = append(p.errs, err)
		} else {
			p.completed.Add(1)
			result.order = task.order
			p.results = append(p.results, result)
		}
		p.resultsMu.Unlock()
	}
}

func (p *pool) run(task orderedTask) (Result, error) {
	if err := p.ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("task %d not started: %w", task.ID, err)
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(p.ctx); err != nil {
			return Result{}, fmt.Errorf("rate limiter error: %w", err)
		}
	}

	result, err := task.Execute(p.ctx)
	if err != nil {
		return Result{}, fmt.Errorf("task %d failed: %w", task.ID, err)
	}
	return result, nil
}
