package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool(t *testing.T) {
	tests := []struct {
		name      string
		workers   int
		rateLimit int
		setup     func(*testing.T) []Task
		validate  func(*testing.T, []Result)
		wantErr   bool
	}{
		{
			name:    "basic task processing",
			workers: 4,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 8)
				for i := 0; i < 8; i++ {
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i, Data: i * 2}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				require.Len(t, results, 8)
				for i, r := range results {
					assert.Equal(t, i*2, r.Data)
				}
			},
		},
		{
			name:    "results keep submission order",
			workers: 4,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 6)
				for i := 0; i < 6; i++ {
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							// earlier tasks finish last
							time.Sleep(time.Duration(6-i) * 10 * time.Millisecond)
							return Result{ID: i, Data: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				require.Len(t, results, 6)
				for i, r := range results {
					assert.Equal(t, i, r.ID)
				}
			},
		},
		{
			name:      "rate limited processing",
			workers:   4,
			rateLimit: 20,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 5)
				for i := 0; i < 5; i++ {
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i, Data: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				assert.Len(t, results, 5)
			},
		},
		{
			name:    "more tasks than queue capacity",
			workers: 1,
			setup: func(t *testing.T) []Task {
				tasks := make([]Task, 50)
				for i := 0; i < 50; i++ {
					tasks[i] = Task{
						ID: i,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{ID: i}, nil
						},
					}
				}
				return tasks
			},
			validate: func(t *testing.T, results []Result) {
				assert.Len(t, results, 50)
			},
		},
		{
			name:    "error handling",
			workers: 2,
			setup: func(t *testing.T) []Task {
				return []Task{
					{
						ID: 1,
						Execute: func(ctx context.Context) (Result, error) {
							return Result{}, errors.New("planned error")
						},
					},
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(Config{
				Workers:   tt.workers,
				RateLimit: tt.rateLimit,
			})
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			require.NoError(t, pool.Start(ctx))

			for _, task := range tt.setup(t) {
				require.NoError(t, pool.Submit(task))
			}

			results, err := pool.Wait()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, results)
		})
	}
}

func TestWorkerPoolPartialFailure(t *testing.T) {
	pool, err := NewPool(Config{Workers: 2})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	planned := errors.New("planned error")
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				if i == 2 {
					return Result{}, planned
				}
				return Result{ID: i}, nil
			},
		}))
	}

	results, err := pool.Wait()
	assert.ErrorIs(t, err, planned)
	assert.Contains(t, err.Error(), "task 2 failed")

	ids := make([]int, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{0, 1, 3}, ids)
}

func TestWorkerPoolCancellation(t *testing.T) {
	pool, err := NewPool(Config{Workers: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, pool.Start(ctx))

	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				select {
				case <-ctx.Done():
					return Result{}, ctx.Err()
				case <-time.After(2 * time.Second):
					return Result{ID: i}, nil
				}
			},
		}))
	}

	results, err := pool.Wait()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, results)
}

func TestWorkerPoolConcurrency(t *testing.T) {
	pool, err := NewPool(Config{Workers: 4})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	var concurrent, maxConcurrent atomic.Int32
	for i := 0; i < 8; i++ {
		require.NoError(t, pool.Submit(Task{
			ID: i,
			Execute: func(ctx context.Context) (Result, error) {
				current := concurrent.Add(1)
				for {
					seen := maxConcurrent.Load()
					if current <= seen || maxConcurrent.CompareAndSwap(seen, current) {
						break
					}
				}
				time.Sleep(50 * time.Millisecond)
				concurrent.Add(-1)
				return Result{ID: i}, nil
			},
		}))
	}

	results, err := pool.Wait()
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, maxConcurrent.Load(), int32(4))
	assert.Greater(t, maxConcurrent.Load(), int32(1))
}

func TestPoolConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "valid config", config: Config{Workers: 4, RateLimit: 10}},
		{name: "zero workers", config: Config{Workers: 0}, wantErr: true},
		{name: "negative workers", config: Config{Workers: -1}, wantErr: true},
		{name: "negative rate limit", config: Config{Workers: 1, RateLimit: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, pool)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, pool)
			}
		})
	}
}

func TestPoolLifecycle(t *testing.T) {
	pool, err := NewPool(Config{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, StatusStopped, pool.Status())
	assert.Error(t, pool.Submit(Task{ID: 1}))
	_, err = pool.Wait()
	assert.Error(t, err)

	require.NoError(t, pool.Start(context.Background()))
	assert.Error(t, pool.Start(context.Background()))
	assert.Equal(t, StatusIdle, pool.Status())

	require.NoError(t, pool.Submit(Task{
		ID: 1,
		Execute: func(ctx context.Context) (Result, error) {
			return Result{ID: 1}, nil
		},
	}))

	_, err = pool.Wait()
	require.NoError(t, err)

	stats := pool.GetStats()
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 0, stats.FailedTasks)
	assert.Equal(t, 0, stats.QueuedTasks)
	assert.Equal(t, StatusStopped, stats.Status)

	assert.Error(t, pool.Submit(Task{ID: 2}))
	assert.NoError(t, pool.Stop())
	assert.NoError(t, pool.Stop())
}

func TestStatsUptime(t *testing.T) {
	pool, err := NewPool(Config{Workers: 1})
	require.NoError(t, err)
	require.NoError(t, pool.Start(context.Background()))

	time.Sleep(100 * time.Millisecond)

	stats := pool.GetStats()
	assert.True(t, stats.Uptime >= 100*time.Millisecond,
		"Expected uptime >= 100ms, got %v", stats.Uptime)
	assert.NoError(t, pool.Stop())
}
