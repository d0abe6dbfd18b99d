package coingecko

import (
	"context"
	"log/slog"
	"sync"
)

// Task is one unit of work processed by the pool.
type Task func(ctx context.Context) error

// WorkerPool fans upsert tasks out over a fixed number of goroutines.
type WorkerPool struct {
	workerCount int
	taskQueue   chan Task
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	closeMux    sync.Mutex
	logger      *slog.Logger
}

func NewWorkerPool(ctx context.Context, workerCount int, logger *slog.Logger) *WorkerPool {
	poolCtx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		taskQueue:   make(chan Task, workerCount*2),
		ctx:         poolCtx,
		cancel:      cancel,
		logger:      logger,
	}
}

func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	wp.logger.Info("worker pool started", "workers", wp.workerCount)
}

// Submit queues a task unless the pool is shutting down.
func (wp *WorkerPool) Submit(task Task) {
	select {
	case wp.taskQueue <- task:
	case <-wp.ctx.Done():
		wp.logger.Warn("pool shutting down, task dropped")
	}
}

// Wait closes the queue and blocks until every queued task is done.
func (wp *WorkerPool) Wait() {
	wp.closeMux.Lock()
	if !wp.closed {
		close(wp.taskQueue)
		wp.closed = true
	}
	wp.closeMux.Unlock()

	wp.wg.Wait()
}

// Shutdown cancels in-flight tasks and waits for the workers to exit.
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	wp.Wait()
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		select {
		case <-wp.ctx.Done():
			return
		default:
		}

		if err := task(wp.ctx); err != nil {
			wp.logger.Error("task failed", "worker", id, "error", err)
		}
	}
}
