package botutils

import (
	"context"
	"sync"
)

// WorkerPool implementation
type WorkerPool[T any] interface {
	Dispatch(ctx context.Context, jobFunc func(context.Context, T))
	AddJob(job T)
	Finish()
}

type workerPool[T any] struct {
	maxWorker int
	wg        sync.WaitGroup
	jobChan   chan T
}

// NewWorkerPool create an instance of WorkerPool, maxWorker below one is treated as one
func NewWorkerPool[T any](maxWorker int) WorkerPool[T] {
	if maxWorker < 1 {
		maxWorker = 1
	}
	return &workerPool[T]{
		maxWorker: maxWorker,
		jobChan:   make(chan T),
	}
}

func (wp *workerPool[T]) Dispatch(ctx context.Context, jobFunc func(context.Context, T)) {
	for i := 0; i < wp.maxWorker; i++ {
		go func() {
			for job := range wp.jobChan {
				jobFunc(ctx, job)
				wp.wg.Done()
			}
		}()
	}
}

func (wp *workerPool[T]) AddJob(job T) {
	wp.wg.Add(1)
	wp.jobChan <- job
}

func (wp *workerPool[T]) Finish() {
	close(wp.jobChan)
	wp.wg.Wait()
}
