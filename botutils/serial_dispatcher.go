package botutils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/logger"
	"go.uber.org/zap/zapcore"
)

// ErrDispatcherClosed returned by Submit after Close
var ErrDispatcherClosed = errors.New("dispatcher closed")

// SerialDispatcher run jobs grouped by key, jobs of one key run one at a time in submit order,
// different keys run concurrently
type SerialDispatcher interface {
	Submit(key string, job func(context.Context)) error
	Wait()
	Close()
}

type keyQueue struct {
	jobs    []func(context.Context)
	running bool
}

type serialDispatcher struct {
	ctx    context.Context
	mu     sync.Mutex
	wg     sync.WaitGroup
	queues map[string]*keyQueue
	closed bool
	// onPanic called with the key of a job that panicked, the queue keeps draining
	onPanic func(key string, err error)
}

// NewSerialDispatcher create dispatcher, ctx is passed to every job
func NewSerialDispatcher(ctx context.Context) SerialDispatcher {
	return &serialDispatcher{
		ctx:     ctx,
		queues:  make(map[string]*keyQueue),
		onPanic: logPanic,
	}
}

func (d *serialDispatcher) Submit(key string, job func(context.Context)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDispatcherClosed
	}
	q := d.queues[key]
	if q == nil {
		q = &keyQueue{}
		d.queues[key] = q
	}
	q.jobs = append(q.jobs, job)
	d.wg.Add(1)
	if !q.running {
		q.running = true
		go d.drain(key, q)
	}
	return nil
}

func (d *serialDispatcher) drain(key string, q *keyQueue) {
	for {
		d.mu.Lock()
		if len(q.jobs) == 0 {
			q.running = false
			delete(d.queues, key)
			d.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		d.mu.Unlock()

		d.run(key, job)
	}
}

func (d *serialDispatcher) run(key string, job func(context.Context)) {
	defer d.wg.Done()
	bothelper.TryCatch{
		Try: func() {
			job(d.ctx)
		},
		Catch: func(err error) {
			d.onPanic(key, err)
		},
	}.Do()
}

func logPanic(key string, err error) {
	logger.Log(zapcore.ErrorLevel, fmt.Sprintf("job for %s panic: %v", key, err), "serial_dispatcher", "recover")
}

// Wait until every submitted job finished
func (d *serialDispatcher) Wait() {
	d.wg.Wait()
}

// Close reject new jobs and wait the queued ones
func (d *serialDispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
