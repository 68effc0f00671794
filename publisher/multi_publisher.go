package publisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/botutils"
	"github.com/golangid/botkit/codebase/interfaces"
)

// Multi publish every argument to all publishers concurrently
type Multi struct {
	publishers map[string]interfaces.Publisher
	names      []string
}

// NewMulti constructor, publishers keyed by name used in the aggregated error
func NewMulti() *Multi {
	return &Multi{publishers: make(map[string]interfaces.Publisher)}
}

// Add register publisher under name, nil publisher is ignored
func (m *Multi) Add(name string, p interfaces.Publisher) *Multi {
	if p == nil {
		return m
	}
	if _, ok := m.publishers[name]; !ok {
		m.names = append(m.names, name)
	}
	m.publishers[name] = p
	return m
}

// Len number of registered publishers
func (m *Multi) Len() int {
	return len(m.names)
}

type publishJob struct {
	name      string
	publisher interfaces.Publisher
}

// PublishMessage error aggregate every failed publisher
func (m *Multi) PublishMessage(ctx context.Context, args *botshared.PublisherArgument) error {
	if len(m.names) == 0 {
		return nil
	}

	var mu sync.Mutex
	mErr := bothelper.NewMultiError()

	pool := botutils.NewWorkerPool[publishJob](len(m.names))
	pool.Dispatch(ctx, func(ctx context.Context, job publishJob) {
		err := bothelper.Recover(func() error {
			arg := *args
			return job.publisher.PublishMessage(ctx, &arg)
		})
		if err != nil {
			mu.Lock()
			mErr.Append(job.name, err)
			mu.Unlock()
		}
	})
	for _, name := range m.names {
		pool.AddJob(publishJob{name: name, publisher: m.publishers[name]})
	}
	pool.Finish()

	if mErr.HasError() {
		return fmt.Errorf("publish: %w", mErr)
	}
	return nil
}

// Disconnect close every publisher implementing interfaces.Closer
func (m *Multi) Disconnect(ctx context.Context) error {
	mErr := bothelper.NewMultiError()
	for _, name := range m.names {
		if closer, ok := m.publishers[name].(interfaces.Closer); ok {
			mErr.Append(name, closer.Disconnect(ctx))
		}
	}
	if mErr.HasError() {
		return mErr
	}
	return nil
}
