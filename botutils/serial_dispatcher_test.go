package botutils

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golangid/botkit/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialDispatcher_OrderPerKey(t *testing.T) {
	d := NewSerialDispatcher(context.Background())

	var mu sync.Mutex
	got := map[string][]int{}
	for i := 0; i < 50; i++ {
		i := i
		for _, key := range []string{"thread-a", "thread-b"} {
			key := key
			require.NoError(t, d.Submit(key, func(ctx context.Context) {
				if i%7 == 0 {
					time.Sleep(time.Millisecond)
				}
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			}))
		}
	}
	d.Wait()

	for _, key := range []string{"thread-a", "thread-b"} {
		assert.Len(t, got[key], 50)
		for i, v := range got[key] {
			assert.Equal(t, i, v)
		}
	}
}

func TestSerialDispatcher_OneInFlightPerKey(t *testing.T) {
	d := NewSerialDispatcher(context.Background())

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	for i := 0; i < 20; i++ {
		_ = d.Submit("thread", func(ctx context.Context) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()
			time.Sleep(100 * time.Microsecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
		})
	}
	d.Wait()
	assert.Equal(t, 1, maxInFlight)
}

func TestSerialDispatcher_PanicDoesNotStopQueue(t *testing.T) {
	d := NewSerialDispatcher(context.Background())
	var (
		ran      bool
		panicKey string
		panicErr error
	)
	d.(*serialDispatcher).onPanic = func(key string, err error) {
		panicKey, panicErr = key, err
	}
	_ = d.Submit("k", func(ctx context.Context) { panic("boom") })
	_ = d.Submit("k", func(ctx context.Context) { ran = true })
	d.Wait()

	assert.True(t, ran)
	assert.Equal(t, "k", panicKey)
	assert.EqualError(t, panicErr, "boom")
}

func TestSerialDispatcher_PanicIsLogged(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf))
	defer logger.InitZap()

	d := NewSerialDispatcher(context.Background())
	_ = d.Submit("thread-1", func(ctx context.Context) { panic(errors.New("listener failed")) })
	d.Wait()

	assert.Contains(t, buf.String(), "job for thread-1 panic: listener failed")
	assert.Contains(t, buf.String(), `"scope":"recover"`)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestSerialDispatcher_Close(t *testing.T) {
	d := NewSerialDispatcher(context.Background())
	var ran bool
	_ = d.Submit("k", func(ctx context.Context) { ran = true })
	d.Close()
	assert.True(t, ran)
	assert.ErrorIs(t, d.Submit("k", func(ctx context.Context) {}), ErrDispatcherClosed)
}
