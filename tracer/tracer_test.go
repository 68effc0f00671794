package tracer

import (
	"context"
	"testing"

	"github.com/golangid/botkit/codebase/interfaces"
	"github.com/stretchr/testify/assert"
)

type recordPlatform struct{ names []string }

func (r *recordPlatform) StartSpan(ctx context.Context, opName string) interfaces.Tracer {
	r.names = append(r.names, opName)
	return &noopTracer{ctx}
}

func TestStartTrace(t *testing.T) {
	p := &recordPlatform{}
	SetTracerPlatformType(p)
	defer SetTracerPlatformType(noopTracer{})

	trace, ctx := StartTraceWithContext(context.Background(), "Session:Connect")
	trace.SetTag("botName", "kore")
	trace.Finish()
	assert.NotNil(t, ctx)
	assert.Equal(t, []string{"Session:Connect"}, p.names)

	skip := SkipTraceContext(context.Background())
	StartTrace(skip, "Skipped").Finish()
	assert.Len(t, p.names, 1)
}

func TestWithTracerFunc(t *testing.T) {
	var called bool
	WithTracerFunc(context.Background(), "op", func(ctx context.Context, tr interfaces.Tracer) {
		called = true
		assert.NotNil(t, tr.Tags())
	})
	assert.True(t, called)
}

func Test_toString(t *testing.T) {
	assert.Equal(t, "plain", toString("plain"))
	assert.Equal(t, `{"a":1}`, toString(map[string]int{"a": 1}))
	assert.Equal(t, `{"accessToken":"xxxxx"}`, toString(`{"accessToken":"secret"}`))
}
