package tracer

import (
	"context"
	"sync"

	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/codebase/interfaces"
)

var (
	mu           sync.RWMutex
	activeTracer PlatformType = noopTracer{}
)

// PlatformType define tracing platform. example using jaeger
type PlatformType interface {
	StartSpan(ctx context.Context, opName string) interfaces.Tracer
}

// SetTracerPlatformType function for set tracer platform
func SetTracerPlatformType(t PlatformType) {
	mu.Lock()
	defer mu.Unlock()
	activeTracer = t
}

// SkipTraceContext return context which disable tracing for every StartTrace under it
func SkipTraceContext(ctx context.Context) context.Context {
	return botshared.SetToContext(ctx, botshared.ContextKeySkipTracer, true)
}

// StartTrace starting trace child span from parent span
func StartTrace(ctx context.Context, operationName string) interfaces.Tracer {
	if botshared.GetValueFromContext(ctx, botshared.ContextKeySkipTracer) != nil {
		return &noopTracer{ctx}
	}

	mu.RLock()
	t := activeTracer
	mu.RUnlock()
	return t.StartSpan(ctx, operationName)
}

// StartTraceWithContext starting trace child span from parent span, returning tracer and context
func StartTraceWithContext(ctx context.Context, operationName string) (interfaces.Tracer, context.Context) {
	t := StartTrace(ctx, operationName)
	return t, t.Context()
}

// WithTracerFunc functional with Tracer instance in function params
func WithTracerFunc(ctx context.Context, operationName string, fn func(context.Context, interfaces.Tracer)) {
	t, ctx := StartTraceWithContext(ctx, operationName)
	defer t.Finish()

	fn(ctx, t)
}

type noopTracer struct{ ctx context.Context }

func (n noopTracer) Context() context.Context                      { return n.ctx }
func (noopTracer) Tags() map[string]interface{}                    { return map[string]interface{}{} }
func (noopTracer) SetTag(key string, value interface{})            {}
func (noopTracer) InjectRequestHeader(header map[string]string)    {}
func (noopTracer) SetError(err error)                              {}
func (noopTracer) Log(key string, value interface{})               {}
func (noopTracer) Finish(additionalTags ...map[string]interface{}) {}

func (n noopTracer) StartSpan(ctx context.Context, opName string) interfaces.Tracer {
	n.ctx = ctx
	return &n
}
