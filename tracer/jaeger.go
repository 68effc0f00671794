package tracer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/golangid/botkit"
	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/codebase/interfaces"
	"github.com/golangid/botkit/logger"
	opentracing "github.com/opentracing/opentracing-go"
	ext "github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"github.com/uber/jaeger-client-go/config"
)

var maxPacketSize = int(65000 * bothelper.Byte)

// InitJaeger init jaeger tracing and set it as active platform, returned closer flush the reporter
func InitJaeger(serviceName string, opts ...OptionFunc) (io.Closer, error) {
	option := Option{MaxPacketSize: maxPacketSize}
	for _, opt := range opts {
		opt(&option)
	}
	if option.Level != "" {
		serviceName = fmt.Sprintf("%s-%s", serviceName, strings.ToLower(option.Level))
	}
	maxPacketSize = option.MaxPacketSize

	cfg := &config.Configuration{
		Sampler: &config.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            true,
			BufferFlushInterval: 1 * time.Second,
			LocalAgentHostPort:  option.AgentHost,
		},
		ServiceName: serviceName,
		Tags: []opentracing.Tag{
			{Key: "num_cpu", Value: runtime.NumCPU()},
			{Key: "go_version", Value: runtime.Version()},
			{Key: "botkit_version", Value: botkit.Version},
		},
	}
	tracer, closer, err := cfg.NewTracer(config.MaxTagValueLength(math.MaxInt32))
	if err != nil {
		logger.LogEf("cannot init jaeger tracing: %v", err)
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	SetTracerPlatformType(jaegerPlatform{})
	return closer, nil
}

type jaegerPlatform struct{}

func (jaegerPlatform) StartSpan(ctx context.Context, operationName string) interfaces.Tracer {
	var span opentracing.Span
	if parent := opentracing.SpanFromContext(ctx); parent == nil {
		span, ctx = opentracing.StartSpanFromContext(ctx, operationName)
	} else {
		span = opentracing.GlobalTracer().StartSpan(operationName, opentracing.ChildOf(parent.Context()))
		ctx = opentracing.ContextWithSpan(ctx, span)
	}
	return &jaegerImpl{ctx: ctx, span: span}
}

type jaegerImpl struct {
	ctx  context.Context
	span opentracing.Span
	tags map[string]interface{}
}

// Context get active context
func (t *jaegerImpl) Context() context.Context {
	return t.ctx
}

// Tags create tags in tracer span
func (t *jaegerImpl) Tags() map[string]interface{} {
	if t.tags == nil {
		t.tags = make(map[string]interface{})
	}
	return t.tags
}

// SetTag set tags in tracer span
func (t *jaegerImpl) SetTag(key string, value interface{}) {
	t.Tags()[key] = value
}

// InjectRequestHeader to continue tracer to outgoing request header
func (t *jaegerImpl) InjectRequestHeader(header map[string]string) {
	ext.SpanKindRPCClient.Set(t.span)
	_ = t.span.Tracer().Inject(t.span.Context(), opentracing.TextMap, opentracing.TextMapCarrier(header))
}

// SetError set error in span
func (t *jaegerImpl) SetError(err error) {
	if err == nil {
		return
	}
	ext.Error.Set(t.span, true)
	t.span.SetTag("error.message", err.Error())
}

// Log data in span
func (t *jaegerImpl) Log(key string, value interface{}) {
	t.span.LogFields(otlog.String(key, toString(value)))
}

// Finish trace with additional tags data, must in deferred function
func (t *jaegerImpl) Finish(additionalTags ...map[string]interface{}) {
	defer t.span.Finish()

	for _, tag := range additionalTags {
		for k, v := range tag {
			t.SetTag(k, v)
		}
	}
	for k, v := range t.tags {
		t.span.SetTag(k, toString(v))
	}
	t.span.SetTag("num_goroutines", runtime.NumGoroutine())
}

func toString(v interface{}) (s string) {
	switch val := v.(type) {
	case error:
		if val != nil {
			s = val.Error()
		}
	case string:
		s = val
	case []byte:
		s = string(val)
	case fmt.Stringer:
		s = val.String()
	default:
		b, _ := json.Marshal(val)
		s = string(b)
	}

	if len(s) >= maxPacketSize {
		return fmt.Sprintf("<<Overflow, cannot show data. Size is = %d bytes, max packet size = %d bytes>>",
			len(s), maxPacketSize)
	}
	return logger.NewMasker().Mask(s)
}
