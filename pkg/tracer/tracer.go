// Package tracer 初始化 opentracing 全局 tracer，配置 jaeger agent 时上报到 jaeger
package tracer

import (
	"io"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	"github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewJaegerTracer 创建 tracer 并设置为全局 tracer
// agentHostPort 为空时 span 只在进程内传递（trace id 依然生成），不上报
func NewJaegerTracer(serviceName, agentHostPort string) (opentracing.Tracer, io.Closer, error) {
	if agentHostPort == "" {
		t, closer := jaeger.NewTracer(serviceName, jaeger.NewConstSampler(true), jaeger.NewNullReporter())
		opentracing.SetGlobalTracer(t)
		return t, closer, nil
	}

	cfg := &config.Configuration{
		ServiceName: serviceName,
		Sampler: &config.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &config.ReporterConfig{
			LogSpans:            false,
			BufferFlushInterval: time.Second,
			LocalAgentHostPort:  agentHostPort,
		},
	}
	t, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, nopCloser{}, err
	}
	opentracing.SetGlobalTracer(t)
	return t, closer, nil
}

// TraceID 返回 span 的 jaeger trace id，非 jaeger span 返回空串
func TraceID(span opentracing.Span) string {
	if span == nil {
		return ""
	}
	if sc, ok := span.Context().(jaeger.SpanContext); ok {
		return sc.TraceID().String()
	}
	return ""
}
