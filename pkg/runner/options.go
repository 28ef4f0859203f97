package runner

import (
	"github.com/ib-77/arrayrunner/pkg/behavior"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type options struct {
	behaviors []behavior.ReturnBehavior
	logger    *zap.Logger
	tracer    trace.Tracer
}

type Option func(o *options)

// WithBehavior sets the initial return behavior. Passing it more than once
// makes New fail.
func WithBehavior(b ReturnBehavior) Option {
	return func(o *options) {
		o.behaviors = append(o.behaviors, b)
	}
}

// WithLogger sets the logger used for run diagnostics. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer that opens one span per run. Nil is ignored.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}
