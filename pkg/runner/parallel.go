package runner

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/arrayrunner/pkg/behavior"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "arrayrunner/runner"

type ReturnBehavior = behavior.ReturnBehavior

const (
	LastReturn        = behavior.LastReturn
	ArrayReturn       = behavior.ArrayReturn
	ConcatArrayReturn = behavior.ConcatArrayReturn
)

var ErrInvalidArgument = behavior.ErrInvalidArgument

// Valid returns every accepted ReturnBehavior.
func Valid() []ReturnBehavior {
	return behavior.Valid()
}

// Parallel calls an operation for every element of a slice at once and
// combines the results according to its return behavior.
//
// A Parallel may be reused for any number of runs. Each run reads the
// behavior once when it starts.
type Parallel struct {
	*behavior.Holder
	logger *zap.Logger
	tracer trace.Tracer
}

// New creates a Parallel runner. The behavior defaults to LastReturn; an
// invalid one is reported here and never through a run.
func New(opts ...Option) (*Parallel, error) {
	o := options{
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := behavior.NewHolder(o.behaviors...)
	if err != nil {
		return nil, err
	}

	return &Parallel{
		Holder: h,
		logger: o.logger,
		tracer: o.tracer,
	}, nil
}

// Go starts one invocation of op per element of items and returns a future
// that delivers exactly one Settled value before it is closed.
//
// Every invocation is launched before Go returns. The future rejects with the
// first invocation error it observes, unchanged; the remaining invocations keep
// running and their outcomes are dropped.
func Go[T, R any](ctx context.Context, p *Parallel, items []T, op Operation[T, R], args ...any) <-chan Settled[Aggregate[R]] {
	if op == nil {
		return spawn(ctx, p, items, op, args,
			fmt.Errorf("%w: expected type function, but passed nil", ErrInvalidArgument))
	}
	return spawn(ctx, p, items, op, args, nil)
}

// Run is the blocking form of Go. It waits for the run to settle even when
// ctx ends; use Await on the result of Go to stop waiting early.
func Run[T, R any](ctx context.Context, p *Parallel, items []T, op Operation[T, R], args ...any) (Aggregate[R], error) {
	s := <-Go(ctx, p, items, op, args...)
	return s.Value(), s.Err()
}

// Await waits for a future returned by Go or RunDynamic. When ctx ends first
// it returns ctx.Err(); the run itself is not affected.
func Await[R any](ctx context.Context, future <-chan Settled[Aggregate[R]]) (Aggregate[R], error) {
	select {
	case s, ok := <-future:
		if !ok {
			return Aggregate[R]{}, fmt.Errorf("%w: future already consumed", ErrInvalidArgument)
		}
		return s.Value(), s.Err()
	case <-ctx.Done():
		return Aggregate[R]{}, ctx.Err()
	}
}

func spawn[T, R any](ctx context.Context, p *Parallel, items []T, op Operation[T, R], args []any,
	precondition error) <-chan Settled[Aggregate[R]] {

	future := make(chan Settled[Aggregate[R]], 1)

	if p == nil {
		future <- rejected[Aggregate[R]](-1, fmt.Errorf("%w: runner is nil", ErrInvalidArgument))
		close(future)
		return future
	}

	r := p.begin(ctx, len(items))
	if precondition != nil {
		r.rejected(-1, uuid.Nil, precondition)
		future <- rejected[Aggregate[R]](-1, precondition)
		close(future)
		return future
	}

	settled := launch(r.ctx, items, op, slices.Clone(args))

	go func() {
		defer close(future)

		results, failed := join(settled, len(items))
		if failed != nil {
			r.rejected(failed.Index(), failed.ID(), failed.Err())
			future <- rejected[Aggregate[R]](-1, failed.Err())
			return
		}

		r.resolved()
		future <- resolved(-1, reduce(r.behavior, results))
	}()

	return future
}

// launch fans out in input order. The channel is buffered for every
// invocation so that late outcomes never block once the join has given up.
func launch[T, R any](ctx context.Context, items []T, op Operation[T, R], args []any) <-chan Settled[R] {
	settled := make(chan Settled[R], len(items))
	for i, item := range items {
		go func() {
			settled <- invoke(ctx, i, item, op, args)
		}()
	}
	return settled
}

func invoke[T, R any](ctx context.Context, index int, item T, op Operation[T, R], args []any) (s Settled[R]) {
	defer func() {
		if rec := recover(); rec != nil {
			s = rejected[R](index, fmt.Errorf("operation panicked on element %d: %v", index, rec))
		}
	}()

	v, err := op(ctx, item, args...)
	if err != nil {
		return rejected[R](index, err)
	}
	return resolved(index, v)
}

// join collects n outcomes into input order and stops at the first failure,
// which it returns instead of the results.
func join[R any](settled <-chan Settled[R], n int) ([]R, *Settled[R]) {
	results := make([]R, n)
	for range n {
		s := <-settled
		if !s.IsSuccess() {
			return nil, &s
		}
		results[s.Index()] = s.Value()
	}
	return results, nil
}

type run struct {
	ctx      context.Context
	behavior ReturnBehavior
	started  time.Time
	span     trace.Span
	logger   *zap.Logger
}

func (p *Parallel) begin(ctx context.Context, items int) *run {
	id := uuid.New()
	b := p.Behavior()

	ctx, span := p.tracer.Start(ctx, "runner.Run", trace.WithAttributes(
		attribute.String("run.id", id.String()),
		attribute.String("run.behavior", b.String()),
		attribute.Int("run.items", items),
	))

	logger := p.logger.With(zap.String("run_id", id.String()), zap.Stringer("behavior", b))
	logger.Debug("run started", zap.Int("items", items))

	return &run{
		ctx:      ctx,
		behavior: b,
		started:  time.Now(),
		span:     span,
		logger:   logger,
	}
}

// rejected ends the run with err. invocation is uuid.Nil when the run failed
// before any invocation was launched.
func (r *run) rejected(index int, invocation uuid.UUID, err error) {
	fields := []zap.Field{zap.Int("index", index)}
	var attrs []attribute.KeyValue
	if invocation != uuid.Nil {
		fields = append(fields, zap.String("invocation_id", invocation.String()))
		attrs = append(attrs,
			attribute.String("invocation.id", invocation.String()),
			attribute.Int("invocation.index", index))
	}

	r.span.RecordError(err, trace.WithAttributes(attrs...))
	r.span.SetStatus(codes.Error, err.Error())
	r.span.End()

	r.logger.Debug("run rejected", append(fields,
		zap.Duration("duration", time.Since(r.started)),
		zap.Error(err))...)
}

func (r *run) resolved() {
	r.span.SetStatus(codes.Ok, "")
	r.span.End()

	r.logger.Debug("run resolved", zap.Duration("duration", time.Since(r.started)))
}
