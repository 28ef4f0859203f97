package runner

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// RunDynamic is Go for values whose shape is only known at run time, such as
// decoded configuration or plugin callbacks.
//
// seq must be a slice or an array and op must be a function, otherwise the
// future rejects with ErrInvalidArgument and op is never called. op receives
// scope first when its first parameter accepts it (a method expression such
// as (*Adder).Add); free functions and method values ignore scope. Next comes
// ctx when the following parameter is a context.Context, then the element
// followed by args. Numeric args are converted only when no value is lost.
// op may return nothing, a value, an error, or a value and an error.
func RunDynamic(ctx context.Context, p *Parallel, seq any, op any, scope any, args ...any) <-chan Settled[Aggregate[any]] {
	items, err := toItems(seq)
	if err != nil {
		return spawn[any, any](ctx, p, nil, nil, nil, err)
	}

	call, err := toOperation(op, scope)
	if err != nil {
		return spawn[any, any](ctx, p, nil, nil, nil, err)
	}

	return spawn(ctx, p, items, call, args, nil)
}

func toItems(seq any) ([]any, error) {
	v := reflect.ValueOf(seq)
	if !isSequence(v) {
		return nil, fmt.Errorf("%w: expected type slice, but passed %s", ErrInvalidArgument, typeName(seq))
	}

	items := make([]any, v.Len())
	for i := range items {
		items[i] = v.Index(i).Interface()
	}
	return items, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

type signature struct {
	fn       reflect.Value
	scope    any
	wantsCtx bool
	// fixed is the number of parameters ahead of the variadic slot.
	fixed    int
	variadic reflect.Type
}

func toOperation(op any, scope any) (Operation[any, any], error) {
	fn := reflect.ValueOf(op)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: expected type function, but passed %s", ErrInvalidArgument, typeName(op))
	}
	if fn.IsNil() {
		return nil, fmt.Errorf("%w: expected type function, but passed nil %s", ErrInvalidArgument, typeName(op))
	}

	ft := fn.Type()
	if err := checkResults(ft); err != nil {
		return nil, err
	}

	sig := signature{fn: fn, fixed: ft.NumIn()}
	if ft.IsVariadic() {
		sig.fixed--
		sig.variadic = ft.In(ft.NumIn() - 1).Elem()
	}

	next := 0
	if receives(ft, sig.fixed, scope) {
		sig.scope = scope
		next++
	}
	sig.wantsCtx = next < sig.fixed && ft.In(next) == contextType

	return sig.call, nil
}

// receives reports whether scope is the receiver of a method expression.
// Free functions and method values ignore scope.
func receives(ft reflect.Type, fixed int, scope any) bool {
	if scope == nil || fixed == 0 {
		return false
	}
	first := ft.In(0)
	if first.Kind() == reflect.Interface && first.NumMethod() == 0 {
		return false
	}
	return reflect.TypeOf(scope).AssignableTo(first)
}

func checkResults(ft reflect.Type) error {
	switch ft.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if ft.Out(1) == errorType {
			return nil
		}
	}
	return fmt.Errorf("%w: operation %s must return (), (T), (error) or (T, error)", ErrInvalidArgument, ft)
}

func (s signature) call(ctx context.Context, item any, args ...any) (any, error) {
	values := make([]any, 0, len(args)+3)
	if s.scope != nil {
		values = append(values, s.scope)
	}
	if s.wantsCtx {
		values = append(values, ctx)
	}
	values = append(values, item)
	values = append(values, args...)

	if s.variadic == nil && len(values) > s.fixed {
		return nil, fmt.Errorf("%w: operation %s takes %d arguments, got %d",
			ErrInvalidArgument, s.fn.Type(), s.fixed, len(values))
	}

	ft := s.fn.Type()
	in := make([]reflect.Value, 0, max(len(values), s.fixed))
	for i, v := range values {
		target := s.variadic
		if i < s.fixed {
			target = ft.In(i)
		}
		rv, err := convert(v, target)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in = append(in, rv)
	}
	for i := len(in); i < s.fixed; i++ {
		in = append(in, reflect.Zero(ft.In(i)))
	}

	return results(s.fn.Call(in))
}

func convert(v any, target reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) {
		out := rv.Convert(target)
		if !out.Convert(rv.Type()).Equal(rv) || sign(out) != sign(rv) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", ErrInvalidArgument, v, target)
		}
		return out, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrInvalidArgument, rv.Type(), target)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func sign(v reflect.Value) int {
	switch {
	case v.CanInt():
		return cmp.Compare(v.Int(), 0)
	case v.CanUint():
		return cmp.Compare(v.Uint(), 0)
	default:
		return cmp.Compare(v.Float(), 0)
	}
}

func results(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
