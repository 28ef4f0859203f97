package runner

import "context"

// Operation is called once per input element. args are the extra arguments
// given to the run, shared by every call and not to be modified.
type Operation[T, R any] func(ctx context.Context, item T, args ...any) (R, error)

// Bind turns a method expression into an Operation bound to scope.
//
//	op := Bind(adder, (*Adder).Add)
//
// A method value (adder.Add) is already bound and can be used directly.
func Bind[S, T, R any](scope S, method func(S, context.Context, T, ...any) (R, error)) Operation[T, R] {
	if method == nil {
		return nil
	}
	return func(ctx context.Context, item T, args ...any) (R, error) {
		return method(scope, ctx, item, args...)
	}
}
