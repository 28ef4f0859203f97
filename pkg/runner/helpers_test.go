package runner

import (
	"context"
	"errors"
	"time"
)

var errFoundZero = errors.New("Found a zero element")

// addTwoNumbers adds the first extra argument to item after a short delay.
func addTwoNumbers(ctx context.Context, item int, args ...any) (int, error) {
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	return item + args[0].(int), nil
}

// makeArrayFromParams returns item followed by the extra arguments.
func makeArrayFromParams(_ context.Context, item int, args ...any) ([]int, error) {
	time.Sleep(10 * time.Millisecond)
	out := []int{item}
	for _, a := range args {
		out = append(out, a.(int))
	}
	return out, nil
}

func rejectIfZeroIsPassed(_ context.Context, item int, _ ...any) (int, error) {
	time.Sleep(10 * time.Millisecond)
	if item == 0 {
		return 0, errFoundZero
	}
	return item, nil
}

type adder struct {
	offset int
}

func (a *adder) Add(_ context.Context, item int, args ...any) (int, error) {
	time.Sleep(10 * time.Millisecond)
	return item + args[0].(int) + a.offset, nil
}

func (a *adder) Sum(first, second int) (int, error) {
	time.Sleep(10 * time.Millisecond)
	return first + second + a.offset, nil
}

func mustNew(opts ...Option) *Parallel {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}
