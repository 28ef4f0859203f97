package runner

import (
	"reflect"

	"github.com/ib-77/arrayrunner/pkg/behavior"
)

// Aggregate is the combined result of a run, shaped by the behavior the
// run started with.
type Aggregate[R any] struct {
	behavior  behavior.ReturnBehavior
	count     int
	last      R
	results   []R
	flattened []any
}

func (a Aggregate[R]) Behavior() ReturnBehavior {
	return a.behavior
}

// Len is the number of invocations the run performed.
func (a Aggregate[R]) Len() int {
	return a.count
}

// Last is the result for the final input element. It is the zero value for
// an empty input.
func (a Aggregate[R]) Last() R {
	return a.last
}

// Results holds one result per input element in input order.
// Only set for ArrayReturn.
func (a Aggregate[R]) Results() []R {
	return a.results
}

// Flattened holds every result with slice and array results spliced in.
// Only set for ConcatArrayReturn.
func (a Aggregate[R]) Flattened() []any {
	return a.flattened
}

// Value returns Last(), Results() or Flattened() depending on Behavior().
func (a Aggregate[R]) Value() any {
	switch a.behavior {
	case behavior.ArrayReturn:
		return a.results
	case behavior.ConcatArrayReturn:
		return a.flattened
	default:
		return a.last
	}
}

func reduce[R any](b behavior.ReturnBehavior, results []R) Aggregate[R] {
	agg := Aggregate[R]{behavior: b, count: len(results)}
	if len(results) > 0 {
		agg.last = results[len(results)-1]
	}

	switch b {
	case behavior.ArrayReturn:
		agg.results = results
	case behavior.ConcatArrayReturn:
		agg.flattened = concat(results)
	}
	return agg
}

// concat flattens exactly one level; sequences nested inside a sequence
// result stay as they are.
func concat[R any](results []R) []any {
	out := make([]any, 0, len(results))
	for _, r := range results {
		v := reflect.ValueOf(any(r))
		if !isSequence(v) {
			out = append(out, r)
			continue
		}
		for i := range v.Len() {
			out = append(out, v.Index(i).Interface())
		}
	}
	return out
}

func isSequence(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}
