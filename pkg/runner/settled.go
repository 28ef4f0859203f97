package runner

import (
	"time"

	"github.com/google/uuid"
)

// Settled is the outcome of one asynchronous step: a value or an error.
type Settled[T any] struct {
	id        uuid.UUID
	index     int
	settledAt time.Time
	value     T
	err       error
	isSuccess bool
}

func resolved[T any](index int, v T) Settled[T] {
	return Settled[T]{
		id:        uuid.New(),
		index:     index,
		settledAt: time.Now().UTC(),
		value:     v,
		isSuccess: true,
	}
}

func rejected[T any](index int, err error) Settled[T] {
	return Settled[T]{
		id:        uuid.New(),
		index:     index,
		settledAt: time.Now().UTC(),
		err:       err,
	}
}

func (s Settled[T]) Value() T {
	return s.value
}

func (s Settled[T]) Err() error {
	return s.err
}

func (s Settled[T]) IsSuccess() bool {
	return s.isSuccess
}

// Index is the input position the outcome belongs to, or -1 for the
// outcome of a whole run.
func (s Settled[T]) Index() int {
	return s.index
}

// SettledAt time of settlement (UTC)
func (s Settled[T]) SettledAt() time.Time {
	return s.settledAt
}

func (s Settled[T]) ID() uuid.UUID {
	return s.id
}
