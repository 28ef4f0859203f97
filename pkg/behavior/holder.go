package behavior

import (
	"fmt"
	"sync"
)

// Holder keeps a ReturnBehavior that is always one of Valid().
// Exactly one of the Is* flags reports true at any time.
type Holder struct {
	mu                  sync.RWMutex
	behavior            ReturnBehavior
	isLastReturn        bool
	isArrayReturn       bool
	isConcatArrayReturn bool
}

// NewHolder creates a Holder set to b, or to LastReturn when b is omitted.
func NewHolder(b ...ReturnBehavior) (*Holder, error) {
	if len(b) > 1 {
		return nil, fmt.Errorf("%w: expected at most one return behavior, got %d", ErrInvalidArgument, len(b))
	}

	initial := LastReturn
	if len(b) == 1 {
		initial = b[0]
	}

	h := &Holder{}
	if err := h.SetBehavior(initial); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Holder) Behavior() ReturnBehavior {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.behavior
}

// SetBehavior replaces the stored behavior. An invalid value leaves the
// Holder untouched and returns an error wrapping ErrInvalidArgument.
func (h *Holder) SetBehavior(b ReturnBehavior) error {
	if !b.IsValid() {
		return invalid(b)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.behavior = b
	h.isLastReturn = b == LastReturn
	h.isArrayReturn = b == ArrayReturn
	h.isConcatArrayReturn = b == ConcatArrayReturn
	return nil
}

func (h *Holder) IsLastReturn() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isLastReturn
}

func (h *Holder) IsArrayReturn() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isArrayReturn
}

func (h *Holder) IsConcatArrayReturn() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isConcatArrayReturn
}
