package vars

import "sync/atomic"

// AtomicCode holds an enumerated code backed by a uint32.
type AtomicCode[T ~uint32] struct {
	value   atomic.Uint32
	version atomic.Uint64
}

// NewAtomicCode creates a new AtomicCode with the given initial value
func NewAtomicCode[T ~uint32](initialValue T) *AtomicCode[T] {
	a := &AtomicCode[T]{}
	a.value.Store(uint32(initialValue))
	a.version.Store(1)
	return a
}

func (a *AtomicCode[T]) Get() T {
	return T(a.value.Load())
}

func (a *AtomicCode[T]) Set(value T) {
	if T(a.value.Swap(uint32(value))) != value {
		a.version.Add(1)
	}
}

func (a *AtomicCode[T]) Version() uint64 { return a.version.Load() }
