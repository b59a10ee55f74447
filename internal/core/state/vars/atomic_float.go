package vars

import (
	"math"
	"sync/atomic"
)

// AtomicFloat32 provides a lock-free float32 cell. Reads and writes are
// individually atomic; there is no ordering between different cells.
type AtomicFloat32 struct {
	bits    atomic.Uint32
	version atomic.Uint64
}

// NewAtomicFloat32 creates a new AtomicFloat32 with the given initial value
func NewAtomicFloat32(initialValue float32) *AtomicFloat32 {
	a := &AtomicFloat32{}
	a.bits.Store(math.Float32bits(initialValue))
	a.version.Store(1)
	return a
}

// Get returns the current value atomically
func (a *AtomicFloat32) Get() float32 {
	return math.Float32frombits(a.bits.Load())
}

// Set stores value. The version only advances when the bit pattern changes.
func (a *AtomicFloat32) Set(value float32) {
	bits := math.Float32bits(value)
	if a.bits.Swap(bits) != bits {
		a.version.Add(1)
	}
}

// Version returns the current version number
func (a *AtomicFloat32) Version() uint64 {
	return a.version.Load()
}
