// Package slots publishes engine values into named numeric cells owned by
// an external store. Names are resolved once; a name the store does not
// know stays disabled for the life of the Registry.
package slots

import (
	"errors"

	"github.com/zeusync/raysense/internal/core/observability/log"
)

var ErrUnknownSlot = errors.New("unknown slot")

// Key identifies a publish slot.
type Key uint8

const (
	FrontDrop Key = iota
	LeftDrop
	RightDrop
	PlayerHeight
	Vault
	WallFront
	WallFrontLeft
	WallFrontRight
	WallLeft
	WallRight
	SurfaceType
	PlatformType
	ObstacleTypeFront
	ObstacleTypeLeft
	ObstacleTypeRight

	keyCount
)

var names = [keyCount]string{
	FrontDrop:         "Verticality_Front",
	LeftDrop:          "Verticality_Left",
	RightDrop:         "Verticality_Right",
	PlayerHeight:      "Verticality_Player",
	Vault:             "Verticality_Obstacle",
	WallFront:         "RaySense_Wall_Front",
	WallFrontLeft:     "RaySense_Wall_Front_L",
	WallFrontRight:    "RaySense_Wall_Front_R",
	WallLeft:          "RaySense_Wall_Left",
	WallRight:         "RaySense_Wall_Right",
	SurfaceType:       "RaySense_SurfaceType",
	PlatformType:      "RaySense_PlatformType",
	ObstacleTypeFront: "RaySense_Obstacle_Type_Front",
	ObstacleTypeLeft:  "RaySense_Obstacle_Type_Left",
	ObstacleTypeRight: "RaySense_Obstacle_Type_Right",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return names[k]
}

// Keys returns every slot key in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Names returns every slot name in declaration order.
func Names() []string {
	out := make([]string, keyCount)
	copy(out, names[:])
	return out
}

// Cell is a writable numeric value owned by a Store.
type Cell interface {
	Set(value float32)
}

// Store resolves slot names to cells.
type Store interface {
	Lookup(name string) (Cell, bool)
}

type noopCell struct{}

func (noopCell) Set(float32) {}

// Registry is the enum keyed table of resolved cells.
type Registry struct {
	cells    [keyCount]Cell
	resolved [keyCount]bool
}

// Disabled returns a Registry where every publish is dropped.
func Disabled() *Registry {
	r := &Registry{}
	for i := range r.cells {
		r.cells[i] = noopCell{}
	}
	return r
}

// Resolve looks every slot up in store and logs the outcome once per slot.
// A nil store yields a Disabled registry.
func Resolve(store Store, logger log.Log) *Registry {
	r := Disabled()
	if store == nil {
		logger.Warn("no slot store, publishing disabled")
		return r
	}
	for _, k := range Keys() {
		cell, ok := store.Lookup(k.String())
		if !ok || cell == nil {
			logger.Warn("slot not found, publishing disabled", log.String("slot", k.String()))
			continue
		}
		r.cells[k] = cell
		r.resolved[k] = true
		logger.Info("slot found", log.String("slot", k.String()))
	}
	return r
}

// Publish writes value to the slot for k; unresolved slots ignore it.
func (r *Registry) Publish(k Key, value float32) {
	if k >= keyCount {
		return
	}
	r.cells[k].Set(value)
}

// Resolved reports whether k was found in the store.
func (r *Registry) Resolved(k Key) bool {
	return k < keyCount && r.resolved[k]
}

// ResolvedCount returns how many slots are live.
func (r *Registry) ResolvedCount() int {
	n := 0
	for _, ok := range r.resolved {
		if ok {
			n++
		}
	}
	return n
}
