package sensing

import "github.com/zeusync/raysense/internal/core/systems/physics"

var (
	worldForward = physics.Vec3{0, 1, 0}
	worldRight   = physics.Vec3{1, 0, 0}
)

// Frame is the agent's horizontal basis.
type Frame struct {
	Forward physics.Vec3
	Right   physics.Vec3
	Left    physics.Vec3
}

// FrameOf extracts forward (column 1) and right (column 0) from a world
// rotation. A missing or degenerate rotation yields the world axes.
func FrameOf(rotation physics.Mat3, ok bool) Frame {
	forward, right := worldForward, worldRight
	if ok {
		f, r := rotation.Col(1), rotation.Col(0)
		if usableAxis(f) && usableAxis(r) {
			forward, right = f, r
		}
	}
	return Frame{Forward: forward, Right: right, Left: right.Mul(-1)}
}

func usableAxis(v physics.Vec3) bool {
	return physics.Finite(v) && v.Dot(v) > 1e-12
}
