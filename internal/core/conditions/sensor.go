package conditions

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/raysense/internal/core/sensing"
)

// Reader is the read side of the sensing cache.
type Reader interface {
	FrontDrop() float32
	LeftDrop() float32
	RightDrop() float32
	PlayerHeight() float32
	Vault() float32
	WallFront() float32
	WallFrontLeft() float32
	WallFrontRight() float32
	WallLeft() float32
	WallRight() float32
	SurfaceType() sensing.SurfaceType
	PlatformType() sensing.PlatformType
	ObstacleTypeFront() sensing.ObjectType
	ObstacleTypeLeft() sensing.ObjectType
	ObstacleTypeRight() sensing.ObjectType
}

var _ Reader = (*sensing.Cache)(nil)

// Sensor selects one cached value. The first six keep the indices of the
// verticality condition.
type Sensor uint8

const (
	SensorFront Sensor = iota
	SensorLeft
	SensorRight
	SensorPlayer
	SensorSurface
	SensorPlatform
	SensorVault
	SensorWallFront
	SensorWallFrontLeft
	SensorWallFrontRight
	SensorWallLeft
	SensorWallRight
	SensorTypeFront
	SensorTypeLeft
	SensorTypeRight

	sensorCount
)

var sensorInfo = [sensorCount]struct {
	key     string
	display string
	read    func(Reader) float32
}{
	SensorFront:          {"front", "Front", Reader.FrontDrop},
	SensorLeft:           {"left", "Left", Reader.LeftDrop},
	SensorRight:          {"right", "Right", Reader.RightDrop},
	SensorPlayer:         {"player", "Player", Reader.PlayerHeight},
	SensorSurface:        {"surface", "Surface", func(r Reader) float32 { return float32(r.SurfaceType()) }},
	SensorPlatform:       {"platform", "Platform", func(r Reader) float32 { return float32(r.PlatformType()) }},
	SensorVault:          {"vault", "ObstacleVault", Reader.Vault},
	SensorWallFront:      {"wall_front", "WallFront", Reader.WallFront},
	SensorWallFrontLeft:  {"wall_front_l", "WallFrontL", Reader.WallFrontLeft},
	SensorWallFrontRight: {"wall_front_r", "WallFrontR", Reader.WallFrontRight},
	SensorWallLeft:       {"wall_left", "WallLeft", Reader.WallLeft},
	SensorWallRight:      {"wall_right", "WallRight", Reader.WallRight},
	SensorTypeFront:      {"type_front", "TypeFront", func(r Reader) float32 { return float32(r.ObstacleTypeFront()) }},
	SensorTypeLeft:       {"type_left", "TypeLeft", func(r Reader) float32 { return float32(r.ObstacleTypeLeft()) }},
	SensorTypeRight:      {"type_right", "TypeRight", func(r Reader) float32 { return float32(r.ObstacleTypeRight()) }},
}

// ParseSensor accepts a sensor key ("wall_front") or its numeric index.
func ParseSensor(s string) (Sensor, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for i, info := range sensorInfo {
		if info.key == s {
			return Sensor(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < int(sensorCount) {
		return Sensor(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, s)
}

func (s Sensor) Valid() bool { return s < sensorCount }

func (s Sensor) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return sensorInfo[s].key
}

// Display is the name used in condition arguments.
func (s Sensor) Display() string {
	if !s.Valid() {
		return "Unknown"
	}
	return sensorInfo[s].display
}

// Read returns the sensor's value from r.
func (s Sensor) Read(r Reader) float32 {
	if !s.Valid() || r == nil {
		return 0
	}
	return sensorInfo[s].read(r)
}

func (s *Sensor) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSensor(value.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Sensor) MarshalYAML() (any, error) {
	return s.String(), nil
}
