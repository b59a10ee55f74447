// Package conditions evaluates animation conditions against the sensing
// cache. Only the player is ever sensed; conditions on anyone else are false.
package conditions

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/raysense/internal/core/systems/physics"
)

var (
	ErrUnknownSensor      = errors.New("unknown sensor")
	ErrUnknownOperator    = errors.New("unknown comparison operator")
	ErrInvalidCondition   = errors.New("invalid condition")
	ErrDuplicateCondition = errors.New("duplicate condition name")
)

// Op is a comparison operator.
type Op string

const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
)

func (o Op) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		return true
	}
	return false
}

// Compare applies o to current and target.
func (o Op) Compare(current, target float32) bool {
	switch o {
	case OpEqual:
		return current == target
	case OpNotEqual:
		return current != target
	case OpGreater:
		return current > target
	case OpGreaterEqual:
		return current >= target
	case OpLess:
		return current < target
	case OpLessEqual:
		return current <= target
	}
	return false
}

// Condition compares one sensor against a constant.
type Condition struct {
	Name   string  `yaml:"name" json:"name"`
	Sensor Sensor  `yaml:"sensor" json:"sensor"`
	Op     Op      `yaml:"op" json:"op"`
	Value  float32 `yaml:"value" json:"value"`
}

func (c Condition) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCondition)
	}
	if !c.Sensor.Valid() {
		return fmt.Errorf("%s: %w", c.Name, ErrUnknownSensor)
	}
	if !c.Op.Valid() {
		return fmt.Errorf("%s: %w: %q", c.Name, ErrUnknownOperator, string(c.Op))
	}
	if !physics.FiniteScalar(c.Value) {
		return fmt.Errorf("%s: %w: value must be finite", c.Name, ErrInvalidCondition)
	}
	return nil
}

// Evaluate reports whether the condition holds for the player.
func (c Condition) Evaluate(r Reader, isPlayer bool) bool {
	if !isPlayer || r == nil {
		return false
	}
	return c.Op.Compare(c.Sensor.Read(r), c.Value)
}

// Current is the sensor value truncated to an integer, as shown in editors.
func (c Condition) Current(r Reader, isPlayer bool) string {
	if !isPlayer || r == nil {
		return "0"
	}
	v := c.Sensor.Read(r)
	if !physics.FiniteScalar(v) {
		return "0"
	}
	return strconv.Itoa(int(v))
}

// Argument renders the condition as "Front >= 50".
func (c Condition) Argument() string {
	return fmt.Sprintf("%s %s %s", c.Sensor.Display(), c.Op, strconv.FormatFloat(float64(c.Value), 'f', -1, 32))
}

// Set is an ordered list of uniquely named conditions.
type Set []Condition

// EvaluateAll evaluates every condition by name.
func (s Set) EvaluateAll(r Reader, isPlayer bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for _, c := range s {
		out[c.Name] = c.Evaluate(r, isPlayer)
	}
	return out
}

// Validate checks every condition and name uniqueness.
func (s Set) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCondition, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

type document struct {
	Conditions Set `yaml:"conditions"`
}

// LoadYAML reads a document of the form
//
//	conditions:
//	  - name: ledge_ahead
//	    sensor: front
//	    op: ">="
//	    value: 100
func LoadYAML(r io.Reader) (Set, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}
	if err := doc.Conditions.Validate(); err != nil {
		return nil, err
	}
	return doc.Conditions, nil
}

