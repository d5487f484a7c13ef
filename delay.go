package toggler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DefaultDelay is the settling delay used for a slot when none is given.
const DefaultDelay = 100 * time.Millisecond

// ErrInvalidDelay is returned when a value cannot be coerced to a delay.
var ErrInvalidDelay = errors.New("toggler: invalid delay")

// ParseDelayE coerces v to a delay. Numbers are read as milliseconds,
// [time.Duration] values are used as they are, and strings may hold either a
// plain number of milliseconds or a Go duration such as "1.5s". A nil value
// yields [DefaultDelay].
func ParseDelayE(v any) (time.Duration, error) {
	switch d := v.(type) {
	case nil:
		return DefaultDelay, nil
	case time.Duration:
		return d, nil
	case Delay:
		return d.Duration, nil
	case *Delay:
		if d == nil {
			return DefaultDelay, nil
		}
		return d.Duration, nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return 0, fmt.Errorf("%w: empty string", ErrInvalidDelay)
		}
		if ms, err := cast.ToFloat64E(s); err == nil {
			return millis(ms)
		}
		dur, err := cast.ToDurationE(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDelay, s)
		}
		return dur, nil
	case bool:
		// Booleans coerce to 0 or 1 like any other number would.
		if d {
			return time.Millisecond, nil
		}
		return 0, nil
	}

	ms, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidDelay, v, v)
	}
	return millis(ms)
}

// ParseDelay is like [ParseDelayE] but yields zero for values that cannot be
// coerced, which is how a timer treats a delay that is not a number.
func ParseDelay(v any) time.Duration {
	d, err := ParseDelayE(v)
	if err != nil {
		return 0
	}
	return d
}

func millis(ms float64) (time.Duration, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDelay, ms)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// Delay is a [time.Duration] that decodes from the same values [ParseDelayE]
// accepts, so configuration files may use either 150 or "150ms".
type Delay struct {
	time.Duration
}

// MarshalJSON implements [json.Marshaler].
func (d Delay) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Delay) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	dur, err := ParseDelayE(v)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}

// MarshalYAML implements [yaml.Marshaler].
func (d Delay) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (d *Delay) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	dur, err := ParseDelayE(v)
	if err != nil {
		return err
	}
	d.Duration = dur
	return nil
}
