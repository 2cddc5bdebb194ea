package drive

import (
	"fmt"

	"go.uber.org/multierr"
)

// Limits is the immutable motor range of a controller.
type Limits struct {
	// Min is the baseline value that means "stopped" for either track.
	Min int `json:"min"`
	// Max is the saturation value; the same magnitude applies in reverse.
	Max int `json:"max"`
	// Step is how far one command moves a track.
	Step int `json:"step"`
}

// Span is the largest displacement from the baseline a track may reach.
func (l Limits) Span() int {
	return l.Max - l.Min
}

// Validate reports every rule the limits break, combined into one error.
func (l Limits) Validate() error {
	var err error
	if l.Min > l.Max {
		err = multierr.Append(err, fmt.Errorf("%w: min %d > max %d", ErrConfiguration, l.Min, l.Max))
	}
	if l.Min == l.Max {
		err = multierr.Append(err, fmt.Errorf("%w: min and max are both %d", ErrConfiguration, l.Min))
	}
	if l.Step < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: step %d must be >= 1", ErrConfiguration, l.Step))
	}
	if l.Max-l.Min < l.Step {
		err = multierr.Append(err, fmt.Errorf("%w: step %d exceeds range %d", ErrConfiguration, l.Step, l.Max-l.Min))
	}
	return err
}

func (l Limits) String() string {
	return fmt.Sprintf("min=%d max=%d step=%d", l.Min, l.Max, l.Step)
}
