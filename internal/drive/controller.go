package drive

import (
	"fmt"

	"go.uber.org/zap"
)

// Controller holds the track speeds of one vehicle. Speeds are stored as
// displacements from the baseline and reported as absolute values.
type Controller struct {
	limits Limits
	span   int
	left   int
	right  int
	fault  error
	logger *zap.Logger
}

type Option func(*Controller)

// WithLogger sets the logger used for per-command tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a stopped controller, or an error matching ErrConfiguration
// when the limits are unusable.
func New(minValue, maxValue, step int, opts ...Option) (*Controller, error) {
	limits := Limits{Min: minValue, Max: maxValue, Step: step}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		limits: limits,
		span:   limits.Span(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.Stringer("limits", limits))
	return c, nil
}

// NewFromLimits is New for an existing Limits value.
func NewFromLimits(limits Limits, opts ...Option) (*Controller, error) {
	return New(limits.Min, limits.Max, limits.Step, opts...)
}

func (c *Controller) Limits() Limits { return c.limits }
func (c *Controller) Left() int      { return c.limits.Min + c.left }
func (c *Controller) Right() int     { return c.limits.Min + c.right }

// Speeds returns the left and right track values.
func (c *Controller) Speeds() (int, int) {
	return c.Left(), c.Right()
}

// Motion classifies the current track pair.
func (c *Controller) Motion() Motion {
	return Classify(c.left, c.right)
}

// Apply executes one command and returns the new left and right values.
//
// An invalid symbol leaves the state untouched. Once a transition fails the
// consistency check the controller is faulted: the state is kept as found
// and every later call returns the same ErrInternalConsistency error.
func (c *Controller) Apply(sym Symbol) (int, int, error) {
	if c.fault != nil {
		return c.Left(), c.Right(), c.fault
	}
	if !sym.Valid() {
		c.logger.Warn("rejected input", zap.Stringer("symbol", sym))
		return c.Left(), c.Right(), &InputError{Symbol: sym}
	}

	c.logger.Debug("input",
		zap.Stringer("symbol", sym),
		zap.Int("left", c.Left()),
		zap.Int("right", c.Right()),
		zap.Stringer("motion", c.Motion()))

	var err error
	switch sym {
	case Stop:
		c.stop()
	case TurnLeft:
		err = c.turn(sym, &c.left, &c.right)
	case TurnRight:
		err = c.turn(sym, &c.right, &c.left)
	case MoveForward:
		err = c.move(sym, 1)
	case MoveBack:
		err = c.move(sym, -1)
	}
	if err == nil {
		err = c.check(sym)
	}
	if err != nil {
		c.fault = err
		c.logger.Error("controller faulted", zap.Error(err))
		return c.Left(), c.Right(), err
	}

	c.logger.Debug("output",
		zap.Int("left", c.Left()),
		zap.Int("right", c.Right()),
		zap.Stringer("motion", c.Motion()))
	return c.Left(), c.Right(), nil
}

// Restore puts the controller into the given absolute track values and
// clears any fault. Pairs out of range, off the step grid, or unclassifiable
// are rejected.
func (c *Controller) Restore(left, right int) error {
	l, r := left-c.limits.Min, right-c.limits.Min
	step := c.limits.Step
	if abs(l) > c.span || abs(r) > c.span || l%step != 0 || r%step != 0 || Classify(l, r) == Invalid {
		return fmt.Errorf("%w: cannot restore left=%d right=%d", ErrInvalidInput, left, right)
	}
	c.left, c.right = l, r
	c.fault = nil
	return nil
}

func (c *Controller) IsStopped() bool       { return c.left == 0 && c.right == 0 }
func (c *Controller) IsMoving() bool        { return !c.IsStopped() }
func (c *Controller) IsMovingForward() bool { return c.left >= 0 && c.right >= 0 }
func (c *Controller) IsMovingBack() bool    { return c.left < 0 && c.right < 0 }
func (c *Controller) IsTurning() bool       { return c.IsMoving() && c.left != c.right }
func (c *Controller) IsSpinning() bool      { return c.IsMoving() && c.left+c.right == 0 }
func (c *Controller) IsTurningLeft() bool   { return c.left < c.right }
func (c *Controller) IsTurningRight() bool  { return c.right < c.left }

func (c *Controller) stop() {
	c.left, c.right = 0, 0
}

// turn handles TurnLeft with inner=left, outer=right, and TurnRight with
// the tracks swapped.
func (c *Controller) turn(sym Symbol, inner, outer *int) error {
	step := c.limits.Step
	switch c.Motion() {
	case Stopped, SpinningLeft, SpinningRight:
		// a spin moves both tracks together or not at all
		if *inner-step < -c.span && *outer+step > c.span {
			return nil
		}
		*inner -= step
		*outer += step
	case Forward, TurningLeftForward, TurningRightForward:
		if *outer+step <= c.span {
			*outer += step
		} else if *inner-step > 0 {
			*inner -= step
		}
	case Back, TurningLeftBack, TurningRightBack:
		if *outer-step >= -c.span {
			*outer -= step
		} else if *inner+step < 0 {
			*inner += step
		}
	default:
		return c.inconsistent(sym, "unclassified state while turning")
	}
	return nil
}

// move handles MoveForward (dir 1) and MoveBack (dir -1).
func (c *Controller) move(sym Symbol, dir int) error {
	step := dir * c.limits.Step
	switch c.Motion() {
	case SpinningLeft, SpinningRight:
		c.stop()
	case TurningLeftForward, TurningLeftBack:
		// right is the outer, faster track
		c.left = c.clamp(c.right)
		c.right = c.left
	case TurningRightForward, TurningRightBack:
		c.right = c.clamp(c.left)
		c.left = c.right
	case Stopped, Forward, Back:
		left, right := c.left+step, c.right+step
		if abs(left) <= c.span && abs(right) <= c.span {
			c.left, c.right = left, right
		}
	default:
		return c.inconsistent(sym, "unclassified state while moving")
	}
	return nil
}

func (c *Controller) clamp(v int) int {
	if v > c.span {
		return c.span
	}
	if v < -c.span {
		return -c.span
	}
	return v
}

func (c *Controller) check(sym Symbol) error {
	if (c.left == 0) != (c.right == 0) {
		return c.inconsistent(sym, "one track stationary")
	}
	if abs(c.left) > c.span || abs(c.right) > c.span {
		return c.inconsistent(sym, "track beyond saturation")
	}
	return nil
}

func (c *Controller) inconsistent(sym Symbol, reason string) error {
	return &ConsistencyError{Symbol: sym, Left: c.Left(), Right: c.Right(), Reason: reason}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
