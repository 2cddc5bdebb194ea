package drive

import "fmt"

// Motion classifies a pair of track displacements.
type Motion uint8

const (
	// Invalid covers pairs no transition may produce: one track at rest
	// while the other moves, or opposite signs of unequal magnitude.
	Invalid Motion = iota
	Stopped
	Forward
	Back
	// SpinningLeft runs the left track backwards and the right forwards.
	SpinningLeft
	SpinningRight
	// TurningLeftForward has the right (outer) track faster while advancing.
	TurningLeftForward
	TurningRightForward
	// TurningLeftBack has the right (outer) track faster while reversing.
	TurningLeftBack
	TurningRightBack
)

var motionNames = [...]string{
	Invalid:             "invalid",
	Stopped:             "stopped",
	Forward:             "forward",
	Back:                "back",
	SpinningLeft:        "spinning-left",
	SpinningRight:       "spinning-right",
	TurningLeftForward:  "turning-left-forward",
	TurningRightForward: "turning-right-forward",
	TurningLeftBack:     "turning-left-back",
	TurningRightBack:    "turning-right-back",
}

func (m Motion) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return motionNames[Invalid]
}

// ParseMotion is the inverse of Motion.String.
func ParseMotion(name string) (Motion, error) {
	for m, n := range motionNames {
		if n == name {
			return Motion(m), nil
		}
	}
	return Invalid, fmt.Errorf("unknown motion %q", name)
}

// Spinning reports whether m is a turn in place.
func (m Motion) Spinning() bool {
	return m == SpinningLeft || m == SpinningRight
}

// Turning reports whether m is an arc while advancing or reversing.
func (m Motion) Turning() bool {
	switch m {
	case TurningLeftForward, TurningRightForward, TurningLeftBack, TurningRightBack:
		return true
	}
	return false
}

// Classify maps displacements from the baseline to a Motion.
func Classify(left, right int) Motion {
	switch {
	case left == 0 && right == 0:
		return Stopped
	case left == 0 || right == 0:
		return Invalid
	case left+right == 0 && left < 0:
		return SpinningLeft
	case left+right == 0:
		return SpinningRight
	case left > 0 && right > 0:
		switch {
		case left == right:
			return Forward
		case left < right:
			return TurningLeftForward
		default:
			return TurningRightForward
		}
	case left < 0 && right < 0:
		switch {
		case left == right:
			return Back
		case right < left:
			return TurningLeftBack
		default:
			return TurningRightBack
		}
	}
	return Invalid
}
