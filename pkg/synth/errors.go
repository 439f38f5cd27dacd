package synth

import(
	"errors"
	"fmt"
	"strings"
)

var(
	ErrInvalidChannelCount = errors.New("image must have exactly 3 channels")
	ErrInvalidChannel      = errors.New("channel out of range")
	ErrDegenerateChannel   = errors.New("degenerate (zero range) channel")
	ErrEigenNoConvergence  = errors.New("eigen solver did not converge")
	ErrEmptyHistogram      = errors.New("empty histogram")
	ErrInvalidConfig       = errors.New("invalid config")
)

// A DegenerateChannelError says which decorrelated channels had
// (effectively) zero range, so could not be normalized into [0,1].
// Those channels are set to 0 in the decorrelated output.
type DegenerateChannelError struct {
	Channels []int
	Ranges   []float64
}

func (e *DegenerateChannelError)Error() string {
	strs := []string{}
	for i, c := range e.Channels {
		strs = append(strs, fmt.Sprintf("ch%d(range=%g)", c, e.Ranges[i]))
	}
	return fmt.Sprintf("%v: %s", ErrDegenerateChannel, strings.Join(strs, ", "))
}

func (e *DegenerateChannelError)Is(target error) bool { return target == ErrDegenerateChannel }

// IsDegenerate reports whether channel c is one of the degenerate ones.
func (e *DegenerateChannelError)IsDegenerate(c int) bool {
	for _, dc := range e.Channels {
		if dc == c {
			return true
		}
	}
	return false
}
