package cubedcarac

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidResolution is returned (wrapped) for a missing, non-integer or too small N.
var ErrInvalidResolution = errors.New("invalid resolution")

// ValidateResolution checks that n forms at least one cell.
func ValidateResolution(n int) error {
	if n < MinResolution {
		return errors.Wrapf(ErrInvalidResolution, "N=%d, need N >= %d", n, MinResolution)
	}
	return nil
}

// ParseResolution parses the positional N argument.
func ParseResolution(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidResolution, "N is missing")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidResolution, "N=%q is not an integer", s)
	}
	if err := ValidateResolution(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Issue kinds carried by NumericDomainError.
const (
	KindArea        = "area"
	KindEllipticity = "ellipticity"
)

// NumericDomainError reports a cell whose metric formula left its domain.
// For KindArea, Value is the negative radicand that was clamped to zero.
// For KindEllipticity, Value is the zero second-diagonal length squared.
type NumericDomainError struct {
	I, J  int
	Kind  string
	Value Real
}

func (e *NumericDomainError) Error() string {
	switch e.Kind {
	case KindEllipticity:
		return fmt.Sprintf("cell (%d, %d): degenerate diagonal BD, |B-D|^2=%g", e.I, e.J, e.Value)
	default:
		return fmt.Sprintf("cell (%d, %d): negative area radicand %g clamped to 0", e.I, e.J, e.Value)
	}
}
