package marquee

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxSpeed is the longest accepted tick period in milliseconds.
const MaxSpeed = math.MaxInt32

var (
	ErrSpeedNotNumeric  = errors.New("speed is not a whole number")
	ErrSpeedNotPositive = errors.New("speed must be greater than zero")
	ErrSpeedTooLarge    = fmt.Errorf("speed must be at most %d", MaxSpeed)
)

// ParseSpeed parses a tick period in milliseconds. It returns an error
// wrapping ErrSpeedNotNumeric, ErrSpeedNotPositive or ErrSpeedTooLarge on
// rejection.
func ParseSpeed(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 32)
	switch {
	case errors.Is(err, strconv.ErrRange) && n < 0:
		return 0, fmt.Errorf("%w: %s", ErrSpeedNotPositive, s)
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("%w: %s", ErrSpeedTooLarge, s)
	case err != nil:
		return 0, fmt.Errorf("%w: %q", ErrSpeedNotNumeric, s)
	}
	if err := checkSpeed(int(n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

// checkSpeed reports whether ms is within 1..MaxSpeed.
func checkSpeed(ms int) error {
	if ms <= 0 {
		return fmt.Errorf("%w: %d", ErrSpeedNotPositive, ms)
	}
	if ms > MaxSpeed {
		return fmt.Errorf("%w: %d", ErrSpeedTooLarge, ms)
	}
	return nil
}

// RejectionReason returns a short stable label for a ParseSpeed error.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrSpeedNotNumeric):
		return "not_numeric"
	case errors.Is(err, ErrSpeedNotPositive):
		return "not_positive"
	case errors.Is(err, ErrSpeedTooLarge):
		return "too_large"
	default:
		return "other"
	}
}
