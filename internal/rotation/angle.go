package rotation

import (
	"fmt"
	"strconv"
	"strings"
)

// Angle is a clockwise rotation in degrees, one of 0, 90, 180, 270.
type Angle int

const (
	Deg0   Angle = 0
	Deg90  Angle = 90
	Deg180 Angle = 180
	Deg270 Angle = 270
)

var cycle = [4]Angle{Deg0, Deg90, Deg180, Deg270}

func (a Angle) index() int {
	for i, c := range cycle {
		if c == a {
			return i
		}
	}
	return -1
}

func (a Angle) Valid() bool { return a.index() >= 0 }

func (a Angle) String() string { return strconv.Itoa(int(a)) + "°" }

// NextClockwise returns the angle a quarter turn after a.
// Invalid input is treated as Deg0.
func NextClockwise(a Angle) Angle {
	return cycle[(max(a.index(), 0)+1)%4]
}

// PreviousClockwise returns the angle a quarter turn before a.
// Invalid input is treated as Deg0.
func PreviousClockwise(a Angle) Angle {
	return cycle[(max(a.index(), 0)+3)%4]
}

// ParseAngle accepts "0", "90", "180", "270", optionally suffixed with "deg" or "°".
func ParseAngle(s string) (Angle, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	v = strings.TrimSuffix(strings.TrimSuffix(v, "°"), "deg")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
	a := Angle(n)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
	return a, nil
}
