package daltonize

import (
	"fmt"
	"strings"
)

// Deficiency identifies which cone class is missing or non-functional.
type Deficiency int

const (
	// None applies no correction; the pipeline is the identity.
	None Deficiency = iota
	// Protanopia is red-blindness (missing L cones).
	Protanopia
	// Deuteranopia is green-blindness (missing M cones).
	Deuteranopia
	// Tritanopia is blue-blindness (missing S cones).
	Tritanopia
)

func (d Deficiency) String() string {
	switch d {
	case None:
		return "normal"
	case Protanopia:
		return "protanopia"
	case Deuteranopia:
		return "deuteranopia"
	case Tritanopia:
		return "tritanopia"
	default:
		return fmt.Sprintf("deficiency(%d)", int(d))
	}
}

// Valid reports whether d is one of the four known values.
func (d Deficiency) Valid() bool {
	return d >= None && d <= Tritanopia
}

// ParseDeficiency maps a mode name to its Deficiency value.
func ParseDeficiency(s string) (Deficiency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "none":
		return None, nil
	case "protanopia", "protan":
		return Protanopia, nil
	case "deuteranopia", "deutan":
		return Deuteranopia, nil
	case "tritanopia", "tritan":
		return Tritanopia, nil
	default:
		return None, fmt.Errorf("unknown deficiency type: %q", s)
	}
}
