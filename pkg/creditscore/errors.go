// pkg/creditscore/errors.go
package creditscore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidProfile is matched by every profile decoding failure.
	ErrInvalidProfile = errors.New("invalid client profile")
	// ErrInvalidWeights is returned when a weight table breaks its invariant.
	ErrInvalidWeights = errors.New("invalid weight table")
	// ErrUnknownRiskTier is returned when parsing an unrecognised tier name.
	ErrUnknownRiskTier = errors.New("unknown risk tier")
)

// InvalidProfileError lists the profile fields that were absent or not numeric.
type InvalidProfileError struct {
	Missing []string
	Invalid []string
}

func (e *InvalidProfileError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing fields: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, fmt.Sprintf("non-numeric fields: %s", strings.Join(e.Invalid, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidProfile, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalidProfile) hold.
func (e *InvalidProfileError) Is(target error) bool {
	return target == ErrInvalidProfile
}
