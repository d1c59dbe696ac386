package core

import (
	"strconv"
	"strings"
)

// ParseAmount parses user-entered monetary input. Interior spaces are
// stripped ("1 234" -> 1234) and a single leading "+" is accepted, which
// tolerates grouped and prefixed numbers from varied locales. Anything that
// does not then parse as a base-10 integer is rejected.
func ParseAmount(s string) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	normalized = strings.TrimPrefix(normalized, "+")
	value, err := strconv.ParseInt(normalized, 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return value, nil
}

// ParsePositiveAmount parses expense and salary input, which must be strictly
// positive.
func ParsePositiveAmount(s string) (int64, error) {
	value, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, ErrNotPositive
	}
	return value, nil
}

// ParseLimitValue parses category limit input. Zero is allowed and means
// "remove the limit"; negative values are rejected.
func ParseLimitValue(s string) (int64, error) {
	value, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, ErrNegativeLimit
	}
	return value, nil
}
