package callbacks

import (
	"strconv"
	"strings"
)

// Int parses a payload fragment as a decimal integer.
func Int(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// TwoInts parses a payload fragment like "2026_8" into two integers.
func TwoInts(s, sep string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), sep, 2)
	if len(parts) != 2 {
		return 0, 0, strconv.ErrSyntax
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
