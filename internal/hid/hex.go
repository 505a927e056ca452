package hid

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNumber parses a numeric literal. A "0x" prefix selects base-16,
// otherwise the literal is read as base-10.
func ParseNumber(s string) (uint64, error) {
	if h, ok := strings.CutPrefix(s, "0x"); ok {
		v, err := strconv.ParseUint(h, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse `%s` as hexadecimal", s)
		}
		return v, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse `%s` as decimal", s)
	}
	return v, nil
}
