package surface

import (
	"strconv"
	"strings"
)

// ParseOrder reads the order field the way the page always has: leading
// whitespace is skipped and the longest signed integer prefix wins. Empty,
// unparseable and zero values fall back to DefaultOrder without error.
func ParseOrder(raw string) int {
	n, ok := parseIntPrefix(raw)
	if !ok || n == 0 {
		return DefaultOrder
	}
	return n
}

// ParseResolution reads the slider value. Sliders only emit integers, so
// anything else falls back to DefaultResolution.
func ParseResolution(raw string) int {
	n, ok := parseIntPrefix(raw)
	if !ok {
		return DefaultResolution
	}
	return n
}

// ParseType maps a selector value to a surface type; empty selects the default.
func ParseType(raw string) Type {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultType
	}
	return Type(raw)
}

func parseIntPrefix(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
