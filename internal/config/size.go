package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSize parses a human-readable byte size such as "1024", "64KB",
// "1MB" or "2G". "", "0" and "unlimited" parse to 0.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" || s == "0" || s == "UNLIMITED" {
		return 0, nil
	}

	num := strings.TrimSuffix(s, "B")

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(num, "K"):
		multiplier = 1024
		num = strings.TrimSuffix(num, "K")
	case strings.HasSuffix(num, "M"):
		multiplier = 1024 * 1024
		num = strings.TrimSuffix(num, "M")
	case strings.HasSuffix(num, "G"):
		multiplier = 1024 * 1024 * 1024
		num = strings.TrimSuffix(num, "G")
	}

	val, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil || val < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return val * multiplier, nil
}
