package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberRe accepts a bare number with an optional "#", "№" or "table" prefix,
// e.g. "12", "#12", "Table 12".
var numberRe = regexp.MustCompile(`(?i)^(?:#|№|table)?\s*(\d+)$`)

// ParseTableNumber turns the text typed into the table-number field into a
// table id. Only positive integers are accepted.
func ParseTableNumber(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	m := numberRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("table number %q is not a number", raw)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("table number %q is out of range: %w", raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("table number must be positive, got %d", n)
	}
	return n, nil
}
