// Package campaign implements the column rewrite rules for the bank marketing
// campaign dataset. Each rule is a pure function of a single cell so it can
// be tested on its own; Normalizer applies them to whole records.
package campaign

import (
	"fmt"
	"strconv"
	"strings"
)

var jobReplacer = strings.NewReplacer(".", "", "-", "_")

// CleanJob removes every '.' and replaces every '-' with '_'.
func CleanJob(s string) string {
	return jobReplacer.Replace(s)
}

// unknownEducation is mapped to the null marker.
const unknownEducation = "unknown"

// CleanEducation replaces every '.' with '_'. It reports ok=false when the
// result is "unknown", which callers store as the null marker.
func CleanEducation(s string) (v string, ok bool) {
	v = strings.ReplaceAll(s, ".", "_")
	if v == unknownEducation {
		return "", false
	}
	return v, true
}

// Indicator maps s to 1 when it equals match and to 0 otherwise.
func Indicator(s, match string) int {
	if s == match {
		return 1
	}
	return 0
}

var monthNumbers = map[string]string{
	"jan": "01",
	"feb": "02",
	"mar": "03",
	"apr": "04",
	"may": "05",
	"jun": "06",
	"jul": "07",
	"aug": "08",
	"sep": "09",
	"oct": "10",
	"nov": "11",
	"dec": "12",
}

// MonthNumber maps a three-letter lowercase English month abbreviation to
// its two-digit number ("may" -> "05").
func MonthNumber(s string) (string, error) {
	mm, ok := monthNumbers[s]
	if !ok {
		return "", fmt.Errorf("unknown month %q", s)
	}
	return mm, nil
}

// PadDay left-pads a day of month to two digits ("5" -> "05"). The value
// must be an integer in 1..31.
func PadDay(s string) (string, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("day %q is not an integer", s)
	}
	if n < 1 || n > 31 {
		return "", fmt.Errorf("day %d out of range 1..31", n)
	}
	if n < 10 {
		return "0" + strconv.Itoa(n), nil
	}
	return strconv.Itoa(n), nil
}

// LastContactDay joins year with an already normalized month and day into
// "YYYY-MM-DD". No calendar check is made.
func LastContactDay(year int, month, day string) string {
	return fmt.Sprintf("%04d-%s-%s", year, month, day)
}
