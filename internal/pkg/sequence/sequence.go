// Package sequence derives human-readable document numbers such as QT-0007.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

const width = 4

// Next returns the number following the highest "<prefix>-<n>" in existing.
// Values that do not parse count as zero, so a corrupt entry never blocks
// numbering. Numbers past 9999 keep growing without truncation.
func Next(prefix string, existing []string) string {
	return Format(prefix, Max(prefix, existing)+1)
}

// Max returns the highest numeric suffix among existing, or 0.
func Max(prefix string, existing []string) int {
	max := 0
	for _, value := range existing {
		if n := parse(prefix, value); n > max {
			max = n
		}
	}
	return max
}

func Format(prefix string, n int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}

func parse(prefix, value string) int {
	rest, ok := strings.CutPrefix(strings.TrimSpace(value), prefix+"-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
