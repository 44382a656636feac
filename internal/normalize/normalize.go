// Package normalize canonicalizes raw catalog attribute strings and derives
// the numeric fields the facet engine filters and sorts on. Every function
// here is total: malformed input degrades to a zero value, never an error.
package normalize

import (
	"strings"

	"github.com/aigentincubator/sales-ctonet/pkg/models"
)

// CleanDisplay normalizes odd unicode spaces and dashes for presentation and
// clipboard copy. Raw values stay untouched elsewhere: they are the
// filter-match keys.
func CleanDisplay(s string) string {
	out := strings.ReplaceAll(s, " ", " ")
	out = strings.ReplaceAll(out, "–", "-")
	out = strings.ReplaceAll(out, "—", "-")
	return strings.Join(strings.Fields(out), " ")
}

// stripNBSP replaces non-breaking spaces and trims the result.
func stripNBSP(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
}

// IntPrefix extracts the first run of decimal digits from s, so "2 (5G)"
// yields 2. Returns 0 when s contains no digits.
func IntPrefix(s string) int {
	n := 0
	seen := false
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			seen = true
			n = n*10 + int(ch-'0')
			continue
		}
		if seen {
			break
		}
	}
	if !seen {
		return 0
	}
	return n
}

// YesNo canonicalizes yes/no style flags: values starting with y/Y become
// "Yes", n/N become "No", anything else passes through unchanged.
func YesNo(val string) string {
	s := strings.ToLower(strings.TrimSpace(val))
	switch {
	case strings.HasPrefix(s, "y"):
		return "Yes"
	case strings.HasPrefix(s, "n"):
		return "No"
	}
	return val
}

// ModemGroupFor buckets a cellular modem count.
func ModemGroupFor(count int) models.ModemGroup {
	switch {
	case count <= 0:
		return models.ModemGroupNone
	case count == 1:
		return models.ModemGroupSingle
	}
	return models.ModemGroupMulti
}

// ParseMbps parses throughput strings like "300 Mbps" or "2.5 Gbps" into
// whole megabits per second. The first decimal number in the string is
// taken; a gigabit unit marker multiplies it by 1000. Unparseable or empty
// input yields 0.
func ParseMbps(s string) int {
	if s == "" {
		return 0
	}
	s = stripNBSP(s)

	num := ""
	dotSeen := false
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			num += string(ch)
			continue
		}
		if ch == '.' && !dotSeen && num != "" {
			dotSeen = true
			num += "."
			continue
		}
		if num != "" {
			break
		}
	}
	if num == "" {
		return 0
	}

	whole, frac := num, ""
	if i := strings.IndexByte(num, '.'); i >= 0 {
		whole, frac = num[:i], num[i+1:]
	}
	val := 0
	for _, ch := range whole {
		val = val*10 + int(ch-'0')
	}

	low := strings.ToLower(s)
	if strings.Contains(low, "gbps") || strings.Contains(low, "gbit") || strings.Contains(low, "g ") {
		// Gigabits: shift the decimal point three places instead of going
		// through floats so 2.5 Gbps is exactly 2500.
		val *= 1000
		for i := 0; i < 3 && i < len(frac); i++ {
			digit := int(frac[i] - '0')
			switch i {
			case 0:
				val += digit * 100
			case 1:
				val += digit * 10
			case 2:
				val += digit
			}
		}
		return val
	}
	// Megabits: round to nearest whole.
	if len(frac) > 0 && frac[0] >= '5' {
		val++
	}
	return val
}

// ParseUsersRange parses recommended-user ranges like "1–60" into (min, max).
// A single number yields it as both bounds; no number yields (0, 0).
func ParseUsersRange(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	s = stripNBSP(s)
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")

	var nums []int
	for _, part := range strings.Split(s, "-") {
		digits := keepDigits(part)
		if digits != "" {
			nums = append(nums, atoiDigits(digits))
		}
	}
	if len(nums) == 0 {
		digits := keepDigits(s)
		if digits == "" {
			return 0, 0
		}
		n := atoiDigits(digits)
		return n, n
	}
	if len(nums) == 1 {
		return nums[0], nums[0]
	}
	lo, hi := nums[0], nums[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// MaxPorts parses port-count lists like "2 or 4" or "4/8" and returns the
// largest count found, 0 when none.
func MaxPorts(s string) int {
	s = strings.ReplaceAll(stripNBSP(s), "or", "/")
	max := 0
	for _, tok := range strings.Split(s, "/") {
		if n := IntPrefix(tok); n > max {
			max = n
		}
	}
	return max
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func atoiDigits(digits string) int {
	n := 0
	for _, ch := range digits {
		n = n*10 + int(ch-'0')
	}
	return n
}
