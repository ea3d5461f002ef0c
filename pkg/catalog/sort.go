package catalog

import (
	"strconv"
	"unicode"
)

// naturalLess compares strings case-insensitively, treating digit runs as
// numbers rather than characters, so "Item 2" sorts before "Item 10".
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		// Skip leading spaces
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}

		// If we reached the end of either string
		if i >= len(s1) || j >= len(s2) {
			break
		}

		// If both characters are digits, compare the numbers
		if unicode.IsDigit(rune(s1[i])) && unicode.IsDigit(rune(s2[j])) {
			// Extract consecutive digits
			var num1, num2 string
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				num1 += string(s1[i])
				i++
			}
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				num2 += string(s2[j])
				j++
			}

			// Convert to integers and compare
			n1, _ := strconv.Atoi(num1)
			n2, _ := strconv.Atoi(num2)
			if n1 != n2 {
				return n1 < n2
			}
			// If numbers are equal, continue to next characters
		} else {
			c1 := unicode.ToLower(rune(s1[i]))
			c2 := unicode.ToLower(rune(s2[j]))
			if c1 != c2 {
				return c1 < c2
			}
			i++
			j++
		}
	}

	// If we've reached the end of one string but not the other
	return len(s1) < len(s2)
}
