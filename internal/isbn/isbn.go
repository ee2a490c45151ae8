// Package isbn validates and formats ISBN-13 identifiers. The Book entity
// only checks length; callers that want checksum validation or display
// formatting use this package.
package isbn

import "strings"

// Normalize strips hyphens and spaces from an ISBN.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Valid reports whether s is a checksum-valid ISBN-13. Hyphens and spaces
// are ignored.
func Valid(s string) bool {
	cleaned := Normalize(s)
	if len(cleaned) != 13 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(cleaned[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	check := (10 - sum%10) % 10
	return check == int(cleaned[12]-'0')
}

// Format renders a 13-digit ISBN with hyphens, e.g. 978-0-441172-71-9.
// Anything that does not normalize to 13 characters is returned unchanged.
func Format(s string) string {
	cleaned := Normalize(s)
	if len(cleaned) != 13 {
		return s
	}
	return cleaned[0:3] + "-" + cleaned[3:4] + "-" + cleaned[4:10] + "-" + cleaned[10:12] + "-" + cleaned[12:13]
}
