// Package form normalizes raw field input, validates form state at submit
// time and classifies failures into field errors or global messages.
package form

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\(\d{3}\)\d{3}-\d{4}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
	emailPattern = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*@([\w-]+\.)+[A-Za-z]{2,7}$`)
)

// Digits returns the decimal digits of s in order.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone returns the canonical display form of a phone number:
// "(AAA)PPP-LLLL" once ten digits are present, otherwise the digits typed
// so far. Digits past the tenth are dropped.
func FormatPhone(s string) string {
	d := Digits(s)
	if len(d) < 10 {
		return d
	}
	return "(" + d[:3] + ")" + d[3:6] + "-" + d[6:10]
}

// TypePhone formats a phone number while it is being typed, growing from
// "(AAA" to "(AAA)PPP" to "(AAA)PPP-LLLL".
func TypePhone(s string) string {
	d := Digits(s)
	if len(d) > 10 {
		d = d[:10]
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 3:
		return "(" + d
	case len(d) <= 6:
		return "(" + d[:3] + ")" + d[3:]
	default:
		return "(" + d[:3] + ")" + d[3:6] + "-" + d[6:]
	}
}

// PhoneWire is the value sent to the server: the first ten digits.
func PhoneWire(s string) string {
	d := Digits(s)
	if len(d) > 10 {
		d = d[:10]
	}
	return d
}

// ValidPhone reports whether s normalizes to a complete phone number.
func ValidPhone(s string) bool { return phonePattern.MatchString(FormatPhone(s)) }

// NormalizeZip strips non-digits and caps the result at five characters.
func NormalizeZip(s string) string {
	d := Digits(s)
	if len(d) > 5 {
		d = d[:5]
	}
	return d
}

// ValidZip reports whether s is exactly five digits.
func ValidZip(s string) bool { return zipPattern.MatchString(s) }

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }
