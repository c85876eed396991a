// Package phone reduces phone number strings to a comparable digit form
// and decides whether two numbers refer to the same line. Call logs store
// numbers with and without country codes, separators, and leading zeros,
// so comparison is suffix-based rather than exact.
package phone

import "strings"

// MinMatchDigits is the minimum normalized length a candidate number must
// have to be eligible for matching. Shorter strings (short codes, partial
// entries) would suffix-match far too broadly.
const MinMatchDigits = 7

// Normalize strips everything but digits from raw, then trims leading
// country code "1" and trunk "0" digits while the number is longer than
// ten digits. Prefixes can stack (a trunk zero in front of a country
// code), so trimming runs until stable and repeated normalization is a
// no-op. Empty input yields empty output.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			b.WriteByte(raw[i])
		}
	}
	digits := b.String()

	for len(digits) > 10 && (digits[0] == '1' || digits[0] == '0') {
		digits = digits[1:]
	}
	return digits
}
