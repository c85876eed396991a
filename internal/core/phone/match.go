package phone

import "strings"

// Matches reports whether candidate and target refer to the same line.
// Both arguments must already be normalized (see Normalize).
//
// The comparison is a suffix heuristic, tried cheapest first:
//  1. exact equality
//  2. last ten digits equal
//  3. last seven digits equal
//  4. cross-length: one side's last-ten suffix ends with the other's
//     last-seven suffix, in either direction
//
// Candidates shorter than MinMatchDigits never match. The heuristic can
// attribute two distinct numbers sharing a long common suffix to the same
// line; that trade-off is accepted over strict E.164 canonicalization,
// which would change which calls attach to a contact.
func Matches(candidate, target string) bool {
	if len(candidate) < MinMatchDigits {
		return false
	}
	if candidate == target {
		return true
	}

	c10 := lastN(candidate, 10)
	t10 := lastN(target, 10)
	if c10 == t10 {
		return true
	}

	c7 := lastN(candidate, 7)
	t7 := lastN(target, 7)
	if c7 == t7 {
		return true
	}

	return strings.HasSuffix(c10, t7) || strings.HasSuffix(t10, c7)
}

// MatchesRaw normalizes both arguments before matching.
func MatchesRaw(candidate, target string) bool {
	return Matches(Normalize(candidate), Normalize(target))
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
