package natsort

import (
	"sort"
	"strings"
	"unicode"
)

// Compare orders two strings the way a person reading titles would:
// case-insensitive, with digit runs compared by numeric value rather than
// byte order, so "Clip 2" sorts before "Clip 10". Returns -1, 0 or 1.
func Compare(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		if unicode.IsDigit(ra[i]) && unicode.IsDigit(rb[j]) {
			na, ni := digitRun(ra, i)
			nb, nj := digitRun(rb, j)
			if c := compareNumeric(na, nb); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}

		ca := unicode.ToLower(ra[i])
		cb := unicode.ToLower(rb[j])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case i < len(ra):
		return 1
	case j < len(rb):
		return -1
	}
	return 0
}

// digitRun returns the digit run starting at position i and the index of
// the first rune after it.
func digitRun(r []rune, i int) (string, int) {
	start := i
	for i < len(r) && unicode.IsDigit(r[i]) {
		i++
	}
	return string(r[start:i]), i
}

// compareNumeric compares two digit strings by value. Leading zeros are
// ignored for magnitude, so arbitrarily long runs stay safe from overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// SortBy stably sorts items in natural order of their key.
func SortBy[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(key(items[i]), key(items[j]))
	})
}
