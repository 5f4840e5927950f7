// Package textnorm normalizes Japanese text for fuzzy filename matching.
// Katakana and Hiragana forms, fullwidth and halfwidth alphanumerics, case
// and whitespace are all folded so that e.g. a Hiragana query matches a
// Katakana filename.
package textnorm

import (
	"strings"
	"unicode"
)

// ToHiragana converts Katakana characters (U+30A1..U+30F6) to their
// Hiragana counterparts. Other characters pass through unchanged.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		return r
	}, s)
}

// ToKatakana converts Hiragana characters (U+3041..U+3096) to their
// Katakana counterparts. Other characters pass through unchanged.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x3041 && r <= 0x3096 {
			return r + 0x60
		}
		return r
	}, s)
}

// FullwidthToHalfwidth converts fullwidth Latin letters and digits
// (Ａ-Ｚ ａ-ｚ ０-９) to their ASCII equivalents.
func FullwidthToHalfwidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'Ａ' && r <= 'Ｚ', r >= 'ａ' && r <= 'ｚ', r >= '０' && r <= '９':
			return r - 0xFEE0
		}
		return r
	}, s)
}

// Normalize folds a string for search: fullwidth to halfwidth, Katakana to
// Hiragana, lowercased, all whitespace removed. Total and idempotent.
func Normalize(s string) string {
	s = ToHiragana(FullwidthToHalfwidth(s))
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// FuzzyMatch reports whether needle occurs in haystack after both are
// normalized. An empty needle matches everything.
func FuzzyMatch(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}
