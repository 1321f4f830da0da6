package tools

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// StatusConfirmed is the only status a booking tool ever reports.
const StatusConfirmed = "confirmed"

// cityCode returns the first three characters uppercased, the whole string if
// shorter. Booking ids are cosmetic, not collision-resistant.
func cityCode(s string) string {
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[len(runes)-n:]
	}
	return string(runes)
}

// capitalize uppercases the first character and lowercases the rest,
// so "deluxe" becomes "Deluxe" and "3-star" stays "3-star".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// hashMod is the deterministic id hash: FNV-1a over the canonical input,
// reduced modulo mod. Stable across runs and platforms, unlike a runtime
// map hash.
func hashMod(s string, mod uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64() % mod
}

// formatAmount renders a payment amount with at least one decimal place,
// matching spoken confirmations like "100.0 USD".
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
