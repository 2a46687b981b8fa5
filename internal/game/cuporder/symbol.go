// Package cuporder implements the three-cup ordering game: three cups A, B and C
// are shuffled into slots 1-3 and players wager on the exact order, on the
// relative order of two cups, and on one cup landing in one slot.
package cuporder

import "strings"

// Symbol is one of the three cups.
type Symbol byte

// The fixed symbol set.
const (
	CupA Symbol = 'A'
	CupB Symbol = 'B'
	CupC Symbol = 'C'
)

// Symbols is the canonical symbol order. It is never mutated.
var Symbols = [3]Symbol{CupA, CupB, CupC}

// String returns the cup label.
func (s Symbol) String() string {
	return string(rune(s))
}

// Valid reports whether s is a member of the symbol set.
func (s Symbol) Valid() bool {
	return s == CupA || s == CupB || s == CupC
}

// Outcome is the drawn order of cups across slots 1, 2 and 3.
type Outcome [3]Symbol

// String returns the outcome as a three-letter order, e.g. "BAC".
func (o Outcome) String() string {
	return string([]byte{byte(o[0]), byte(o[1]), byte(o[2])})
}

// Slot returns the 1-based slot occupied by s, or 0 if s is absent.
func (o Outcome) Slot(s Symbol) int {
	for i, c := range o {
		if c == s {
			return i + 1
		}
	}
	return 0
}

// IsPermutation reports whether o holds each symbol exactly once.
func (o Outcome) IsPermutation() bool {
	var seen [3]bool
	for _, c := range o {
		idx := strings.IndexByte("ABC", byte(c))
		if idx < 0 || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// ParseOutcome converts a three-letter order such as "bac" into an Outcome.
// Input is case-insensitive. ok is false when order is not a permutation of A, B, C.
func ParseOutcome(order string) (Outcome, bool) {
	// Upper-casing can change the byte length of non-ASCII input.
	upper := strings.ToUpper(order)
	if len(upper) != 3 {
		return Outcome{}, false
	}
	o := Outcome{Symbol(upper[0]), Symbol(upper[1]), Symbol(upper[2])}
	if !o.IsPermutation() {
		return Outcome{}, false
	}
	return o, true
}

// IsValidOrder reports whether order is a permutation of A, B and C.
// It applies the same rule ValidateWagerSet applies to exact wagers and can be
// used for early input feedback.
func IsValidOrder(order string) bool {
	_, ok := ParseOutcome(order)
	return ok
}
