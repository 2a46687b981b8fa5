package cuporder

import (
	"errors"
	"fmt"
)

// RejectionKind identifies which wager rule failed.
type RejectionKind int

// Rejection kinds in validation order.
const (
	InvalidExactOrder RejectionKind = iota + 1
	InvalidPair
	InvalidPairPrediction
	InvalidSingleCup
	InvalidSinglePosition
	InvalidAmount
	NoActiveWager
	InsufficientBalance
)

var kindNames = map[RejectionKind]string{
	InvalidExactOrder:     "InvalidExactOrder",
	InvalidPair:           "InvalidPair",
	InvalidPairPrediction: "InvalidPairPrediction",
	InvalidSingleCup:      "InvalidSingleCup",
	InvalidSinglePosition: "InvalidSinglePosition",
	InvalidAmount:         "InvalidAmount",
	NoActiveWager:         "NoActiveWager",
	InsufficientBalance:   "InsufficientBalance",
}

// String returns the kind name.
func (k RejectionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RejectionKind(%d)", int(k))
}

// Rejection is returned when a wager set fails validation.
// A rejection never changes session state and is fixed by correcting the wager.
type Rejection struct {
	Kind   RejectionKind
	Reason string
}

// Error implements error.
func (r *Rejection) Error() string {
	return r.Reason
}

// Is matches any rejection of the same kind, so errors.Is(err, ErrNoActiveWager)
// holds regardless of the reason text.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Kind == r.Kind
}

// Wager rejections.
var (
	ErrInvalidExactOrder     = &Rejection{InvalidExactOrder, "exact order must be a permutation of A, B, C"}
	ErrInvalidPair           = &Rejection{InvalidPair, "two-cup pair must be AB, BC, or AC"}
	ErrInvalidPairPrediction = &Rejection{InvalidPairPrediction, "two-cup prediction must be first or second"}
	ErrInvalidSingleCup      = &Rejection{InvalidSingleCup, "single-cup bet must use cup A, B, or C"}
	ErrInvalidSinglePosition = &Rejection{InvalidSinglePosition, "single-cup position must be 1, 2, or 3"}
	ErrInvalidAmount         = &Rejection{InvalidAmount, "bet amounts must be non-negative numbers"}
	ErrNoActiveWager         = &Rejection{NoActiveWager, "place at least one bet amount greater than zero"}
	ErrInsufficientBalance   = &Rejection{InsufficientBalance, "total stake exceeds your current balance"}
)

// ErrInvalidConfig is returned by New for a negative or non-finite balance or a negative round.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// AsRejection extracts the rejection from err, following wrapped errors.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsRejection reports whether err is a wager rejection.
func IsRejection(err error) bool {
	_, ok := AsRejection(err)
	return ok
}
