package cuporder

// Payout multipliers per wager category.
const (
	ExactMultiplier  = 5.0
	PairMultiplier   = 2.0
	SingleMultiplier = 1.5
)

// Prediction is the direction of a two-cup wager, relative to the declared pair order.
type Prediction string

const (
	// PredictFirst wins when the first cup of the pair lands earlier.
	PredictFirst Prediction = "first"
	// PredictSecond wins when the second cup of the pair lands earlier.
	PredictSecond Prediction = "second"
)

// Valid reports whether p is a recognized direction.
func (p Prediction) Valid() bool {
	return p == PredictFirst || p == PredictSecond
}

// Pairs lists the accepted two-cup pairs. The letter order is the declared
// order that PredictFirst and PredictSecond refer to.
var Pairs = [3]string{"AB", "BC", "AC"}

// ExactWager bets on the full order of the three cups.
type ExactWager struct {
	Order  string
	Amount float64
}

// PairWager bets on which cup of a pair lands earlier.
type PairWager struct {
	Pair       string
	Prediction Prediction
	Amount     float64
}

// Cups returns the pair's cups in declared order.
func (w PairWager) Cups() (first, second Symbol) {
	if len(w.Pair) != 2 {
		return 0, 0
	}
	return Symbol(w.Pair[0]), Symbol(w.Pair[1])
}

// SingleWager bets on one cup landing in one slot.
type SingleWager struct {
	Cup      Symbol
	Position int
	Amount   float64
}

// WagerSet is the input to a round. A sub-wager with a zero amount is inactive
// but its fields are still validated.
type WagerSet struct {
	Exact  ExactWager
	Pair   PairWager
	Single SingleWager
}

// Stake returns the sum of the three amounts.
func (w WagerSet) Stake() float64 {
	return w.Exact.Amount + w.Pair.Amount + w.Single.Amount
}

// Payout is the per-category breakdown of a round's winnings.
type Payout struct {
	Exact  float64
	Pair   float64
	Single float64
	Total  float64
}

// RoundResult is the snapshot returned for a resolved round. It shares no
// state with the engine.
type RoundResult struct {
	Round   int
	Outcome Outcome
	Wagers  WagerSet
	Stake   float64
	Payout  Payout
	Net     float64
	Balance float64
}
