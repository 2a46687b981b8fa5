package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/model"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$147.00", FormatMoney(147))
	assert.Equal(t, "$1.50", FormatMoney(1.5))
	assert.Equal(t, "$-3.00", FormatMoney(-3))
}

func TestRenderCups(t *testing.T) {
	o := cuporder.Outcome{cuporder.CupB, cuporder.CupA, cuporder.CupC}
	assert.Equal(t, "1: B  2: A  3: C", RenderCups(o))
}

func TestPairDirection(t *testing.T) {
	assert.Equal(t, "A before C", PairDirection(cuporder.PairWager{Pair: "AC", Prediction: cuporder.PredictFirst}))
	assert.Equal(t, "C before A", PairDirection(cuporder.PairWager{Pair: "AC", Prediction: cuporder.PredictSecond}))
	assert.Equal(t, "B before C", PairDirection(cuporder.PairWager{Pair: "BC", Prediction: cuporder.PredictFirst}))
}

func TestRenderResult(t *testing.T) {
	wagers := cuporder.WagerSet{
		Exact:  cuporder.ExactWager{Order: "BAC", Amount: 10},
		Pair:   cuporder.PairWager{Pair: "AC", Prediction: cuporder.PredictFirst, Amount: 4},
		Single: cuporder.SingleWager{Cup: cuporder.CupA, Position: 2, Amount: 6},
	}
	r := &cuporder.RoundResult{
		Round:   1,
		Outcome: cuporder.Outcome{cuporder.CupB, cuporder.CupA, cuporder.CupC},
		Wagers:  wagers,
		Stake:   20,
		Payout:  cuporder.Payout{Exact: 50, Pair: 8, Single: 9, Total: 67},
		Net:     47,
		Balance: 147,
	}

	out := RenderResult(r)
	assert.Contains(t, out, "1: B  2: A  3: C")
	assert.Contains(t, out, "Exact (5×): BAC $10.00")
	assert.Contains(t, out, "Two-Cup (2×): A before C $4.00")
	assert.Contains(t, out, "Single (1.5×): A in position 2 $6.00")
	assert.Contains(t, out, "Round 1: order is B, A, C. Stake $20.00, payout $67.00.")
	assert.Contains(t, out, "Net: $47.00 | New balance: $147.00")
}

func TestRenderSession(t *testing.T) {
	out := RenderSession(&model.Session{Balance: 99.5, Round: 3})
	assert.Contains(t, out, "$99.50")
	assert.Contains(t, out, "Round: 3")
}

func TestPlayErrorMessage(t *testing.T) {
	assert.Equal(t, "❌ "+cuporder.ErrInvalidPair.Reason, playErrorMessage(cuporder.ErrInvalidPair))
	assert.Contains(t, playErrorMessage(cuporder.ValidateWagers(cuporder.WagerSet{
		Exact:  cuporder.ExactWager{Order: "ABC", Amount: 500},
		Pair:   cuporder.PairWager{Pair: "AB", Prediction: cuporder.PredictFirst},
		Single: cuporder.SingleWager{Cup: cuporder.CupA, Position: 1},
	}, 100)), "stake 500.00, balance 100.00")
}
