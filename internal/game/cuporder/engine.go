package cuporder

import (
	"fmt"
	"math"
	"sync"
)

// DefaultStartingBalance is the balance of a new session when none is configured.
const DefaultStartingBalance = 100.0

// Config holds construction parameters for an Engine.
type Config struct {
	// StartingBalance is the session balance. Zero is a valid balance.
	StartingBalance float64
	// Round is the next round number; 0 means a fresh session starting at 1.
	// Set it to rehydrate a stored session.
	Round int
	// Source draws outcomes. Nil uses a time-seeded RandomSource.
	Source OutcomeSource
}

// Engine owns one session's balance and round counter and resolves rounds
// against them. All methods are safe for concurrent use; concurrent
// ResolveRound calls are applied one at a time.
type Engine struct {
	mu      sync.Mutex
	balance float64
	round   int
	source  OutcomeSource
}

// New creates an Engine. A nil cfg starts a fresh session with
// DefaultStartingBalance.
func New(cfg *Config) (*Engine, error) {
	e := &Engine{
		balance: DefaultStartingBalance,
		round:   1,
	}

	if cfg != nil {
		if math.IsNaN(cfg.StartingBalance) || math.IsInf(cfg.StartingBalance, 0) || cfg.StartingBalance < 0 {
			return nil, fmt.Errorf("%w: starting balance %v", ErrInvalidConfig, cfg.StartingBalance)
		}
		if cfg.Round < 0 {
			return nil, fmt.Errorf("%w: round %d", ErrInvalidConfig, cfg.Round)
		}
		e.balance = cfg.StartingBalance
		if cfg.Round > 0 {
			e.round = cfg.Round
		}
		e.source = cfg.Source
	}

	if e.source == nil {
		e.source = NewTimeSeededSource()
	}

	return e, nil
}

// Balance returns the current balance.
func (e *Engine) Balance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.balance
}

// Round returns the number the next resolved round will carry.
func (e *Engine) Round() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round
}

// ValidateWagerSet checks w against the current balance without changing state.
func (e *Engine) ValidateWagerSet(w WagerSet) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ValidateWagers(w, e.balance)
}

// GenerateOutcome draws a cup order from the engine's source.
func (e *Engine) GenerateOutcome() Outcome {
	return e.source.Draw()
}

// ResolveRound validates w, debits the stake, draws the outcome, credits the
// payout and advances the round. On rejection the balance and round are left
// exactly as they were and the returned error is, or wraps, a *Rejection.
func (e *Engine) ResolveRound(w WagerSet) (*RoundResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ValidateWagers(w, e.balance); err != nil {
		return nil, err
	}

	stake := w.Stake()
	outcome := e.source.Draw()
	payout := EvaluatePayout(outcome, w)

	balance := e.balance - stake
	balance += payout.Total

	result := &RoundResult{
		Round:   e.round,
		Outcome: outcome,
		Wagers:  w,
		Stake:   stake,
		Payout:  payout,
		Net:     payout.Total - stake,
		Balance: balance,
	}

	e.balance = balance
	e.round++

	return result, nil
}
