// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/model"
	"cup-order-bot/internal/pkg/lock"
)

// SessionStore persists player sessions.
// *repository.SessionRepository implements it.
type SessionStore interface {
	GetByID(ctx context.Context, playerID int64) (*model.Session, error)
	GetOrCreate(ctx context.Context, playerID int64, username string, balance float64) (*model.Session, bool, error)
	Save(ctx context.Context, playerID int64, expectedRound int, balance float64, round int) (*model.Session, error)
	Reset(ctx context.Context, playerID int64, balance float64) (*model.Session, error)
	UpdateUsername(ctx context.Context, playerID int64, username string) error
}

// RoundServiceConfig holds RoundService settings.
type RoundServiceConfig struct {
	StartingBalance float64
	LockTimeout     time.Duration
	// Source draws outcomes for every round. Nil uses a time-seeded source.
	Source cuporder.OutcomeSource
}

// RoundService plays cup-order rounds against stored sessions.
type RoundService struct {
	store           SessionStore
	playerLock      *lock.PlayerLock
	startingBalance float64
	lockTimeout     time.Duration
	source          cuporder.OutcomeSource
}

// NewRoundService creates a new RoundService instance.
func NewRoundService(store SessionStore, playerLock *lock.PlayerLock, cfg RoundServiceConfig) *RoundService {
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = 5 * time.Second
	}
	if cfg.Source == nil {
		cfg.Source = cuporder.NewTimeSeededSource()
	}
	return &RoundService{
		store:           store,
		playerLock:      playerLock,
		startingBalance: cfg.StartingBalance,
		lockTimeout:     cfg.LockTimeout,
		source:          cfg.Source,
	}
}

// StartingBalance returns the balance new sessions begin with.
func (s *RoundService) StartingBalance() float64 {
	return s.startingBalance
}

// EnsureSession returns the player's session, creating one if necessary.
// The bool reports whether it was created.
func (s *RoundService) EnsureSession(ctx context.Context, playerID int64, username string) (*model.Session, bool, error) {
	var (
		session *model.Session
		created bool
	)

	err := s.playerLock.WithLockContext(ctx, playerID, s.lockTimeout, func() error {
		var err error
		session, created, err = s.store.GetOrCreate(ctx, playerID, username, s.startingBalance)
		if err != nil {
			return err
		}

		if !created && username != "" && session.Username != username {
			if err := s.store.UpdateUsername(ctx, playerID, username); err != nil {
				log.Warn().Err(err).Int64("player_id", playerID).Msg("Failed to update username")
			} else {
				session.Username = username
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to ensure session: %w", err)
	}

	if created {
		log.Info().
			Int64("player_id", playerID).
			Str("username", username).
			Float64("balance", session.Balance).
			Msg("Session created")
	}

	return session, created, nil
}

// Session returns the player's stored session.
func (s *RoundService) Session(ctx context.Context, playerID int64) (*model.Session, error) {
	session, err := s.store.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Play resolves one round for the player. The stored session is only written
// when the round resolves; a rejected wager set is returned unwrapped as a
// *cuporder.Rejection and leaves storage untouched.
func (s *RoundService) Play(ctx context.Context, playerID int64, wagers cuporder.WagerSet) (*cuporder.RoundResult, error) {
	var result *cuporder.RoundResult

	err := s.playerLock.WithLockContext(ctx, playerID, s.lockTimeout, func() error {
		session, err := s.store.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		engine, err := cuporder.New(&cuporder.Config{
			StartingBalance: session.Balance,
			Round:           session.Round,
			Source:          s.source,
		})
		if err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		res, err := engine.ResolveRound(wagers)
		if err != nil {
			return err
		}

		if _, err := s.store.Save(ctx, playerID, session.Round, engine.Balance(), engine.Round()); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		result = res
		return nil
	})
	if err != nil {
		if rej, ok := cuporder.AsRejection(err); ok {
			log.Debug().
				Int64("player_id", playerID).
				Str("kind", rej.Kind.String()).
				Msg("Wager rejected")
			return nil, err
		}
		if errors.Is(err, lock.ErrLockTimeout) {
			log.Warn().Int64("player_id", playerID).Msg("Round skipped, player busy")
		}
		return nil, err
	}

	log.Info().
		Int64("player_id", playerID).
		Int("round", result.Round).
		Str("outcome", result.Outcome.String()).
		Float64("stake", result.Stake).
		Float64("payout", result.Payout.Total).
		Float64("balance", result.Balance).
		Msg("Round resolved")

	return result, nil
}

// NewSession discards the player's balance and round counter and starts over
// with the starting balance at round 1.
func (s *RoundService) NewSession(ctx context.Context, playerID int64) (*model.Session, error) {
	var session *model.Session

	err := s.playerLock.WithLockContext(ctx, playerID, s.lockTimeout, func() error {
		var err error
		session, err = s.store.Reset(ctx, playerID, s.startingBalance)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start new session: %w", err)
	}

	log.Info().Int64("player_id", playerID).Msg("Session reset")
	return session, nil
}

// CheckOrder reports whether order is a valid exact-order guess.
func (s *RoundService) CheckOrder(order string) bool {
	return cuporder.IsValidOrder(order)
}
