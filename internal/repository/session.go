// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cup-order-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleSession is returned by Save when the stored round no longer
	// matches the round the caller loaded.
	ErrStaleSession = errors.New("session was modified concurrently")
)

const sessionColumns = `player_id, username, balance, round, created_at, updated_at`

// SessionRepository persists each player's balance and round counter.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository instance.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	err := row.Scan(
		&s.PlayerID,
		&s.Username,
		&s.Balance,
		&s.Round,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create stores a fresh session at round 1 with the given balance.
func (r *SessionRepository) Create(ctx context.Context, playerID int64, username string, balance float64) (*model.Session, error) {
	const query = `
		INSERT INTO sessions (player_id, username, balance, round, created_at, updated_at)
		VALUES ($1, $2, $3, 1, NOW(), NOW())
		RETURNING ` + sessionColumns

	s, err := scanSession(r.pool.QueryRow(ctx, query, playerID, username, balance))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s, nil
}

// GetByID retrieves a player's session.
// Returns ErrSessionNotFound if the player has none.
func (r *SessionRepository) GetByID(ctx context.Context, playerID int64) (*model.Session, error) {
	const query = `SELECT ` + sessionColumns + ` FROM sessions WHERE player_id = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// GetOrCreate returns the player's session, creating one with balance if
// none exists. The bool reports whether a session was created.
func (r *SessionRepository) GetOrCreate(ctx context.Context, playerID int64, username string, balance float64) (*model.Session, bool, error) {
	s, err := r.GetByID(ctx, playerID)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, false, err
	}

	s, err = r.Create(ctx, playerID, username, balance)
	if err != nil {
		// Another request may have created it first.
		existing, getErr := r.GetByID(ctx, playerID)
		if getErr != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	return s, true, nil
}

// Save writes the balance and round resulting from a resolved round.
// The write only succeeds if the stored round still equals expectedRound;
// otherwise ErrStaleSession is returned and nothing changes.
func (r *SessionRepository) Save(ctx context.Context, playerID int64, expectedRound int, balance float64, round int) (*model.Session, error) {
	const query = `
		UPDATE sessions
		SET balance = $3, round = $4, updated_at = NOW()
		WHERE player_id = $1 AND round = $2
		RETURNING ` + sessionColumns

	s, err := scanSession(r.pool.QueryRow(ctx, query, playerID, expectedRound, balance, round))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, playerID); errors.Is(getErr, ErrSessionNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, ErrStaleSession
		}
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Reset replaces the player's session with a fresh one: the given balance and round 1.
func (r *SessionRepository) Reset(ctx context.Context, playerID int64, balance float64) (*model.Session, error) {
	const query = `
		UPDATE sessions
		SET balance = $2, round = 1, updated_at = NOW()
		WHERE player_id = $1
		RETURNING ` + sessionColumns

	s, err := scanSession(r.pool.QueryRow(ctx, query, playerID, balance))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}
	return s, nil
}

// UpdateUsername records a player's current Telegram username.
func (r *SessionRepository) UpdateUsername(ctx context.Context, playerID int64, username string) error {
	const query = `
		UPDATE sessions
		SET username = $2, updated_at = NOW()
		WHERE player_id = $1
	`

	result, err := r.pool.Exec(ctx, query, playerID, username)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}
