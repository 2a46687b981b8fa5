// Package model defines the data models for the cup-order bot.
package model

import "time"

// Session is one player's stored game state. Only the balance and the next
// round number are kept; individual rounds are not recorded.
type Session struct {
	PlayerID  int64     `db:"player_id"`
	Username  string    `db:"username"`
	Balance   float64   `db:"balance"`
	Round     int       `db:"round"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
