package handler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"cup-order-bot/internal/game/cuporder"
	"cup-order-bot/internal/model"
	"cup-order-bot/internal/pkg/lock"
	"cup-order-bot/internal/service"
)

var errNoSession = errors.New("session not found")

// sessionMap is an in-memory service.SessionStore.
type sessionMap struct {
	mu       sync.Mutex
	sessions map[int64]model.Session
}

func (m *sessionMap) GetByID(_ context.Context, playerID int64) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	if !ok {
		return nil, errNoSession
	}
	return &s, nil
}

func (m *sessionMap) GetOrCreate(_ context.Context, playerID int64, username string, balance float64) (*model.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[playerID]; ok {
		return &s, false, nil
	}
	s := model.Session{PlayerID: playerID, Username: username, Balance: balance, Round: 1}
	m.sessions[playerID] = s
	return &s, true, nil
}

func (m *sessionMap) Save(_ context.Context, playerID int64, expectedRound int, balance float64, round int) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	if !ok {
		return nil, errNoSession
	}
	if s.Round != expectedRound {
		return nil, errors.New("stale session")
	}
	s.Balance, s.Round = balance, round
	m.sessions[playerID] = s
	return &s, nil
}

func (m *sessionMap) Reset(_ context.Context, playerID int64, balance float64) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	if !ok {
		return nil, errNoSession
	}
	s.Balance, s.Round = balance, 1
	m.sessions[playerID] = s
	return &s, nil
}

func (m *sessionMap) UpdateUsername(_ context.Context, playerID int64, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[playerID]
	if !ok {
		return errNoSession
	}
	s.Username = username
	m.sessions[playerID] = s
	return nil
}

// commandContext implements the parts of tele.Context the handlers touch.
type commandContext struct {
	tele.Context
	sender  *tele.User
	args    []string
	replies []string
}

func (c *commandContext) Sender() *tele.User { return c.sender }
func (c *commandContext) Args() []string     { return c.args }

func (c *commandContext) Reply(what interface{}, _ ...interface{}) error {
	c.replies = append(c.replies, what.(string))
	return nil
}

func (c *commandContext) lastReply(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, c.replies)
	return c.replies[len(c.replies)-1]
}

func command(userID int64, args ...string) *commandContext {
	return &commandContext{sender: &tele.User{ID: userID, Username: "alice"}, args: args}
}

func newTestHandler(outcomes ...cuporder.Outcome) (*RoundHandler, *sessionMap) {
	store := &sessionMap{sessions: make(map[int64]model.Session)}
	svc := service.NewRoundService(store, lock.NewPlayerLock(), service.RoundServiceConfig{
		StartingBalance: 100,
		LockTimeout:     time.Second,
		Source:          cuporder.NewFixedSource(outcomes...),
	})
	return NewRoundHandler(svc), store
}

func TestRoundHandler_HandleStart(t *testing.T) {
	h, store := newTestHandler()

	c := command(1)
	require.NoError(t, h.HandleStart(c))
	assert.Contains(t, c.lastReply(t), "Welcome @alice")
	assert.Contains(t, c.lastReply(t), "$100.00")
	assert.Contains(t, store.sessions, int64(1))

	require.NoError(t, h.HandleStart(c))
	assert.Contains(t, c.lastReply(t), "Welcome back @alice")
	assert.Contains(t, c.lastReply(t), "Round: 1")
}

func TestRoundHandler_HandlePlay(t *testing.T) {
	h, store := newTestHandler(cuporder.Outcome{cuporder.CupB, cuporder.CupA, cuporder.CupC})

	c := command(2, "exact=bac:10", "pair=AC:first:4", "single=A:2:6")
	require.NoError(t, h.HandlePlay(c))

	reply := c.lastReply(t)
	assert.Contains(t, reply, "1: B  2: A  3: C")
	assert.Contains(t, reply, "Round 1: order is B, A, C. Stake $20.00, payout $67.00.")
	assert.Contains(t, reply, "Net: $47.00 | New balance: $147.00")

	assert.Equal(t, 147.0, store.sessions[2].Balance)
	assert.Equal(t, 2, store.sessions[2].Round)
}

func TestRoundHandler_HandlePlay_SyntaxError(t *testing.T) {
	h, store := newTestHandler()

	c := command(3, "exact=ABC")
	require.NoError(t, h.HandlePlay(c))

	assert.Contains(t, c.lastReply(t), ErrWagerSyntax.Error())
	assert.Contains(t, c.lastReply(t), "Usage")
	assert.Empty(t, store.sessions)
}

func TestRoundHandler_HandlePlay_Rejections(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"pair=CA:first:4"}, cuporder.ErrInvalidPair.Reason},
		{[]string{"exact=ABC:0"}, cuporder.ErrNoActiveWager.Reason},
		{[]string{"exact=ABC:500"}, "stake 500.00, balance 100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h, store := newTestHandler()

			c := command(4, tt.args...)
			require.NoError(t, h.HandlePlay(c))
			assert.Contains(t, c.lastReply(t), tt.want)

			assert.Equal(t, 100.0, store.sessions[4].Balance)
			assert.Equal(t, 1, store.sessions[4].Round)
		})
	}
}

func TestRoundHandler_HandleCheck(t *testing.T) {
	h, _ := newTestHandler()

	c := command(5, "bac")
	require.NoError(t, h.HandleCheck(c))
	assert.Equal(t, "✅ BAC is a valid order", c.lastReply(t))

	for _, order := range []string{"ABB", "ſA", "ıB"} {
		c = command(5, order)
		require.NoError(t, h.HandleCheck(c))
		assert.Contains(t, c.lastReply(t), cuporder.ErrInvalidExactOrder.Reason, order)
	}

	c = command(5)
	require.NoError(t, h.HandleCheck(c))
	assert.Contains(t, c.lastReply(t), "Usage: /check")
}

func TestRoundHandler_HandleBalanceAndNew(t *testing.T) {
	h, store := newTestHandler(cuporder.Outcome{cuporder.CupC, cuporder.CupB, cuporder.CupA})

	c := command(6, "exact=ABC:30")
	require.NoError(t, h.HandlePlay(c))
	assert.Equal(t, 70.0, store.sessions[6].Balance)

	c = command(6)
	require.NoError(t, h.HandleBalance(c))
	assert.Contains(t, c.lastReply(t), "$70.00")
	assert.Contains(t, c.lastReply(t), "Round: 2")

	require.NoError(t, h.HandleNew(c))
	assert.Contains(t, c.lastReply(t), "New session started")
	assert.Contains(t, c.lastReply(t), "$100.00")
	assert.Equal(t, 1, store.sessions[6].Round)
}

func TestRoundHandler_MissingSender(t *testing.T) {
	h, store := newTestHandler()

	c := &commandContext{args: []string{"exact=ABC:1"}}
	require.NoError(t, h.HandleStart(c))
	require.NoError(t, h.HandleBalance(c))
	require.NoError(t, h.HandlePlay(c))
	require.NoError(t, h.HandleNew(c))

	assert.Empty(t, c.replies)
	assert.Empty(t, store.sessions)
}
