package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/randutil"
)

func newTestHand(t *testing.T, button int, stacks ...int) (*Hand, []*Player) {
	t.Helper()
	players := testPlayers(stacks...)
	dealer := NewDealer(deck.New(randutil.New(42)))
	h := newHand("hand-1", 1, players, button, dealer)
	return h, players
}

func TestBeginThreeHanded(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000, 1000)
	h.begin(10, 20, 0)

	assert.Equal(t, 1, h.sbSeat)
	assert.Equal(t, 2, h.bbSeat)
	// Left of the big blind acts first, wrapping to the button.
	assert.Equal(t, 0, h.Active)

	assert.Equal(t, 10, players[1].Bet)
	assert.Equal(t, 20, players[2].Bet)
	assert.Equal(t, 20, h.Betting.CurrentBet)

	for _, p := range players {
		assert.Len(t, p.HoleCards, 2)
	}
}

func TestBeginHeadsUpButtonPostsSmallBlind(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000)
	h.begin(10, 20, 0)

	assert.Equal(t, 0, h.sbSeat)
	assert.Equal(t, 1, h.bbSeat)
	// Heads-up the button is the small blind and acts first preflop.
	assert.Equal(t, 0, h.Active)
	assert.Equal(t, 10, players[0].Bet)
	assert.Equal(t, 20, players[1].Bet)
}

func TestBeginShortBigBlindStillCostsFullBlindToCall(t *testing.T) {
	t.Parallel()

	h, _ := newTestHand(t, 0, 1000, 15)
	h.begin(10, 20, 0)

	// The big blind went all-in for 15, but calling still costs 20.
	assert.Equal(t, 20, h.Betting.CurrentBet)
	assert.Equal(t, StatusAllIn, h.Players[1].Status)
}

func TestAntesCollected(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000, 1000)
	h.begin(10, 20, 5)

	assert.Equal(t, 45, TotalWagered(players))
	// Antes do not raise the price to call.
	assert.Equal(t, 20, h.Betting.CurrentBet)
}

func TestAdvanceStreetDealsBoard(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000, 1000)
	h.begin(10, 20, 0)

	h.advanceStreet()
	assert.Equal(t, Flop, h.Street)
	assert.Len(t, h.Board, 3)
	// Street bets are swept into hand totals.
	for _, p := range players {
		assert.Zero(t, p.Bet)
	}
	// First live seat left of the button acts.
	assert.Equal(t, 1, h.Active)

	h.advanceStreet()
	assert.Equal(t, Turn, h.Street)
	assert.Len(t, h.Board, 4)

	h.advanceStreet()
	assert.Equal(t, River, h.Street)
	assert.Len(t, h.Board, 5)

	h.advanceStreet()
	assert.Equal(t, Showdown, h.Street)
	assert.Len(t, h.Board, 5)
	assert.Equal(t, -1, h.Active)
}

func TestNeedsRunOut(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000, 1000)
	h.begin(10, 20, 0)
	require.False(t, h.needsRunOut())

	players[0].Status = StatusFolded
	players[1].Status = StatusAllIn
	// One live voluntary actor left against an all-in: deal it out.
	assert.True(t, h.needsRunOut())

	players[2].Status = StatusAllIn
	assert.True(t, h.needsRunOut())

	players[1].Status = StatusFolded
	players[2].Status = StatusActive
	// Only one player left with a claim; no run-out, the hand just ends.
	assert.False(t, h.needsRunOut())
}

func TestBoardUniqueAcrossDeals(t *testing.T) {
	t.Parallel()

	h, players := newTestHand(t, 0, 1000, 1000, 1000)
	h.begin(10, 20, 0)
	h.advanceStreet()
	h.advanceStreet()
	h.advanceStreet()

	seen := make(map[deck.Card]bool)
	for _, p := range players {
		for _, c := range p.HoleCards {
			assert.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
	}
	for _, c := range h.Board {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 11)
}
