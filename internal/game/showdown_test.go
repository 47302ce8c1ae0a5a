package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woneway/holdem-sim/internal/deck"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(suit, rank)
}

func TestUncontestedSettlement(t *testing.T) {
	t.Parallel()

	players := testPlayers(1000, 1000, 1000)
	wager(players[0], 50, StatusFolded)
	wager(players[1], 50, StatusFolded)
	wager(players[2], 50, StatusActive)

	s := Settle(players, nil, BuildPots(players), 0)

	assert.Equal(t, 150, s.Pot)
	assert.Equal(t, []string{"p2"}, s.Winners)
	assert.Empty(t, s.Losers)
	assert.Equal(t, 1100, players[2].Chips)
	assert.Contains(t, s.Message, "uncontested")
}

func TestShowdownBestHandTakesPot(t *testing.T) {
	t.Parallel()

	players := testPlayers(1000, 1000)
	wager(players[0], 200, StatusActive)
	wager(players[1], 200, StatusActive)

	players[0].HoleCards = []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Diamonds)}
	players[1].HoleCards = []deck.Card{card(deck.King, deck.Spades), card(deck.King, deck.Diamonds)}
	board := []deck.Card{
		card(deck.Two, deck.Clubs), card(deck.Seven, deck.Diamonds), card(deck.Nine, deck.Hearts),
		card(deck.Three, deck.Spades), card(deck.Five, deck.Clubs),
	}

	s := Settle(players, board, BuildPots(players), 0)

	assert.Equal(t, []string{"p0"}, s.Winners)
	assert.Equal(t, []string{"p1"}, s.Losers)
	assert.Equal(t, 1200, players[0].Chips)
	assert.Equal(t, 800, players[1].Chips)
	assert.Contains(t, s.Message, "Pair of Aces")
}

func TestSidePotsSettleIndependently(t *testing.T) {
	t.Parallel()

	players := testPlayers(200, 500, 500)
	wager(players[0], 200, StatusAllIn)
	wager(players[1], 500, StatusActive)
	wager(players[2], 500, StatusActive)

	// Short stack holds the best hand, middle hand wins the side pot.
	players[0].HoleCards = []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Diamonds)}
	players[1].HoleCards = []deck.Card{card(deck.King, deck.Spades), card(deck.King, deck.Diamonds)}
	players[2].HoleCards = []deck.Card{card(deck.Queen, deck.Spades), card(deck.Queen, deck.Diamonds)}
	board := []deck.Card{
		card(deck.Two, deck.Clubs), card(deck.Seven, deck.Diamonds), card(deck.Nine, deck.Hearts),
		card(deck.Three, deck.Spades), card(deck.Five, deck.Clubs),
	}

	s := Settle(players, board, BuildPots(players), 2)

	// Main pot 600 to the aces, side pot 600 to the kings.
	assert.Equal(t, 600, players[0].Chips)
	assert.Equal(t, 600, players[1].Chips)
	assert.Equal(t, 0, players[2].Chips)
	assert.ElementsMatch(t, []string{"p0", "p1"}, s.Winners)
	assert.Equal(t, []string{"p2"}, s.Losers)
	assert.Equal(t, 1200, s.Pot)
}

func TestSplitPotOddChipGoesLeftOfButton(t *testing.T) {
	t.Parallel()

	players := testPlayers(1000, 1000, 1000)
	wager(players[0], 50, StatusActive)
	wager(players[1], 50, StatusActive)
	wager(players[2], 1, StatusFolded)

	// The board plays for both live hands: a straight neither improves.
	players[0].HoleCards = []deck.Card{card(deck.Two, deck.Clubs), card(deck.Three, deck.Diamonds)}
	players[1].HoleCards = []deck.Card{card(deck.Two, deck.Hearts), card(deck.Seven, deck.Clubs)}
	board := []deck.Card{
		card(deck.Ace, deck.Spades), card(deck.King, deck.Diamonds), card(deck.Queen, deck.Clubs),
		card(deck.Jack, deck.Hearts), card(deck.Ten, deck.Spades),
	}

	// 101 chips split two ways: seat 0 is first left of button 1 after the
	// fold, so it collects the odd chip.
	s := Settle(players, board, BuildPots(players), 1)
	assert.Equal(t, 51, s.Awards[0])
	assert.Equal(t, 50, s.Awards[1])

	// With the button on seat 0 the odd chip moves to seat 1.
	players = testPlayers(1000, 1000, 1000)
	wager(players[0], 50, StatusActive)
	wager(players[1], 50, StatusActive)
	wager(players[2], 1, StatusFolded)
	players[0].HoleCards = []deck.Card{card(deck.Two, deck.Clubs), card(deck.Three, deck.Diamonds)}
	players[1].HoleCards = []deck.Card{card(deck.Two, deck.Hearts), card(deck.Seven, deck.Clubs)}

	s = Settle(players, board, BuildPots(players), 0)
	assert.Equal(t, 50, s.Awards[0])
	assert.Equal(t, 51, s.Awards[1])
}

func TestSettlementConservesChips(t *testing.T) {
	t.Parallel()

	players := testPlayers(300, 700, 900, 900)
	wager(players[0], 300, StatusAllIn)
	wager(players[1], 700, StatusAllIn)
	wager(players[2], 900, StatusAllIn)
	wager(players[3], 900, StatusActive)

	players[0].HoleCards = []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Diamonds)}
	players[1].HoleCards = []deck.Card{card(deck.King, deck.Spades), card(deck.King, deck.Diamonds)}
	players[2].HoleCards = []deck.Card{card(deck.Queen, deck.Spades), card(deck.Queen, deck.Diamonds)}
	players[3].HoleCards = []deck.Card{card(deck.Jack, deck.Spades), card(deck.Jack, deck.Diamonds)}
	board := []deck.Card{
		card(deck.Two, deck.Clubs), card(deck.Seven, deck.Diamonds), card(deck.Nine, deck.Hearts),
		card(deck.Three, deck.Spades), card(deck.Five, deck.Clubs),
	}

	pots := BuildPots(players)
	s := Settle(players, board, pots, 3)

	total := 0
	for _, p := range players {
		total += p.Chips
	}
	require.Equal(t, 2800, total)

	awarded := 0
	for _, amount := range s.Awards {
		awarded += amount
	}
	assert.Equal(t, s.Pot, awarded)
	assert.Equal(t, TotalWagered(players), s.Pot)
}
