package game

import "github.com/woneway/holdem-sim/internal/deck"

// Dealer deals hole cards and advances the community board street by street.
type Dealer struct {
	deck *deck.Deck
}

// NewDealer wraps a deck for one table. Reset the deck at each hand start.
func NewDealer(d *deck.Deck) *Dealer {
	return &Dealer{deck: d}
}

// Reset reshuffles the full deck for a new hand
func (d *Dealer) Reset() {
	d.deck.Reset()
}

// DealHole gives two cards to every player still in the hand.
func (d *Dealer) DealHole(players []*Player) {
	for _, p := range players {
		if p.InHand() {
			p.HoleCards = d.deck.DrawN(2)
		}
	}
}

// DealStreet appends the community cards for the given street to the board
// and returns the new board: three for the flop, one each for turn and river.
func (d *Dealer) DealStreet(street Street, board []deck.Card) []deck.Card {
	switch street {
	case Flop:
		return append(board, d.deck.DrawN(3)...)
	case Turn, River:
		return append(board, d.deck.DrawN(1)...)
	default:
		return board
	}
}
