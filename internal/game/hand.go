package game

import (
	"github.com/woneway/holdem-sim/internal/deck"
)

// Hand holds the transient state of a single hand: deck, board, betting
// round and turn cursor. It is rebuilt by the engine for every hand; the
// players it references persist across hands.
type Hand struct {
	ID      string
	Number  uint64
	Players []*Player
	Button  int
	Street  Street
	Board   []deck.Card
	Betting *BettingRound
	Active  int // seat to act, -1 when no one can act
	Actions []ActionRecord

	dealer        *Dealer
	sbSeat        int
	bbSeat        int
	preflopRaiser int // seat of the last preflop full raiser, -1 if none
	complete      bool
}

func newHand(id string, number uint64, players []*Player, button int, dealer *Dealer) *Hand {
	return &Hand{
		ID:            id,
		Number:        number,
		Players:       players,
		Button:        button,
		Street:        Preflop,
		Active:        -1,
		dealer:        dealer,
		preflopRaiser: -1,
	}
}

// begin posts blinds and antes, deals hole cards, and positions the turn
// cursor left of the big blind. Heads-up the button posts the small blind
// and acts first preflop.
func (h *Hand) begin(smallBlind, bigBlind, ante int) {
	n := len(h.Players)
	if h.inHandCount() == 2 {
		h.sbSeat = h.Button
		h.bbSeat = h.nextInHand(h.Button + 1)
	} else {
		h.sbSeat = h.nextInHand(h.Button + 1)
		h.bbSeat = h.nextInHand(h.sbSeat + 1)
	}

	h.Betting = NewBettingRound(n, bigBlind, h.bbSeat)

	if ante > 0 {
		for _, p := range h.Players {
			if p.InHand() {
				h.Betting.PostAnte(p, ante)
			}
		}
	}
	h.Betting.PostBlind(h.Players[h.sbSeat], smallBlind)
	h.Betting.PostBlind(h.Players[h.bbSeat], bigBlind)
	// The price to call is the full big blind even if the blind was short.
	if h.Betting.CurrentBet < bigBlind {
		h.Betting.CurrentBet = bigBlind
	}
	h.Betting.MinRaise = bigBlind

	h.dealer.Reset()
	h.dealer.DealHole(h.Players)

	h.Active = h.nextCanAct(h.bbSeat + 1)
}

// inHandCount counts players with a claim on the pot
func (h *Hand) inHandCount() int {
	count := 0
	for _, p := range h.Players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// canActCount counts players who can still act voluntarily
func (h *Hand) canActCount() int {
	count := 0
	for _, p := range h.Players {
		if p.CanAct() {
			count++
		}
	}
	return count
}

// nextInHand returns the first in-hand seat at or after from, wrapping.
func (h *Hand) nextInHand(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if h.Players[seat].InHand() {
			return seat
		}
	}
	return -1
}

// nextCanAct returns the first seat at or after from that can act, wrapping.
func (h *Hand) nextCanAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if h.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// advanceStreet collects street bets, moves to the next street, deals its
// community cards, and repositions the turn cursor left of the dealer.
func (h *Hand) advanceStreet() {
	for _, p := range h.Players {
		p.Bet = 0
	}
	h.Betting.ResetForStreet()

	switch h.Street {
	case Preflop:
		h.Street = Flop
	case Flop:
		h.Street = Turn
	case Turn:
		h.Street = River
	case River:
		h.Street = Showdown
		h.Active = -1
		return
	default:
		return
	}

	h.Board = h.dealer.DealStreet(h.Street, h.Board)
	h.Active = h.nextCanAct(h.Button + 1)
}

// needsRunOut reports whether remaining streets should be dealt
// automatically: more than one player is still live but at most one of them
// can act voluntarily, so no further betting is possible.
func (h *Hand) needsRunOut() bool {
	return h.Street < River && h.inHandCount() > 1 && h.canActCount() <= 1
}
