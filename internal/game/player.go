package game

import (
	"github.com/woneway/holdem-sim/internal/ai"
	"github.com/woneway/holdem-sim/internal/deck"
)

// Status tracks where a player stands in the current hand.
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	StatusEliminated
)

func (s Status) String() string {
	return [...]string{"active", "folded", "allin", "eliminated"}[s]
}

// Player represents a seat at the table. Players persist across hands; the
// per-hand fields (hole cards, bets, fold/all-in status) are reset at hand
// start while chips and elimination carry over.
type Player struct {
	ID        string
	Seat      int
	Name      string
	Chips     int
	HoleCards []deck.Card
	Status    Status
	Bet       int // chips committed this street
	TotalBet  int // chips committed this hand
	Profile   *ai.Profile

	startChips int // stack at hand start, bounds TotalBet
}

// CanAct returns true if the player can still take voluntary actions
func (p *Player) CanAct() bool {
	return p.Status == StatusActive && p.Chips > 0
}

// InHand returns true if the player still has a claim on the pot
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// resetForHand clears per-hand state. Eliminated players stay eliminated.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.startChips = p.Chips
	if p.Status != StatusEliminated {
		p.Status = StatusActive
	}
}
