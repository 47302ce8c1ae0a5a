// Package stats accumulates per-player frequency statistics from the game
// event stream: VPIP, preflop raise, three-bet and continuation-bet rates.
// The collector is a passive bus subscriber and never calls back into the
// engine.
package stats

import (
	"sort"
	"sync"

	"github.com/woneway/holdem-sim/internal/game"
)

// PlayerStats holds raw counters for one player. Rates are derived on read.
type PlayerStats struct {
	PlayerID string
	Name     string

	HandsDealt   int
	HandsWon     int
	VPIPHands    int // voluntarily put chips in preflop
	PFRHands     int // raised preflop
	ThreeBets    int // reraised preflop
	CBetChances  int // saw the flop as the preflop raiser
	CBets        int
	Showdowns    int
	ShowdownWins int
}

// VPIP is the fraction of dealt hands with voluntary preflop chips. Posting
// a blind or checking the big blind option does not count.
func (s *PlayerStats) VPIP() float64 { return ratio(s.VPIPHands, s.HandsDealt) }

// PFR is the fraction of dealt hands opened with a preflop raise.
func (s *PlayerStats) PFR() float64 { return ratio(s.PFRHands, s.HandsDealt) }

// ThreeBetRate is the fraction of dealt hands with a preflop reraise.
func (s *PlayerStats) ThreeBetRate() float64 { return ratio(s.ThreeBets, s.HandsDealt) }

// CBetRate is the fraction of flops c-bet when this player was the last
// preflop raiser.
func (s *PlayerStats) CBetRate() float64 { return ratio(s.CBets, s.CBetChances) }

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// handScratch is per-hand working state, committed at hand end.
type handScratch struct {
	dealt         map[string]bool
	vpip          map[string]bool
	pfr           map[string]bool
	threeBet      map[string]bool
	cbet          map[string]bool
	preflopRaises int
	lastRaiser    string // preflop aggressor going to the flop
	flopBetSeen   bool
	sawFlop       bool
}

// Collector aggregates statistics across hands.
type Collector struct {
	mu      sync.Mutex
	players map[string]*PlayerStats
	hand    *handScratch
}

// NewCollector creates an empty collector. Subscribe it to the engine's
// event bus.
func NewCollector() *Collector {
	return &Collector{players: make(map[string]*PlayerStats)}
}

// OnEvent implements game.EventSubscriber.
func (c *Collector) OnEvent(event game.GameEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev := event.(type) {
	case game.HandStartEvent:
		c.hand = &handScratch{
			dealt:    make(map[string]bool),
			vpip:     make(map[string]bool),
			pfr:      make(map[string]bool),
			threeBet: make(map[string]bool),
			cbet:     make(map[string]bool),
		}
		for _, p := range ev.Players {
			if p.InHand() {
				c.hand.dealt[p.ID] = true
				c.playerLocked(p.ID, p.Name)
			}
		}

	case game.PlayerActionEvent:
		c.recordActionLocked(ev.Record)

	case game.StreetChangeEvent:
		if c.hand != nil && ev.Street == game.Flop {
			c.hand.sawFlop = true
		}

	case game.HandEndEvent:
		c.commitLocked(ev.Result)
	}
}

func (c *Collector) recordActionLocked(rec game.ActionRecord) {
	if c.hand == nil {
		return
	}

	aggressive := rec.Action == game.Raise || rec.Action == game.AllIn

	if rec.Street == game.Preflop {
		switch rec.Action {
		case game.Call, game.Raise, game.AllIn:
			c.hand.vpip[rec.PlayerID] = true
		}
		if aggressive {
			if c.hand.preflopRaises >= 1 {
				c.hand.threeBet[rec.PlayerID] = true
			}
			c.hand.preflopRaises++
			c.hand.pfr[rec.PlayerID] = true
			c.hand.lastRaiser = rec.PlayerID
		}
		return
	}

	if rec.Street == game.Flop && !c.hand.flopBetSeen {
		if aggressive && rec.PlayerID == c.hand.lastRaiser {
			c.hand.cbet[rec.PlayerID] = true
		}
		if aggressive {
			c.hand.flopBetSeen = true
		}
	}
}

func (c *Collector) commitLocked(result *game.HandResult) {
	h := c.hand
	c.hand = nil
	if h == nil || result == nil {
		return
	}

	for id := range h.dealt {
		s := c.players[id]
		if s == nil {
			continue
		}
		s.HandsDealt++
		if h.vpip[id] {
			s.VPIPHands++
		}
		if h.pfr[id] {
			s.PFRHands++
		}
		if h.threeBet[id] {
			s.ThreeBets++
		}
		if h.sawFlop && id == h.lastRaiser {
			s.CBetChances++
			if h.cbet[id] {
				s.CBets++
			}
		}
	}

	for _, id := range result.Winners {
		if s := c.players[id]; s != nil {
			s.HandsWon++
			if result.Showdown {
				s.Showdowns++
				s.ShowdownWins++
			}
		}
	}
	if result.Showdown {
		for _, id := range result.Losers {
			if s := c.players[id]; s != nil {
				s.Showdowns++
			}
		}
	}
}

func (c *Collector) playerLocked(id, name string) *PlayerStats {
	s, ok := c.players[id]
	if !ok {
		s = &PlayerStats{PlayerID: id, Name: name}
		c.players[id] = s
	}
	return s
}

// Player returns a copy of one player's counters.
func (c *Collector) Player(id string) (PlayerStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.players[id]
	if !ok {
		return PlayerStats{}, false
	}
	return *s, true
}

// Report returns copies of every player's counters, ordered by name.
func (c *Collector) Report() []PlayerStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	report := make([]PlayerStats, 0, len(c.players))
	for _, s := range c.players {
		report = append(report, *s)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Name < report[j].Name })
	return report
}
