package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/evaluator"
)

// Settlement is the outcome of distributing the pots at the end of a hand.
type Settlement struct {
	Winners []string       // deduplicated winner ids across all tranches
	Losers  []string       // in-hand players who won nothing, feeds tilt
	Awards  map[int]int    // seat -> chips awarded
	Message string         // human-readable settlement text
	Pot     int            // total chips distributed
}

// Settle distributes every pot tranche. Each tranche is settled
// independently: a lone eligible player takes it without evaluation,
// otherwise every eligible hand is scored and ties split the tranche
// equally. Odd chips from a split are handed out round-robin starting from
// the first eligible seat left of the button, so distribution is
// deterministic and no chip is ever dropped.
func Settle(players []*Player, board []deck.Card, pots []Pot, button int) *Settlement {
	s := &Settlement{Awards: make(map[int]int)}
	var lines []string

	scores := make(map[int]evaluator.Score)
	winnerSeen := make(map[int]bool)

	for i, pot := range pots {
		s.Pot += pot.Amount
		label := "main pot"
		if i > 0 {
			label = fmt.Sprintf("side pot %d", i)
		}

		eligible := pot.Eligible
		if len(eligible) == 0 {
			// Should not happen with well-formed betting; return the chips to
			// the deepest remaining contributor rather than dropping them.
			if seat := deepestInHand(players); seat >= 0 {
				eligible = []int{seat}
			} else {
				continue
			}
		}

		if len(eligible) == 1 {
			seat := eligible[0]
			s.Awards[seat] += pot.Amount
			winnerSeen[seat] = true
			lines = append(lines, fmt.Sprintf("%s wins %d from the %s uncontested",
				players[seat].Name, pot.Amount, label))
			continue
		}

		// Score every eligible hand once and keep the tranche's best.
		best := evaluator.Score{}
		var winners []int
		for _, seat := range eligible {
			score, ok := scores[seat]
			if !ok {
				cards := append([]deck.Card{}, players[seat].HoleCards...)
				cards = append(cards, board...)
				score = evaluator.Evaluate(cards)
				scores[seat] = score
			}
			switch {
			case len(winners) == 0:
				best = score
				winners = []int{seat}
			default:
				switch score.Compare(best) {
				case 1:
					best = score
					winners = []int{seat}
				case 0:
					winners = append(winners, seat)
				}
			}
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		// Odd chips go round-robin from the first winner left of the button.
		ordered := orderFromButton(winners, button, len(players))
		for _, seat := range ordered {
			award := share
			if remainder > 0 {
				award++
				remainder--
			}
			s.Awards[seat] += award
			winnerSeen[seat] = true
		}

		names := make([]string, len(ordered))
		for j, seat := range ordered {
			names[j] = players[seat].Name
		}
		if len(winners) == 1 {
			lines = append(lines, fmt.Sprintf("%s wins %d from the %s with %s",
				names[0], pot.Amount, label, best))
		} else {
			lines = append(lines, fmt.Sprintf("%s split %d from the %s with %s",
				strings.Join(names, " and "), pot.Amount, label, best))
		}
	}

	// Apply awards and derive winner/loser sets.
	for seat, amount := range s.Awards {
		players[seat].Chips += amount
	}
	for _, p := range players {
		if winnerSeen[p.Seat] {
			s.Winners = append(s.Winners, p.ID)
			// A winner flagged eliminated earlier comes back with chips.
			if p.Status == StatusEliminated && p.Chips > 0 {
				p.Status = StatusActive
			}
		} else if p.InHand() {
			s.Losers = append(s.Losers, p.ID)
		}
	}

	s.Message = strings.Join(lines, "; ")
	return s
}

// orderFromButton sorts seats by clockwise distance from the seat left of
// the button.
func orderFromButton(seats []int, button, numSeats int) []int {
	ordered := append([]int{}, seats...)
	dist := func(seat int) int {
		return ((seat - button - 1) % numSeats + numSeats) % numSeats
	}
	sort.Slice(ordered, func(i, j int) bool {
		return dist(ordered[i]) < dist(ordered[j])
	})
	return ordered
}

func deepestInHand(players []*Player) int {
	seat, most := -1, -1
	for _, p := range players {
		if p.InHand() && p.TotalBet > most {
			seat, most = p.Seat, p.TotalBet
		}
	}
	return seat
}
