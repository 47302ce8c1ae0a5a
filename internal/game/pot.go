package game

import "sort"

// Pot is one tranche of the chips wagered in a hand: the main pot or a side
// pot, with the seats entitled to win it. Folded players' chips still fund
// tranches but folded players are never eligible.
type Pot struct {
	Amount   int
	Eligible []int // seats, ascending
}

// BuildPots splits the hand's wagered chips into ascending-threshold
// tranches. A tranche exists for every distinct all-in contribution level:
// its amount is (level - previousLevel) x count(contributors at or above the
// level), and its eligibility is the non-folded players who contributed at
// least the level. The tranche amounts always sum to the total wagered.
func BuildPots(players []*Player) []Pot {
	maxContribution := 0
	for _, p := range players {
		if p.TotalBet > maxContribution {
			maxContribution = p.TotalBet
		}
	}
	if maxContribution == 0 {
		return nil
	}

	// Thresholds: each distinct all-in contribution below the maximum caps a
	// tranche; the final tranche runs up to the largest contribution.
	levelSet := map[int]bool{maxContribution: true}
	for _, p := range players {
		if p.Status == StatusAllIn && p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			contribution := min(p.TotalBet, level) - min(p.TotalBet, prev)
			pot.Amount += contribution
			if p.InHand() && p.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	return pots
}

// PotTotal sums all tranche amounts.
func PotTotal(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

// TotalWagered sums every player's hand contribution; it must always equal
// PotTotal(BuildPots(players)).
func TotalWagered(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.TotalBet
	}
	return total
}
