package evaluator

import (
	"fmt"
	"sort"

	"github.com/woneway/holdem-sim/internal/deck"
)

// Category represents the type of a 5-card poker hand, ordered weakest to
// strongest so that categories compare directly.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable hand description
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score is a comparable hand strength: a category plus category-specific
// tie-break kickers in descending significance. Identical inputs always
// produce identical scores regardless of card order.
type Score struct {
	Category Category
	Kickers  []deck.Rank
}

// Compare returns 1 if s beats o, -1 if o beats s, 0 on an exact tie.
func (s Score) Compare(o Score) int {
	if s.Category != o.Category {
		if s.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(s.Kickers) && i < len(o.Kickers); i++ {
		if s.Kickers[i] != o.Kickers[i] {
			if s.Kickers[i] > o.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String describes the hand for settlement messages, e.g.
// "Full House, Kings full of Tens".
func (s Score) String() string {
	k := s.Kickers
	switch s.Category {
	case StraightFlush:
		if len(k) > 0 && k[0] == deck.Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", highName(k))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", highName(k))
	case FullHouse:
		if len(k) >= 2 {
			return fmt.Sprintf("Full House, %ss full of %ss", k[0].Name(), k[1].Name())
		}
		return "Full House"
	case Flush:
		return fmt.Sprintf("Flush, %s high", highName(k))
	case Straight:
		return fmt.Sprintf("Straight, %s high", highName(k))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", highName(k))
	case TwoPair:
		if len(k) >= 2 {
			return fmt.Sprintf("Two Pair, %ss and %ss", k[0].Name(), k[1].Name())
		}
		return "Two Pair"
	case Pair:
		return fmt.Sprintf("Pair of %ss", highName(k))
	default:
		return fmt.Sprintf("High Card, %s", highName(k))
	}
}

func highName(kickers []deck.Rank) string {
	if len(kickers) == 0 {
		return "?"
	}
	return kickers[0].Name()
}

// Evaluate scores the best 5-card hand from 5 to 7 cards by enumerating
// every 5-card subset and keeping the maximum. Fewer than 5 cards is a
// caller contract violation.
func Evaluate(cards []deck.Card) Score {
	if len(cards) < 5 {
		panic(fmt.Sprintf("evaluator: need at least 5 cards, got %d", len(cards)))
	}

	n := len(cards)
	var best Score
	first := true
	var hand [5]deck.Card

	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						hand[0], hand[1], hand[2], hand[3], hand[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						score := evaluate5(hand)
						if first || score.Compare(best) > 0 {
							best = score
							first = false
						}
					}
				}
			}
		}
	}

	return best
}

// evaluate5 scores exactly five cards.
func evaluate5(hand [5]deck.Card) Score {
	ranks := make([]deck.Rank, 5)
	flush := true
	for i, c := range hand {
		ranks[i] = c.Rank
		if c.Suit != hand[0].Suit {
			flush = false
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	straightHigh, isStraight := straightHighRank(ranks)

	if flush && isStraight {
		return Score{Category: StraightFlush, Kickers: []deck.Rank{straightHigh}}
	}

	// Group ranks by multiplicity. ranks is sorted descending, so groups
	// come out ordered by count first, then rank.
	type group struct {
		rank  deck.Rank
		count int
	}
	var groups []group
	for _, r := range ranks {
		if len(groups) > 0 && groups[len(groups)-1].rank == r {
			groups[len(groups)-1].count++
		} else {
			groups = append(groups, group{rank: r, count: 1})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	kickers := make([]deck.Rank, len(groups))
	for i, g := range groups {
		kickers[i] = g.rank
	}

	switch {
	case groups[0].count == 4:
		return Score{Category: FourOfAKind, Kickers: kickers}
	case groups[0].count == 3 && groups[1].count == 2:
		return Score{Category: FullHouse, Kickers: kickers}
	case flush:
		return Score{Category: Flush, Kickers: ranks}
	case isStraight:
		return Score{Category: Straight, Kickers: []deck.Rank{straightHigh}}
	case groups[0].count == 3:
		return Score{Category: ThreeOfAKind, Kickers: kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return Score{Category: TwoPair, Kickers: kickers}
	case groups[0].count == 2:
		return Score{Category: Pair, Kickers: kickers}
	default:
		return Score{Category: HighCard, Kickers: ranks}
	}
}

// straightHighRank reports the high card of a straight given five ranks
// sorted descending. The wheel (A-2-3-4-5) ranks five high, strictly below
// the six-high straight.
func straightHighRank(ranks []deck.Rank) (deck.Rank, bool) {
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return 0, false // duplicate rank, no straight possible
		}
	}

	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}

	// Wheel: A,5,4,3,2 once sorted descending
	if ranks[0] == deck.Ace && ranks[1] == deck.Five && ranks[4] == deck.Two && ranks[1]-ranks[4] == 3 {
		return deck.Five, true
	}

	return 0, false
}

// Compare is a convenience wrapper for sorting call sites.
func Compare(a, b Score) int {
	return a.Compare(b)
}
