package deck

import rand "math/rand/v2"

// Deck represents an ordered, shuffled deck of 52 cards with a draw cursor.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// New creates a full 52-card deck shuffled with the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: All(),
		rng:   rng,
	}
	d.shuffle()
	return d
}

// All returns the 52 unique cards in canonical order.
func All() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the next card from the deck
func (d *Deck) Draw() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// DrawN draws n cards from the deck
func (d *Deck) DrawN(n int) []Card {
	if n > len(d.cards)-d.next {
		n = len(d.cards) - d.next
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		if card, ok := d.Draw(); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// Remaining returns the number of cards left to draw
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Reset rewinds the draw cursor and reshuffles all 52 cards
func (d *Deck) Reset() {
	d.next = 0
	d.shuffle()
}
