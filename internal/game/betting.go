package game

import "errors"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

var (
	// ErrCannotCheck is returned when checking while facing a bet.
	ErrCannotCheck = errors.New("cannot check facing a bet")
	// ErrRaiseTooSmall is returned for a raise below the minimum that is not
	// an all-in.
	ErrRaiseTooSmall = errors.New("raise below minimum")
	// ErrRaiseNotReopened is returned when a player who already acted tries
	// to raise again without an intervening full raise.
	ErrRaiseNotReopened = errors.New("cannot raise, action was not reopened")
)

// ActionResult describes what applying one action did to betting state.
type ActionResult struct {
	PotDelta      int  // chips the actor moved in on this action
	Reopened      bool // whether players who already acted must act again
	NewLastRaiser bool // whether the actor became the last full raiser
	WentAllIn     bool
}

// BettingRound applies one action at a time against (currentBet, minRaise)
// state. The round owns the reopen rule: only a full raise clears the
// acted-this-round flags; an all-in for less than a full raise raises the
// price to call but does not reopen action for players who already acted.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	LastRaiser int // seat of the last full raiser, -1 if none
	Raises     int // voluntary full raises this street
	Acted      []bool
	BBSeat     int // -1 on postflop streets
	BBActed    bool

	bigBlind int
}

// NewBettingRound creates betting state for one street.
func NewBettingRound(numSeats, bigBlind, bbSeat int) *BettingRound {
	return &BettingRound{
		MinRaise:   bigBlind,
		LastRaiser: -1,
		Acted:      make([]bool, numSeats),
		BBSeat:     bbSeat,
		bigBlind:   bigBlind,
	}
}

// ResetForStreet clears per-street state while keeping the big blind as the
// baseline minimum raise.
func (br *BettingRound) ResetForStreet() {
	br.CurrentBet = 0
	br.MinRaise = br.bigBlind
	br.LastRaiser = -1
	br.Raises = 0
	for i := range br.Acted {
		br.Acted[i] = false
	}
	br.BBSeat = -1
}

// PostBlind places a forced bet. The amount is capped to the player's stack
// and may put them all-in without a voluntary choice. Blinds do not count as
// having acted.
func (br *BettingRound) PostBlind(p *Player, amount int) int {
	posted := min(amount, p.Chips)
	p.Bet += posted
	p.TotalBet += posted
	p.Chips -= posted
	if p.Chips == 0 && posted > 0 {
		p.Status = StatusAllIn
	}
	if p.Bet > br.CurrentBet {
		br.CurrentBet = p.Bet
	}
	return posted
}

// PostAnte places a forced ante that goes straight to the hand total without
// raising the price to call.
func (br *BettingRound) PostAnte(p *Player, amount int) int {
	posted := min(amount, p.Chips)
	p.TotalBet += posted
	p.Chips -= posted
	if p.Chips == 0 && posted > 0 {
		p.Status = StatusAllIn
	}
	return posted
}

// Apply applies one action for the player. raiseTo is the total street bet
// the player raises to and is ignored for other actions. Amounts beyond the
// player's stack are capped to the stack and become an all-in rather than
// an error.
func (br *BettingRound) Apply(p *Player, action Action, raiseTo int) (ActionResult, error) {
	var res ActionResult

	switch action {
	case Fold:
		p.Status = StatusFolded
		br.markActed(p)
		return res, nil

	case Check:
		if br.CurrentBet != p.Bet {
			return res, ErrCannotCheck
		}
		br.markActed(p)
		return res, nil

	case Call:
		toCall := min(br.CurrentBet-p.Bet, p.Chips)
		if toCall < 0 {
			toCall = 0
		}
		p.Bet += toCall
		p.TotalBet += toCall
		p.Chips -= toCall
		res.PotDelta = toCall
		if p.Chips == 0 {
			p.Status = StatusAllIn
			res.WentAllIn = true
		}
		br.markActed(p)
		return res, nil

	case AllIn:
		return br.applyRaise(p, p.Bet+p.Chips)

	case Raise:
		return br.applyRaise(p, raiseTo)
	}

	return res, nil
}

func (br *BettingRound) applyRaise(p *Player, raiseTo int) (ActionResult, error) {
	var res ActionResult

	playerMax := p.Chips + p.Bet
	if raiseTo > playerMax {
		raiseTo = playerMax
	}
	allIn := raiseTo == playerMax

	if raiseTo <= p.Bet {
		return res, ErrRaiseTooSmall
	}

	// A seat that already acted may only call or fold until a full raise
	// reopens the action. An all-in for no more than the current bet is a
	// call for less, not a raise.
	if br.Acted[p.Seat] && raiseTo > br.CurrentBet {
		return res, ErrRaiseNotReopened
	}

	fullRaise := raiseTo-br.CurrentBet >= br.MinRaise
	if !fullRaise && !allIn {
		return res, ErrRaiseTooSmall
	}

	br.markActed(p)
	delta := raiseTo - p.Bet
	p.Chips -= delta
	p.Bet = raiseTo
	p.TotalBet += delta
	res.PotDelta = delta

	if allIn {
		p.Status = StatusAllIn
		res.WentAllIn = true
	}

	if fullRaise {
		// A full raise reopens the action: everyone else must act again.
		br.MinRaise = raiseTo - br.CurrentBet
		br.CurrentBet = raiseTo
		br.LastRaiser = p.Seat
		br.Raises++
		for i := range br.Acted {
			br.Acted[i] = false
		}
		br.Acted[p.Seat] = true
		res.Reopened = true
		res.NewLastRaiser = true
	} else if raiseTo > br.CurrentBet {
		// Under-raise all-in: the price to call rises, but acted flags stand
		// and no new last raiser is established.
		br.CurrentBet = raiseTo
	}

	return res, nil
}

// ValidActions returns the actions the player may legally take right now.
func (br *BettingRound) ValidActions(p *Player) []Action {
	if !p.CanAct() {
		return nil
	}

	actions := []Action{Fold}
	toCall := br.CurrentBet - p.Bet

	if toCall <= 0 {
		actions = append(actions, Check)
		if p.Chips > br.MinRaise {
			actions = append(actions, Raise)
		} else if p.Chips > 0 {
			actions = append(actions, AllIn)
		}
	} else if toCall >= p.Chips {
		actions = append(actions, AllIn)
	} else {
		actions = append(actions, Call)
		// A seat that already acted cannot raise until a full raise reopens
		// the action.
		if !br.Acted[p.Seat] {
			if p.Chips > toCall+br.MinRaise {
				actions = append(actions, Raise)
			} else {
				actions = append(actions, AllIn)
			}
		}
	}

	return actions
}

// IsComplete reports whether the betting round is over: every player who can
// still act has acted since the last full raise and matched the current bet,
// with the preflop big blind retaining their option when unraised.
func (br *BettingRound) IsComplete(players []*Player) bool {
	canAct := 0
	for _, p := range players {
		if p.CanAct() {
			canAct++
		}
	}
	if canAct == 0 {
		return true
	}

	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != br.CurrentBet {
			return false
		}
		if !br.Acted[p.Seat] {
			return false
		}
	}

	// Preflop the big blind gets the option even when all bets match.
	if br.BBSeat >= 0 && br.LastRaiser == -1 {
		bb := players[br.BBSeat]
		if bb.CanAct() && !br.BBActed {
			return false
		}
	}

	return true
}

// markActed records a completed voluntary action. A rejected action must not
// mark the seat, or a bad input could close the round early.
func (br *BettingRound) markActed(p *Player) {
	br.Acted[p.Seat] = true
	if p.Seat == br.BBSeat {
		br.BBActed = true
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
