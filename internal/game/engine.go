package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/woneway/holdem-sim/internal/ai"
	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/equity"
	"github.com/woneway/holdem-sim/internal/randutil"
)

// Seat describes one entrant when building or extending a table.
type Seat struct {
	Name    string
	Chips   int
	Profile *ai.Profile // nil for a human-controlled seat
}

// Config configures an engine.
type Config struct {
	SmallBlind    int
	BigBlind      int
	Ante          int
	Seed          int64
	ThinkDelay    time.Duration // pause before a bot decision fires
	RunOutDelay   time.Duration // pacing between auto-dealt streets
	EquitySamples int           // Monte Carlo samples per bot decision
	Logger        *log.Logger
	Clock         quartz.Clock
}

// Engine is the orchestrating state machine: hand lifecycle, turn order and
// street transitions. It is single-threaded and cooperative: exactly one
// action mutates state at a time, and all deferred work (bot decisions,
// run-it-out dealing) re-checks hand identity at fire time before touching
// anything.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus

	players []*Player
	dealer  *Dealer
	hand    *Hand

	handCount  uint64
	button     int
	sb, bb     int
	ante       int
	totalChips int
	lastResult *HandResult

	// aiRng is only ever drawn from under the mutex; deferred work derives
	// per-task seeds from it and builds its own generators.
	aiRng *rand.Rand

	// Deferred-task queue: tasks are pushed under the lock and pumped by
	// whichever public entry point or timer callback gets there first.
	queue   []func()
	pumping bool
}

// NewEngine creates an engine for the given roster. The roster and blinds
// come from table setup; AI profiles ride along on their seats.
func NewEngine(cfg Config, seats []Seat) (*Engine, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least 2 seats, got %d", len(seats))
	}
	if cfg.BigBlind <= 0 || cfg.SmallBlind <= 0 || cfg.SmallBlind > cfg.BigBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.EquitySamples <= 0 {
		cfg.EquitySamples = 400
	}

	e := &Engine{
		cfg:    cfg,
		logger: cfg.Logger.WithPrefix("engine"),
		clock:  cfg.Clock,
		bus:    NewEventBus(),
		button: -1,
		sb:     cfg.SmallBlind,
		bb:     cfg.BigBlind,
		ante:   cfg.Ante,
		aiRng:  randutil.New(cfg.Seed),
	}
	e.dealer = NewDealer(deck.New(randutil.New(cfg.Seed + 1)))

	for i, seat := range seats {
		if seat.Chips <= 0 {
			return nil, fmt.Errorf("seat %q needs a positive stack", seat.Name)
		}
		e.players = append(e.players, &Player{
			ID:      uuid.NewString(),
			Seat:    i,
			Name:    seat.Name,
			Chips:   seat.Chips,
			Profile: seat.Profile,
		})
		e.totalChips += seat.Chips
	}

	return e, nil
}

// EventBus returns the bus downstream consumers subscribe to.
func (e *Engine) EventBus() EventBus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bus
}

// HandCount returns the monotonic hand counter.
func (e *Engine) HandCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handCount
}

// Result returns the most recently completed hand result.
func (e *Engine) Result() *HandResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastResult
}

// HandInProgress reports whether a hand is being played.
func (e *Engine) HandInProgress() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.handInProgressLocked()
}

func (e *Engine) handInProgressLocked() bool {
	return e.hand != nil && !e.hand.complete
}

// StartHand begins the next hand. With fewer than two funded players the
// hand resolves immediately as an explanatory no-op; the game can always
// continue to the next hand.
func (e *Engine) StartHand() {
	e.mu.Lock()
	e.startHandLocked()
	e.mu.Unlock()
	e.pump()
}

// PlayHand starts a hand and returns its result if it ran to completion
// synchronously, which is the case for all-bot tables with zero delays.
func (e *Engine) PlayHand() *HandResult {
	e.StartHand()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hand != nil && e.hand.complete {
		return e.lastResult
	}
	return nil
}

func (e *Engine) startHandLocked() {
	if e.handInProgressLocked() {
		e.logger.Warn("ignoring StartHand, hand in progress", "hand", e.handCount)
		return
	}

	e.handCount++
	id := uuid.NewString()

	funded := 0
	for _, p := range e.players {
		p.resetForHand()
		if p.Status != StatusEliminated && p.Chips > 0 {
			funded++
		} else if p.Status != StatusEliminated {
			// A zero stack outside a hand means the seat is out.
			p.Status = StatusEliminated
		}
	}

	if funded < 2 {
		result := &HandResult{
			HandID:     id,
			HandNumber: e.handCount,
			Settlement: "not enough funded players to deal a hand",
		}
		e.lastResult = result
		e.hand = &Hand{ID: id, Number: e.handCount, complete: true}
		e.bus.Publish(HandEndEvent{Result: result, timestamp: e.clock.Now()})
		e.logger.Info("hand skipped", "hand", e.handCount, "funded", funded)
		return
	}

	// Eliminated seats are skipped when the button rotates.
	e.button = e.nextFundedSeat(e.button + 1)

	e.hand = newHand(id, e.handCount, e.players, e.button, e.dealer)
	e.hand.begin(e.sb, e.bb, e.ante)

	e.bus.Publish(HandStartEvent{
		HandID:     id,
		HandNumber: e.handCount,
		Button:     e.button,
		SmallBlind: e.sb,
		BigBlind:   e.bb,
		Ante:       e.ante,
		Players:    e.players,
		timestamp:  e.clock.Now(),
	})
	e.logger.Info("hand started", "hand", e.handCount, "button", e.button,
		"blinds", fmt.Sprintf("%d/%d", e.sb, e.bb))

	if e.hand.Active == -1 || e.hand.Betting.IsComplete(e.players) {
		// Blinds put everyone all-in already.
		e.afterActionLocked(e.hand.bbSeat)
		return
	}
	e.requestActionLocked()
}

func (e *Engine) nextFundedSeat(from int) int {
	n := len(e.players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		p := e.players[seat]
		if p.Status != StatusEliminated && p.Chips > 0 {
			return seat
		}
	}
	return 0
}

// Apply delivers an external (human) action for the given player. Illegal
// and out-of-turn actions are ignored rather than failed: the engine logs
// and waits for a valid one.
func (e *Engine) Apply(playerID string, action Action, raiseTo int) {
	e.mu.Lock()
	seat := e.seatOf(playerID)
	switch {
	case seat < 0:
		e.logger.Debug("ignoring action from unknown player", "player", playerID)
	case !e.handInProgressLocked() || e.hand.Active != seat:
		e.logger.Debug("ignoring out-of-turn action", "player", playerID, "action", action)
	default:
		if err := e.applyLocked(seat, action, raiseTo); err != nil {
			e.logger.Debug("ignoring illegal action", "player", playerID,
				"action", action, "err", err)
		}
	}
	e.mu.Unlock()
	e.pump()
}

func (e *Engine) seatOf(playerID string) int {
	for _, p := range e.players {
		if p.ID == playerID {
			return p.Seat
		}
	}
	return -1
}

// applyLocked applies one validated action and advances the state machine.
func (e *Engine) applyLocked(seat int, action Action, raiseTo int) error {
	p := e.players[seat]
	res, err := e.hand.Betting.Apply(p, action, raiseTo)
	if err != nil {
		return err
	}

	if res.NewLastRaiser && e.hand.Street == Preflop {
		e.hand.preflopRaiser = seat
	}

	record := ActionRecord{
		PlayerID: p.ID,
		Name:     p.Name,
		Street:   e.hand.Street,
		Action:   action,
		Amount:   res.PotDelta,
	}
	e.hand.Actions = append(e.hand.Actions, record)
	e.bus.Publish(PlayerActionEvent{
		HandID:    e.hand.ID,
		Record:    record,
		PotAfter:  TotalWagered(e.players),
		timestamp: e.clock.Now(),
	})
	e.logger.Debug("action applied", "hand", e.hand.Number, "player", p.Name,
		"street", e.hand.Street, "action", action, "amount", res.PotDelta)

	e.afterActionLocked(seat)
	return nil
}

// afterActionLocked decides what happens next: hand over, street over,
// run-it-out, or pass the turn along.
func (e *Engine) afterActionLocked(seat int) {
	switch {
	case e.hand.inHandCount() <= 1:
		// Everyone else folded; no evaluation needed.
		e.finishLocked(false)

	case e.hand.Betting.IsComplete(e.players):
		if e.hand.Street == River {
			e.hand.advanceStreet()
			e.finishLocked(true)
			return
		}
		if e.hand.needsRunOut() {
			e.scheduleRunOutLocked()
			return
		}
		e.hand.advanceStreet()
		e.bus.Publish(StreetChangeEvent{
			HandID:    e.hand.ID,
			Street:    e.hand.Street,
			Board:     append([]deck.Card{}, e.hand.Board...),
			timestamp: e.clock.Now(),
		})
		e.requestActionLocked()

	default:
		e.hand.Active = e.hand.nextCanAct(seat + 1)
		e.requestActionLocked()
	}
}

// scheduleRunOutLocked deals the remaining streets as a chain of delayed
// steps. Every step re-checks that its hand is still live before touching
// state, so a stale timer can never corrupt a later hand.
func (e *Engine) scheduleRunOutLocked() {
	handNo := e.hand.Number
	var step func()
	step = func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.hand == nil || e.hand.Number != handNo || e.hand.complete {
			return
		}
		e.hand.advanceStreet()
		if e.hand.Street == Showdown {
			e.finishLocked(true)
			return
		}
		e.bus.Publish(StreetChangeEvent{
			HandID:    e.hand.ID,
			Street:    e.hand.Street,
			Board:     append([]deck.Card{}, e.hand.Board...),
			timestamp: e.clock.Now(),
		})
		e.scheduleLocked(e.cfg.RunOutDelay, step)
	}
	e.hand.Active = -1
	e.scheduleLocked(e.cfg.RunOutDelay, step)
}

// scheduleLocked defers work. Zero-delay tasks join the queue directly;
// delayed ones go through the clock so tests can drive them with a mock.
func (e *Engine) scheduleLocked(d time.Duration, fn func()) {
	if d <= 0 {
		e.queue = append(e.queue, fn)
		return
	}
	e.clock.AfterFunc(d, func() { e.submit(fn) })
}

// submit is the entry point for timer callbacks.
func (e *Engine) submit(fn func()) {
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	e.mu.Unlock()
	e.pump()
}

// pump drains the deferred-task queue one task at a time. Only one pumper
// runs at once, which is what makes the engine cooperative.
func (e *Engine) pump() {
	for {
		e.mu.Lock()
		if e.pumping || len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}
		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.pumping = true
		e.mu.Unlock()

		fn()

		e.mu.Lock()
		e.pumping = false
		e.mu.Unlock()
	}
}

// requestActionLocked announces whose turn it is and, for AI seats,
// schedules the deferred decision.
func (e *Engine) requestActionLocked() {
	seat := e.hand.Active
	if seat < 0 {
		e.logger.Error("no seat can act", "hand", e.hand.Number, "street", e.hand.Street)
		return
	}
	p := e.players[seat]
	toCall := e.hand.Betting.CurrentBet - p.Bet

	e.bus.Publish(AwaitingActionEvent{
		HandID:    e.hand.ID,
		PlayerID:  p.ID,
		Seat:      seat,
		ToCall:    toCall,
		PotOdds:   potOdds(toCall, TotalWagered(e.players)),
		timestamp: e.clock.Now(),
	})

	if p.Profile == nil {
		return // waiting on an external Apply call
	}

	handNo := e.hand.Number
	e.scheduleLocked(e.cfg.ThinkDelay, func() { e.botDecide(handNo, seat) })
}

// botDecide runs as a deferred task: snapshot under the lock, simulate
// equity outside it, then re-check liveness before applying the sampled
// action. If the hand concluded by another path in the meantime the
// decision is dropped.
func (e *Engine) botDecide(handNo uint64, seat int) {
	e.mu.Lock()
	if e.hand == nil || e.hand.Number != handNo || e.hand.complete || e.hand.Active != seat {
		e.mu.Unlock()
		return
	}

	p := e.players[seat]
	profile := p.Profile
	hole := append([]deck.Card{}, p.HoleCards...)
	board := append([]deck.Card{}, e.hand.Board...)
	opponents := e.hand.inHandCount() - 1
	pot := TotalWagered(e.players)
	toCall := e.hand.Betting.CurrentBet - p.Bet
	sit := ai.Situation{
		PotOdds:       potOdds(toCall, pot),
		Pot:           pot,
		ToCall:        toCall,
		MinRaiseTo:    e.hand.Betting.CurrentBet + e.hand.Betting.MinRaise,
		MaxRaiseTo:    p.Bet + p.Chips,
		BigBlind:      e.bb,
		Position:      e.positionLocked(seat),
		Opponents:     opponents,
		FacingReraise: e.hand.Betting.Raises >= 2,
		PreflopRaiser: e.hand.preflopRaiser == seat,
		Postflop:      e.hand.Street > Preflop,
	}
	samples := e.cfg.EquitySamples
	seed := e.aiRng.Int64()
	e.mu.Unlock()

	// Pure simulation on the snapshot; engine state stays untouched. The
	// seed was drawn under the lock, so the shared rng is never used here.
	rng := randutil.New(seed)
	sit.Equity = equity.Estimate(hole, board, opponents, samples, rng)
	decision := ai.NewDecisionEngine(rng).Decide(profile, sit)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hand == nil || e.hand.Number != handNo || e.hand.complete || e.hand.Active != seat {
		return // hand moved on while we were thinking
	}

	action, raiseTo := e.translateLocked(seat, decision)
	if err := e.applyLocked(seat, action, raiseTo); err != nil {
		e.logger.Warn("bot decision rejected, falling back", "player", p.Name,
			"action", action, "err", err)
		if err := e.applyLocked(seat, Check, 0); err != nil {
			_ = e.applyLocked(seat, Fold, 0)
		}
	}
}

// translateLocked maps an abstract AI move to a legal table action.
func (e *Engine) translateLocked(seat int, d ai.Decision) (Action, int) {
	p := e.players[seat]
	toCall := e.hand.Betting.CurrentBet - p.Bet

	switch d.Move {
	case ai.MoveFold:
		if toCall <= 0 {
			return Check, 0 // never fold a free look
		}
		return Fold, 0
	case ai.MoveCheckCall:
		if toCall <= 0 {
			return Check, 0
		}
		return Call, 0
	case ai.MoveRaise:
		if e.hand.Betting.Acted[seat] {
			// An under-raise all-in left this seat with call or fold only.
			if toCall <= 0 {
				return Check, 0
			}
			return Call, 0
		}
		minTo := e.hand.Betting.CurrentBet + e.hand.Betting.MinRaise
		if p.Bet+p.Chips <= minTo {
			return AllIn, 0
		}
		return Raise, d.RaiseTo
	default:
		if e.hand.Betting.Acted[seat] && p.Bet+p.Chips > e.hand.Betting.CurrentBet {
			// Same rule for a shove: a covered stack that already acted can
			// only flat the extra chips.
			return Call, 0
		}
		return AllIn, 0
	}
}

// positionLocked maps a seat to [0,1]: first to act postflop is 0, the
// button is 1.
func (e *Engine) positionLocked(seat int) float64 {
	var order []int
	n := len(e.players)
	for i := 1; i <= n; i++ {
		s := (e.button + i) % n
		if e.players[s].InHand() {
			order = append(order, s)
		}
	}
	if len(order) <= 1 {
		return 1
	}
	for i, s := range order {
		if s == seat {
			return float64(i) / float64(len(order)-1)
		}
	}
	return 0.5
}

// finishLocked settles the hand and resets to idle.
func (e *Engine) finishLocked(showdown bool) {
	h := e.hand
	h.complete = true
	h.Active = -1

	pots := BuildPots(e.players)
	settlement := Settle(e.players, h.Board, pots, h.Button)

	// Elimination only ever happens here, after settlement.
	for _, p := range e.players {
		if p.Status != StatusEliminated && p.Chips == 0 {
			p.Status = StatusEliminated
			e.logger.Info("player eliminated", "player", p.Name, "hand", h.Number)
		}
	}

	potBB := float64(settlement.Pot) / float64(e.bb)
	won := make(map[string]bool, len(settlement.Winners))
	for _, id := range settlement.Winners {
		won[id] = true
	}
	for _, p := range e.players {
		if p.Profile == nil {
			continue
		}
		if won[p.ID] {
			p.Profile.RecordResult(true, potBB)
		} else {
			for _, id := range settlement.Losers {
				if id == p.ID {
					p.Profile.RecordResult(false, potBB)
					break
				}
			}
		}
	}

	result := &HandResult{
		HandID:     h.ID,
		HandNumber: h.Number,
		Winners:    settlement.Winners,
		Losers:     settlement.Losers,
		Settlement: settlement.Message,
		Pot:        settlement.Pot,
		Board:      append([]deck.Card{}, h.Board...),
		Actions:    h.Actions,
		Showdown:   showdown,
	}
	e.lastResult = result

	if err := e.checkChipsLocked(); err != nil {
		e.logger.Error("chip conservation violated", "hand", h.Number, "err", err)
	}

	e.bus.Publish(HandEndEvent{Result: result, timestamp: e.clock.Now()})
	e.logger.Info("hand complete", "hand", h.Number, "pot", settlement.Pot,
		"winners", len(settlement.Winners), "showdown", showdown)
}

func (e *Engine) checkChipsLocked() error {
	total := 0
	for _, p := range e.players {
		total += p.Chips
	}
	if total != e.totalChips {
		return fmt.Errorf("stacks sum to %d, expected %d", total, e.totalChips)
	}
	return nil
}

// PlayerInfo is a copy-safe snapshot of one seat for display layers.
type PlayerInfo struct {
	ID     string
	Seat   int
	Name   string
	Chips  int
	Status Status
	Bot    bool
}

// Roster returns a snapshot of every seat.
func (e *Engine) Roster() []PlayerInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	infos := make([]PlayerInfo, len(e.players))
	for i, p := range e.players {
		infos[i] = PlayerInfo{
			ID:     p.ID,
			Seat:   p.Seat,
			Name:   p.Name,
			Chips:  p.Chips,
			Status: p.Status,
			Bot:    p.Profile != nil,
		}
	}
	return infos
}

// HoleCards returns a copy of the player's current hole cards.
func (e *Engine) HoleCards(playerID string) []deck.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	seat := e.seatOf(playerID)
	if seat < 0 {
		return nil
	}
	return append([]deck.Card{}, e.players[seat].HoleCards...)
}

// Board returns a copy of the community cards.
func (e *Engine) Board() []deck.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hand == nil {
		return nil
	}
	return append([]deck.Card{}, e.hand.Board...)
}

// Pot returns the chips wagered so far in the current hand.
func (e *Engine) Pot() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.handInProgressLocked() {
		return 0
	}
	return TotalWagered(e.players)
}

// ActivePlayer returns the id of the seat the engine is waiting on.
func (e *Engine) ActivePlayer() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.handInProgressLocked() || e.hand.Active < 0 {
		return "", false
	}
	return e.players[e.hand.Active].ID, true
}

// ValidActions returns the legal actions for the player, or nil when it is
// not their turn.
func (e *Engine) ValidActions(playerID string) []Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	seat := e.seatOf(playerID)
	if seat < 0 || !e.handInProgressLocked() || e.hand.Active != seat {
		return nil
	}
	return e.hand.Betting.ValidActions(e.players[seat])
}

// RaiseBounds returns the legal raise-to range for the player.
func (e *Engine) RaiseBounds(playerID string) (minTo, maxTo int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	seat := e.seatOf(playerID)
	if seat < 0 || !e.handInProgressLocked() {
		return 0, 0
	}
	p := e.players[seat]
	return e.hand.Betting.CurrentBet + e.hand.Betting.MinRaise, p.Bet + p.Chips
}

// EstimateEquity simulates the player's current win probability. It is an
// assistive read: the snapshot is taken under the lock, the simulation runs
// outside it.
func (e *Engine) EstimateEquity(playerID string, samples int) (float64, bool) {
	e.mu.Lock()
	seat := e.seatOf(playerID)
	if seat < 0 || !e.handInProgressLocked() || !e.players[seat].InHand() {
		e.mu.Unlock()
		return 0, false
	}
	if samples <= 0 {
		samples = e.cfg.EquitySamples
	}
	hole := append([]deck.Card{}, e.players[seat].HoleCards...)
	board := append([]deck.Card{}, e.hand.Board...)
	opponents := e.hand.inHandCount() - 1
	seed := e.aiRng.Int64()
	e.mu.Unlock()

	if len(hole) < 2 {
		return 0, false
	}
	return equity.Estimate(hole, board, opponents, samples, randutil.New(seed)), true
}

// SetBlinds updates the blind structure. Rejected mid-hand; levels change
// between hands only.
func (e *Engine) SetBlinds(smallBlind, bigBlind, ante int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handInProgressLocked() {
		return fmt.Errorf("cannot change blinds during hand %d", e.hand.Number)
	}
	if bigBlind <= 0 || smallBlind <= 0 || smallBlind > bigBlind || ante < 0 {
		return fmt.Errorf("invalid blinds %d/%d ante %d", smallBlind, bigBlind, ante)
	}
	e.sb, e.bb, e.ante = smallBlind, bigBlind, ante
	e.logger.Info("blinds updated", "blinds", fmt.Sprintf("%d/%d", smallBlind, bigBlind), "ante", ante)
	return nil
}

// AddSeat seats a late entrant. Rejected mid-hand.
func (e *Engine) AddSeat(seat Seat) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handInProgressLocked() {
		return "", fmt.Errorf("cannot seat %q during hand %d", seat.Name, e.hand.Number)
	}
	if seat.Chips <= 0 {
		return "", fmt.Errorf("seat %q needs a positive stack", seat.Name)
	}
	p := &Player{
		ID:      uuid.NewString(),
		Seat:    len(e.players),
		Name:    seat.Name,
		Chips:   seat.Chips,
		Profile: seat.Profile,
	}
	e.players = append(e.players, p)
	e.totalChips += seat.Chips
	e.logger.Info("player seated", "player", seat.Name, "chips", seat.Chips)
	return p.ID, nil
}

// Rebuy tops up a stack between hands, reviving an eliminated seat.
func (e *Engine) Rebuy(playerID string, chips int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handInProgressLocked() {
		return fmt.Errorf("cannot rebuy during hand %d", e.hand.Number)
	}
	seat := e.seatOf(playerID)
	if seat < 0 {
		return fmt.Errorf("unknown player %q", playerID)
	}
	if chips <= 0 {
		return fmt.Errorf("rebuy must be positive, got %d", chips)
	}
	p := e.players[seat]
	p.Chips += chips
	e.totalChips += chips
	if p.Status == StatusEliminated {
		p.Status = StatusActive
	}
	e.logger.Info("rebuy", "player", p.Name, "chips", chips, "stack", p.Chips)
	return nil
}

func potOdds(toCall, pot int) float64 {
	if toCall <= 0 {
		return 0
	}
	return float64(toCall) / float64(pot+toCall)
}
