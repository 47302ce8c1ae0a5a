package game

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woneway/holdem-sim/internal/ai"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []GameEvent
	for _, ev := range r.events {
		if ev.EventType() == et {
			matched = append(matched, ev)
		}
	}
	return matched
}

func (r *eventRecorder) lastAwaiting() (AwaitingActionEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if ev, ok := r.events[i].(AwaitingActionEvent); ok {
			return ev, true
		}
	}
	return AwaitingActionEvent{}, false
}

func mustPreset(t *testing.T, name string) *ai.Profile {
	t.Helper()
	p, ok := ai.Preset(name)
	require.True(t, ok)
	return p
}

func botTable(t *testing.T, seed int64, stacks ...int) *Engine {
	t.Helper()
	presets := []string{"tag", "lag", "station", "rock", "maniac"}
	seats := make([]Seat, len(stacks))
	for i, chips := range stacks {
		seats[i] = Seat{
			Name:    presets[i%len(presets)],
			Chips:   chips,
			Profile: mustPreset(t, presets[i%len(presets)]),
		}
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          seed,
		EquitySamples: 60,
	}, seats)
	require.NoError(t, err)
	return eng
}

func sumStacks(eng *Engine) int {
	total := 0
	for _, info := range eng.Roster() {
		total += info.Chips
	}
	return total
}

func TestBotHandRunsToCompletion(t *testing.T) {
	t.Parallel()

	eng := botTable(t, 1, 2000, 2000, 2000)
	recorder := &eventRecorder{}
	eng.EventBus().Subscribe(recorder)

	result := eng.PlayHand()
	require.NotNil(t, result, "zero-delay bot hand should finish synchronously")

	assert.Equal(t, uint64(1), result.HandNumber)
	assert.NotEmpty(t, result.Winners)
	assert.NotEmpty(t, result.Actions)
	assert.Greater(t, result.Pot, 0)
	assert.Equal(t, 6000, sumStacks(eng))

	assert.Len(t, recorder.ofType(EventTypeHandStart), 1)
	assert.Len(t, recorder.ofType(EventTypeHandEnd), 1)
	assert.NotEmpty(t, recorder.ofType(EventTypePlayerAction))
}

func TestManyHandsConserveChips(t *testing.T) {
	t.Parallel()

	eng := botTable(t, 7, 1000, 1000, 1000, 1000)
	for i := 0; i < 300; i++ {
		result := eng.PlayHand()
		require.NotNil(t, result)
		require.Equal(t, 4000, sumStacks(eng), "hand %d leaked chips", i+1)
		if strings.Contains(result.Settlement, "not enough funded") {
			return // table is down to one stack, nothing left to deal
		}
	}
}

func TestTableEndsWhenOnePlayerHoldsEverything(t *testing.T) {
	t.Parallel()

	// Aggressive short-stack table so eliminations happen quickly.
	seats := []Seat{
		{Name: "m1", Chips: 200, Profile: mustPreset(t, "maniac")},
		{Name: "m2", Chips: 200, Profile: mustPreset(t, "maniac")},
		{Name: "m3", Chips: 200, Profile: mustPreset(t, "lag")},
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          3,
		EquitySamples: 40,
	}, seats)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		result := eng.PlayHand()
		require.NotNil(t, result)
		if strings.Contains(result.Settlement, "not enough funded") {
			funded := 0
			for _, info := range eng.Roster() {
				if info.Status != StatusEliminated {
					assert.Equal(t, 600, info.Chips)
					funded++
				}
			}
			assert.Equal(t, 1, funded)
			return
		}
	}
	t.Fatal("table never played down to a single stack")
}

func TestHumanSeatWaitsForInput(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{Name: "hero", Chips: 1000}, // no profile: external control
		{Name: "villain", Chips: 1000, Profile: mustPreset(t, "station")},
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          11,
		EquitySamples: 40,
	}, seats)
	require.NoError(t, err)

	recorder := &eventRecorder{}
	eng.EventBus().Subscribe(recorder)

	var heroID, villainID string
	for _, info := range eng.Roster() {
		if info.Bot {
			villainID = info.ID
		} else {
			heroID = info.ID
		}
	}

	// Heads-up the button posts the small blind and acts first; seat 0 has
	// the button on the first hand.
	eng.StartHand()
	require.True(t, eng.HandInProgress())

	awaiting, ok := recorder.lastAwaiting()
	require.True(t, ok)
	assert.Equal(t, heroID, awaiting.PlayerID)
	assert.Equal(t, 10, awaiting.ToCall)
	assert.Len(t, eng.HoleCards(heroID), 2)

	active, ok := eng.ActivePlayer()
	require.True(t, ok)
	assert.Equal(t, heroID, active)
	assert.ElementsMatch(t, []Action{Fold, Call, Raise}, eng.ValidActions(heroID))
	assert.Nil(t, eng.ValidActions(villainID))

	minTo, maxTo := eng.RaiseBounds(heroID)
	assert.Equal(t, 40, minTo)
	assert.Equal(t, 1000, maxTo)

	// Out-of-turn and illegal inputs are ignored, not fatal.
	eng.Apply(villainID, Fold, 0)
	eng.Apply(heroID, Check, 0)
	require.True(t, eng.HandInProgress())
	active, _ = eng.ActivePlayer()
	assert.Equal(t, heroID, active)

	eng.Apply(heroID, Fold, 0)
	require.False(t, eng.HandInProgress())

	result := eng.Result()
	require.NotNil(t, result)
	assert.Equal(t, []string{villainID}, result.Winners)
	assert.False(t, result.Showdown)
	assert.Equal(t, 2000, sumStacks(eng))

	// Hero surrendered the small blind.
	for _, info := range eng.Roster() {
		if info.ID == heroID {
			assert.Equal(t, 990, info.Chips)
		} else {
			assert.Equal(t, 1010, info.Chips)
		}
	}
}

func TestBlindAllInsRunOutToShowdown(t *testing.T) {
	t.Parallel()

	// Both stacks go in on the blinds; no one can act, so the board runs out
	// automatically and the hand settles at showdown.
	seats := []Seat{
		{Name: "short", Chips: 10, Profile: mustPreset(t, "rock")},
		{Name: "cover", Chips: 20, Profile: mustPreset(t, "rock")},
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          5,
		EquitySamples: 40,
	}, seats)
	require.NoError(t, err)

	recorder := &eventRecorder{}
	eng.EventBus().Subscribe(recorder)

	result := eng.PlayHand()
	require.NotNil(t, result)

	assert.True(t, result.Showdown)
	assert.Len(t, result.Board, 5)
	assert.Equal(t, 30, result.Pot)
	assert.Equal(t, 30, sumStacks(eng))
	// Flop, turn and river were each announced.
	assert.Len(t, recorder.ofType(EventTypeStreetChange), 3)
}

func TestMockClockDrivesBotDecisions(t *testing.T) {
	t.Parallel()

	mock := quartz.NewMock(t)
	seats := []Seat{
		{Name: "a", Chips: 1000, Profile: mustPreset(t, "tag")},
		{Name: "b", Chips: 1000, Profile: mustPreset(t, "station")},
		{Name: "c", Chips: 1000, Profile: mustPreset(t, "rock")},
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          9,
		ThinkDelay:    500 * time.Millisecond,
		RunOutDelay:   250 * time.Millisecond,
		EquitySamples: 40,
		Clock:         mock,
	}, seats)
	require.NoError(t, err)

	eng.StartHand()
	require.True(t, eng.HandInProgress(), "decisions wait on the clock")

	ctx := context.Background()
	for i := 0; i < 200 && eng.HandInProgress(); i++ {
		mock.Advance(500 * time.Millisecond).MustWait(ctx)
	}
	require.False(t, eng.HandInProgress())

	result := eng.Result()
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Winners)
	assert.Equal(t, 3000, sumStacks(eng))
}

func TestAssistQueriesSafeWhileBotsThink(t *testing.T) {
	t.Parallel()

	// Equity polling from a display goroutine must coexist with deferred bot
	// decisions; the race detector flags any shared rng draw outside the lock.
	mock := quartz.NewMock(t)
	seats := []Seat{
		{Name: "a", Chips: 1000, Profile: mustPreset(t, "tag")},
		{Name: "b", Chips: 1000, Profile: mustPreset(t, "station")},
	}
	eng, err := NewEngine(Config{
		SmallBlind:    10,
		BigBlind:      20,
		Seed:          31,
		ThinkDelay:    100 * time.Millisecond,
		RunOutDelay:   100 * time.Millisecond,
		EquitySamples: 40,
		Clock:         mock,
	}, seats)
	require.NoError(t, err)

	ids := []string{eng.players[0].ID, eng.players[1].ID}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
				eng.EstimateEquity(ids[i%2], 30)
			}
		}
	}()

	eng.StartHand()
	ctx := context.Background()
	for i := 0; i < 200 && eng.HandInProgress(); i++ {
		mock.Advance(100 * time.Millisecond).MustWait(ctx)
	}
	close(done)
	wg.Wait()

	require.False(t, eng.HandInProgress())
	assert.Equal(t, 2000, sumStacks(eng))
}

func TestStartHandSkipsWhenTableIsShort(t *testing.T) {
	t.Parallel()

	eng := botTable(t, 13, 500, 500)
	eng.players[1].Chips = 0
	eng.totalChips = 500

	eng.StartHand()
	require.False(t, eng.HandInProgress())

	result := eng.Result()
	require.NotNil(t, result)
	assert.Contains(t, result.Settlement, "not enough funded")
	assert.Empty(t, result.Winners)
	assert.Equal(t, uint64(1), eng.HandCount())
}

func TestTableChangesRejectedMidHand(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{Name: "hero", Chips: 1000},
		{Name: "villain", Chips: 1000, Profile: mustPreset(t, "station")},
	}
	eng, err := NewEngine(Config{SmallBlind: 10, BigBlind: 20, Seed: 17, EquitySamples: 40}, seats)
	require.NoError(t, err)

	require.NoError(t, eng.SetBlinds(25, 50, 5))

	eng.StartHand()
	require.True(t, eng.HandInProgress())

	assert.Error(t, eng.SetBlinds(50, 100, 0))
	_, err = eng.AddSeat(Seat{Name: "late", Chips: 500})
	assert.Error(t, err)
	assert.Error(t, eng.Rebuy(eng.players[0].ID, 100))
}

func TestRebuyRevivesEliminatedSeat(t *testing.T) {
	t.Parallel()

	eng := botTable(t, 19, 500, 500)
	eng.players[0].Chips = 0
	eng.players[0].Status = StatusEliminated
	eng.totalChips = 500

	id := eng.players[0].ID
	require.NoError(t, eng.Rebuy(id, 800))

	info := eng.Roster()[0]
	assert.Equal(t, 800, info.Chips)
	assert.Equal(t, StatusActive, info.Status)
	assert.Equal(t, 1300, sumStacks(eng))
}

func TestAddSeatBetweenHands(t *testing.T) {
	t.Parallel()

	eng := botTable(t, 23, 500, 500)
	id, err := eng.AddSeat(Seat{Name: "late", Chips: 700, Profile: mustPreset(t, "lag")})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Len(t, eng.Roster(), 3)
	assert.Equal(t, 1700, sumStacks(eng))

	result := eng.PlayHand()
	require.NotNil(t, result)
	assert.Equal(t, 1700, sumStacks(eng))
}

func TestEstimateEquityForLiveSeat(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{Name: "hero", Chips: 1000},
		{Name: "villain", Chips: 1000, Profile: mustPreset(t, "station")},
	}
	eng, err := NewEngine(Config{SmallBlind: 10, BigBlind: 20, Seed: 29, EquitySamples: 40}, seats)
	require.NoError(t, err)

	heroID := eng.players[0].ID
	_, ok := eng.EstimateEquity(heroID, 100)
	assert.False(t, ok, "no equity outside a hand")

	eng.StartHand()
	require.True(t, eng.HandInProgress())

	eq, ok := eng.EstimateEquity(heroID, 200)
	require.True(t, ok)
	assert.Greater(t, eq, 0.0)
	assert.LessOrEqual(t, eq, 1.0)
}
