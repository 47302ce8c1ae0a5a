package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/woneway/holdem-sim/internal/config"
	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/feed"
	"github.com/woneway/holdem-sim/internal/game"
	"github.com/woneway/holdem-sim/internal/stats"
	"github.com/woneway/holdem-sim/internal/tourney"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-sim.hcl" help:"Path to HCL configuration file"`
	Hands    int    `short:"n" help:"Number of hands to play (0 = until the table or schedule ends)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Listen   string `help:"Address for the websocket observer feed (e.g. :8080)"`
	Seed     *int64 `help:"Random seed (overrides config)"`
	Stats    bool   `short:"s" help:"Print per-player statistics at the end"`
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	potStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.Table.LogLevel = CLI.LogLevel
	}
	if CLI.Seed != nil {
		cfg.Table.Seed = *CLI.Seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Table.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := cfg.Table.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seats := make([]game.Seat, 0, len(cfg.Seats))
	var humanName string
	for _, sc := range cfg.Seats {
		profile, err := sc.Profile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seat %s: %v\n", sc.Name, err)
			ctx.Exit(1)
		}
		if profile == nil {
			humanName = sc.Name
		}
		seats = append(seats, game.Seat{Name: sc.Name, Chips: sc.BuyIn, Profile: profile})
	}

	eng, err := game.NewEngine(game.Config{
		SmallBlind:    cfg.Table.SmallBlind,
		BigBlind:      cfg.Table.BigBlind,
		Ante:          cfg.Table.Ante,
		Seed:          seed,
		ThinkDelay:    time.Duration(cfg.Table.ThinkDelayMS) * time.Millisecond,
		RunOutDelay:   time.Duration(cfg.Table.RunOutDelayMS) * time.Millisecond,
		EquitySamples: cfg.Table.EquitySamples,
		Logger:        logger,
	}, seats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating table: %v\n", err)
		ctx.Exit(1)
	}

	collector := stats.NewCollector()
	eng.EventBus().Subscribe(collector)

	if CLI.Listen != "" {
		feedServer := feed.NewServer(CLI.Listen, logger)
		eng.EventBus().Subscribe(feedServer)
		defer feedServer.Stop()
		go func() {
			if err := feedServer.Start(); err != nil {
				logger.Error("feed server failed", "err", err)
			}
		}()
	}

	var schedule *tourney.Schedule
	if len(cfg.Levels) > 0 {
		levels := make([]tourney.Level, len(cfg.Levels))
		for i, lc := range cfg.Levels {
			levels[i] = tourney.Level{
				Name:       lc.Name,
				SmallBlind: lc.SmallBlind,
				BigBlind:   lc.BigBlind,
				Ante:       lc.Ante,
				Hands:      lc.Hands,
			}
		}
		schedule, err = tourney.NewSchedule(levels, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid blind schedule: %v\n", err)
			ctx.Exit(1)
		}
		if err := schedule.Start(eng); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying blind schedule: %v\n", err)
			ctx.Exit(1)
		}
	}

	var humanID string
	for _, info := range eng.Roster() {
		if info.Name == humanName && !info.Bot {
			humanID = info.ID
		}
	}

	session := &session{
		eng:     eng,
		humanID: humanID,
		input:   bufio.NewScanner(os.Stdin),
	}
	eng.EventBus().Subscribe(session)

	played := 0
	for {
		if CLI.Hands > 0 && played >= CLI.Hands {
			break
		}
		if schedule != nil && schedule.Finished() {
			fmt.Println(titleStyle.Render("Blind schedule complete."))
			break
		}

		result := session.playHand()
		played++

		if strings.Contains(result.Settlement, "not enough funded") {
			fmt.Println(titleStyle.Render("Table is down to one stack."))
			break
		}
		if schedule != nil {
			if _, err := schedule.HandPlayed(eng); err != nil {
				logger.Warn("blind level change deferred", "err", err)
			}
		}
	}

	printStandings(eng)
	if CLI.Stats {
		printStats(collector)
	}
}

// session drives the table from the terminal: it relays events to the
// screen and feeds human decisions back into the engine.
type session struct {
	eng     *game.Engine
	humanID string
	input   *bufio.Scanner
}

func (s *session) playHand() *game.HandResult {
	s.eng.StartHand()
	for s.eng.HandInProgress() {
		active, ok := s.eng.ActivePlayer()
		if ok && active == s.humanID {
			s.promptHuman()
			continue
		}
		time.Sleep(5 * time.Millisecond)
	}
	return s.eng.Result()
}

func (s *session) promptHuman() {
	hole := s.eng.HoleCards(s.humanID)
	board := s.eng.Board()
	pot := s.eng.Pot()
	actions := s.eng.ValidActions(s.humanID)
	if len(actions) == 0 {
		return // the turn moved on while we were rendering
	}
	minTo, maxTo := s.eng.RaiseBounds(s.humanID)

	fmt.Printf("\n%s %s  %s %s  %s\n",
		titleStyle.Render("hole:"), formatCards(hole),
		titleStyle.Render("board:"), formatCards(board),
		potStyle.Render(fmt.Sprintf("pot %d", pot)))
	if equity, ok := s.eng.EstimateEquity(s.humanID, 0); ok {
		fmt.Printf("equity ~%.0f%%\n", equity*100)
	}

	var options []string
	for _, a := range actions {
		switch a {
		case game.Fold:
			options = append(options, "(f)old")
		case game.Check:
			options = append(options, "(k)check")
		case game.Call:
			options = append(options, "(c)all")
		case game.Raise:
			options = append(options, fmt.Sprintf("(r)aise <%d-%d>", minTo, maxTo))
		case game.AllIn:
			options = append(options, "(a)ll-in")
		}
	}
	fmt.Printf("%s ", strings.Join(options, " "))

	if !s.input.Scan() {
		// Stdin closed: fold the human out rather than hanging the table.
		s.eng.Apply(s.humanID, game.Fold, 0)
		return
	}
	fields := strings.Fields(strings.ToLower(s.input.Text()))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "f", "fold":
		s.eng.Apply(s.humanID, game.Fold, 0)
	case "k", "check":
		s.eng.Apply(s.humanID, game.Check, 0)
	case "c", "call":
		s.eng.Apply(s.humanID, game.Call, 0)
	case "a", "allin", "all-in":
		s.eng.Apply(s.humanID, game.AllIn, 0)
	case "r", "raise":
		if len(fields) < 2 {
			fmt.Println("raise needs an amount, e.g. 'r 120'")
			return
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Printf("bad amount %q\n", fields[1])
			return
		}
		s.eng.Apply(s.humanID, game.Raise, amount)
	default:
		fmt.Printf("unknown action %q\n", fields[0])
	}
}

// OnEvent implements game.EventSubscriber for terminal narration.
func (s *session) OnEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.HandStartEvent:
		fmt.Printf("\n%s\n", titleStyle.Render(fmt.Sprintf("--- hand %d ---", ev.HandNumber)))
	case game.PlayerActionEvent:
		rec := ev.Record
		if rec.Amount > 0 {
			fmt.Printf("%s %ss %d (pot %d)\n", rec.Name, rec.Action, rec.Amount, ev.PotAfter)
		} else {
			fmt.Printf("%s %ss\n", rec.Name, rec.Action)
		}
	case game.StreetChangeEvent:
		fmt.Printf("%s %s\n", titleStyle.Render(ev.Street.String()+":"), formatCards(ev.Board))
	case game.HandEndEvent:
		if ev.Result.Settlement != "" {
			fmt.Printf("%s\n", winStyle.Render(ev.Result.Settlement))
		}
	}
}

func printStandings(eng *game.Engine) {
	fmt.Printf("\n%s\n", titleStyle.Render("standings"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, info := range eng.Roster() {
		fmt.Fprintf(w, "%s\t%d\t%s\n", info.Name, info.Chips, info.Status)
	}
	w.Flush()
}

func printStats(collector *stats.Collector) {
	fmt.Printf("\n%s\n", titleStyle.Render("statistics"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		titleStyle.Render("player"),
		titleStyle.Render("hands"),
		titleStyle.Render("won"),
		titleStyle.Render("vpip"),
		titleStyle.Render("pfr"),
		titleStyle.Render("3bet"),
		titleStyle.Render("cbet"))
	for _, s := range collector.Report() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f%%\t%.0f%%\t%.0f%%\t%.0f%%\n",
			s.Name, s.HandsDealt, s.HandsWon,
			s.VPIP()*100, s.PFR()*100, s.ThreeBetRate()*100, s.CBetRate()*100)
	}
	w.Flush()
}

func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "--"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.IsRed() {
			parts[i] = redCardStyle.Render(c.String())
		} else {
			parts[i] = blackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}
