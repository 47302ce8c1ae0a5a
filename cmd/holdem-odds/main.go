package main

import (
	"fmt"
	rand "math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/evaluator"
	"github.com/woneway/holdem-sim/internal/randutil"
)

type CLI struct {
	Hands         []string `arg:"" help:"Player hands in format 'AcKd' (space separated)" required:"true"`
	Board         string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Possibilities bool     `short:"p" help:"Show detailed hand category probabilities"`
	Iterations    int      `short:"i" help:"Number of Monte Carlo iterations" default:"100000"`
	Seed          *int64   `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

type playerResult struct {
	hand       []deck.Card
	wins       int
	ties       int
	total      int
	categories map[evaluator.Category]int
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	hands, err := parseHands(cli.Hands)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hands: %v\n", err)
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintln(os.Stderr, "Board cannot have more than 5 cards")
			ctx.Exit(1)
		}
	}

	if err := validateNoDuplicates(hands, board); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		ctx.Exit(1)
	}

	start := time.Now()
	results := simulate(hands, board, cli.Iterations, rng)
	duration := time.Since(start)

	display(results, board, cli.Possibilities)
	fmt.Printf("\n%d iterations in %v\n", cli.Iterations, duration.Truncate(time.Millisecond))
}

func parseHands(handStrings []string) ([][]deck.Card, error) {
	var hands [][]deck.Card
	for i, s := range handStrings {
		hand, err := deck.ParseCards(s)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func validateNoDuplicates(hands [][]deck.Card, board []deck.Card) error {
	seen := make(map[deck.Card]bool)
	for _, card := range board {
		if seen[card] {
			return fmt.Errorf("duplicate card found: %s", card)
		}
		seen[card] = true
	}
	for i, hand := range hands {
		for _, card := range hand {
			if seen[card] {
				return fmt.Errorf("duplicate card found in hand %d: %s", i+1, card)
			}
			seen[card] = true
		}
	}
	return nil
}

func simulate(hands [][]deck.Card, board []deck.Card, iterations int, rng *rand.Rand) []playerResult {
	results := make([]playerResult, len(hands))
	for i := range results {
		results[i].hand = hands[i]
		results[i].total = iterations
		results[i].categories = make(map[evaluator.Category]int)
	}

	used := make(map[deck.Card]bool)
	for _, card := range board {
		used[card] = true
	}
	for _, hand := range hands {
		for _, card := range hand {
			used[card] = true
		}
	}
	var available []deck.Card
	for _, card := range deck.All() {
		if !used[card] {
			available = append(available, card)
		}
	}

	needed := 5 - len(board)
	scratch := make([]deck.Card, len(available))
	scores := make([]evaluator.Score, len(hands))

	for iter := 0; iter < iterations; iter++ {
		copy(scratch, available)
		fullBoard := append([]deck.Card{}, board...)
		// Partial Fisher-Yates for the board completion.
		for i := 0; i < needed; i++ {
			j := i + rng.IntN(len(scratch)-i)
			scratch[i], scratch[j] = scratch[j], scratch[i]
			fullBoard = append(fullBoard, scratch[i])
		}

		for i, hand := range hands {
			cards := append(append([]deck.Card{}, hand...), fullBoard...)
			scores[i] = evaluator.Evaluate(cards)
			results[i].categories[scores[i].Category]++
		}

		best := scores[0]
		for _, score := range scores[1:] {
			if score.Compare(best) > 0 {
				best = score
			}
		}
		holders := 0
		for _, score := range scores {
			if score.Compare(best) == 0 {
				holders++
			}
		}
		for i, score := range scores {
			if score.Compare(best) != 0 {
				continue
			}
			if holders == 1 {
				results[i].wins++
			} else {
				results[i].ties++
			}
		}
	}

	return results
}

func display(results []playerResult, board []deck.Card, showPossibilities bool) {
	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"))
	for _, result := range results {
		winPct := float64(result.wins) / float64(result.total) * 100
		tiePct := float64(result.ties) / float64(result.total) * 100
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			handStyle.Render(formatCards(result.hand)),
			winStyle.Render(fmt.Sprintf("%.1f%%", winPct)),
			tieStyle.Render(fmt.Sprintf("%.1f%%", tiePct)))
	}
	w.Flush()

	if showPossibilities {
		fmt.Println()
		displayCategories(results)
	}
}

func displayCategories(results []playerResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s", categoryStyle.Render("category"))
	for _, result := range results {
		fmt.Fprintf(w, "\t%s", handStyle.Render(formatCards(result.hand)))
	}
	fmt.Fprintf(w, "\n")

	for cat := evaluator.StraightFlush; cat >= evaluator.HighCard; cat-- {
		fmt.Fprintf(w, "%s", categoryStyle.Render(cat.String()))
		for _, result := range results {
			count := result.categories[cat]
			if count > 0 {
				pct := float64(count) / float64(result.total) * 100
				fmt.Fprintf(w, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", pct)))
			} else {
				fmt.Fprintf(w, "\t%s", percentStyle.Render("."))
			}
		}
		fmt.Fprintf(w, "\n")
	}
	w.Flush()
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
