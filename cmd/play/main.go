// Command play runs the daily game in the terminal. Session state is
// persisted under the user's config directory, so quitting and coming
// back mid-day resumes where the player left off.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"stockle/internal/bucket"
	"stockle/internal/dataset"
	"stockle/internal/domain"
	"stockle/internal/game"
	"stockle/internal/lookup"
	"stockle/internal/schedule"
	"stockle/internal/share"
	filestore "stockle/internal/storage/file"
)

func main() {
	datasetPath := flag.String("dataset", os.Getenv("STOCKLE_DATASET"), "Path to company list JSON")
	stateDir := flag.String("state-dir", "", "Session state directory (default: <user config dir>/stockle)")
	salt := flag.String("salt", schedule.DefaultSalt, "Schedule salt (changing it reshuffles the daily calendar)")
	flag.Parse()

	logger := log.New(os.Stderr, "[play] ", log.LstdFlags)

	if *datasetPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --dataset is required (or set STOCKLE_DATASET)")
		os.Exit(1)
	}

	companies, err := dataset.LoadFile(*datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	dir := *stateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		dir = filepath.Join(base, "stockle")
	}
	sessions, err := filestore.NewSessionStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state directory: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	index := lookup.NewIndex(companies)
	defs := bucket.DefaultDefs()

	eng, err := game.NewEngine(ctx, game.Config{
		Index:    index,
		Defs:     defs,
		Sessions: sessions,
		Salt:     *salt,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, eng, index, defs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, eng *game.Engine, index *lookup.Index, defs map[domain.NumericAttr]domain.BucketDef) error {
	st, err := eng.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s — guess the company (%d tries)\n", share.GameName, st.Date, st.MaxTries)
	fmt.Println("Type a ticker or company name. Commands: /suggest <text>, /share, /quit")
	for _, fb := range st.Feedback {
		printFeedback(fb)
	}
	if st.State != domain.StateActive {
		return finish(ctx, eng, index, defs)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		st, err = eng.Status(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("[%d/%d] > ", st.Guesses, st.MaxTries)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return nil
		case line == "/share":
			return finish(ctx, eng, index, defs)
		case strings.HasPrefix(line, "/suggest"):
			query := strings.TrimSpace(strings.TrimPrefix(line, "/suggest"))
			for _, c := range eng.Suggestions(query, 10) {
				fmt.Printf("  %-6s %s\n", c.Ticker, c.Name)
			}
			continue
		}

		res, err := eng.SubmitGuess(ctx, line)
		if err != nil {
			printRejection(eng, line, err)
			continue
		}

		printFeedback(res.Feedback)
		if res.State != domain.StateActive {
			return finish(ctx, eng, index, defs)
		}
	}
}

// printRejection explains why the input was not accepted. Unknown
// inputs get suggestions to help the player along.
func printRejection(eng *game.Engine, input string, err error) {
	switch {
	case errors.Is(err, game.ErrEmptyGuess):
		fmt.Println("Type a ticker or company name.")
	case errors.Is(err, game.ErrDuplicateGuess):
		fmt.Println("Already guessed that one.")
	case errors.Is(err, game.ErrNoMatch):
		fmt.Printf("No company matches %q.", input)
		if hits := eng.Suggestions(input, 3); len(hits) > 0 {
			fmt.Print(" Did you mean:")
			for _, c := range hits {
				fmt.Printf(" %s", c.Ticker)
			}
		}
		fmt.Println()
	case errors.Is(err, game.ErrSessionFinished):
		fmt.Println("Today's game is finished. Come back tomorrow.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

// printFeedback renders one guess as an attribute row.
func printFeedback(fb *domain.GuessFeedback) {
	fmt.Printf("%-6s %s\n", fb.Ticker, fb.Name)
	for _, v := range fb.Verdicts {
		mark := "✗"
		if v.Match {
			mark = "✓"
		}
		arrow := ""
		switch v.Arrow {
		case domain.ArrowUp:
			arrow = " ↑"
		case domain.ArrowDown:
			arrow = " ↓"
		}
		label := v.Label
		if label != "" {
			label = " (" + label + ")"
		}
		fmt.Printf("  %s %-10s%s%s\n", mark, v.Attr, label, arrow)
	}
}

// finish prints the outcome and the copyable share text.
func finish(ctx context.Context, eng *game.Engine, index *lookup.Index, defs map[domain.NumericAttr]domain.BucketDef) error {
	sess, err := eng.Session(ctx)
	if err != nil {
		return err
	}
	answer, err := eng.Answer(ctx)
	if err != nil {
		return err
	}

	if sess.Finished() {
		if sess.Solved {
			fmt.Printf("Solved in %d/%d!\n", len(sess.Guesses), domain.MaxGuesses)
		} else {
			fmt.Printf("Out of guesses. The answer was %s (%s).\n", answer.Ticker, answer.Name)
		}
	}

	fmt.Println()
	fmt.Println(share.Render(sess, answer, index, defs))
	return nil
}
