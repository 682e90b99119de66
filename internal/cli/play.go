package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sanandmv7/minitq/internal/config"
	"github.com/sanandmv7/minitq/internal/domain"
	"github.com/sanandmv7/minitq/internal/game"
)

// NewPlayCmd runs the interactive single-player quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runPlay(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	catalog, store, cleanup, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	service := game.NewService(store, catalog, cfg.Rewards.TokensPerAnswer, cfg.Rewards.TokenAddress)

	quizCatalog, err := catalog.Catalog(ctx)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Welcome to MinitQ - Harry Potter Edition!")

	wallet := promptWallet(scanner, out)
	if wallet == "" {
		return nil
	}

	score := 0
	for i, question := range quizCatalog.Questions() {
		fmt.Fprintf(out, "\n%s\n", question.Prompt)
		for j, option := range question.Options {
			fmt.Fprintf(out, "%d. %s\n", j+1, option)
		}

		choice, ok := promptChoice(scanner, out, len(question.Options))
		if !ok {
			return nil
		}
		correct, err := quizCatalog.CheckAnswer(i, choice)
		if err != nil {
			return err
		}
		if correct {
			score++
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintln(out, "Wrong!")
		}
	}

	fmt.Fprintf(out, "\nYou got %d out of %d questions correct!\n", score, quizCatalog.Len())

	result, err := service.Finish(ctx, wallet, score)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "You earned %d MINITQ tokens!\n", result.EarnedTokens)
	printLeaderboard(out, result.Leaderboard)
	return nil
}

func promptWallet(scanner *bufio.Scanner, out io.Writer) string {
	for {
		fmt.Fprint(out, "\nPlease enter your wallet address: ")
		if !scanner.Scan() {
			return ""
		}
		wallet := strings.TrimSpace(scanner.Text())
		if wallet != "" {
			return wallet
		}
	}
}

func promptChoice(scanner *bufio.Scanner, out io.Writer, options int) (int, bool) {
	for {
		fmt.Fprintf(out, "\nEnter your choice (1-%d): ", options)
		if !scanner.Scan() {
			return 0, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err == nil && choice >= 1 && choice <= options {
			return choice, true
		}
		fmt.Fprintf(out, "Please enter a valid number between 1 and %d\n", options)
	}
}

func printLeaderboard(out io.Writer, entries []domain.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "\nNo scores yet!")
		return
	}
	fmt.Fprintln(out, "\nLEADERBOARD")
	fmt.Fprintln(out, strings.Repeat("-", 50))
	for i, entry := range entries {
		fmt.Fprintf(out, "%d. Wallet: %s - Score: %d\n", i+1, shorten(entry.Wallet), entry.Score)
	}
	fmt.Fprintln(out, strings.Repeat("-", 50))
}

func shorten(wallet string) string {
	if len(wallet) <= 8 {
		return wallet
	}
	return wallet[:8] + "..."
}
