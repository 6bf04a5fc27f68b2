package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/globeintel/internal/app"
	"github.com/ppiankov/globeintel/internal/model"
)

var (
	askCountry string
	askContext string
	askJSON    bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask the analyst a one-shot question",
	Long: `Ask sends one message through the same provider chain the server uses.

Example:
  globeintel ask "What is the situation in the Taiwan Strait?"
  globeintel ask "Latest developments" --country Ukraine
  globeintel ask "Sanctions outlook" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askCountry, "country", "", "focus the analysis on a country")
	askCmd.Flags().StringVar(&askContext, "context", "", "explicit analysis context (overrides --country)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() { _ = a.Close() }()

	result, err := a.Chat.Respond(context.Background(), model.ChatRequest{
		Message: strings.Join(args, " "),
		Country: askCountry,
		Context: askContext,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if askJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, result.Response)
	if verbose {
		fmt.Fprintf(os.Stderr, "\nprovider: %s  fallback: %v  at: %s\n", result.Provider, result.UsingFallback, result.Timestamp)
	}
	return nil
}
