package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/globeintel/internal/llm"
)

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured AI providers and check their credentials",
	Long: `Providers lists the AI providers in attempt order. Providers without
credentials are skipped and do not appear. With --check, each provider that
supports it is probed with a lightweight request.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

var providersCheck bool

func init() {
	rootCmd.AddCommand(providersCmd)
	providersCmd.Flags().BoolVar(&providersCheck, "check", false, "probe each provider")
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	providers, err := llm.NewProviders(cfg.AI, cfg.HTTP)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(providers) == 0 {
		fmt.Fprintln(out, "No AI providers configured; chat answers come from the built-in fallback.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPROVIDER\tSTATUS")
	for i, p := range providers {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, p.Name(), providerStatus(cmd.Context(), p))
	}
	return tw.Flush()
}

func providerStatus(ctx context.Context, p llm.Provider) string {
	if !providersCheck {
		return "configured"
	}
	checker, ok := p.(llm.AvailabilityChecker)
	if !ok {
		return "configured (no probe)"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if checker.IsAvailable(ctx) {
		return "available"
	}
	return "unavailable"
}
