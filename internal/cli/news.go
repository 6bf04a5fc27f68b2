package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/globeintel/internal/app"
	"github.com/ppiankov/globeintel/internal/geo"
	"github.com/ppiankov/globeintel/internal/model"
)

var (
	newsCountry  string
	newsCategory string
	newsTable    bool
)

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch ranked headlines",
	Long: `News runs the provider chain once and prints the ranked articles as JSON.

Example:
  globeintel news
  globeintel news --country China --category Politics
  globeintel news --table`,
	Args: cobra.NoArgs,
	RunE: runNews,
}

// countriesCmd represents the countries command
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries shown on the globe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tISO2\tLAT\tLNG")
		for _, c := range geo.Countries() {
			fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\n", c.Name, c.ISO2, c.Lat, c.Lng)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(countriesCmd)

	newsCmd.Flags().StringVar(&newsCountry, "country", "", "filter by country (default: global)")
	newsCmd.Flags().StringVar(&newsCategory, "category", "", "filter by category")
	newsCmd.Flags().BoolVar(&newsTable, "table", false, "print a compact table instead of JSON")
}

func runNews(cmd *cobra.Command, args []string) error {
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

	articles, err := a.News.Fetch(context.Background(), model.NewsQuery{
		Country:  newsCountry,
		Category: newsCategory,
	})
	if err != nil {
		return fmt.Errorf("fetch news: %w", err)
	}

	out := cmd.OutOrStdout()
	if !newsTable {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FLAGS\tSOURCE\tCATEGORY\tTITLE")
	for _, art := range articles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", flags(art), art.Source, art.Category, art.Title)
	}
	return tw.Flush()
}

func flags(a model.Article) string {
	f := []byte("--")
	if a.IsBreaking {
		f[0] = 'B'
	}
	if a.IsTrending {
		f[1] = 'T'
	}
	return string(f)
}
