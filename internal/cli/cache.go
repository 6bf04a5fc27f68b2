package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ppiankov/globeintel/internal/cache"
	"github.com/ppiankov/globeintel/internal/model"
)

// cacheCmd groups cache maintenance commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the news cache",
}

// cacheClearCmd represents the cache clear command
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached news result",
	Long: `Clear empties the configured news cache. The memory backend lives inside
the server process, so this only has an effect on the layered and redis backends.

Example:
  globeintel cache clear
  globeintel cache clear --config ./globeintel.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := clearCache(cmd.Context(), cfg.News.Cache); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s cache\n", backendName(cfg.News.Cache))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func clearCache(ctx context.Context, cfg model.CacheConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := cache.New(cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if c == nil {
		return nil
	}
	if closer, ok := c.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	if err := c.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func backendName(cfg model.CacheConfig) string {
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}
