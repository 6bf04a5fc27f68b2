package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/globeintel/internal/app"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API server",
	Long: `Serve the dashboard HTTP API:
  POST /api/ai/chat          analyst chat
  POST /api/ai/chat/voice    chat from a transcript or recorded audio
  GET  /api/news             ranked headlines (?country=&category=)
  GET  /api/countries        globe markers
  GET  /api/countries/nearest?lat=&lng=
  GET  /health

Example:
  globeintel serve
  globeintel serve --addr :9090 --log-mode prod`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Float64("rate-limit", 5, "requests per second per client IP (0 disables)")
	serveCmd.Flags().String("cache", "memory", "news cache backend: memory, layered, redis, none")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.rate_limit_rps", serveCmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("news.cache.backend", serveCmd.Flags().Lookup("cache"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close cache", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := a.Server(Version)
	if err != nil {
		return fmt.Errorf("configure server: %w", err)
	}

	log.Info("starting globeintel", "version", Version, "addr", cfg.Server.Addr)
	return srv.Run(ctx)
}
