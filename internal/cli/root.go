package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
)

// Version is overridden at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// credentialEnv maps config keys to the unprefixed variables operators already export
var credentialEnv = map[string]string{
	"ai.cohere.api_key":     "COHERE_API_KEY",
	"ai.openai.api_key":     "OPENAI_API_KEY",
	"ai.anthropic.api_key":  "ANTHROPIC_API_KEY",
	"ai.ollama.base_url":    "OLLAMA_BASE_URL",
	"news.newsapi.api_key":  "NEWS_API_KEY",
	"news.guardian.api_key": "GUARDIAN_API_KEY",
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "globeintel",
	Short: "globeintel - backend for the global intelligence dashboard",
	Long: `globeintel serves the API behind the interactive globe dashboard.

It answers analyst questions through a chain of AI providers (Cohere, OpenAI,
Anthropic, Ollama) and falls back to canned analysis when none is reachable.
It aggregates headlines from NewsAPI, The Guardian and RSS feeds and falls
back to a built-in article set when every source fails.

No provider is required: an unconfigured server still answers every request.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "globeintel %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.globeintel/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-mode", "dev", "log format: dev or prod")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.mode", rootCmd.PersistentFlags().Lookup("log-mode"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if err := setupViper(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading defaults: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".globeintel"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	err := viper.ReadInConfig()
	switch {
	case err == nil:
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	case cfgFile != "":
		// An explicit --config that cannot be read is worth reporting
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// setupViper registers every default so that env variables can override any key,
// then binds GLOBEINTEL_* and the unprefixed credential variables.
func setupViper(v *viper.Viper) error {
	defaults, err := defaultSettings()
	if err != nil {
		return err
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// GLOBEINTEL_NEWS_CACHE_TTL overrides news.cache.ttl
	v.SetEnvPrefix("GLOBEINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range credentialEnv {
		prefixed := "GLOBEINTEL_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}
	return nil
}

// defaultSettings flattens DefaultConfig into dotted viper keys
func defaultSettings() (map[string]any, error) {
	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}

	out := make(map[string]any)
	flatten("", tree, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// decodeConfig builds the effective configuration from v
func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// loadConfig returns the effective configuration of the current invocation
func loadConfig() (*model.Config, error) {
	return decodeConfig(viper.GetViper())
}

// newLogger builds the process logger. One-shot commands stay quiet unless --verbose.
func newLogger(cfg *model.Config, quiet bool) (*logger.Logger, error) {
	if quiet && !verbose {
		return logger.NewNop(), nil
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
