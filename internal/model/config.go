package model

import "time"

// Config holds the complete globeintel configuration.
// Values come from defaults, the YAML config file, environment and CLI flags (in that order).
type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	AI     AIConfig     `yaml:"ai" mapstructure:"ai"`
	News   NewsConfig   `yaml:"news" mapstructure:"news"`
	HTTP   HTTPConfig   `yaml:"http" mapstructure:"http"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"` // Per client IP, 0 disables
	RateLimitBurst  int           `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`

	// Peers allowed to set X-Forwarded-For and X-Real-IP, as CIDRs or addresses
	TrustedProxies []string `yaml:"trusted_proxies" mapstructure:"trusted_proxies"`
}

// ProviderConfig holds the credentials and endpoint of one external provider.
// A provider with an empty APIKey is considered unconfigured (Ollama uses BaseURL instead).
type ProviderConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model,omitempty" mapstructure:"model"`
}

// Configured reports whether the provider has a credential
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// AIConfig controls the AI response service
type AIConfig struct {
	Order       []string       `yaml:"order" mapstructure:"order"`     // Provider attempt order
	Timeout     time.Duration  `yaml:"timeout" mapstructure:"timeout"` // Per provider call
	MaxTokens   int            `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64        `yaml:"temperature" mapstructure:"temperature"`
	Cohere      ProviderConfig `yaml:"cohere" mapstructure:"cohere"`
	OpenAI      ProviderConfig `yaml:"openai" mapstructure:"openai"`
	Anthropic   ProviderConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Ollama      ProviderConfig `yaml:"ollama" mapstructure:"ollama"`
}

// NewsConfig controls the news aggregation service
type NewsConfig struct {
	PageSize      int            `yaml:"page_size" mapstructure:"page_size"`
	BreakingCount int            `yaml:"breaking_count" mapstructure:"breaking_count"` // Leading articles of a batch marked breaking
	Timeout       time.Duration  `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string         `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64          `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Order         []string       `yaml:"order" mapstructure:"order"`
	NewsAPI       ProviderConfig `yaml:"newsapi" mapstructure:"newsapi"`
	Guardian      ProviderConfig `yaml:"guardian" mapstructure:"guardian"`
	RSSFeeds      []string       `yaml:"rss_feeds" mapstructure:"rss_feeds"`
	RSSWorkers    int            `yaml:"rss_workers" mapstructure:"rss_workers"`
	RSSRateLimit  float64        `yaml:"rss_rate_limit" mapstructure:"rss_rate_limit"` // Requests per second per feed host
	Cache         CacheConfig    `yaml:"cache" mapstructure:"cache"`
}

// CacheConfig selects the news response cache backend
type CacheConfig struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"` // memory, layered, redis, none
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`               // Disk layer (layered backend)
	RedisAddr string        `yaml:"redis_addr" mapstructure:"redis_addr"` // Redis backend
}

// HTTPConfig holds outbound HTTP settings shared by all provider clients
type HTTPConfig struct {
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LogConfig controls the logger
type LogConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"` // dev or prod
}

// DefaultConfig returns sensible defaults. No provider is configured by default, so an
// unconfigured server answers from the rule-based fallback and the static news set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitRPS:    5,
			RateLimitBurst:  10,
		},
		AI: AIConfig{
			Order:       []string{"cohere", "openai", "anthropic", "ollama"},
			Timeout:     30 * time.Second,
			MaxTokens:   500,
			Temperature: 0.3,
			Cohere:      ProviderConfig{BaseURL: "https://api.cohere.ai", Model: "command"},
			OpenAI:      ProviderConfig{Model: "gpt-3.5-turbo"},
			Anthropic:   ProviderConfig{BaseURL: "https://api.anthropic.com", Model: "claude-3-5-haiku-20241022"},
			Ollama:      ProviderConfig{Model: "llama3.1:8b"},
		},
		News: NewsConfig{
			PageSize:      20,
			BreakingCount: 3,
			Timeout:       15 * time.Second,
			UserAgent:     "globeintel/0.1 (+https://github.com/ppiankov/globeintel)",
			MaxBodyBytes:  4 << 20,
			Order:         []string{"newsapi", "guardian", "rss"},
			NewsAPI:       ProviderConfig{BaseURL: "https://newsapi.org"},
			Guardian:      ProviderConfig{BaseURL: "https://content.guardianapis.com"},
			RSSWorkers:    4,
			RSSRateLimit:  1,
			Cache: CacheConfig{
				Backend: "memory",
				TTL:     5 * time.Minute,
			},
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// Redacted returns a copy with every credential replaced, safe for display
func (c Config) Redacted() Config {
	redact := func(p *ProviderConfig) {
		if p.APIKey != "" {
			p.APIKey = "[REDACTED]"
		}
	}
	redact(&c.AI.Cohere)
	redact(&c.AI.OpenAI)
	redact(&c.AI.Anthropic)
	redact(&c.AI.Ollama)
	redact(&c.News.NewsAPI)
	redact(&c.News.Guardian)
	return c
}
