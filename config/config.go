package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"story_generator/generator"
)

const (
	DefaultPath       = "config/config.yaml"
	defaultServerAddr = ":8080"
	defaultTimeout    = 60 * time.Second
	defaultLogLevel   = "info"

	envAPIKey     = "OPENAI_API_KEY"
	envBaseURL    = "OPENAI_BASE_URL"
	envModel      = "STORYGEN_MODEL"
	envServerAddr = "STORYGEN_SERVER_ADDR"
	envLogLevel   = "STORYGEN_LOG_LEVEL"
)

// Config is the application configuration.
type Config struct {
	ServerAddr string    `yaml:"server_addr"`
	LogLevel   string    `yaml:"log_level"`
	LLM        LLMConfig `yaml:"llm"`
	Defaults   Defaults  `yaml:"defaults"`
}

// LLMConfig selects and configures the completion service.
type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"-"`

	timeoutRaw string
}

// Defaults preselects form values that are not part of the option catalogue.
type Defaults struct {
	Variant     string   `yaml:"variant"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// Default returns a config that runs against OpenAI with the key from the environment.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. A missing file yields the defaults, so
// the tool works with nothing but OPENAI_API_KEY set.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses YAML, expands ${VAR} references and applies env overrides.
func LoadFromReader(r io.Reader) (*Config, error) {
	var raw struct {
		ServerAddr string `yaml:"server_addr"`
		LogLevel   string `yaml:"log_level"`
		LLM        struct {
			Provider string `yaml:"provider"`
			Model    string `yaml:"model"`
			APIKey   string `yaml:"api_key"`
			BaseURL  string `yaml:"base_url"`
			Timeout  string `yaml:"timeout"`
		} `yaml:"llm"`
		Defaults Defaults `yaml:"defaults"`
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg := &Config{
		ServerAddr: os.ExpandEnv(raw.ServerAddr),
		LogLevel:   raw.LogLevel,
		LLM: LLMConfig{
			Provider:   raw.LLM.Provider,
			Model:      os.ExpandEnv(raw.LLM.Model),
			APIKey:     os.ExpandEnv(raw.LLM.APIKey),
			BaseURL:    os.ExpandEnv(raw.LLM.BaseURL),
			timeoutRaw: os.ExpandEnv(raw.LLM.Timeout),
		},
		Defaults: raw.Defaults,
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.LLM.parseTimeout(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the rest of the program relies on. A missing API
// key is not an error here; the openai client reports it when it is built.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "deepseek", "mock":
	default:
		return fmt.Errorf("config: llm provider %q not supported", c.LLM.Provider)
	}
	if c.LLM.Provider == "deepseek" && strings.TrimSpace(c.LLM.BaseURL) == "" {
		return errors.New("config: llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("config: llm timeout must be positive")
	}
	if _, err := generator.ParseVariant(c.Defaults.Variant); err != nil {
		return fmt.Errorf("config: defaults: %w", err)
	}
	if t := c.Defaults.Temperature; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("config: defaults.temperature %v must be between 0 and 1", *t)
	}
	return nil
}

// LLMSettings converts the llm section for the generator package.
func (c *Config) LLMSettings() *generator.LLMSettings {
	return &generator.LLMSettings{
		Provider: c.LLM.Provider,
		Model:    c.LLM.Model,
		APIKey:   c.LLM.APIKey,
		BaseURL:  c.LLM.BaseURL,
		Timeout:  c.LLM.Timeout,
	}
}

// BaseRequest returns an empty request carrying the configured defaults.
func (c *Config) BaseRequest() generator.GenerationRequest {
	v, _ := generator.ParseVariant(c.Defaults.Variant)
	req := generator.GenerationRequest{Variant: v, Model: c.LLM.Model}
	if c.Defaults.Temperature != nil {
		t := *c.Defaults.Temperature
		req.Temperature = &t
	}
	return req
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.ServerAddr) == "" {
		c.ServerAddr = defaultServerAddr
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(c.LLM.Provider) == "" {
		c.LLM.Provider = "openai"
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = generator.DefaultModel
	}
	if c.LLM.Timeout <= 0 && c.LLM.timeoutRaw == "" {
		c.LLM.Timeout = defaultTimeout
	}
}

// applyEnvOverrides lets the environment win over the file, except for the
// API key: a key written in the file takes priority over OPENAI_API_KEY.
func (c *Config) applyEnvOverrides() {
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv(envAPIKey)
	}
	if v := os.Getenv(envBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(envModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(envServerAddr); v != "" {
		c.ServerAddr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (l *LLMConfig) parseTimeout() error {
	if strings.TrimSpace(l.timeoutRaw) == "" {
		if l.Timeout <= 0 {
			l.Timeout = defaultTimeout
		}
		return nil
	}
	d, err := time.ParseDuration(l.timeoutRaw)
	if err != nil {
		return fmt.Errorf("config: invalid llm timeout %q: %w", l.timeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("config: llm timeout must be positive, got %s", d)
	}
	l.Timeout = d
	return nil
}
