package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/qbank-ai/qbank/internal/config"
	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/logging"
	"github.com/qbank-ai/qbank/internal/questionbank"
	"github.com/qbank-ai/qbank/internal/records"
)

// deps is everything a generating command needs, built once per process.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider llm.Provider
	gen      *questionbank.Generator
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		cfg.LLM.Model = m
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildDeps loads configuration, resolves the API key (secrets file,
// environment, then the terminal when stdin is one) and constructs the
// provider and generator. console selects whether logs also go to stderr.
func buildDeps(cmd *cobra.Command, console bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: console,
	})
	if err != nil {
		return nil, err
	}

	var key string
	if cfg.LLM.Provider != llm.ProviderMock {
		var in *os.File
		if term.IsTerminal(int(os.Stdin.Fd())) {
			in = os.Stdin
		}
		var from string
		key, from, err = config.ResolveAPIKey(cfg.CredentialSources(in, os.Stderr)...)
		if errors.Is(err, config.ErrNoCredential) {
			return nil, fmt.Errorf("%w: %s", err, config.MissingKeyHelp(cfg.LLM.Provider, cfg.LLM.SecretsFile))
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("api key resolved", zap.String("source", from))
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.ProviderConfig(key), logger, records.Sample)
	if err != nil {
		return nil, err
	}

	gen := questionbank.New(provider, generatorConfig(cfg), logger)
	return &deps{cfg: cfg, logger: logger, provider: provider, gen: gen}, nil
}

func generatorConfig(cfg *config.Config) questionbank.Config {
	return questionbank.Config{
		Limits: questionbank.Limits{
			MinTotal: cfg.Limits.MinTotal,
			MaxTotal: cfg.Limits.MaxTotal,
		},
		Timeout:     cfg.LLM.Timeout,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Check:       true,
	}
}

// Close releases the provider and flushes the logger.
func (d *deps) Close() {
	if err := llm.Close(d.provider); err != nil {
		d.logger.Warn("close provider", zap.Error(err))
	}
	_ = d.logger.Sync()
}
