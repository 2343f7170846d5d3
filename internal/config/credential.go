package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/qbank-ai/qbank/internal/llm"
)

// ErrNoCredential is returned when no key source yields an API key.
var ErrNoCredential = errors.New("no API key configured")

// KeyURL is where a Gemini API key can be created.
const KeyURL = "https://aistudio.google.com/"

// KeySource is one place an API key may come from.
type KeySource interface {
	Name() string
	Lookup() (string, error)
}

// SecretsFile reads a key from a TOML secrets file. A missing file
// yields no key.
type SecretsFile struct {
	Path string
	Keys []string
}

func (s SecretsFile) Name() string { return "secrets file " + s.Path }

func (s SecretsFile) Lookup() (string, error) {
	if s.Path == "" {
		return "", nil
	}
	if _, err := os.Stat(s.Path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	v := viper.New()
	v.SetConfigFile(s.Path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read %s: %w", s.Path, err)
	}
	for _, k := range s.Keys {
		if key := strings.TrimSpace(v.GetString(k)); key != "" {
			return key, nil
		}
	}
	return "", nil
}

// Env reads a key from the first set environment variable.
type Env struct {
	Vars []string
}

func (e Env) Name() string { return "environment " + strings.Join(e.Vars, "/") }

func (e Env) Lookup() (string, error) {
	v := viper.New()
	for _, name := range e.Vars {
		if err := v.BindEnv(name); err != nil {
			return "", err
		}
		if key := strings.TrimSpace(v.GetString(name)); key != "" {
			return key, nil
		}
	}
	return "", nil
}

// Prompt asks for the key on the terminal. Input is hidden when In is a
// terminal; otherwise one line is read as-is. A nil In disables the
// source.
type Prompt struct {
	In    *os.File
	Out   io.Writer
	Label string
}

func (p Prompt) Name() string { return "interactive prompt" }

func (p Prompt) Lookup() (string, error) {
	if p.In == nil {
		return "", nil
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s: ", p.Label)

	fd := int(p.In.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ResolveAPIKey returns the first key found across sources, in order, and
// the name of the source that supplied it.
func ResolveAPIKey(sources ...KeySource) (key, from string, err error) {
	for _, s := range sources {
		key, err := s.Lookup()
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", s.Name(), err)
		}
		if key != "" {
			return key, s.Name(), nil
		}
	}
	return "", "", ErrNoCredential
}

// keyNames lists the secrets/env names per provider.
var keyNames = map[string][]string{
	llm.ProviderGemini:     {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	llm.ProviderOpenAI:     {"OPENAI_API_KEY"},
	llm.ProviderOpenRouter: {"OPENROUTER_API_KEY"},
	llm.ProviderAnthropic:  {"ANTHROPIC_API_KEY"},
}

// KeyNames returns the secret names consulted for provider.
func KeyNames(provider string) []string {
	return append([]string{envPrefix + "_LLM_API_KEY"}, keyNames[provider]...)
}

// CredentialSources returns the lookup chain for the configured provider:
// secrets file, then environment, then (when in is non-nil) the terminal.
func (c *Config) CredentialSources(in *os.File, out io.Writer) []KeySource {
	names := KeyNames(c.LLM.Provider)
	sources := []KeySource{
		SecretsFile{Path: c.LLM.SecretsFile, Keys: names},
		Env{Vars: names},
	}
	if in != nil {
		sources = append(sources, Prompt{In: in, Out: out, Label: "API key for " + c.LLM.Provider})
	}
	return sources
}

// MissingKeyHelp explains how to supply a key for provider.
func MissingKeyHelp(provider, secretsFile string) string {
	names := KeyNames(provider)
	msg := fmt.Sprintf("set %s in %s or in the environment", names[len(names)-1], secretsFile)
	if provider == llm.ProviderGemini {
		msg = fmt.Sprintf("set GOOGLE_API_KEY in %s or in the environment; create a key at %s", secretsFile, KeyURL)
	}
	return msg
}
