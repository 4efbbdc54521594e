package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-cliptok/internal/config"
	"github.com/example/go-cliptok/internal/tokenizer"
	textpkg "github.com/example/go-cliptok/internal/text"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "cliptok",
		Short: "CLIP byte-level BPE tokenizer command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newVocabCmd())
	cmd.AddCommand(newFetchCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := parseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// buildTokenizer constructs a tokenizer from the loaded configuration.
func buildTokenizer(cfg config.Config) (*tokenizer.Tokenizer, error) {
	tok, err := tokenizer.New(tokenizer.Options{
		BPEPath:       cfg.Tokenizer.BPEPath,
		SpecialTokens: cfg.Tokenizer.SpecialTokens,
		ContextLength: cfg.Tokenizer.ContextLength,
		Clean:         textpkg.CleanStrategy(cfg.Tokenizer.Clean),
		KeepSubstring: cfg.Tokenizer.KeepSubstring,
		Reduction:     tokenizer.ReductionStrategy(cfg.Tokenizer.Reduction),
	})
	if err != nil {
		return nil, fmt.Errorf("build tokenizer: %w", err)
	}

	slog.Debug("tokenizer ready",
		"bpe_path", cfg.Tokenizer.BPEPath,
		"vocab_size", tok.VocabSize(),
		"context_length", tok.ContextLength())

	return tok, nil
}
