package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Artifact  ArtifactConfig  `mapstructure:"artifact"`
}

type TokenizerConfig struct {
	BPEPath       string   `mapstructure:"bpe_path"`
	ContextLength int      `mapstructure:"context_length"`
	Clean         string   `mapstructure:"clean"`
	KeepSubstring string   `mapstructure:"keep_substring"`
	Reduction     string   `mapstructure:"reduction"`
	SpecialTokens []string `mapstructure:"special_tokens"`
}

type ArtifactConfig struct {
	URL    string `mapstructure:"url"`
	SHA256 string `mapstructure:"sha256"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Tokenizer: TokenizerConfig{
			BPEPath:       "models/bpe_simple_vocab_16e6.txt.gz",
			ContextLength: 77,
			Clean:         "lower",
			KeepSubstring: "",
			Reduction:     "",
			SpecialTokens: nil,
		},
		Artifact: ArtifactConfig{
			URL:    "https://github.com/openai/CLIP/raw/main/clip/bpe_simple_vocab_16e6.txt.gz",
			SHA256: "",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("tokenizer-bpe-path", defaults.Tokenizer.BPEPath, "Path to gzip-compressed BPE merge artifact")
	fs.Int("tokenizer-context-length", defaults.Tokenizer.ContextLength, "Fixed packed sequence length")
	fs.String("tokenizer-clean", defaults.Tokenizer.Clean, "Clean strategy (lower|whitespace|canonicalize)")
	fs.String("tokenizer-keep-substring", defaults.Tokenizer.KeepSubstring, "Literal substring spared from punctuation stripping (canonicalize only)")
	fs.String("tokenizer-reduction", defaults.Tokenizer.Reduction, "Oversized-input strategy (simple|random|shuffle|syntax)")
	fs.StringSlice("tokenizer-special-tokens", defaults.Tokenizer.SpecialTokens, "Additional atomic special tokens")
	fs.String("artifact-url", defaults.Artifact.URL, "Merge artifact download URL")
	fs.String("artifact-sha256", defaults.Artifact.SHA256, "Expected SHA-256 of the merge artifact")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("CLIPTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("cliptok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("tokenizer.bpe_path", c.Tokenizer.BPEPath)
	v.SetDefault("tokenizer.context_length", c.Tokenizer.ContextLength)
	v.SetDefault("tokenizer.clean", c.Tokenizer.Clean)
	v.SetDefault("tokenizer.keep_substring", c.Tokenizer.KeepSubstring)
	v.SetDefault("tokenizer.reduction", c.Tokenizer.Reduction)
	v.SetDefault("tokenizer.special_tokens", c.Tokenizer.SpecialTokens)
	v.SetDefault("artifact.url", c.Artifact.URL)
	v.SetDefault("artifact.sha256", c.Artifact.SHA256)
}

// flagKeys maps flag names to their dotted config keys. Each flag is
// bound with BindPFlag so only a flag set on the command line outranks
// env and config file values; an unchanged flag default does not.
// RegisterAlias cannot do this: it redirects the dotted key to the flag
// key, where the bound flag default shadows config file values.
var flagKeys = map[string]string{
	"log-level":                "log_level",
	"tokenizer-bpe-path":       "tokenizer.bpe_path",
	"tokenizer-context-length": "tokenizer.context_length",
	"tokenizer-clean":          "tokenizer.clean",
	"tokenizer-keep-substring": "tokenizer.keep_substring",
	"tokenizer-reduction":      "tokenizer.reduction",
	"tokenizer-special-tokens": "tokenizer.special_tokens",
	"artifact-url":             "artifact.url",
	"artifact-sha256":          "artifact.sha256",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
