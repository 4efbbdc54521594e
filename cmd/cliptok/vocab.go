package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-cliptok/internal/tokenizer"
)

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab [symbol ...]",
		Short: "Inspect the loaded vocabulary",
		Long: "Vocab prints the vocabulary size and the reserved special-token ids.\n" +
			"Any symbol arguments are looked up and printed with their ids.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := buildTokenizer(activeCfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vocab size:     %d\n", tok.VocabSize())
			fmt.Fprintf(out, "context length: %d\n", tok.ContextLength())
			fmt.Fprintf(out, "%s id: %d\n", tokenizer.StartOfText, tok.StartID())
			fmt.Fprintf(out, "%s id: %d\n", tokenizer.EndOfText, tok.EndID())

			for _, sym := range args {
				if id, ok := tok.SymbolID(sym); ok {
					fmt.Fprintf(out, "%q -> %d\n", sym, id)
				} else {
					fmt.Fprintf(out, "%q -> not in vocabulary\n", sym)
				}
			}
			return nil
		},
	}

	return cmd
}
