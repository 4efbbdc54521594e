package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var pack bool

	cmd := &cobra.Command{
		Use:   "encode [text ...]",
		Short: "Encode text into token ids",
		Long: "Encode prints the raw token-id sequence for each input text.\n" +
			"With --pack, each row is wrapped with the start/end markers, truncated\n" +
			"and zero-padded to the configured context length instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := buildTokenizer(activeCfg)
			if err != nil {
				return err
			}

			texts, err := readInputTexts(args, os.Stdin)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if pack {
				packed, err := tok.Tokenize(texts...)
				if err != nil {
					return err
				}
				for i := range texts {
					row, err := packed.Row(i)
					if err != nil {
						return err
					}
					printInt32Row(out, row)
				}
				return nil
			}

			for _, text := range texts {
				printIntRow(out, tok.Encode(text))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pack, "pack", false, "Emit fixed-length padded rows instead of raw ids")

	return cmd
}

// readInputTexts returns the positional arguments, or non-empty stdin lines
// when no arguments are given.
func readInputTexts(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var texts []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input text; pass arguments or pipe lines on stdin")
	}
	return texts, nil
}

func printIntRow(w io.Writer, ids []int) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func printInt32Row(w io.Writer, ids []int32) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}
