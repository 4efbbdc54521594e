package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <id> [id ...]",
		Short: "Decode token ids back into text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			tok, err := buildTokenizer(activeCfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok.Decode(ids))
			return nil
		},
	}

	return cmd
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", arg, err)
		}
		if id < 0 {
			return nil, fmt.Errorf("invalid token id %d: must be non-negative", id)
		}
		ids[i] = id
	}
	return ids, nil
}
