package main

import (
	"github.com/spf13/cobra"

	"github.com/example/go-cliptok/internal/artifact"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the BPE merge artifact",
		Long: "Fetch downloads the gzip-compressed merge-rule artifact to the\n" +
			"configured tokenizer path, verifying its SHA-256 when one is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return artifact.Download(artifact.DownloadOptions{
				URL:     activeCfg.Artifact.URL,
				OutPath: activeCfg.Tokenizer.BPEPath,
				SHA256:  activeCfg.Artifact.SHA256,
				Stdout:  cmd.OutOrStdout(),
			})
		},
	}

	return cmd
}
