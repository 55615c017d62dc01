/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// lrumap-replay replays a text trace of cache operations against an LRU cache
// built from a configuration file and reports hit/miss statistics.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/acronis/go-lrumap/internal/libinfo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "lrumap-replay --trace <file>",
		Short: "Replay a trace of cache operations against an LRU cache",
		Long: `Replay reads a trace of cache operations and applies them to an LRU cache
built from the "cache" section of the configuration file.

Trace format (one operation per line, '#' starts a comment):
  set <key> <value>
  get <key>
  access <key>
  del <key>
  clear

For the "size" policy the weight of a value is its length in bytes.`,
		Version:      libinfo.GetLibVersion(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.tracePath, "trace", "t", "", "trace file")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "",
		"file to write Prometheus metrics to in the text exposition format")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(reportFormatYAML), "report format (yaml or json)")
	_ = cmd.MarkFlagRequired("trace")
	return cmd
}
