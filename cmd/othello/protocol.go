package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"othello-engine/protocol"
)

var protocolCmd = &cobra.Command{
	Use:     "protocol",
	Aliases: []string{"uci"},
	Short:   "Speak the text protocol on stdin/stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return protocol.NewServer(cfg, os.Stdin, os.Stdout, engineOptions()...).Run(ctx)
	},
}
