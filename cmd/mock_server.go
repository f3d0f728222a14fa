package cmd

import (
	"os"

	"github.com/bz888/naeyla/internal/api/server"
	"github.com/bz888/naeyla/internal/config"
	"github.com/bz888/naeyla/internal/logger"
	"github.com/spf13/cobra"
)

var mockAddr string

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve canned replies on the /chat contract for local development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := logger.InitLogger(true, cfg.LogPath, os.Stderr); err != nil {
			return err
		}
		defer logger.Close()

		addr := cfg.MockAddr
		if cmd.Flags().Changed("addr") {
			addr = mockAddr
		}

		token := cfg.Token
		if cfg.Auth == config.AuthNone {
			token = ""
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return server.Run(ctx, addr, token)
	},
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", config.DefaultMockAddr, "listen address")
}
