package cmd

import (
	"os"
	"strings"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
	"github.com/bz888/naeyla/internal/logger"
	"github.com/bz888/naeyla/internal/ui"
	"github.com/spf13/cobra"
)

var askEcho bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single message and print the reply",
	Example: `  naeyla ask "What should I do today?" --mode advisor
  naeyla ask --echo hello`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askEcho, "echo", false, "also print the sent message")
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, os.Stderr); err != nil {
		return err
	}
	defer logger.Close()

	client, err := api.NewClient(cfg)
	if err != nil {
		return err
	}

	view := ui.NewPlainView(cmd.OutOrStdout())
	view.Echo = askEcho
	controller := chat.NewController(client, view, cfg)

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	// Blank messages are dropped by the controller without a request.
	return controller.Submit(ctx, strings.Join(args, " "))
}
