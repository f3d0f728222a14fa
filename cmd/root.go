package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bz888/naeyla/internal/api"
	"github.com/bz888/naeyla/internal/chat"
	"github.com/bz888/naeyla/internal/config"
	"github.com/bz888/naeyla/internal/logger"
	"github.com/bz888/naeyla/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flags config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "naeyla",
	Short: "Chat with a local Naeyla inference server",
	Long: `naeyla is a terminal chat client for a locally running Naeyla server.

Each message is sent to POST <url>/chat together with the active mode
(companion, advisor or guardian) and the reply is shown in the conversation.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runChat,
}

func init() {
	flags.Bind(rootCmd.PersistentFlags())
	rootCmd.AddCommand(askCmd, healthCmd, mockServerCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(loaded, cmd.Flags())

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	view := ui.New(cfg.Dev)

	if err := logger.InitLogger(cfg.Dev, cfg.LogPath, view.DebugWriter()); err != nil {
		return err
	}
	defer logger.Close()

	client, err := api.NewClient(cfg)
	if err != nil {
		return err
	}

	controller := chat.NewController(client, view, cfg)
	view.Bind(controller, client)

	ctx, stop := signalContext(cmd.Context())
	defer stop()
	return view.Run(ctx)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
