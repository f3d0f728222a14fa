package cmd

import (
	"context"
	"fmt"

	"github.com/bz888/naeyla/internal/api"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the inference server is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := api.NewClient(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
		defer cancel()

		health, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("%s unreachable: %w", cfg.BaseURL, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (model %s)\n", cfg.BaseURL, health.Status, health.Model)
		return nil
	},
}
