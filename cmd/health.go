package cmd

import (
	"fmt"

	"github.com/bitrise-io/codeguardian/common"
	"github.com/bitrise-io/codeguardian/dispatcher"
	"github.com/bitrise-io/codeguardian/llm"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the local inference service is up",
	Long:  `Call the /health route next to the generate endpoint and report whether the model is loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Provider != common.ProviderLocal {
			return fmt.Errorf("health checks are only supported for the %s provider", common.ProviderLocal)
		}

		client, err := llm.NewLocal(settings.Endpoint, common.RetryConfigFromSettings(settings))
		if err != nil {
			return err
		}

		if err := client.Health(cmd.Context()); err != nil {
			if dispatcher.IsConnectionRefused(err) {
				return fmt.Errorf("inference service at %s is not running: %w", client.Endpoint(), err)
			}
			return fmt.Errorf("inference service at %s is unhealthy: %w", client.Endpoint(), err)
		}

		pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Inference service at %s is ready", client.Endpoint())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
