package cmd

import (
	"github.com/bitrise-io/codeguardian/common"
	"github.com/spf13/cobra"
)

func addSettingsFlags(cmd *cobra.Command) {
	defaults := common.WithDefaultSettings()

	flags := cmd.PersistentFlags()
	flags.String("endpoint", defaults.Endpoint, "Inference service URL (generate endpoint, or the /v1 base URL, required for the openai provider)")
	flags.Int("max-tokens", defaults.MaxTokens, "Maximum number of tokens to generate")
	flags.String("provider", defaults.Provider, "Inference API flavour (local, openai)")
	flags.String("model", defaults.Model, "Model name sent to OpenAI compatible servers")
	flags.String("language", defaults.Language, "Language the answer should be written in")
	flags.Int("timeout", defaults.Timeout, "Request timeout in seconds, 0 to wait indefinitely")
	flags.Int("retry-max", defaults.RetryMax, "Number of retries after a failed request")
}

// resolveSettings layers explicitly set flags over the settings file.
func resolveSettings(cmd *cobra.Command) (common.Settings, error) {
	var s common.Settings
	if configPath != "" {
		var err error
		if s, err = common.FromYamlFile(configPath); err != nil {
			return s, err
		}
	} else {
		s = common.WithYamlFile()
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		s.Endpoint, _ = flags.GetString("endpoint")
	}
	if flags.Changed("max-tokens") {
		s.MaxTokens, _ = flags.GetInt("max-tokens")
	}
	if flags.Changed("provider") {
		s.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		s.Model, _ = flags.GetString("model")
	}
	if flags.Changed("language") {
		s.Language, _ = flags.GetString("language")
	}
	if flags.Changed("timeout") {
		s.Timeout, _ = flags.GetInt("timeout")
	}
	if flags.Changed("retry-max") {
		s.RetryMax, _ = flags.GetInt("retry-max")
	}

	return s, s.Validate()
}
