package common

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/codeguardian/logger"
	"gopkg.in/yaml.v3"
)

const (
	ProviderLocal  = "local"
	ProviderOpenAI = "openai"
)

const (
	DefaultEndpoint  = "http://localhost:8000/generate"
	DefaultMaxTokens = 1024
	DefaultLanguage  = "en-US"
)

var settingsFilenames = []string{"codeguardian.yml", "codeguardian.yaml"}

type Settings struct {
	Language  string `yaml:"language"`
	Endpoint  string `yaml:"endpoint"`
	MaxTokens int    `yaml:"max_tokens"`
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	// Timeout in seconds, 0 waits for as long as the transport allows
	Timeout  int `yaml:"timeout"`
	RetryMax int `yaml:"retry_max"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Language:  DefaultLanguage,
		Endpoint:  DefaultEndpoint,
		MaxTokens: DefaultMaxTokens,
		Provider:  ProviderLocal,
	}
}

// WithYamlFile looks for a settings file in the working directory first and
// then in its subdirectories. Anything missing from the file keeps its default.
func WithYamlFile() Settings {
	var filePath string

	for _, name := range settingsFilenames {
		if _, err := os.Stat(name); err == nil {
			filePath = name
			break
		}
	}

	if filePath == "" {
		filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if filePath != "" {
				return filepath.SkipDir
			}
			for _, name := range settingsFilenames {
				if !info.IsDir() && info.Name() == name {
					filePath = path
					return filepath.SkipDir
				}
			}
			return nil
		})
	}

	if filePath == "" {
		logger.Debug("No settings file found in the current directory or subdirectories. Using default settings.")
		return WithDefaultSettings()
	}

	settings, err := FromYamlFile(filePath)
	if err != nil {
		logger.Warnf("Ignoring settings file: %v", err)
		return WithDefaultSettings()
	}
	return settings
}

// FromYamlFile reads settings from an explicit path. Parse errors leave the
// fields decoded so far in place, like WithYamlFile does.
func FromYamlFile(filePath string) (Settings, error) {
	settings := WithDefaultSettings()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		logger.Warnf("Failed to parse YAML file %s, some settings may be ignored: %v", filePath, err)
	} else {
		logger.Infof("Using settings from YAML file: %s", filePath)
	}
	return settings, nil
}

// Validate reports the first setting that can't be used to reach the inference service.
func (s Settings) Validate() error {
	if s.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", s.MaxTokens)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", s.Timeout)
	}
	if s.RetryMax < 0 {
		return fmt.Errorf("retry_max must not be negative, got %d", s.RetryMax)
	}

	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", s.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute http(s) URL, got %q", s.Endpoint)
	}

	switch s.Provider {
	case ProviderLocal:
	case ProviderOpenAI:
		if strings.HasSuffix(strings.TrimSuffix(u.Path, "/"), "/generate") {
			return fmt.Errorf("the %s provider needs the API base URL (for example http://localhost:8000/v1), got %q", ProviderOpenAI, s.Endpoint)
		}
	default:
		return fmt.Errorf("unsupported provider: %s", s.Provider)
	}
	return nil
}
