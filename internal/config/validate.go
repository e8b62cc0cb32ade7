package config

import (
	"fmt"
	"strings"

	"labeler/internal/models"
)

// Validate checks that the configuration can support a labeling run.
// Failures wrap models.ErrConfiguration and name the missing keys.
func (c *Config) Validate() error {
	if err := c.validateGitHubAuth(); err != nil {
		return err
	}

	if c.GitHub.DefaultRepo != "" {
		if _, err := ParseRepo(c.GitHub.DefaultRepo); err != nil {
			return err
		}
	}

	switch c.Classifier.Provider {
	case "azure":
		var missing []string
		if c.Classifier.Azure.Endpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if c.Classifier.Azure.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_KEY")
		}
		if c.Classifier.Azure.Deployment == "" {
			missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: azure classifier requires %s", models.ErrConfiguration, strings.Join(missing, ", "))
		}
	case "gemini":
		if c.Classifier.Gemini.APIKey == "" {
			return fmt.Errorf("%w: gemini classifier requires GEMINI_API_KEY", models.ErrConfiguration)
		}
		if c.Classifier.Gemini.Model == "" {
			return fmt.Errorf("%w: classifier.gemini.model is required", models.ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown classifier provider %q", models.ErrConfiguration, c.Classifier.Provider)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("%w: catalog.path is required", models.ErrConfiguration)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", models.ErrConfiguration)
	}
	if c.RunIntervalMinutes <= 0 {
		return fmt.Errorf("%w: run_interval_minutes must be positive", models.ErrConfiguration)
	}
	if c.Classifier.MaxBodyRunes <= 0 {
		return fmt.Errorf("%w: classifier.max_body_runes must be positive", models.ErrConfiguration)
	}
	return nil
}

// HasAppAuth reports whether GitHub App credentials are fully present.
func (c *Config) HasAppAuth() bool {
	return c.GitHub.AppID != "" &&
		(c.GitHub.AppPrivateKey != "" || c.GitHub.AppPrivateKeyPath != "") &&
		c.GitHub.AppInstallationID != ""
}

func (c *Config) validateGitHubAuth() error {
	if c.HasAppAuth() || c.GitHub.Token != "" {
		return nil
	}

	// Partial App config gets the specific message; nothing at all
	// gets the generic one.
	if c.GitHub.AppID != "" || c.GitHub.AppInstallationID != "" || c.GitHub.AppPrivateKey != "" || c.GitHub.AppPrivateKeyPath != "" {
		var missing []string
		if c.GitHub.AppID == "" {
			missing = append(missing, "APP_ID")
		}
		if c.GitHub.AppPrivateKey == "" && c.GitHub.AppPrivateKeyPath == "" {
			missing = append(missing, "APP_PRIVATE_KEY or APP_PRIVATE_KEY_PATH")
		}
		if c.GitHub.AppInstallationID == "" {
			missing = append(missing, "APP_INSTALLATION_ID")
		}
		return fmt.Errorf("%w: GitHub App configuration missing: %s", models.ErrConfiguration, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: set TOKEN or the APP_ID/APP_PRIVATE_KEY/APP_INSTALLATION_ID trio", models.ErrConfiguration)
}

// ParseRepo splits an "owner/name" repository reference.
func ParseRepo(repoURL string) (models.Repo, error) {
	parts := strings.Split(repoURL, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return models.Repo{}, fmt.Errorf("%w: invalid repository %q, expected owner/name", models.ErrConfiguration, repoURL)
	}
	return models.Repo{Owner: parts[0], Name: parts[1]}, nil
}
