package github

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"labeler/internal/config"
	"labeler/internal/models"
)

// NewHTTPClient builds an authenticated HTTP client for the GitHub
// API. GitHub App credentials take precedence over a plain token;
// neither configured is a configuration error.
func NewHTTPClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	if cfg.HasAppAuth() {
		return newAppClient(cfg)
	}
	if cfg.GitHub.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
		client := oauth2.NewClient(ctx, ts)
		client.Timeout = cfg.RequestTimeout()
		return client, nil
	}
	return nil, fmt.Errorf("%w: no GitHub credentials configured", models.ErrConfiguration)
}

func newAppClient(cfg *config.Config) (*http.Client, error) {
	appID, err := strconv.ParseInt(cfg.GitHub.AppID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: APP_ID %q is not numeric", models.ErrConfiguration, cfg.GitHub.AppID)
	}
	installationID, err := strconv.ParseInt(cfg.GitHub.AppInstallationID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: APP_INSTALLATION_ID %q is not numeric", models.ErrConfiguration, cfg.GitHub.AppInstallationID)
	}

	var transport *ghinstallation.Transport
	if cfg.GitHub.AppPrivateKey != "" {
		log.Info("Using GitHub App private key from environment")
		transport, err = ghinstallation.New(http.DefaultTransport, appID, installationID, []byte(cfg.GitHub.AppPrivateKey))
	} else {
		log.Infof("Loading GitHub App private key from %s", cfg.GitHub.AppPrivateKeyPath)
		transport, err = ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, cfg.GitHub.AppPrivateKeyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GitHub App transport: %v", models.ErrConfiguration, err)
	}

	return &http.Client{Transport: transport, Timeout: cfg.RequestTimeout()}, nil
}
