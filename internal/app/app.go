package app

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"labeler/internal/catalog"
	"labeler/internal/classifier"
	"labeler/internal/config"
	"labeler/internal/github"
	"labeler/internal/labeler"
	"labeler/internal/models"
	"labeler/internal/prompt"
)

// App holds the wired application components for one process.
type App struct {
	Config      *config.Config
	Catalog     *catalog.Catalog
	GitHub      *github.Client
	Classifier  classifier.Classifier
	Labeler     *labeler.Service
	DefaultRepo models.Repo
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	repo, err := config.ParseRepo(cfg.GitHub.DefaultRepo)
	if err != nil {
		return nil, err
	}
	app.DefaultRepo = repo

	if err := app.initCatalog(); err != nil {
		return nil, err
	}
	if err := app.initClassifier(ctx); err != nil {
		return nil, err
	}
	if err := app.initGitHub(ctx); err != nil {
		return nil, err
	}

	app.Labeler = labeler.NewService(app.GitHub, app.Classifier, app.Catalog)
	log.Debug("Application initialization complete")
	return app, nil
}

// Close releases resources held by the wired components. The Gemini
// client keeps a gRPC connection open until closed.
func (a *App) Close() error {
	if c, ok := a.Classifier.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *App) initCatalog() error {
	cat, err := catalog.Load(a.Config.Catalog.Path)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}
	if cat.Len() == 0 {
		log.Warnf("Tag catalog %s is empty; every run will produce no labels", a.Config.Catalog.Path)
	} else {
		log.Infof("Loaded %d tag(s) from %s", cat.Len(), a.Config.Catalog.Path)
	}
	a.Catalog = cat
	return nil
}

func (a *App) initClassifier(ctx context.Context) error {
	cfg := a.Config

	systemTemplate := ""
	if cfg.Classifier.PromptTemplate != "" {
		content, err := config.LoadPromptContent(cfg.Classifier.PromptTemplate, "classify.txt")
		if err != nil {
			log.Warnf("Failed to load prompt template: %v. Falling back to the embedded prompt.", err)
		} else {
			systemTemplate = content
		}
	}
	renderer := prompt.NewRenderer(systemTemplate, cfg.Classifier.MaxBodyRunes)

	switch cfg.Classifier.Provider {
	case "azure":
		client := classifier.NewAzureClient(cfg.Classifier.Azure.Endpoint, cfg.Classifier.Azure.APIKey, cfg.Classifier.Azure.APIVersion)
		a.Classifier = classifier.NewAzureClassifier(client, cfg.Classifier.Azure.Deployment, renderer, cfg.RequestTimeout())
		log.Infof("Azure OpenAI classifier initialized (deployment %s)", cfg.Classifier.Azure.Deployment)
	case "gemini":
		gc, err := classifier.NewGeminiClassifier(ctx, cfg.Classifier.Gemini.APIKey, cfg.Classifier.Gemini.Model, renderer, cfg.RequestTimeout())
		if err != nil {
			return fmt.Errorf("init classifier: %w", err)
		}
		a.Classifier = gc
	default:
		return fmt.Errorf("%w: unknown classifier provider %q", models.ErrConfiguration, cfg.Classifier.Provider)
	}
	return nil
}

func (a *App) initGitHub(ctx context.Context) error {
	httpClient, err := github.NewHTTPClient(ctx, a.Config)
	if err != nil {
		return fmt.Errorf("init github client: %w", err)
	}
	a.GitHub = github.NewClient(httpClient)
	return nil
}
