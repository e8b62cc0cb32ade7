package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"labeler/internal/catalog"
	"labeler/internal/models"
	"labeler/internal/prompt"
)

// GeminiClassifier classifies discussions through the Google Gemini
// API. Alternative to AzureClassifier, selected by configuration.
type GeminiClassifier struct {
	client   *genai.Client
	model    string
	renderer *prompt.Renderer
	timeout  time.Duration
}

// NewGeminiClassifier creates the Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, renderer *prompt.Renderer, timeout time.Duration) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key not provided", models.ErrConfiguration)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Infof("Gemini classifier initialized with model %s", model)
	return &GeminiClassifier{
		client:   client,
		model:    model,
		renderer: renderer,
		timeout:  timeout,
	}, nil
}

func (c *GeminiClassifier) Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: gemini classifier is not initialized", models.ErrConfiguration)
	}

	system, user := c.renderer.Render(cat, d)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	gm := c.client.GenerativeModel(c.model)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := gm.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini generation failed: %v", models.ErrUpstream, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: gemini returned no candidates", models.ErrUpstream)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	raw := b.String()
	log.Debugf("Raw classifier output for discussion #%d: %s", d.Number, raw)

	return ParseTags(raw, cat)
}

// Close releases the underlying Gemini client connection.
func (c *GeminiClassifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
