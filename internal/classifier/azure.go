package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"labeler/internal/catalog"
	"labeler/internal/models"
	"labeler/internal/prompt"
)

// AzureClassifier classifies discussions through an Azure OpenAI chat
// deployment.
type AzureClassifier struct {
	client interface {
		CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	}
	deployment string
	renderer   *prompt.Renderer
	timeout    time.Duration
}

// NewAzureClient builds a go-openai client pointed at an Azure OpenAI
// resource.
func NewAzureClient(endpoint, apiKey, apiVersion string) *openai.Client {
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	return openai.NewClientWithConfig(cfg)
}

// NewAzureClassifier creates a classifier over an OpenAI-compatible
// chat client. The client is an interface so tests can substitute a
// mock.
func NewAzureClassifier(client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}, deployment string, renderer *prompt.Renderer, timeout time.Duration) *AzureClassifier {
	return &AzureClassifier{
		client:     client,
		deployment: deployment,
		renderer:   renderer,
		timeout:    timeout,
	}
}

func (c *AzureClassifier) Classify(ctx context.Context, cat *catalog.Catalog, d models.Discussion) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: azure classifier is not initialized with a client", models.ErrConfiguration)
	}

	system, user := c.renderer.Render(cat, d)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: azure chat completion failed: %v", models.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: azure chat completion returned no choices", models.ErrUpstream)
	}

	raw := resp.Choices[0].Message.Content
	log.Debugf("Raw classifier output for discussion #%d: %s", d.Number, raw)

	return ParseTags(raw, cat)
}
