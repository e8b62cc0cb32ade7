package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labeler/internal/models"
	"labeler/internal/prompt"
)

// --- Mock OpenAI Client ---
type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestAzureClassifier_Classify(t *testing.T) {
	cat := testCatalog(t, "bug", "python-sdk")
	mockClient := &mockOpenAIClient{mockResponse: chatResponse(`["bug","python-sdk"]`)}

	c := NewAzureClassifier(mockClient, "gpt-test", prompt.NewRenderer("", 0), 0)

	got, err := c.Classify(context.Background(), cat, models.Discussion{
		Number: 7,
		Title:  "App crashes when running in Azure CLI",
		Body:   "Running the generated code in Azure CLI throws a Python runtime error.",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bug", "python-sdk"}, got)

	// The request must carry the deployment plus system and user messages.
	require.Len(t, mockClient.lastRequest.Messages, 2)
	assert.Equal(t, "gpt-test", mockClient.lastRequest.Model)
	assert.Equal(t, openai.ChatMessageRoleSystem, mockClient.lastRequest.Messages[0].Role)
	assert.Contains(t, mockClient.lastRequest.Messages[0].Content, "bug: desc")
	assert.Equal(t, openai.ChatMessageRoleUser, mockClient.lastRequest.Messages[1].Role)
	assert.Contains(t, mockClient.lastRequest.Messages[1].Content, "App crashes")
}

func TestAzureClassifier_MalformedOutput(t *testing.T) {
	cat := testCatalog(t, "bug")
	mockClient := &mockOpenAIClient{mockResponse: chatResponse(`This is just plain text, not JSON.`)}

	c := NewAzureClassifier(mockClient, "gpt-test", prompt.NewRenderer("", 0), 0)

	_, err := c.Classify(context.Background(), cat, models.Discussion{Title: "t", Body: "b"})
	assert.True(t, errors.Is(err, models.ErrMalformedResponse))
}

func TestAzureClassifier_UpstreamFailure(t *testing.T) {
	cat := testCatalog(t, "bug")
	mockClient := &mockOpenAIClient{mockError: errors.New("401 unauthorized")}

	c := NewAzureClassifier(mockClient, "gpt-test", prompt.NewRenderer("", 0), 0)

	_, err := c.Classify(context.Background(), cat, models.Discussion{Title: "t", Body: "b"})
	assert.True(t, errors.Is(err, models.ErrUpstream))
}

func TestAzureClassifier_NoChoices(t *testing.T) {
	cat := testCatalog(t, "bug")
	mockClient := &mockOpenAIClient{mockResponse: openai.ChatCompletionResponse{}}

	c := NewAzureClassifier(mockClient, "gpt-test", prompt.NewRenderer("", 0), 0)

	_, err := c.Classify(context.Background(), cat, models.Discussion{Title: "t", Body: "b"})
	assert.True(t, errors.Is(err, models.ErrUpstream))
}

func TestAzureClassifier_NeverInventsTags(t *testing.T) {
	cat := testCatalog(t, "bug")
	mockClient := &mockOpenAIClient{mockResponse: chatResponse(`["bug","made-up","another"]`)}

	c := NewAzureClassifier(mockClient, "gpt-test", prompt.NewRenderer("", 0), 0)

	got, err := c.Classify(context.Background(), cat, models.Discussion{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bug"}, got)
}
