package openai

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"

    "github.com/sashabaranov/go-openai"

    domai "github.com/bryanwahyu/esg-responder/internal/domain/ai"
    "github.com/bryanwahyu/esg-responder/internal/infra/ai/prompt"
    pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

const maxTokens = 1024

const defaultModel = "gpt-4o-mini"

type Client struct {
    *openai.Client
    Model string
}

// NewClient builds a client; baseURL may be empty for the public API.
func NewClient(apiKey, model, baseURL string) *Client {
    cfg := openai.DefaultConfig(apiKey)
    if baseURL != "" {
        cfg.BaseURL = baseURL
    }
    return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Enhance(ctx context.Context, message string) (string, error) {
    model := c.Model
    if model == "" {
        model = defaultModel
    }
    req := openai.ChatCompletionRequest{
        Model:       model,
        Temperature: 0.3,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
            {Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(message)},
        },
    }
    // For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
    if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
        req.MaxCompletionTokens = maxTokens
        req.Temperature = 0
    } else {
        req.MaxTokens = maxTokens
    }

    resp, err := c.CreateChatCompletion(ctx, req)
    if err != nil {
        return "", translateError(err)
    }
    if len(resp.Choices) == 0 {
        return "", domai.ErrEmptyCompletion
    }
    out := strings.TrimSpace(resp.Choices[0].Message.Content)
    if out == "" {
        return "", domai.ErrEmptyCompletion
    }
    return out, nil
}

// translateError maps go-openai errors onto the domain taxonomy.
func translateError(err error) error {
    var apiErr *openai.APIError
    if errors.As(err, &apiErr) {
        if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
            return fmt.Errorf("%w: %s", domai.ErrQuotaExceeded, apiErr.Message)
        }
        return &domai.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
    }
    var reqErr *openai.RequestError
    if errors.As(err, &reqErr) {
        if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
            return fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, reqErr.Err)
        }
        return &domai.UpstreamError{StatusCode: reqErr.HTTPStatusCode, Message: fmt.Sprint(reqErr.Err)}
    }
    if errors.Is(err, context.Canceled) {
        return err
    }
    return fmt.Errorf("%w: %v", pkgerrors.ErrUpstreamUnavailable, err)
}
