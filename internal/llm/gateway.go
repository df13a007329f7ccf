// Package llm talks to the OpenAI-compatible AI gateway the widget proxies
// chat turns to. The gateway is consumed as an opaque text-completion
// service; rate-limit (429) and quota (402) failures are surfaced as
// distinguished kinds so the user sees a specific apology, everything else
// collapses into a generic service error. Failures are never retried here.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/atendai/atendai/internal/domain"
)

// FailureKind classifies a gateway failure for user-facing messaging
type FailureKind string

const (
	// KindUnavailable means no API key is configured at all
	KindUnavailable FailureKind = "unavailable"
	// KindRateLimited maps HTTP 429
	KindRateLimited FailureKind = "rate_limited"
	// KindQuotaExhausted maps HTTP 402
	KindQuotaExhausted FailureKind = "quota_exhausted"
	// KindService is every other transport or protocol failure
	KindService FailureKind = "service_error"
)

// Error is a classified gateway failure
type Error struct {
	Kind   FailureKind
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai gateway: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("ai gateway: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Notice returns the user-facing apology for this failure kind
func (e *Error) Notice() string {
	switch e.Kind {
	case KindRateLimited:
		return "Estou recebendo muitas mensagens agora. Por favor, aguarde um momento e tente novamente."
	case KindQuotaExhausted:
		return "O serviço de IA está temporariamente indisponível. Configure uma API Key no Admin para continuar."
	default:
		return "Desculpe, não consegui processar sua mensagem. Tente novamente."
	}
}

// ChatMessage is one turn of history sent to the gateway
type ChatMessage struct {
	Role    domain.Role
	Content string
}

// CompletionRequest carries everything one gateway call needs. Sampling
// parameters come from admin settings at call time, never cached.
type CompletionRequest struct {
	APIKey          string
	Model           string
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
	SystemPrompt    string
	Messages        []ChatMessage
}

// Client is the gateway contract; the reply engine depends on this
// interface so tests can substitute a fake.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Gateway calls an OpenAI-compatible chat-completions endpoint
type Gateway struct {
	baseURL string
	timeout time.Duration
}

// NewGateway creates a gateway client for the given base URL
func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{baseURL: baseURL, timeout: timeout}
}

// Complete sends one chat-completion request and returns the assistant
// text verbatim. The API key travels in the request because it is
// admin-editable at runtime.
func (g *Gateway) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if req.APIKey == "" {
		return "", &Error{Kind: KindUnavailable, Err: errors.New("no api key configured")}
	}

	client := openai.NewClient(
		option.WithAPIKey(req.APIKey),
		option.WithBaseURL(g.baseURL),
		option.WithRequestTimeout(g.timeout),
		option.WithMaxRetries(0),
	)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(req.Model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.TopP > 0 {
		params.TopP = openai.Float(req.TopP)
	}
	if req.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxOutputTokens))
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &Error{Kind: KindService, Err: errors.New("empty completion")}
	}

	return completion.Choices[0].Message.Content, nil
}

// Probe sends a one-line test prompt to verify gateway connectivity
func (g *Gateway) Probe(ctx context.Context, apiKey, model string) error {
	_, err := g.Complete(ctx, CompletionRequest{
		APIKey: apiKey,
		Model:  model,
		Messages: []ChatMessage{
			{Role: domain.RoleUser, Content: `Diga apenas "OK" para testar a conexão.`},
		},
		MaxOutputTokens: 16,
	})
	return err
}

func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429:
			return &Error{Kind: KindRateLimited, Status: apierr.StatusCode, Err: err}
		case 402:
			return &Error{Kind: KindQuotaExhausted, Status: apierr.StatusCode, Err: err}
		default:
			return &Error{Kind: KindService, Status: apierr.StatusCode, Err: err}
		}
	}
	return &Error{Kind: KindService, Err: err}
}
