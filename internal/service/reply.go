package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/llm"
)

// replyTechnicalDifficulty is the last-resort apology when even template
// fallback generation fails. That path is unreachable with sane catalog
// data but sits on the terminal path, so it is handled anyway.
const replyTechnicalDifficulty = "Desculpe, estou com dificuldades técnicas no momento. Por favor, tente novamente em alguns instantes."

// ReplyResult is one synthesized assistant turn
type ReplyResult struct {
	Text   string
	Source domain.ReplySource
	// Notice is a non-blocking user-visible warning set when the AI path
	// failed and the reply came from templates instead
	Notice string
}

// ReplyEngine decides how an assistant reply is produced once onboarding
// is complete: AI gateway first, deterministic templates on any failure.
// It owns no state; each call is a pure function of its inputs plus one
// outbound network call.
type ReplyEngine struct {
	gateway llm.Client
	logger  *zap.Logger
}

// NewReplyEngine creates a reply engine
func NewReplyEngine(gateway llm.Client, logger *zap.Logger) *ReplyEngine {
	return &ReplyEngine{gateway: gateway, logger: logger}
}

// Generate produces the assistant reply for a post-onboarding user turn.
// The history must not include the current user message; it is appended
// here exactly once. The gateway is never retried: any failure falls
// back to template matching and the conversation continues.
func (e *ReplyEngine) Generate(
	ctx context.Context,
	niche *domain.Niche,
	ob domain.Onboarding,
	history []llm.ChatMessage,
	userMessage string,
	settings domain.Settings,
) ReplyResult {
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, llm.ChatMessage{Role: domain.RoleUser, Content: userMessage})

	text, err := e.gateway.Complete(ctx, llm.CompletionRequest{
		APIKey:          settings.APIKey,
		Model:           settings.Model,
		Temperature:     settings.Temperature,
		TopP:            settings.TopP,
		MaxOutputTokens: settings.MaxOutputTokens,
		SystemPrompt:    BuildSystemPrompt(niche, ob),
		Messages:        messages,
	})
	if err == nil {
		return ReplyResult{Text: text, Source: domain.SourceLLM}
	}

	var gwErr *llm.Error
	notice := ""
	if errors.As(err, &gwErr) {
		// A missing API key is the expected demo configuration, not a
		// failure worth warning the user about.
		if gwErr.Kind != llm.KindUnavailable {
			notice = gwErr.Notice()
		}
	}
	e.logger.Warn("ai gateway failed, using template fallback",
		zap.String("niche", niche.ID),
		zap.Error(err),
	)

	return e.fallback(userMessage, niche, ob, notice)
}

func (e *ReplyEngine) fallback(userMessage string, niche *domain.Niche, ob domain.Onboarding, notice string) (result ReplyResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("template fallback panicked", zap.Any("panic", r))
			result = ReplyResult{Text: replyTechnicalDifficulty, Source: domain.SourceError}
		}
	}()

	return ReplyResult{
		Text:   TemplateRespond(userMessage, niche, ob),
		Source: domain.SourceFallback,
		Notice: notice,
	}
}
