package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/llm"
	"github.com/atendai/atendai/internal/repository"
)

type chatFixture struct {
	svc      *ChatService
	convRepo *repository.ConversationRepository
	gateway  *fakeGateway
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nicheRepo := repository.NewNicheRepository(db)
	require.NoError(t, nicheRepo.Seed())

	convRepo := repository.NewConversationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// no API key configured, so the reply path always lands on templates
	gw := &fakeGateway{err: &llm.Error{Kind: llm.KindUnavailable}}
	svc := NewChatService(
		nicheRepo, convRepo, settingsRepo,
		NewOnboardingMachine(nil),
		NewReplyEngine(gw, zap.NewNop()),
		0, zap.NewNop(),
	)

	return &chatFixture{svc: svc, convRepo: convRepo, gateway: gw}
}

func TestChatFlowEndToEnd(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
	assert.Contains(t, view.Messages[0].Content, "Dr. Assistente")
	assert.Equal(t, domain.StepCollectName, view.Conversation.Onboarding.Step)
	id := view.Conversation.ID

	resp, err := f.svc.SendMessage(ctx, id, "Maria")
	require.NoError(t, err)
	assert.Contains(t, resp.Message.Content, "Maria")
	assert.Empty(t, resp.Source)

	resp, err = f.svc.SendMessage(ctx, id, "pular")
	require.NoError(t, err)
	assert.Equal(t, "Beleza! Como posso te ajudar hoje?", resp.Message.Content)

	view, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepComplete, view.Conversation.Onboarding.Step)
	assert.Equal(t, "Maria", view.Conversation.Onboarding.UserName)
	assert.Empty(t, view.Conversation.Onboarding.Phone)

	resp, err = f.svc.SendMessage(ctx, id, "Quero agendar uma consulta")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, resp.Source)
	assert.Empty(t, resp.Notice)
	assert.Contains(t, resp.Message.Content, "Maria")
	assert.NotContains(t, resp.Message.Content, "{USER_NAME}")
	assert.NotContains(t, resp.Message.Content, "{BUSINESS_NAME}")

	// greeting plus three user/assistant pairs, strictly chronological
	view, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Messages, 7)
	wantRoles := []domain.Role{
		domain.RoleAssistant,
		domain.RoleUser, domain.RoleAssistant,
		domain.RoleUser, domain.RoleAssistant,
		domain.RoleUser, domain.RoleAssistant,
	}
	for i, msg := range view.Messages {
		assert.Equal(t, wantRoles[i], msg.Role, "message %d", i)
	}
}

func TestChatHistoryExcludesCurrentTurn(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	id := view.Conversation.ID

	_, err = f.svc.SendMessage(ctx, id, "Maria")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, id, "11 99999-8888")
	require.NoError(t, err)

	f.gateway.err = nil
	f.gateway.text = "Posso ajudar com isso."
	_, err = f.svc.SendMessage(ctx, id, "Quais são os valores?")
	require.NoError(t, err)

	// greeting, two onboarding pairs, then the current question once
	msgs := f.gateway.lastReq.Messages
	require.Len(t, msgs, 6)
	assert.Equal(t, "Quais são os valores?", msgs[5].Content)
	assert.Equal(t, domain.RoleUser, msgs[5].Role)
	assert.Contains(t, f.gateway.lastReq.SystemPrompt, "Telefone: 11999998888")
}

func TestStartUnknownNiche(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.Start(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.SendMessage(context.Background(), "missing", "oi")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReset(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	id := view.Conversation.ID

	_, err = f.svc.SendMessage(ctx, id, "Maria")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, id, "pular")
	require.NoError(t, err)

	view, err = f.svc.Reset(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Messages, 1)
	assert.Contains(t, view.Messages[0].Content, "Dr. Assistente")
	assert.Equal(t, domain.StepCollectName, view.Conversation.Onboarding.Step)
	assert.Empty(t, view.Conversation.Onboarding.UserName)
	assert.Equal(t, int64(1), view.Conversation.Generation)

	// the wiped log holds only the fresh greeting
	view, err = f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, view.Messages, 1)
}

func TestResetDropsPendingWrites(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	id := view.Conversation.ID
	stale := view.Conversation.Generation

	_, err = f.svc.Reset(ctx, id)
	require.NoError(t, err)

	err = f.convRepo.CreateMessage(&domain.Message{
		ConversationID: id,
		Role:           domain.RoleAssistant,
		Content:        "resposta atrasada",
	}, stale)
	assert.ErrorIs(t, err, domain.ErrStaleGeneration)

	err = f.convRepo.UpdateOnboarding(id, domain.Onboarding{Step: domain.StepComplete}, stale)
	assert.ErrorIs(t, err, domain.ErrStaleGeneration)
}

func TestSendMessageRejectsConcurrentTurn(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	id := view.Conversation.ID

	require.True(t, f.svc.acquire(id))
	defer f.svc.release(id)

	_, err = f.svc.SendMessage(ctx, id, "Maria")
	assert.ErrorIs(t, err, domain.ErrReplyInFlight)
}

func TestTranscript(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	view, err := f.svc.Start(ctx, "medico")
	require.NoError(t, err)
	id := view.Conversation.ID

	_, err = f.svc.SendMessage(ctx, id, "Maria")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, id, "pular")
	require.NoError(t, err)

	text, err := f.svc.Transcript(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, text, "=== Exportação de Conversa ===")
	assert.Contains(t, text, "Nicho: Médico")
	assert.Contains(t, text, "Agente: Dr. Assistente")
	assert.Contains(t, text, "Nome: Maria")
	assert.Contains(t, text, "Você:")
	assert.Contains(t, text, "Dr. Assistente:")
}
