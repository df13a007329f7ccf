package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendai/atendai/internal/domain"
)

func newConversationFixture(t *testing.T) (*ConversationRepository, *domain.Conversation) {
	t.Helper()
	db := newTestDB(t)
	nicheRepo := NewNicheRepository(db)
	require.NoError(t, nicheRepo.Seed())

	repo := NewConversationRepository(db)
	conv := &domain.Conversation{NicheID: "medico"}
	require.NoError(t, repo.Create(conv))
	return repo, conv
}

func TestCreateMessageStaleGenerationInsertsNothing(t *testing.T) {
	repo, conv := newConversationFixture(t)

	err := repo.CreateMessage(&domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        "resposta atrasada",
	}, conv.Generation+1)
	assert.ErrorIs(t, err, domain.ErrStaleGeneration)

	count, err := repo.CountMessages()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateMessageMissingConversation(t *testing.T) {
	repo, _ := newConversationFixture(t)

	err := repo.CreateMessage(&domain.Message{
		ConversationID: "missing",
		Role:           domain.RoleUser,
		Content:        "oi",
	}, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMessageAfterReset(t *testing.T) {
	repo, conv := newConversationFixture(t)
	stale := conv.Generation

	require.NoError(t, repo.CreateMessage(&domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleUser,
		Content:        "Maria",
	}, stale))

	fresh, err := repo.Reset(conv.ID)
	require.NoError(t, err)
	require.Equal(t, stale+1, fresh.Generation)

	// the old generation is rejected, the new one accepted
	err = repo.CreateMessage(&domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        "resposta atrasada",
	}, stale)
	assert.ErrorIs(t, err, domain.ErrStaleGeneration)

	require.NoError(t, repo.CreateMessage(&domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        "Olá!",
	}, fresh.Generation))

	messages, err := repo.GetMessages(conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Olá!", messages[0].Content)
}
