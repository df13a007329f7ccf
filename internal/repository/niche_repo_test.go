package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendai/atendai/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNicheRoundTrip(t *testing.T) {
	repo := NewNicheRepository(newTestDB(t))

	niche := &domain.Niche{
		ID:           "barbearia",
		Name:         "Barbearia",
		AgentName:    "Seu Zé",
		Tone:         domain.ToneFriendly,
		SystemPrompt: "Você atende uma barbearia.",
		Onboarding:   domain.OnboardingScript{Greeting: "E aí! Eu sou {AGENT_NAME}. Qual seu nome?"},
		Intents: []domain.Intent{
			{ID: "corte", Name: "Corte", Keywords: []string{"corte", "cabelo"}, Template: "Bora, {USER_NAME}!"},
		},
		QuickReplies: []domain.QuickReply{{ID: "qr1", Label: "Agendar", Message: "Quero agendar"}},
		Rules:        domain.Rules{UseVariables: true, KeepResponsesShort: true},
		Restrictions: "Não fale de preços de produtos.",
	}
	require.NoError(t, repo.Create(niche))

	got, err := repo.Get("barbearia")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, niche.Name, got.Name)
	assert.Equal(t, niche.Tone, got.Tone)
	assert.Equal(t, niche.Onboarding, got.Onboarding)
	assert.Equal(t, niche.Intents, got.Intents)
	assert.Equal(t, niche.QuickReplies, got.QuickReplies)
	assert.Equal(t, niche.Rules, got.Rules)
	assert.Equal(t, niche.Restrictions, got.Restrictions)
}

func TestNicheGetMissing(t *testing.T) {
	repo := NewNicheRepository(newTestDB(t))

	got, err := repo.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := NewNicheRepository(newTestDB(t))

	require.NoError(t, repo.Seed())
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultNiches()), count)

	// a second seed on a populated table changes nothing
	require.NoError(t, repo.Seed())
	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(domain.DefaultNiches()), count)
}

func TestSeedSkipsEditedCatalog(t *testing.T) {
	repo := NewNicheRepository(newTestDB(t))
	require.NoError(t, repo.Seed())
	require.NoError(t, repo.Delete("medico"))

	// seeding must not resurrect a deleted default
	require.NoError(t, repo.Seed())
	got, err := repo.Get("medico")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReplaceAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewNicheRepository(db)
	require.NoError(t, repo.Seed())

	replacement := []*domain.Niche{
		{ID: "unico", Name: "Único", AgentName: "Uni", Tone: domain.ToneNeutral},
	}
	require.NoError(t, repo.ReplaceAll(replacement))

	niches, err := repo.List()
	require.NoError(t, err)
	require.Len(t, niches, 1)
	assert.Equal(t, "unico", niches[0].ID)
}

func TestReplaceAllCascadesConversations(t *testing.T) {
	db := newTestDB(t)
	nicheRepo := NewNicheRepository(db)
	require.NoError(t, nicheRepo.Seed())

	convRepo := NewConversationRepository(db)
	conv := &domain.Conversation{NicheID: "medico"}
	require.NoError(t, convRepo.Create(conv))
	require.NoError(t, convRepo.CreateMessage(&domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        "Olá!",
	}, 0))

	require.NoError(t, nicheRepo.ReplaceAll([]*domain.Niche{
		{ID: "outro", Name: "Outro", AgentName: "X", Tone: domain.ToneNeutral},
	}))

	got, err := convRepo.Get(conv.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	count, err := convRepo.CountMessages()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSettingsRoundTrip(t *testing.T) {
	repo := NewSettingsRepository(newTestDB(t))

	// an empty table falls back to defaults
	settings, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	settings.Model = "google/gemini-3-pro"
	settings.APIKey = "sk-demo"
	require.NoError(t, repo.Save(settings))

	got, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, got)

	// save is an upsert, not an insert
	settings.Temperature = 0.1
	require.NoError(t, repo.Save(settings))
	got, err = repo.Get()
	require.NoError(t, err)
	assert.Equal(t, 0.1, got.Temperature)
}
