package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendai/atendai/internal/domain"
)

func TestIsSkipMessage(t *testing.T) {
	m := NewOnboardingMachine(nil)

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"literal pular", "pular", true},
		{"pular uppercase", "PULAR", true},
		{"pular padded", "  pular  ", true},
		{"prefiro nao with accent", "Prefiro não", true},
		{"prefiro nao without accent", "prefiro nao", true},
		{"nao quero informar", "não quero informar meu nome", true},
		{"nao vou informar", "nao vou informar", true},
		{"sem nome", "pode ser sem nome", true},
		{"anonimo with accent", "quero ficar anônimo", true},
		{"anonimo without accent", "anonimo", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"regular name", "Maria", false},
		{"pular as prefix only", "pularei a etapa", false},
		{"phrase containing nome alone", "meu nome é João", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsSkipMessage(tt.message))
		})
	}
}

func TestIsSkipMessageConfiguredPhrases(t *testing.T) {
	m := NewOnboardingMachine([]string{"skip", "não digo"})

	assert.True(t, m.IsSkipMessage("skip"))
	assert.True(t, m.IsSkipMessage("nao digo"))
	assert.False(t, m.IsSkipMessage("Mariana"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"no digits", "abc", ""},
		{"too few digits", "1234567", ""},
		{"exactly 8 digits", "99998888", "99998888"},
		{"11 digits unchanged", "11999998888", "11999998888"},
		{"formatted number", "(11) 99999-8888", "11999998888"},
		{"18 digits truncated to 13", "123456789012345678", "1234567890123"},
		{"digits with words", "meu número é 11 98765 4321", "11987654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.message))
		})
	}
}

func TestGreeting(t *testing.T) {
	m := NewOnboardingMachine(nil)
	niche := medicoNiche(t)

	text, ob := m.Greeting(niche)

	assert.Contains(t, text, "Dr. Assistente")
	assert.NotContains(t, text, "{AGENT_NAME}")
	assert.Equal(t, domain.StepCollectName, ob.Step)
}

func TestGreetingDefaultTemplate(t *testing.T) {
	m := NewOnboardingMachine(nil)
	niche := &domain.Niche{ID: "x", AgentName: "Atendente"}

	text, ob := m.Greeting(niche)

	assert.Contains(t, text, "Atendente")
	assert.Equal(t, domain.StepCollectName, ob.Step)
}

func TestAdvanceCollectName(t *testing.T) {
	m := NewOnboardingMachine(nil)

	t.Run("name is captured trimmed", func(t *testing.T) {
		ob, reply := m.Advance(domain.Onboarding{Step: domain.StepCollectName}, "  Maria  ")

		assert.Equal(t, domain.StepCollectPhone, ob.Step)
		assert.Equal(t, "Maria", ob.UserName)
		assert.Contains(t, reply, "Maria")
	})

	t.Run("skip jumps straight to complete", func(t *testing.T) {
		ob, reply := m.Advance(domain.Onboarding{Step: domain.StepCollectName}, "pular")

		assert.Equal(t, domain.StepComplete, ob.Step)
		assert.Empty(t, ob.UserName)
		assert.Equal(t, replyNameSkipped, reply)
	})
}

func TestAdvanceCollectPhone(t *testing.T) {
	m := NewOnboardingMachine(nil)
	base := domain.Onboarding{Step: domain.StepCollectPhone, UserName: "Maria"}

	t.Run("valid phone", func(t *testing.T) {
		ob, reply := m.Advance(base, "11 99999-8888")

		assert.Equal(t, domain.StepComplete, ob.Step)
		assert.Equal(t, "11999998888", ob.Phone)
		assert.Equal(t, replyPhoneSaved, reply)
	})

	t.Run("invalid phone still completes", func(t *testing.T) {
		ob, reply := m.Advance(base, "abc")

		assert.Equal(t, domain.StepComplete, ob.Step)
		assert.Empty(t, ob.Phone)
		assert.Equal(t, replyPhoneInvalid, reply)
	})

	t.Run("skip keeps collected name", func(t *testing.T) {
		ob, reply := m.Advance(base, "pular")

		assert.Equal(t, domain.StepComplete, ob.Step)
		assert.Equal(t, "Maria", ob.UserName)
		assert.Empty(t, ob.Phone)
		assert.Equal(t, replyPhoneSkipped, reply)
	})
}

func TestAdvanceNeverRevisitsCompletedSteps(t *testing.T) {
	m := NewOnboardingMachine(nil)

	ob, reply := m.Advance(domain.Onboarding{Step: domain.StepComplete, UserName: "Maria"}, "pular")

	assert.Equal(t, domain.StepComplete, ob.Step)
	assert.Equal(t, "Maria", ob.UserName)
	assert.Empty(t, reply)
}

func medicoNiche(t *testing.T) *domain.Niche {
	t.Helper()
	for _, n := range domain.DefaultNiches() {
		if n.ID == "medico" {
			return n
		}
	}
	require.FailNow(t, "medico niche missing from defaults")
	return nil
}
