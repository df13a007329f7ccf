package service

import (
	"fmt"
	"strings"

	"github.com/atendai/atendai/internal/domain"
)

// BuildSystemPrompt assembles the instruction block sent to the AI
// gateway: the niche prompt, the live conversation context, one sentence
// per enabled behavior rule in fixed order, the niche restrictions, and
// the fixed demo-environment closing. Context fields are only omitted
// when their source value is empty. The result is recomputed on every
// call because context values change mid-conversation.
func BuildSystemPrompt(niche *domain.Niche, ob domain.Onboarding) string {
	var b strings.Builder

	b.WriteString(niche.SystemPrompt)
	b.WriteString("\n\n")

	b.WriteString("=== CONTEXTO DO ATENDIMENTO ===\n")
	if ob.UserName != "" {
		fmt.Fprintf(&b, "- Nome do cliente: %s\n", ob.UserName)
	}
	if ob.Phone != "" {
		fmt.Fprintf(&b, "- Telefone: %s\n", ob.Phone)
	}
	if ob.BusinessName != "" {
		fmt.Fprintf(&b, "- Nome do negócio: %s\n", ob.BusinessName)
	}
	if ob.ExtraValue != "" {
		fmt.Fprintf(&b, "- %s: %s\n", niche.Onboarding.ExtraFieldName, ob.ExtraValue)
	}
	b.WriteString("\n")

	b.WriteString("=== REGRAS DE COMPORTAMENTO ===\n")
	if niche.Rules.UseVariables {
		b.WriteString("- SEMPRE use o nome do cliente e do negócio nas respostas quando fizer sentido.\n")
	}
	if niche.Rules.OneQuestionAtTime {
		b.WriteString("- Faça apenas UMA pergunta por vez.\n")
	}
	if niche.Rules.SuggestNextSteps {
		b.WriteString("- Sempre sugira o próximo passo (agendar, conhecer, tirar dúvida).\n")
	}
	if niche.Rules.KeepResponsesShort {
		b.WriteString("- Mantenha as respostas curtas e objetivas (máximo 3-4 frases).\n")
	}

	if niche.Restrictions != "" {
		fmt.Fprintf(&b, "\n=== RESTRIÇÕES ===\n%s\n", niche.Restrictions)
	}

	b.WriteString("\n=== INSTRUÇÕES ESPECIAIS ===\n")
	b.WriteString("- Quando anotar algo importante, inclua: \"✅ Anotado (demo): [resumo]\"\n")
	b.WriteString("- Este é um ambiente de demonstração. Simule agendamentos e anotações.\n")
	b.WriteString("- Seja sempre empático e profissional.\n")
	b.WriteString("- Responda em português brasileiro.\n")

	return b.String()
}
