package service

import (
	"fmt"
	"strings"

	"github.com/atendai/atendai/internal/domain"
)

// RenderTranscript produces the plain-text conversation export: a header
// with the niche and agent, the collected onboarding fields, then every
// message as "[time] role: content".
func RenderTranscript(niche *domain.Niche, conv *domain.Conversation, messages []*domain.Message) string {
	var b strings.Builder

	b.WriteString("=== Exportação de Conversa ===\n")
	fmt.Fprintf(&b, "Nicho: %s\n", niche.Name)
	fmt.Fprintf(&b, "Agente: %s\n", niche.AgentName)

	b.WriteString("\n=== Dados Coletados ===\n")
	fmt.Fprintf(&b, "Nome: %s\n", conv.Onboarding.UserName)
	fmt.Fprintf(&b, "Telefone: %s\n", conv.Onboarding.Phone)

	b.WriteString("\n=== Histórico ===\n\n")
	for _, msg := range messages {
		role := niche.AgentName
		if msg.Role == domain.RoleUser {
			role = "Você"
		}
		fmt.Fprintf(&b, "[%s] %s:\n%s\n\n", msg.CreatedAt.Format("15:04:05"), role, msg.Content)
	}

	return b.String()
}
