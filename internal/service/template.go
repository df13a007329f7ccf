package service

import (
	"strings"

	"github.com/atendai/atendai/internal/domain"
)

// MatchIntent scans intents in catalog order and, per intent, keywords in
// declared order, returning the first intent whose keyword appears in the
// message (case-insensitive substring). First match wins; there is no
// scoring. Returns nil when nothing matches.
func MatchIntent(message string, intents []domain.Intent) *domain.Intent {
	lower := strings.ToLower(message)

	for i := range intents {
		for _, keyword := range intents[i].Keywords {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return &intents[i]
			}
		}
	}

	return nil
}

// FillTemplate replaces every occurrence of the five placeholder tokens
// with context values, using generic defaults where a value is empty.
func FillTemplate(template string, niche *domain.Niche, ob domain.Onboarding) string {
	userName := ob.UserName
	if userName == "" {
		userName = "você"
	}
	businessName := ob.BusinessName
	if businessName == "" {
		businessName = "nossa empresa"
	}

	out := strings.ReplaceAll(template, "{USER_NAME}", userName)
	out = strings.ReplaceAll(out, "{BUSINESS_NAME}", businessName)
	out = strings.ReplaceAll(out, "{EXTRA_VALUE}", ob.ExtraValue)
	out = strings.ReplaceAll(out, "{AGENT_NAME}", niche.AgentName)
	out = strings.ReplaceAll(out, "{NICHO}", niche.Name)
	return out
}

// TemplateRespond is the deterministic fallback reply path: the matched
// intent's template, or the catalog-wide fallback when no keyword
// matches, filled with the conversation context.
func TemplateRespond(message string, niche *domain.Niche, ob domain.Onboarding) string {
	if intent := MatchIntent(message, niche.Intents); intent != nil {
		return FillTemplate(intent.Template, niche, ob)
	}
	return FillTemplate(domain.DefaultFallbackTemplate, niche, ob)
}
