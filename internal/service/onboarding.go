package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/atendai/atendai/internal/domain"
)

// Skip patterns are matched against the folded (lower-cased,
// accent-stripped) message, so one spelling covers both accented and
// plain variants.
var builtinSkipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^pular$`),
	regexp.MustCompile(`^prefiro nao$`),
	regexp.MustCompile(`nao\s+quero\s+informar`),
	regexp.MustCompile(`nao\s+vou\s+informar`),
	regexp.MustCompile(`sem\s+nome`),
	regexp.MustCompile(`anonimo`),
}

const (
	replyNameSkipped  = "Sem problemas. Como posso te ajudar hoje?"
	replyAskPhone     = `Perfeito, %s! Se quiser, pode me passar um telefone para confirmação (opcional). Se preferir, diga "pular".`
	replyPhoneSkipped = "Beleza! Como posso te ajudar hoje?"
	replyPhoneSaved   = "Perfeito! Como posso te ajudar hoje?"
	replyPhoneInvalid = "Sem problemas. Se quiser depois, me mande seu telefone (opcional). Como posso te ajudar hoje?"
	defaultGreeting   = "Olá! Eu sou {AGENT_NAME}. Qual é o seu nome?"
	phoneMinDigits    = 8
	phoneMaxDigits    = 13
)

// OnboardingMachine drives the scripted pre-chat phase. Collection is
// strictly sequential and best-effort: refused or invalid input never
// blocks progress, the conversation always keeps moving.
type OnboardingMachine struct {
	skipPhrases []string
}

// NewOnboardingMachine creates the machine; extraSkipPhrases extend the
// built-in skip vocabulary (matched as folded substrings).
func NewOnboardingMachine(extraSkipPhrases []string) *OnboardingMachine {
	phrases := make([]string, 0, len(extraSkipPhrases))
	for _, p := range extraSkipPhrases {
		if folded := Fold(p); folded != "" {
			phrases = append(phrases, folded)
		}
	}
	return &OnboardingMachine{skipPhrases: phrases}
}

// FoldAccents trims and strips diacritics, preserving case
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return folded
}

// Fold lower-cases, trims, and strips diacritics
func Fold(s string) string {
	return strings.ToLower(FoldAccents(s))
}

// IsSkipMessage reports whether the user declined to provide the value.
// Empty or whitespace-only input counts as a skip.
func (m *OnboardingMachine) IsSkipMessage(message string) bool {
	text := Fold(message)
	if text == "" {
		return true
	}
	for _, p := range builtinSkipPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	for _, phrase := range m.skipPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// NormalizePhone strips non-digits; fewer than 8 digits is treated as
// absent, more than 13 is truncated to the first 13.
func NormalizePhone(message string) string {
	var b strings.Builder
	for _, r := range message {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < phoneMinDigits {
		return ""
	}
	if len(digits) > phoneMaxDigits {
		return digits[:phoneMaxDigits]
	}
	return digits
}

// Greeting synthesizes the opening assistant message from the niche
// script and returns the onboarding state advanced to name collection.
func (m *OnboardingMachine) Greeting(niche *domain.Niche) (string, domain.Onboarding) {
	template := niche.Onboarding.Greeting
	if template == "" {
		template = defaultGreeting
	}
	text := strings.ReplaceAll(template, "{AGENT_NAME}", niche.AgentName)
	return text, domain.Onboarding{Step: domain.StepCollectName}
}

// Advance consumes one user message while onboarding is incomplete and
// returns the new state plus the scripted reply. It must not be called
// once the state is complete.
func (m *OnboardingMachine) Advance(ob domain.Onboarding, userMessage string) (domain.Onboarding, string) {
	switch ob.Step {
	case domain.StepCollectName:
		if m.IsSkipMessage(userMessage) {
			ob.UserName = ""
			ob.Step = domain.StepComplete
			return ob, replyNameSkipped
		}
		ob.UserName = strings.TrimSpace(userMessage)
		ob.Step = domain.StepCollectPhone
		return ob, fmt.Sprintf(replyAskPhone, ob.UserName)

	case domain.StepCollectPhone:
		if m.IsSkipMessage(userMessage) {
			ob.Phone = ""
			ob.Step = domain.StepComplete
			return ob, replyPhoneSkipped
		}
		phone := NormalizePhone(userMessage)
		ob.Phone = phone
		ob.Step = domain.StepComplete
		if phone != "" {
			return ob, replyPhoneSaved
		}
		return ob, replyPhoneInvalid

	default:
		// greeting never consumes user input; complete never re-enters
		return ob, ""
	}
}
