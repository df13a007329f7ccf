package domain

import "time"

// Tone is the closed set of agent voice presets
type Tone string

const (
	ToneFormal   Tone = "formal"
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
	ToneCustom   Tone = "custom"
)

// Valid reports whether t is a known tone
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneNeutral, ToneFriendly, ToneCustom:
		return true
	}
	return false
}

// Intent is a keyword-triggered canned response template
type Intent struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Template string   `json:"template"`
}

// QuickReply is a pre-authored message inserted into the input box
type QuickReply struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// OnboardingScript holds the scripted copy for the pre-chat phase
type OnboardingScript struct {
	Greeting       string `json:"greeting"`
	AskName        string `json:"ask_name"`
	AskBusiness    string `json:"ask_business"`
	BusinessLabel  string `json:"business_label"`
	AskExtra       string `json:"ask_extra"`
	ExtraFieldName string `json:"extra_field_name"`
}

// Rules are the behavior flags emitted into the system prompt
type Rules struct {
	UseVariables       bool `json:"use_variables"`
	OneQuestionAtTime  bool `json:"one_question_at_time"`
	SuggestNextSteps   bool `json:"suggest_next_steps"`
	KeepResponsesShort bool `json:"keep_responses_short"`
}

// Niche is a business-vertical agent profile
type Niche struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Icon         string           `json:"icon"`
	AgentName    string           `json:"agent_name"`
	Tone         Tone             `json:"tone"`
	SystemPrompt string           `json:"system_prompt"`
	Onboarding   OnboardingScript `json:"onboarding"`
	Intents      []Intent         `json:"intents"`
	QuickReplies []QuickReply     `json:"quick_replies"`
	Rules        Rules            `json:"rules"`
	Restrictions string           `json:"restrictions"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CreateNicheRequest is the request to create a niche
type CreateNicheRequest struct {
	ID           string           `json:"id" binding:"required"`
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	Icon         string           `json:"icon"`
	AgentName    string           `json:"agent_name" binding:"required"`
	Tone         Tone             `json:"tone"`
	SystemPrompt string           `json:"system_prompt"`
	Onboarding   OnboardingScript `json:"onboarding"`
	Intents      []Intent         `json:"intents"`
	QuickReplies []QuickReply     `json:"quick_replies"`
	Rules        Rules            `json:"rules"`
	Restrictions string           `json:"restrictions"`
}

// UpdateNicheRequest is the request to update a niche. The id is immutable
// and taken from the route, never from the body.
type UpdateNicheRequest struct {
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Icon         string            `json:"icon,omitempty"`
	AgentName    string            `json:"agent_name,omitempty"`
	Tone         Tone              `json:"tone,omitempty"`
	SystemPrompt string            `json:"system_prompt,omitempty"`
	Onboarding   *OnboardingScript `json:"onboarding,omitempty"`
	Intents      []Intent          `json:"intents,omitempty"`
	QuickReplies []QuickReply      `json:"quick_replies,omitempty"`
	Rules        *Rules            `json:"rules,omitempty"`
	Restrictions *string           `json:"restrictions,omitempty"`
}

// DefaultFallbackTemplate is the catalog-wide reply used when no intent
// keyword matches the user message.
const DefaultFallbackTemplate = "Desculpe, {USER_NAME}, não entendi completamente. Pode reformular sua pergunta? Ou se preferir, posso transferir para um atendente humano da {BUSINESS_NAME}."
