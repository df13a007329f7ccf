package domain

import "time"

// Role is a message author
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// OnboardingStep is the scripted pre-chat phase the conversation is in.
// Steps only ever move forward; Complete is terminal.
type OnboardingStep string

const (
	StepGreeting     OnboardingStep = "greeting"
	StepCollectName  OnboardingStep = "collect_name"
	StepCollectPhone OnboardingStep = "collect_phone"
	StepComplete     OnboardingStep = "complete"
)

// Valid reports whether s is a known step
func (s OnboardingStep) Valid() bool {
	switch s {
	case StepGreeting, StepCollectName, StepCollectPhone, StepComplete:
		return true
	}
	return false
}

// Message is a single chat turn. The message log is append-only.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// Onboarding holds the fields collected during the scripted phase
type Onboarding struct {
	Step         OnboardingStep `json:"step"`
	UserName     string         `json:"user_name"`
	Phone        string         `json:"phone"`
	BusinessName string         `json:"business_name"`
	ExtraValue   string         `json:"extra_value"`
}

// Conversation is one widget chat session. Generation increments on every
// reset so stale reply computations can be detected and discarded.
type Conversation struct {
	ID         string     `json:"id"`
	NicheID    string     `json:"niche_id"`
	Onboarding Onboarding `json:"onboarding"`
	Generation int64      `json:"generation"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ReplySource tags where an assistant reply came from
type ReplySource string

const (
	SourceLLM      ReplySource = "llm"
	SourceFallback ReplySource = "fallback"
	SourceError    ReplySource = "error"
)

// StartConversationRequest is the request to open a conversation
type StartConversationRequest struct {
	NicheID string `json:"niche_id" binding:"required"`
}

// SendMessageRequest is the request to send a chat turn
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessageResponse is the reply to a chat turn. Notice carries a
// non-blocking user-facing warning (for example after an AI failure);
// the conversation itself always continues.
type SendMessageResponse struct {
	ConversationID string      `json:"conversation_id"`
	Message        *Message    `json:"message"`
	Source         ReplySource `json:"source,omitempty"`
	Notice         string      `json:"notice,omitempty"`
}

// ConversationView is a conversation plus its message log
type ConversationView struct {
	Conversation *Conversation `json:"conversation"`
	Messages     []*Message    `json:"messages"`
}

// Stats represents system statistics
type Stats struct {
	TotalNiches        int `json:"total_niches"`
	TotalConversations int `json:"total_conversations"`
	TotalMessages      int `json:"total_messages"`
	TotalChats         int `json:"total_chats"`
}
