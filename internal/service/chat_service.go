package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/llm"
	"github.com/atendai/atendai/internal/repository"
)

// ChatService owns the conversation lifecycle and routes each user turn
// through the onboarding machine or the reply engine. At most one reply
// is in flight per conversation; a concurrent turn is rejected, never
// queued. Every persisted write is guarded by the conversation's
// generation counter so a reset while a reply is pending discards the
// stale result instead of applying it.
type ChatService struct {
	nicheRepo    *repository.NicheRepository
	convRepo     *repository.ConversationRepository
	settingsRepo *repository.SettingsRepository
	machine      *OnboardingMachine
	engine       *ReplyEngine
	typingDelay  time.Duration
	logger       *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewChatService creates a new chat service
func NewChatService(
	nicheRepo *repository.NicheRepository,
	convRepo *repository.ConversationRepository,
	settingsRepo *repository.SettingsRepository,
	machine *OnboardingMachine,
	engine *ReplyEngine,
	typingDelay time.Duration,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		nicheRepo:    nicheRepo,
		convRepo:     convRepo,
		settingsRepo: settingsRepo,
		machine:      machine,
		engine:       engine,
		typingDelay:  typingDelay,
		logger:       logger,
		inflight:     make(map[string]struct{}),
	}
}

// Start opens a conversation for a niche and emits the scripted greeting,
// advancing onboarding to name collection.
func (s *ChatService) Start(ctx context.Context, nicheID string) (*domain.ConversationView, error) {
	niche, err := s.nicheRepo.Get(nicheID)
	if err != nil {
		return nil, err
	}
	if niche == nil {
		return nil, domain.ErrNotFound
	}

	greeting, ob := s.machine.Greeting(niche)

	conv := &domain.Conversation{NicheID: nicheID, Onboarding: ob}
	if err := s.convRepo.Create(conv); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        greeting,
	}
	if err := s.convRepo.CreateMessage(msg, conv.Generation); err != nil {
		return nil, err
	}

	return &domain.ConversationView{
		Conversation: conv,
		Messages:     []*domain.Message{msg},
	}, nil
}

// Get returns a conversation and its message log
func (s *ChatService) Get(ctx context.Context, id string) (*domain.ConversationView, error) {
	conv, err := s.convRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}

	messages, err := s.convRepo.GetMessages(id)
	if err != nil {
		return nil, err
	}

	return &domain.ConversationView{Conversation: conv, Messages: messages}, nil
}

// SendMessage handles one user turn end to end. The user message is
// always appended before the assistant computation begins; the assistant
// message is appended after it resolves, so the log stays chronological.
func (s *ChatService) SendMessage(ctx context.Context, id string, content string) (*domain.SendMessageResponse, error) {
	content = strings.TrimSpace(content)

	conv, err := s.convRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}

	niche, err := s.nicheRepo.Get(conv.NicheID)
	if err != nil {
		return nil, err
	}
	if niche == nil {
		return nil, domain.ErrNotFound
	}

	if !s.acquire(id) {
		return nil, domain.ErrReplyInFlight
	}
	defer s.release(id)

	generation := conv.Generation

	// History for the AI path is captured before the current turn is
	// persisted, so the current message is appended exactly once.
	prior, err := s.convRepo.GetMessages(id)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ConversationID: id,
		Role:           domain.RoleUser,
		Content:        content,
	}
	if err := s.convRepo.CreateMessage(userMsg, generation); err != nil {
		return nil, err
	}

	if err := s.simulateTyping(ctx); err != nil {
		return nil, err
	}

	var resp *domain.SendMessageResponse
	if conv.Onboarding.Step != domain.StepComplete {
		resp, err = s.onboardingTurn(conv, content, generation)
	} else {
		resp, err = s.replyTurn(ctx, conv, niche, prior, content, generation)
	}
	if err != nil {
		return nil, err
	}

	if err := s.convRepo.Touch(id); err != nil {
		s.logger.Warn("failed to touch conversation", zap.String("conversation", id), zap.Error(err))
	}

	return resp, nil
}

func (s *ChatService) onboardingTurn(conv *domain.Conversation, content string, generation int64) (*domain.SendMessageResponse, error) {
	ob, reply := s.machine.Advance(conv.Onboarding, content)

	if err := s.convRepo.UpdateOnboarding(conv.ID, ob, generation); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        reply,
	}
	if err := s.convRepo.CreateMessage(msg, generation); err != nil {
		return nil, err
	}

	return &domain.SendMessageResponse{
		ConversationID: conv.ID,
		Message:        msg,
	}, nil
}

func (s *ChatService) replyTurn(
	ctx context.Context,
	conv *domain.Conversation,
	niche *domain.Niche,
	prior []*domain.Message,
	content string,
	generation int64,
) (*domain.SendMessageResponse, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	history := make([]llm.ChatMessage, 0, len(prior))
	for _, m := range prior {
		history = append(history, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}

	result := s.engine.Generate(ctx, niche, conv.Onboarding, history, content, settings)

	msg := &domain.Message{
		ConversationID: conv.ID,
		Role:           domain.RoleAssistant,
		Content:        result.Text,
	}
	if err := s.convRepo.CreateMessage(msg, generation); err != nil {
		return nil, err
	}

	return &domain.SendMessageResponse{
		ConversationID: conv.ID,
		Message:        msg,
		Source:         result.Source,
		Notice:         result.Notice,
	}, nil
}

// Reset discards the conversation state, bumps the generation so any
// pending reply is dropped, and re-emits the greeting.
func (s *ChatService) Reset(ctx context.Context, id string) (*domain.ConversationView, error) {
	conv, err := s.convRepo.Reset(id)
	if err != nil {
		return nil, err
	}

	niche, err := s.nicheRepo.Get(conv.NicheID)
	if err != nil {
		return nil, err
	}
	if niche == nil {
		return nil, domain.ErrNotFound
	}

	greeting, ob := s.machine.Greeting(niche)
	if err := s.convRepo.UpdateOnboarding(id, ob, conv.Generation); err != nil {
		return nil, err
	}
	conv.Onboarding = ob

	msg := &domain.Message{
		ConversationID: id,
		Role:           domain.RoleAssistant,
		Content:        greeting,
	}
	if err := s.convRepo.CreateMessage(msg, conv.Generation); err != nil {
		return nil, err
	}

	return &domain.ConversationView{
		Conversation: conv,
		Messages:     []*domain.Message{msg},
	}, nil
}

// Transcript renders the conversation as plain text for download
func (s *ChatService) Transcript(ctx context.Context, id string) (string, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	niche, err := s.nicheRepo.Get(view.Conversation.NicheID)
	if err != nil {
		return "", err
	}
	if niche == nil {
		return "", domain.ErrNotFound
	}

	return RenderTranscript(niche, view.Conversation, view.Messages), nil
}

func (s *ChatService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *ChatService) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// simulateTyping holds the reply back briefly like an agent typing. It
// has no correctness role; ordering is enforced by the append sequence.
func (s *ChatService) simulateTyping(ctx context.Context) error {
	if s.typingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.typingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
