package service

import (
	"context"

	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/repository"
)

// PublicNiche is the widget-facing slice of a niche profile. The system
// prompt and restrictions never leave the server.
type PublicNiche struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Icon         string              `json:"icon"`
	AgentName    string              `json:"agent_name"`
	Tone         domain.Tone         `json:"tone"`
	QuickReplies []domain.QuickReply `json:"quick_replies"`
}

// WidgetConfigResponse is what the embedded widget loads on boot
type WidgetConfigResponse struct {
	AppName     string         `json:"app_name"`
	DemoWarning string         `json:"demo_warning"`
	Niches      []*PublicNiche `json:"niches"`
}

// WidgetService handles the public widget surface
type WidgetService struct {
	nicheRepo    *repository.NicheRepository
	settingsRepo *repository.SettingsRepository
	chatService  *ChatService
}

// NewWidgetService creates a new widget service
func NewWidgetService(
	nicheRepo *repository.NicheRepository,
	settingsRepo *repository.SettingsRepository,
	chatService *ChatService,
) *WidgetService {
	return &WidgetService{
		nicheRepo:    nicheRepo,
		settingsRepo: settingsRepo,
		chatService:  chatService,
	}
}

// GetConfig returns the widget boot configuration and niche selector list
func (s *WidgetService) GetConfig(ctx context.Context) (*WidgetConfigResponse, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	niches, err := s.nicheRepo.List()
	if err != nil {
		return nil, err
	}

	public := make([]*PublicNiche, 0, len(niches))
	for _, n := range niches {
		public = append(public, &PublicNiche{
			ID:           n.ID,
			Name:         n.Name,
			Description:  n.Description,
			Icon:         n.Icon,
			AgentName:    n.AgentName,
			Tone:         n.Tone,
			QuickReplies: n.QuickReplies,
		})
	}

	return &WidgetConfigResponse{
		AppName:     settings.AppName,
		DemoWarning: settings.DemoWarning,
		Niches:      public,
	}, nil
}

// Start opens a conversation
func (s *WidgetService) Start(ctx context.Context, nicheID string) (*domain.ConversationView, error) {
	return s.chatService.Start(ctx, nicheID)
}

// Get returns a conversation and its messages
func (s *WidgetService) Get(ctx context.Context, id string) (*domain.ConversationView, error) {
	return s.chatService.Get(ctx, id)
}

// SendMessage handles a chat turn
func (s *WidgetService) SendMessage(ctx context.Context, id, content string) (*domain.SendMessageResponse, error) {
	return s.chatService.SendMessage(ctx, id, content)
}

// Reset restarts a conversation from the greeting
func (s *WidgetService) Reset(ctx context.Context, id string) (*domain.ConversationView, error) {
	return s.chatService.Reset(ctx, id)
}

// Transcript renders a plain-text export of the conversation
func (s *WidgetService) Transcript(ctx context.Context, id string) (string, error) {
	return s.chatService.Transcript(ctx, id)
}
