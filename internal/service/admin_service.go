package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atendai/atendai/internal/config"
	"github.com/atendai/atendai/internal/domain"
	"github.com/atendai/atendai/internal/llm"
	"github.com/atendai/atendai/internal/repository"
)

// AdminService handles the catalog editor, global settings, backup and
// admin authentication.
type AdminService struct {
	nicheRepo    *repository.NicheRepository
	convRepo     *repository.ConversationRepository
	settingsRepo *repository.SettingsRepository
	gateway      *llm.Gateway
	username     string
	password     string
	jwtSecret    []byte
	sessionTTL   time.Duration
}

// NewAdminService creates a new admin service. When no JWT secret is
// configured a random one is generated, which invalidates sessions on
// restart; fine for a demo deployment.
func NewAdminService(
	nicheRepo *repository.NicheRepository,
	convRepo *repository.ConversationRepository,
	settingsRepo *repository.SettingsRepository,
	gateway *llm.Gateway,
	adminCfg config.AdminConfig,
) *AdminService {
	secret := []byte(adminCfg.JWTSecret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand failing means the platform has no entropy
			// source; nothing sensible to run with
			panic(err)
		}
		secret = []byte(hex.EncodeToString(buf))
	}

	ttl := adminCfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &AdminService{
		nicheRepo:    nicheRepo,
		convRepo:     convRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		username:     adminCfg.Username,
		password:     adminCfg.Password,
		jwtSecret:    secret,
		sessionTTL:   ttl,
	}
}

// JWTSecret exposes the signing secret for the auth middleware
func (s *AdminService) JWTSecret() []byte {
	return s.jwtSecret
}

// Login checks credentials and issues a session token. Both fields are
// compared accent-insensitively so "ícaro" and "icaro" both work on
// pt-BR keyboards; the username also ignores case, the password does not.
func (s *AdminService) Login(username, password string) (string, time.Time, error) {
	if Fold(username) != Fold(s.username) || FoldAccents(password) != FoldAccents(s.password) {
		return "", time.Time{}, domain.ErrUnauthorized
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   Fold(username),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Niche operations

func (s *AdminService) CreateNiche(ctx context.Context, req *domain.CreateNicheRequest) (*domain.Niche, error) {
	existing, err := s.nicheRepo.Get(req.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	tone := req.Tone
	if tone == "" {
		tone = domain.ToneNeutral
	}
	if !tone.Valid() {
		return nil, fmt.Errorf("%w: unknown tone %q", domain.ErrInvalidRequest, req.Tone)
	}

	intents, err := sanitizeIntents(req.Intents)
	if err != nil {
		return nil, err
	}

	niche := &domain.Niche{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		AgentName:    req.AgentName,
		Tone:         tone,
		SystemPrompt: req.SystemPrompt,
		Onboarding:   req.Onboarding,
		Intents:      intents,
		QuickReplies: req.QuickReplies,
		Rules:        req.Rules,
		Restrictions: req.Restrictions,
	}

	if err := s.nicheRepo.Create(niche); err != nil {
		return nil, err
	}
	return niche, nil
}

func (s *AdminService) GetNiche(ctx context.Context, id string) (*domain.Niche, error) {
	return s.nicheRepo.Get(id)
}

func (s *AdminService) ListNiches(ctx context.Context) ([]*domain.Niche, error) {
	return s.nicheRepo.List()
}

func (s *AdminService) UpdateNiche(ctx context.Context, id string, req *domain.UpdateNicheRequest) (*domain.Niche, error) {
	niche, err := s.nicheRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if niche == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != "" {
		niche.Name = req.Name
	}
	if req.Description != "" {
		niche.Description = req.Description
	}
	if req.Icon != "" {
		niche.Icon = req.Icon
	}
	if req.AgentName != "" {
		niche.AgentName = req.AgentName
	}
	if req.Tone != "" {
		if !req.Tone.Valid() {
			return nil, fmt.Errorf("%w: unknown tone %q", domain.ErrInvalidRequest, req.Tone)
		}
		niche.Tone = req.Tone
	}
	if req.SystemPrompt != "" {
		niche.SystemPrompt = req.SystemPrompt
	}
	if req.Onboarding != nil {
		niche.Onboarding = *req.Onboarding
	}
	if req.Intents != nil {
		intents, err := sanitizeIntents(req.Intents)
		if err != nil {
			return nil, err
		}
		niche.Intents = intents
	}
	if req.QuickReplies != nil {
		niche.QuickReplies = req.QuickReplies
	}
	if req.Rules != nil {
		niche.Rules = *req.Rules
	}
	if req.Restrictions != nil {
		niche.Restrictions = *req.Restrictions
	}

	if err := s.nicheRepo.Update(niche); err != nil {
		return nil, err
	}
	return niche, nil
}

func (s *AdminService) DeleteNiche(ctx context.Context, id string) error {
	return s.nicheRepo.Delete(id)
}

// ResetNiches restores the default catalog
func (s *AdminService) ResetNiches(ctx context.Context) ([]*domain.Niche, error) {
	if err := s.nicheRepo.ReplaceAll(domain.DefaultNiches()); err != nil {
		return nil, err
	}
	return s.nicheRepo.List()
}

// Settings operations

func (s *AdminService) GetSettings(ctx context.Context) (domain.Settings, error) {
	return s.settingsRepo.Get()
}

func (s *AdminService) UpdateSettings(ctx context.Context, req *domain.UpdateSettingsRequest) (domain.Settings, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return domain.Settings{}, err
	}

	if req.AppName != nil {
		settings.AppName = *req.AppName
	}
	if req.Model != nil {
		settings.Model = strings.TrimPrefix(strings.TrimSpace(*req.Model), "models/")
	}
	if req.Temperature != nil {
		settings.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		settings.TopP = *req.TopP
	}
	if req.MaxOutputTokens != nil {
		settings.MaxOutputTokens = *req.MaxOutputTokens
	}
	if req.DemoWarning != nil {
		settings.DemoWarning = *req.DemoWarning
	}
	if req.APIKey != nil {
		settings.APIKey = *req.APIKey
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// TestGateway probes the AI gateway with the stored key and model
func (s *AdminService) TestGateway(ctx context.Context) error {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return err
	}
	return s.gateway.Probe(ctx, settings.APIKey, settings.Model)
}

// Export returns the full catalog, settings and API key as one document
func (s *AdminService) Export(ctx context.Context) (*domain.ExportDocument, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	niches, err := s.nicheRepo.List()
	if err != nil {
		return nil, err
	}

	apiKey := settings.APIKey
	return &domain.ExportDocument{
		GlobalConfig: &settings,
		Niches:       niches,
		APIKey:       &apiKey,
	}, nil
}

// Import merges a backup document. Each top-level field that is present
// overwrites the stored value; absent fields stay untouched. Malformed
// JSON fails the whole import with nothing applied.
func (s *AdminService) Import(ctx context.Context, raw []byte) error {
	var doc domain.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: malformed backup document", domain.ErrInvalidRequest)
	}

	if doc.Niches != nil {
		for _, niche := range doc.Niches {
			if niche.ID == "" {
				return fmt.Errorf("%w: niche without id", domain.ErrInvalidRequest)
			}
		}
		if err := s.nicheRepo.ReplaceAll(doc.Niches); err != nil {
			return err
		}
	}

	if doc.GlobalConfig != nil || doc.APIKey != nil {
		settings, err := s.settingsRepo.Get()
		if err != nil {
			return err
		}
		if doc.GlobalConfig != nil {
			apiKey := settings.APIKey
			settings = *doc.GlobalConfig
			if settings.APIKey == "" {
				settings.APIKey = apiKey
			}
		}
		if doc.APIKey != nil {
			settings.APIKey = *doc.APIKey
		}
		if err := s.settingsRepo.Save(settings); err != nil {
			return err
		}
	}

	return nil
}

// GetStats returns system statistics
func (s *AdminService) GetStats(ctx context.Context) (*domain.Stats, error) {
	niches, err := s.nicheRepo.Count()
	if err != nil {
		return nil, err
	}
	conversations, err := s.convRepo.CountConversations()
	if err != nil {
		return nil, err
	}
	messages, err := s.convRepo.CountMessages()
	if err != nil {
		return nil, err
	}
	chats, err := s.convRepo.CountChats()
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalNiches:        niches,
		TotalConversations: conversations,
		TotalMessages:      messages,
		TotalChats:         chats,
	}, nil
}

// sanitizeIntents trims keywords and rejects intents left with none;
// matching needs at least one usable keyword per intent.
func sanitizeIntents(intents []domain.Intent) ([]domain.Intent, error) {
	out := make([]domain.Intent, 0, len(intents))
	for _, intent := range intents {
		keywords := make([]string, 0, len(intent.Keywords))
		for _, k := range intent.Keywords {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: intent %q has no keywords", domain.ErrInvalidRequest, intent.ID)
		}
		intent.Keywords = keywords
		out = append(out, intent)
	}
	return out, nil
}
