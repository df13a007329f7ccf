package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atendai/atendai/internal/domain"
)

// NicheRepository handles niche catalog persistence
type NicheRepository struct {
	db *DB
}

// NewNicheRepository creates a new niche repository
func NewNicheRepository(db *DB) *NicheRepository {
	return &NicheRepository{db: db}
}

// Create creates a new niche. The id comes from the caller and is
// immutable afterwards.
func (r *NicheRepository) Create(niche *domain.Niche) error {
	now := time.Now()
	niche.CreatedAt = now
	niche.UpdatedAt = now

	onboardingJSON, _ := json.Marshal(niche.Onboarding)
	intentsJSON, _ := json.Marshal(niche.Intents)
	quickRepliesJSON, _ := json.Marshal(niche.QuickReplies)
	rulesJSON, _ := json.Marshal(niche.Rules)

	_, err := r.db.Exec(`
		INSERT INTO niches (id, name, description, icon, agent_name, tone, system_prompt,
			onboarding, intents, quick_replies, rules, restrictions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, niche.ID, niche.Name, niche.Description, niche.Icon, niche.AgentName,
		string(niche.Tone), niche.SystemPrompt, string(onboardingJSON),
		string(intentsJSON), string(quickRepliesJSON), string(rulesJSON),
		niche.Restrictions, niche.CreatedAt, niche.UpdatedAt)

	return err
}

// Get retrieves a niche by ID
func (r *NicheRepository) Get(id string) (*domain.Niche, error) {
	row := r.db.QueryRow(`
		SELECT id, name, description, icon, agent_name, tone, system_prompt,
			onboarding, intents, quick_replies, rules, restrictions, created_at, updated_at
		FROM niches WHERE id = ?
	`, id)

	niche, err := scanNiche(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return niche, nil
}

// List retrieves all niches in creation order
func (r *NicheRepository) List() ([]*domain.Niche, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, icon, agent_name, tone, system_prompt,
			onboarding, intents, quick_replies, rules, restrictions, created_at, updated_at
		FROM niches ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var niches []*domain.Niche
	for rows.Next() {
		niche, err := scanNiche(rows.Scan)
		if err != nil {
			return nil, err
		}
		niches = append(niches, niche)
	}

	return niches, rows.Err()
}

// Update updates a niche; the id never changes
func (r *NicheRepository) Update(niche *domain.Niche) error {
	niche.UpdatedAt = time.Now()

	onboardingJSON, _ := json.Marshal(niche.Onboarding)
	intentsJSON, _ := json.Marshal(niche.Intents)
	quickRepliesJSON, _ := json.Marshal(niche.QuickReplies)
	rulesJSON, _ := json.Marshal(niche.Rules)

	result, err := r.db.Exec(`
		UPDATE niches SET name = ?, description = ?, icon = ?, agent_name = ?, tone = ?,
			system_prompt = ?, onboarding = ?, intents = ?, quick_replies = ?, rules = ?,
			restrictions = ?, updated_at = ?
		WHERE id = ?
	`, niche.Name, niche.Description, niche.Icon, niche.AgentName, string(niche.Tone),
		niche.SystemPrompt, string(onboardingJSON), string(intentsJSON),
		string(quickRepliesJSON), string(rulesJSON), niche.Restrictions,
		niche.UpdatedAt, niche.ID)

	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("niche not found: %s", niche.ID)
	}

	return nil
}

// Delete deletes a niche
func (r *NicheRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM niches WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("niche not found: %s", id)
	}

	return nil
}

// Count returns the number of niches
func (r *NicheRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM niches`).Scan(&count)
	return count, err
}

// Seed inserts the default catalog when the table is empty
func (r *NicheRepository) Seed() error {
	count, err := r.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, niche := range domain.DefaultNiches() {
		if err := r.Create(niche); err != nil {
			return fmt.Errorf("failed to seed niche %s: %w", niche.ID, err)
		}
	}
	return nil
}

// ReplaceAll swaps the whole catalog in one transaction, used by import
// and reset-to-defaults. Conversations referencing removed niches cascade.
func (r *NicheRepository) ReplaceAll(niches []*domain.Niche) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM niches`); err != nil {
		return err
	}

	now := time.Now()
	for _, niche := range niches {
		onboardingJSON, _ := json.Marshal(niche.Onboarding)
		intentsJSON, _ := json.Marshal(niche.Intents)
		quickRepliesJSON, _ := json.Marshal(niche.QuickReplies)
		rulesJSON, _ := json.Marshal(niche.Rules)

		createdAt := niche.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		if _, err := tx.Exec(`
			INSERT INTO niches (id, name, description, icon, agent_name, tone, system_prompt,
				onboarding, intents, quick_replies, rules, restrictions, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, niche.ID, niche.Name, niche.Description, niche.Icon, niche.AgentName,
			string(niche.Tone), niche.SystemPrompt, string(onboardingJSON),
			string(intentsJSON), string(quickRepliesJSON), string(rulesJSON),
			niche.Restrictions, createdAt, now); err != nil {
			return fmt.Errorf("failed to import niche %s: %w", niche.ID, err)
		}
	}

	return tx.Commit()
}

type scanFunc func(dest ...any) error

func scanNiche(scan scanFunc) (*domain.Niche, error) {
	niche := &domain.Niche{}
	var tone string
	var onboardingJSON, intentsJSON, quickRepliesJSON, rulesJSON string

	err := scan(&niche.ID, &niche.Name, &niche.Description, &niche.Icon,
		&niche.AgentName, &tone, &niche.SystemPrompt, &onboardingJSON,
		&intentsJSON, &quickRepliesJSON, &rulesJSON, &niche.Restrictions,
		&niche.CreatedAt, &niche.UpdatedAt)
	if err != nil {
		return nil, err
	}

	niche.Tone = domain.Tone(tone)
	json.Unmarshal([]byte(onboardingJSON), &niche.Onboarding)
	json.Unmarshal([]byte(intentsJSON), &niche.Intents)
	json.Unmarshal([]byte(quickRepliesJSON), &niche.QuickReplies)
	json.Unmarshal([]byte(rulesJSON), &niche.Rules)

	return niche, nil
}
