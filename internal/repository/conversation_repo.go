package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/atendai/atendai/internal/domain"
)

// ConversationRepository handles conversation and message persistence
type ConversationRepository struct {
	db *DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates a new conversation starting at the greeting step
func (r *ConversationRepository) Create(conv *domain.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if conv.Onboarding.Step == "" {
		conv.Onboarding.Step = domain.StepGreeting
	}
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO conversations (id, niche_id, step, user_name, phone, business_name, extra_value, generation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conv.ID, conv.NicheID, string(conv.Onboarding.Step), conv.Onboarding.UserName,
		conv.Onboarding.Phone, conv.Onboarding.BusinessName, conv.Onboarding.ExtraValue,
		conv.Generation, conv.CreatedAt, conv.UpdatedAt)

	return err
}

// Get retrieves a conversation by ID
func (r *ConversationRepository) Get(id string) (*domain.Conversation, error) {
	conv := &domain.Conversation{}
	var step string

	err := r.db.QueryRow(`
		SELECT id, niche_id, step, user_name, phone, business_name, extra_value, generation, created_at, updated_at
		FROM conversations WHERE id = ?
	`, id).Scan(&conv.ID, &conv.NicheID, &step, &conv.Onboarding.UserName,
		&conv.Onboarding.Phone, &conv.Onboarding.BusinessName, &conv.Onboarding.ExtraValue,
		&conv.Generation, &conv.CreatedAt, &conv.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	conv.Onboarding.Step = domain.OnboardingStep(step)
	return conv, nil
}

// UpdateOnboarding persists the onboarding fields, guarded by generation:
// if the conversation was reset since the caller read it, nothing is
// written and domain.ErrStaleGeneration is returned.
func (r *ConversationRepository) UpdateOnboarding(id string, ob domain.Onboarding, generation int64) error {
	result, err := r.db.Exec(`
		UPDATE conversations SET step = ?, user_name = ?, phone = ?, business_name = ?, extra_value = ?, updated_at = ?
		WHERE id = ? AND generation = ?
	`, string(ob.Step), ob.UserName, ob.Phone, ob.BusinessName, ob.ExtraValue,
		time.Now(), id, generation)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrStaleGeneration
	}
	return nil
}

// Reset discards the message log and onboarding progress and bumps the
// generation so any in-flight reply for the old conversation is dropped.
func (r *ConversationRepository) Reset(id string) (*domain.Conversation, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE conversations
		SET step = ?, user_name = '', phone = '', business_name = '', extra_value = '',
			generation = generation + 1, updated_at = ?
		WHERE id = ?
	`, string(domain.StepGreeting), time.Now(), id)
	if err != nil {
		return nil, err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.Get(id)
}

// Touch updates a conversation's updated_at timestamp
func (r *ConversationRepository) Touch(id string) error {
	_, err := r.db.Exec(`UPDATE conversations SET updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// CreateMessage appends a message to the log, guarded by generation.
// The guard and the insert are one statement, so a reset can never land
// between them and let a stale reply into the fresh log.
func (r *ConversationRepository) CreateMessage(message *domain.Message, generation int64) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	result, err := r.db.Exec(`
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		SELECT ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM conversations WHERE id = ? AND generation = ?)
	`, message.ID, message.ConversationID, string(message.Role), message.Content,
		message.CreatedAt, message.ConversationID, generation)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRow(`SELECT 1 FROM conversations WHERE id = ?`,
		message.ConversationID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrStaleGeneration
}

// GetMessages retrieves all messages for a conversation in chronological order
func (r *ConversationRepository) GetMessages(conversationID string) ([]*domain.Message, error) {
	rows, err := r.db.Query(`
		SELECT id, conversation_id, role, content, created_at
		FROM messages WHERE conversation_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		var role string

		if err := rows.Scan(&message.ID, &message.ConversationID, &role,
			&message.Content, &message.CreatedAt); err != nil {
			return nil, err
		}

		message.Role = domain.Role(role)
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountConversations returns the total number of conversations
func (r *ConversationRepository) CountConversations() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&count)
	return count, err
}

// CountMessages returns the total number of messages
func (r *ConversationRepository) CountMessages() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count)
	return count, err
}

// CountChats returns the total number of user messages (chat turns)
func (r *ConversationRepository) CountChats() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE role = 'user'`).Scan(&count)
	return count, err
}
