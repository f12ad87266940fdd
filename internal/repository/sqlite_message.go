package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/alexanderramin/agrismart/internal/domain"
	"github.com/google/uuid"
)

// SQLiteMessageRepo implements MessageRepo using a SQLite database.
type SQLiteMessageRepo struct {
	db db.DBTX
}

// NewSQLiteMessageRepo creates a new SQLiteMessageRepo.
func NewSQLiteMessageRepo(conn db.DBTX) *SQLiteMessageRepo {
	return &SQLiteMessageRepo{db: conn}
}

// Append stores m, assigning an ID when empty.
func (r *SQLiteMessageRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	lang := m.Language
	if lang == "" {
		lang = domain.LangEnglish
	}
	query := `INSERT INTO chat_messages (id, mobile, persona, role, language, text, image_mime, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Mobile,
		string(m.Persona),
		string(m.Role),
		string(lang),
		m.Text,
		m.ImageMIME,
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting chat message: %w", err)
	}
	return nil
}

func (r *SQLiteMessageRepo) ListRecent(ctx context.Context, mobile string, persona domain.Persona, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, mobile, persona, role, language, text, image_mime, created_at FROM (
			SELECT id, mobile, persona, role, language, text, image_mime, created_at, rowid AS seq
			FROM chat_messages
			WHERE mobile = ? AND persona = ?
			ORDER BY created_at DESC, seq DESC
			LIMIT ?
		) ORDER BY created_at, seq`
	rows, err := r.db.QueryContext(ctx, query, mobile, string(persona), limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var persona, role, lang, createdAt string
		if err := rows.Scan(&m.ID, &m.Mobile, &persona, &role, &lang, &m.Text, &m.ImageMIME, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chat message row: %w", err)
		}
		t, err := parseTime(createdAt, "created_at")
		if err != nil {
			return nil, err
		}
		m.Persona = domain.Persona(persona)
		m.Role = domain.MessageRole(role)
		m.Language = domain.Language(lang)
		m.CreatedAt = t
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return messages, nil
}

func (r *SQLiteMessageRepo) DeleteByUser(ctx context.Context, mobile string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE mobile = ?`, mobile)
	if err != nil {
		return 0, fmt.Errorf("deleting chat messages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chat messages: %w", err)
	}
	return n, nil
}
