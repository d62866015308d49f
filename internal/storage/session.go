package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Emily548/FluffyCare/internal/types"
)

type chatSessionModel struct {
	ID        int    `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;default:'新会话'"`
	CreatedAt time.Time
}

func (chatSessionModel) TableName() string {
	return "chat_sessions"
}

// SessionRepo accesses chat sessions.
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo returns a SessionRepo.
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// EnsureCompanions creates one session row per fixed companion.
func (r *SessionRepo) EnsureCompanions(ctx context.Context) error {
	for _, c := range types.Companions() {
		record := chatSessionModel{ID: c.ID, Name: c.Name}
		if err := r.db.WithContext(ctx).
			Where(chatSessionModel{ID: c.ID}).
			FirstOrCreate(&record).Error; err != nil {
			return fmt.Errorf("failed to seed session %d: %w", c.ID, err)
		}
	}
	return nil
}

// GetByID fetches one session.
func (r *SessionRepo) GetByID(ctx context.Context, id int) (*types.ChatSession, error) {
	var record chatSessionModel
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %d: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}
	return &types.ChatSession{
		ID:        record.ID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
	}, nil
}
