package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Emily548/FluffyCare/internal/types"
)

// chatLogModel maps to the chat_logs table.
type chatLogModel struct {
	ID             int    `gorm:"primaryKey"`
	SessionID      int    `gorm:"index;not null"`
	UserMessage    string `gorm:"type:text"`
	CameraEmotion  string `gorm:"size:50;default:'neutral'"`
	TextEmotion    string `gorm:"size:50;default:'neutral'"`
	RawTextEmotion string `gorm:"size:100;default:'neutral'"`
	GPTResponse    string `gorm:"column:gpt_response;type:text"`
	CreatedAt      time.Time
}

func (chatLogModel) TableName() string {
	return "chat_logs"
}

// ChatLogRepo accesses chat logs.
type ChatLogRepo struct {
	db *gorm.DB
}

// NewChatLogRepo returns a ChatLogRepo.
func NewChatLogRepo(db *gorm.DB) *ChatLogRepo {
	return &ChatLogRepo{db: db}
}

func (r *ChatLogRepo) Create(ctx context.Context, log *types.ChatLog) error {
	if log == nil {
		return fmt.Errorf("chat log cannot be nil")
	}
	record := chatLogModel{
		SessionID:      log.SessionID,
		UserMessage:    log.UserMessage,
		CameraEmotion:  log.CameraEmotion,
		TextEmotion:    log.TextEmotion,
		RawTextEmotion: log.RawTextEmotion,
		GPTResponse:    log.Response,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}
	log.ID = record.ID
	log.CreatedAt = record.CreatedAt
	return nil
}

// ListBySession returns every log of the session, oldest first.
func (r *ChatLogRepo) ListBySession(ctx context.Context, sessionID int) ([]types.ChatLog, error) {
	var records []chatLogModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	results := make([]types.ChatLog, 0, len(records))
	for _, record := range records {
		results = append(results, chatLogFromModel(record))
	}
	return results, nil
}

// Recent returns the latest limit logs, oldest first.
func (r *ChatLogRepo) Recent(ctx context.Context, sessionID, limit int) ([]types.ChatLog, error) {
	var records []chatLogModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent chat logs: %w", err)
	}

	results := make([]types.ChatLog, 0, len(records))
	for _, record := range records {
		results = append(results, chatLogFromModel(record))
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func chatLogFromModel(model chatLogModel) types.ChatLog {
	return types.ChatLog{
		ID:             model.ID,
		SessionID:      model.SessionID,
		UserMessage:    model.UserMessage,
		CameraEmotion:  model.CameraEmotion,
		TextEmotion:    model.TextEmotion,
		RawTextEmotion: model.RawTextEmotion,
		Response:       model.GPTResponse,
		CreatedAt:      model.CreatedAt,
	}
}
