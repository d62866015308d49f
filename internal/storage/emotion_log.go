package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Emily548/FluffyCare/internal/types"
)

// emotionLogModel maps to the emotion_logs table. Trend queries scan by
// (session_id, timestamp).
type emotionLogModel struct {
	ID             int       `gorm:"primaryKey"`
	SessionID      int       `gorm:"index:idx_emotion_logs_session_ts,priority:1;not null"`
	UserMessage    string    `gorm:"type:text"`
	CameraEmotion  string    `gorm:"size:50"`
	TextEmotion    string    `gorm:"size:50"`
	RawTextEmotion string    `gorm:"size:100;default:'neutral'"`
	Timestamp      time.Time `gorm:"index:idx_emotion_logs_session_ts,priority:2"`
}

func (emotionLogModel) TableName() string {
	return "emotion_logs"
}

// EmotionLogRepo accesses emotion logs.
type EmotionLogRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEmotionLogRepo returns an EmotionLogRepo.
func NewEmotionLogRepo(db *gorm.DB) *EmotionLogRepo {
	return &EmotionLogRepo{db: db, now: time.Now}
}

func (r *EmotionLogRepo) Create(ctx context.Context, log *types.EmotionLog) error {
	if log == nil {
		return fmt.Errorf("emotion log cannot be nil")
	}
	ts := log.Timestamp
	if ts.IsZero() {
		ts = r.now()
	}
	record := emotionLogModel{
		SessionID:      log.SessionID,
		UserMessage:    log.UserMessage,
		CameraEmotion:  log.CameraEmotion,
		TextEmotion:    log.TextEmotion,
		RawTextEmotion: log.RawTextEmotion,
		Timestamp:      ts,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert emotion log: %w", err)
	}
	log.ID = record.ID
	log.Timestamp = record.Timestamp
	return nil
}

// ListBySession returns the session's emotion logs in chronological order.
func (r *EmotionLogRepo) ListBySession(ctx context.Context, sessionID int) ([]types.EmotionLog, error) {
	var records []emotionLogModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query emotion logs: %w", err)
	}

	results := make([]types.EmotionLog, 0, len(records))
	for _, record := range records {
		results = append(results, types.EmotionLog{
			ID:             record.ID,
			SessionID:      record.SessionID,
			UserMessage:    record.UserMessage,
			CameraEmotion:  record.CameraEmotion,
			TextEmotion:    record.TextEmotion,
			RawTextEmotion: record.RawTextEmotion,
			Timestamp:      record.Timestamp,
		})
	}
	return results, nil
}
