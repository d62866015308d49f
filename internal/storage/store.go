// Package storage persists chat sessions and emotion logs in PostgreSQL.
package storage

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store holds the DB handle and repositories.
type Store struct {
	db          *gorm.DB
	Sessions    *SessionRepo
	ChatLogs    *ChatLogRepo
	EmotionLogs *EmotionLogRepo
}

// NewStore opens the database and builds the repositories.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewStoreFromDB(db), nil
}

// NewStoreFromDB wraps an already opened handle.
func NewStoreFromDB(db *gorm.DB) *Store {
	return &Store{
		db:          db,
		Sessions:    NewSessionRepo(db),
		ChatLogs:    NewChatLogRepo(db),
		EmotionLogs: NewEmotionLogRepo(db),
	}
}

// Migrate creates or updates the application tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&chatSessionModel{}, &chatLogModel{}, &emotionLogModel{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() {
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
