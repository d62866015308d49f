// Package report builds emotion timelines and trend reports per session.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Emily548/FluffyCare/internal/emotion"
	"github.com/Emily548/FluffyCare/internal/types"
)

// TimeLayout formats timeline timestamps.
const TimeLayout = "2006-01-02 15:04:05"

type EmotionLogRepo interface {
	ListBySession(ctx context.Context, sessionID int) ([]types.EmotionLog, error)
}

// Point is one timeline entry.
type Point struct {
	Time          string `json:"timestamp"`
	CameraEmotion string `json:"camera_emotion"`
	TextEmotion   string `json:"text_emotion"`
}

// Service reads emotion logs for reporting.
type Service struct {
	logs     EmotionLogRepo
	location *time.Location
}

// NewService returns a report Service that formats times in local time.
func NewService(logs EmotionLogRepo) *Service {
	return &Service{logs: logs, location: time.Local}
}

// Timeline returns the session's emotions oldest to newest.
func (s *Service) Timeline(ctx context.Context, sessionID int) ([]Point, error) {
	logs, err := s.logs.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emotion logs: %w", err)
	}
	points := make([]Point, 0, len(logs))
	for _, l := range logs {
		points = append(points, Point{
			Time:          l.Timestamp.In(s.location).Format(TimeLayout),
			CameraEmotion: l.CameraEmotion,
			TextEmotion:   l.TextEmotion,
		})
	}
	return points, nil
}

// Report grades the session from its camera emotions.
func (s *Service) Report(ctx context.Context, sessionID int) (emotion.TrendReport, error) {
	logs, err := s.logs.ListBySession(ctx, sessionID)
	if err != nil {
		return emotion.TrendReport{}, fmt.Errorf("failed to list emotion logs: %w", err)
	}
	history := make([]emotion.Label, 0, len(logs))
	for _, l := range logs {
		history = append(history, emotion.Normalize(l.CameraEmotion))
	}
	return emotion.AnalyzeTrend(history), nil
}
