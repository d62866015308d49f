// Package chat runs one companion conversation turn: classify, correct,
// reply, care prompt, persist.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/Emily548/FluffyCare/internal/emotion"
	"github.com/Emily548/FluffyCare/internal/language"
	"github.com/Emily548/FluffyCare/internal/prompt"
	"github.com/Emily548/FluffyCare/internal/types"
	"github.com/Emily548/FluffyCare/internal/utils"
)

const (
	// FallbackReply is sent when the chat model cannot answer.
	FallbackReply = "Oops, I encountered an error, but I'm still here for you. ❤️"

	carePromptZH = "你还好吗？想聊聊嘛？"
	carePromptEN = "Are you okay? Want to talk?"
)

var ErrSessionNotFound = errors.New("chat session not found")

type SessionRepo interface {
	GetByID(ctx context.Context, id int) (*types.ChatSession, error)
}

type ChatLogRepo interface {
	Create(ctx context.Context, log *types.ChatLog) error
	Recent(ctx context.Context, sessionID, limit int) ([]types.ChatLog, error)
	ListBySession(ctx context.Context, sessionID int) ([]types.ChatLog, error)
}

type EmotionLogRepo interface {
	Create(ctx context.Context, log *types.EmotionLog) error
}

// Classifier labels user text. Implementations degrade instead of failing.
type Classifier interface {
	Classify(ctx context.Context, text string) emotion.Classification
}

// Gate decides whether a per-client event may fire now.
type Gate interface {
	Allow(key string) bool
}

// Deps are the collaborators of Service.
type Deps struct {
	Sessions    SessionRepo
	ChatLogs    ChatLogRepo
	EmotionLogs EmotionLogRepo
	Classifier  Classifier
	Model       model.LLM
	Care        Gate
}

// Options tune prompt history.
type Options struct {
	HistoryLimit  int
	HistoryWindow int
}

// SendRequest is one user turn.
type SendRequest struct {
	SessionID     int
	ClientKey     string
	Message       string
	Style         string
	CameraEmotion string
}

// SendResult is what the client gets back for a turn.
type SendResult struct {
	Response      string `json:"response"`
	CameraEmotion string `json:"camera_emotion"`
	TextEmotion   string `json:"text_emotion"`
	Reason        string `json:"reason"`
	Language      string `json:"language"`
}

// Service handles chat turns.
type Service struct {
	deps         Deps
	builder      *prompt.Builder
	historyLimit int
	detect       func(string) string
}

// NewService returns a chat Service.
func NewService(deps Deps, opts Options) *Service {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}
	return &Service{
		deps:         deps,
		builder:      prompt.NewBuilder(opts.HistoryWindow),
		historyLimit: opts.HistoryLimit,
		detect:       language.Detect,
	}
}

// Session returns the companion behind sessionID and its chat log.
func (s *Service) Session(ctx context.Context, sessionID int) (types.Companion, []types.ChatLog, error) {
	companion, err := s.lookup(ctx, sessionID)
	if err != nil {
		return types.Companion{}, nil, err
	}
	logs, err := s.deps.ChatLogs.ListBySession(ctx, sessionID)
	if err != nil {
		return types.Companion{}, nil, fmt.Errorf("failed to list chat logs: %w", err)
	}
	return companion, logs, nil
}

// Send processes one user message and persists the turn.
func (s *Service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	companion, err := s.lookup(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)

	camera := emotion.Normalize(req.CameraEmotion)
	lang := s.detect(message)

	classification := s.deps.Classifier.Classify(ctx, message)
	textEmotion := emotion.Correct(message, classification.Label)

	history, err := s.deps.ChatLogs.Recent(ctx, req.SessionID, s.historyLimit)
	if err != nil {
		slog.Warn("failed to load chat history", "error", err.Error(), "session_id", req.SessionID)
		history = nil
	}

	contents, err := s.builder.Build(prompt.BuildContext{
		Companion:   companion,
		Style:       types.ParseStyle(req.Style),
		History:     toTurns(history),
		UserMessage: message,
	})
	if err != nil {
		return nil, err
	}

	reply := s.generate(ctx, contents)
	if (camera.Negative() || textEmotion.Negative()) && s.deps.Care != nil && s.deps.Care.Allow(req.ClientKey) {
		reply = carePrompt(lang) + "\n\n" + reply
	}

	chatLog := &types.ChatLog{
		SessionID:      req.SessionID,
		UserMessage:    message,
		CameraEmotion:  string(camera),
		TextEmotion:    string(textEmotion),
		RawTextEmotion: string(classification.Label),
		Response:       reply,
	}
	if err := s.deps.ChatLogs.Create(ctx, chatLog); err != nil {
		return nil, fmt.Errorf("failed to save chat log: %w", err)
	}
	if err := s.deps.EmotionLogs.Create(ctx, &types.EmotionLog{
		SessionID:      req.SessionID,
		UserMessage:    message,
		CameraEmotion:  string(camera),
		TextEmotion:    string(textEmotion),
		RawTextEmotion: string(classification.Label),
	}); err != nil {
		return nil, fmt.Errorf("failed to save emotion log: %w", err)
	}

	slog.Info("chat turn",
		"session_id", req.SessionID,
		"camera_emotion", camera,
		"text_emotion", textEmotion,
		"raw_text_emotion", classification.Label,
		"lang", lang,
	)

	return &SendResult{
		Response:      reply,
		CameraEmotion: string(camera),
		TextEmotion:   string(textEmotion),
		Reason:        classification.Reason,
		Language:      lang,
	}, nil
}

func (s *Service) lookup(ctx context.Context, sessionID int) (types.Companion, error) {
	companion, ok := types.CompanionByID(sessionID)
	if !ok {
		return types.Companion{}, ErrSessionNotFound
	}
	if _, err := s.deps.Sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.Companion{}, ErrSessionNotFound
		}
		return types.Companion{}, fmt.Errorf("failed to get session: %w", err)
	}
	return companion, nil
}

func (s *Service) generate(ctx context.Context, contents []*genai.Content) string {
	if s.deps.Model == nil {
		return FallbackReply
	}

	temperature := float32(0.85)
	topP := float32(0.9)
	req := &model.LLMRequest{
		Contents: contents,
		Config: &genai.GenerateContentConfig{
			Temperature: &temperature,
			TopP:        &topP,
		},
	}

	var text string
	for resp, err := range s.deps.Model.GenerateContent(ctx, req, false) {
		if err != nil {
			slog.Error("failed to generate reply", "error", err.Error())
			return FallbackReply
		}
		if resp == nil || resp.Content == nil {
			continue
		}
		text += utils.ExtractContentText(resp.Content)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackReply
	}
	return text
}

func carePrompt(lang string) string {
	if language.IsChinese(lang) {
		return carePromptZH
	}
	return carePromptEN
}

func toTurns(logs []types.ChatLog) []types.Turn {
	turns := make([]types.Turn, 0, len(logs))
	for _, l := range logs {
		turns = append(turns, types.Turn{User: l.UserMessage, Bot: l.Response})
	}
	return turns
}
