// Package server exposes the companion API over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Emily548/FluffyCare/internal/camera"
	"github.com/Emily548/FluffyCare/internal/chat"
	"github.com/Emily548/FluffyCare/internal/emotion"
	"github.com/Emily548/FluffyCare/internal/report"
	"github.com/Emily548/FluffyCare/internal/types"
)

// ClientCookie carries the anonymous client id.
const ClientCookie = "fluffy_client"

const clientKeyContext = "client_key"

type ChatService interface {
	Session(ctx context.Context, sessionID int) (types.Companion, []types.ChatLog, error)
	Send(ctx context.Context, req chat.SendRequest) (*chat.SendResult, error)
}

type Observer interface {
	Observe(clientKey, raw string) camera.Observation
}

type Reporter interface {
	Timeline(ctx context.Context, sessionID int) ([]report.Point, error)
	Report(ctx context.Context, sessionID int) (emotion.TrendReport, error)
}

type SendMessageRequest struct {
	Message       string `json:"message"`
	Style         string `json:"style"`
	CameraEmotion string `json:"emotion"`
}

type DetectEmotionRequest struct {
	Emotion string `json:"emotion"`
}

type ChatPageResponse struct {
	Companion types.Companion `json:"companion"`
	Logs      []types.ChatLog `json:"logs"`
}

type Server struct {
	echo     *echo.Echo
	chat     ChatService
	observer Observer
	reporter Reporter
}

func New(chatSvc ChatService, observer Observer, reporter Reporter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover(), clientKey)

	s := &Server{
		echo:     e,
		chat:     chatSvc,
		observer: observer,
		reporter: reporter,
	}
	s.setupRoutes()
	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := s.echo.Group("/api")
	api.GET("/companions", s.listCompanions)
	api.GET("/chat/:sessionId", s.getChat)
	api.POST("/chat/:sessionId/send", s.sendMessage)
	api.POST("/detect-emotion", s.detectEmotion)
	api.GET("/trend/:sessionId/data", s.trendData)
	api.GET("/trend/:sessionId/report", s.trendReport)
}

// clientKey issues a client cookie on first contact.
func clientKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := ""
		if cookie, err := c.Cookie(ClientCookie); err == nil {
			key = strings.TrimSpace(cookie.Value)
		}
		if _, err := uuid.Parse(key); err != nil {
			key = uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     ClientCookie,
				Value:    key,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(clientKeyContext, key)
		return next(c)
	}
}

func clientKeyFrom(c echo.Context) string {
	key, _ := c.Get(clientKeyContext).(string)
	return key
}

func sessionID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("sessionId"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return id, nil
}

func (s *Server) listCompanions(c echo.Context) error {
	return c.JSON(http.StatusOK, types.Companions())
}

func (s *Server) getChat(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	companion, logs, err := s.chat.Session(c.Request().Context(), id)
	if err != nil {
		return chatError(err)
	}
	return c.JSON(http.StatusOK, ChatPageResponse{Companion: companion, Logs: logs})
}

func (s *Server) sendMessage(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.chat.Send(c.Request().Context(), chat.SendRequest{
		SessionID:     id,
		ClientKey:     clientKeyFrom(c),
		Message:       req.Message,
		Style:         req.Style,
		CameraEmotion: req.CameraEmotion,
	})
	if err != nil {
		return chatError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) detectEmotion(c echo.Context) error {
	var req DetectEmotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, s.observer.Observe(clientKeyFrom(c), req.Emotion))
}

func (s *Server) trendData(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	if _, ok := types.CompanionByID(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	points, err := s.reporter.Timeline(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to load timeline", "error", err.Error(), "session_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load emotion data")
	}
	return c.JSON(http.StatusOK, points)
}

func (s *Server) trendReport(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	if _, ok := types.CompanionByID(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	rep, err := s.reporter.Report(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to build report", "error", err.Error(), "session_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not build report")
	}
	return c.JSON(http.StatusOK, rep)
}

func chatError(err error) error {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	default:
		slog.Error("chat request failed", "error", err.Error())
		return echo.NewHTTPError(http.StatusInternalServerError, "chat failed")
	}
}
