package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Emily548/FluffyCare/internal/camera"
	"github.com/Emily548/FluffyCare/internal/chat"
	"github.com/Emily548/FluffyCare/internal/emotion"
	"github.com/Emily548/FluffyCare/internal/report"
	"github.com/Emily548/FluffyCare/internal/types"
)

type fakeChat struct {
	last chat.SendRequest
	err  error
}

func (f *fakeChat) Session(ctx context.Context, sessionID int) (types.Companion, []types.ChatLog, error) {
	if f.err != nil {
		return types.Companion{}, nil, f.err
	}
	c, _ := types.CompanionByID(sessionID)
	return c, []types.ChatLog{{UserMessage: "hi", Response: "hello"}}, nil
}

func (f *fakeChat) Send(ctx context.Context, req chat.SendRequest) (*chat.SendResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &chat.SendResult{Response: "reply", TextEmotion: "neutral", CameraEmotion: "neutral", Language: "en"}, nil
}

type fakeObserver struct {
	keys []string
}

func (f *fakeObserver) Observe(clientKey, raw string) camera.Observation {
	f.keys = append(f.keys, clientKey)
	return camera.Observation{Emotion: emotion.Normalize(raw)}
}

type fakeReporter struct{}

func (fakeReporter) Timeline(ctx context.Context, sessionID int) ([]report.Point, error) {
	return []report.Point{{Time: "2024-01-01 00:00:00", CameraEmotion: "happy", TextEmotion: "happy"}}, nil
}

func (fakeReporter) Report(ctx context.Context, sessionID int) (emotion.TrendReport, error) {
	return emotion.AnalyzeTrend([]emotion.Label{emotion.Happy}), nil
}

func newTestServer() (*Server, *fakeChat, *fakeObserver) {
	c := &fakeChat{}
	o := &fakeObserver{}
	return New(c, o, fakeReporter{}), c, o
}

func do(t *testing.T, s *Server, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestListCompanions(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/api/companions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var got []types.Companion
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[0].Name != "Lulu Pig" {
		t.Fatalf("unexpected companions: %+v", got)
	}
}

func TestClientCookieIssuedOnce(t *testing.T) {
	s, _, o := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/detect-emotion", `{"emotion":"sad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie {
		t.Fatalf("expected client cookie, got %v", cookies)
	}
	if o.keys[0] != cookies[0].Value {
		t.Fatalf("observer should receive the cookie value")
	}

	rec = do(t, s, http.MethodPost, "/api/detect-emotion", `{"emotion":"sad"}`, cookies[0])
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("existing cookie should be reused")
	}
	if o.keys[1] != cookies[0].Value {
		t.Fatalf("expected same client key, got %q", o.keys[1])
	}
}

func TestDetectEmotionMalformed(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/detect-emotion", `{"emotion":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSendMessage(t *testing.T) {
	s, c, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/chat/2/send", `{"message":"hello","style":"parent","emotion":"sad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if c.last.SessionID != 2 || c.last.Style != "parent" || c.last.CameraEmotion != "sad" || c.last.ClientKey == "" {
		t.Fatalf("unexpected request: %+v", c.last)
	}
	var got chat.SendResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Response != "reply" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestSendMessageFieldNames(t *testing.T) {
	s, c, _ := newTestServer()
	rec := do(t, s, http.MethodPost, "/api/chat/1/send", `{"message":"hi","emotion":"sad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if c.last.CameraEmotion != "sad" {
		t.Fatalf("camera emotion not bound from \"emotion\": %+v", c.last)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"response", "camera_emotion", "text_emotion", "reason", "language"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("response missing %q: %s", key, rec.Body.String())
		}
	}

	rec = do(t, s, http.MethodGet, "/api/trend/1/data", "")
	var points []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil || len(points) != 1 {
		t.Fatalf("unexpected timeline: %v %s", err, rec.Body.String())
	}
	if points[0]["timestamp"] != "2024-01-01 00:00:00" {
		t.Fatalf("timeline missing timestamp: %v", points[0])
	}
}

func TestSendMessageErrors(t *testing.T) {
	s, c, _ := newTestServer()

	if rec := do(t, s, http.MethodPost, "/api/chat/abc/send", `{"message":"hi"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for bad id, got %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/chat/1/send", `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	c.err = chat.ErrSessionNotFound
	if rec := do(t, s, http.MethodPost, "/api/chat/9/send", `{"message":"hi"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	c.err = errors.New("db down")
	if rec := do(t, s, http.MethodPost, "/api/chat/1/send", `{"message":"hi"}`); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGetChat(t *testing.T) {
	s, _, _ := newTestServer()
	rec := do(t, s, http.MethodGet, "/api/chat/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var got ChatPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Companion.Name != "Fluffy Bunny" || len(got.Logs) != 1 {
		t.Fatalf("unexpected page: %+v", got)
	}
}

func TestTrendEndpoints(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, http.MethodGet, "/api/trend/1/data", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var points []report.Point
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil || len(points) != 1 {
		t.Fatalf("unexpected timeline: %v %+v", err, points)
	}

	rec = do(t, s, http.MethodGet, "/api/trend/1/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var rep emotion.TrendReport
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rep.Level != emotion.LevelA {
		t.Fatalf("unexpected report: %+v", rep)
	}

	if rec := do(t, s, http.MethodGet, "/api/trend/7/report", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown companion, got %d", rec.Code)
	}
}
