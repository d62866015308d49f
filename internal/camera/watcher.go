// Package camera reacts to facial emotion labels reported by the client.
package camera

import (
	"log/slog"

	"github.com/Emily548/FluffyCare/internal/alert"
	"github.com/Emily548/FluffyCare/internal/emotion"
)

// AlertMessage is shown when a client looks distressed for a while.
const AlertMessage = "You don't seem okay. Want to talk?"

// Gate decides whether an alert may fire for a client now.
type Gate interface {
	Allow(key string) bool
}

// Observation is the outcome of one camera reading.
type Observation struct {
	Emotion      emotion.Label `json:"emotion"`
	Alert        bool          `json:"alert"`
	AlertMessage string        `json:"alert_message,omitempty"`
}

// Watcher tracks negative streaks per client.
type Watcher struct {
	streak    *alert.Streak
	gate      Gate
	threshold int
}

// NewWatcher alerts once threshold consecutive negative readings are seen,
// subject to gate.
func NewWatcher(gate Gate, threshold int) *Watcher {
	if threshold <= 0 {
		threshold = 3
	}
	return &Watcher{
		streak:    alert.NewStreak(),
		gate:      gate,
		threshold: threshold,
	}
}

// Observe records a raw label for clientKey.
func (w *Watcher) Observe(clientKey, raw string) Observation {
	label := emotion.Normalize(raw)
	obs := Observation{Emotion: label}

	if w.streak.Observe(clientKey, label.Negative()) < w.threshold {
		return obs
	}

	// The streak restarts whether or not the alert fires.
	w.streak.Reset(clientKey)
	if w.gate == nil || w.gate.Allow(clientKey) {
		obs.Alert = true
		obs.AlertMessage = AlertMessage
		slog.Info("negative emotion alert", "client", clientKey, "emotion", label)
	}
	return obs
}
