package camera

import (
	"testing"
	"time"

	"github.com/Emily548/FluffyCare/internal/alert"
	"github.com/Emily548/FluffyCare/internal/emotion"
)

type stubGate struct {
	allow bool
	calls int
}

func (s *stubGate) Allow(string) bool {
	s.calls++
	return s.allow
}

func TestObserveAlertsAfterStreak(t *testing.T) {
	gate := &stubGate{allow: true}
	w := NewWatcher(gate, 3)

	for i := 0; i < 2; i++ {
		if obs := w.Observe("c", "sad"); obs.Alert {
			t.Fatalf("reading %d should not alert", i+1)
		}
	}
	obs := w.Observe("c", "angry")
	if !obs.Alert || obs.AlertMessage != AlertMessage {
		t.Fatalf("expected alert on third negative reading, got %+v", obs)
	}
	if obs.Emotion != emotion.Angry {
		t.Fatalf("unexpected emotion: %s", obs.Emotion)
	}
	if obs := w.Observe("c", "sad"); obs.Alert {
		t.Fatalf("streak should restart after an alert")
	}
}

func TestObserveNonNegativeResets(t *testing.T) {
	w := NewWatcher(&stubGate{allow: true}, 3)
	w.Observe("c", "sad")
	w.Observe("c", "fear")
	w.Observe("c", "happy")
	w.Observe("c", "disgust")
	if obs := w.Observe("c", "sad"); obs.Alert {
		t.Fatalf("non-negative reading should break the streak")
	}
}

func TestObserveThrottledStillResets(t *testing.T) {
	gate := &stubGate{allow: false}
	w := NewWatcher(gate, 3)
	for i := 0; i < 3; i++ {
		if obs := w.Observe("c", "sad"); obs.Alert {
			t.Fatalf("throttled gate should suppress alerts")
		}
	}
	if gate.calls != 1 {
		t.Fatalf("expected gate consulted once, got %d", gate.calls)
	}
	gate.allow = true
	w.Observe("c", "sad")
	w.Observe("c", "sad")
	if gate.calls != 1 {
		t.Fatalf("streak should have restarted after the throttled alert")
	}
}

func TestObserveUnknownLabel(t *testing.T) {
	w := NewWatcher(nil, 0)
	obs := w.Observe("c", "bored")
	if obs.Emotion != emotion.Neutral || obs.Alert {
		t.Fatalf("unexpected observation: %+v", obs)
	}
}

func TestObserveWithThrottle(t *testing.T) {
	w := NewWatcher(alert.NewThrottle(time.Hour), 3)
	alerts := 0
	for i := 0; i < 9; i++ {
		if w.Observe("c", "sad").Alert {
			alerts++
		}
	}
	if alerts != 1 {
		t.Fatalf("expected a single alert within the interval, got %d", alerts)
	}
}
