package emotion

import "strings"

// Label is one of the seven emotion categories.
type Label string

const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Surprise Label = "surprise"
	Fear     Label = "fear"
	Disgust  Label = "disgust"
	Neutral  Label = "neutral"
)

// Labels lists every label in declaration order. Keyword precedence in
// Correct follows this order.
var Labels = []Label{Happy, Sad, Angry, Surprise, Fear, Disgust, Neutral}

// Valid reports whether l is one of the seven labels.
func (l Label) Valid() bool {
	switch l {
	case Happy, Sad, Angry, Surprise, Fear, Disgust, Neutral:
		return true
	default:
		return false
	}
}

// Negative reports whether l counts as distress for care prompts and alerts.
func (l Label) Negative() bool {
	switch l {
	case Sad, Angry, Fear, Disgust:
		return true
	default:
		return false
	}
}

// Normalize maps raw input onto the closed label set. Anything unknown
// becomes Neutral.
func Normalize(raw string) Label {
	label := Label(strings.ToLower(strings.TrimSpace(raw)))
	if label.Valid() {
		return label
	}
	return Neutral
}
