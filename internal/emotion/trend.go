package emotion

import "math"

// Level is a wellbeing grade, A (calmest) through E (most distressed).
type Level string

const (
	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"
	LevelD Level = "D"
	LevelE Level = "E"
)

const (
	// InsufficientDataMessage is returned when there is nothing to score.
	InsufficientDataMessage = "We couldn't gather enough emotion data. Try using the system longer."

	// varianceThreshold selects the more emphatic suggestion.
	varianceThreshold = 0.8
	defaultScore      = 2
)

var distressScores = map[Label]int{
	Happy:    1,
	Neutral:  2,
	Surprise: 3,
	Fear:     4,
	Disgust:  4,
	Sad:      5,
	Angry:    5,
}

// suggestions holds a calmer [0] and a more emphatic [1] message per level.
var suggestions = map[Level][2]string{
	LevelA: {
		"🌟 Keep shining! Enjoy a good meal today, and don't forget to share a smile with someone.",
		"☀️ You're glowing! Stretch a little, sip your favorite drink, and keep the cozy vibes going.",
	},
	LevelB: {
		"🌼 A short walk, some fresh air, and warm food might make your day even better.",
		"🧸 Try calling a friend or listening to a cheerful tune. Little joys go a long way!",
	},
	LevelC: {
		"🍵 Slow down a bit. A calm evening and some gentle stretches might feel nice.",
		"🌙 Rest well tonight. Your favorite snack and soft music can work wonders.",
	},
	LevelD: {
		"🎧 Take a deep breath and play a song that brings comfort. You deserve soft things.",
		"🫖 Drink something warm, get some sunlight, and let yourself rest gently today.",
	},
	LevelE: {
		"🌈 Be kind to yourself today. A nap, a small walk, or hugging a pillow might feel nice.",
		"💖 Everything doesn't need to be perfect. Just eat something warm and take things slowly.",
	},
}

// TrendReport is the aggregate view of a conversation's camera emotions.
type TrendReport struct {
	Level        Level   `json:"level"`
	Suggestion   string  `json:"suggestion"`
	Samples      int     `json:"samples"`
	Average      float64 `json:"average"`
	StdDev       float64 `json:"std_dev"`
	Insufficient bool    `json:"insufficient"`
}

// Score returns the distress score for label. Unknown labels score as neutral.
func Score(label Label) int {
	if s, ok := distressScores[label]; ok {
		return s
	}
	return defaultScore
}

// AnalyzeTrend grades history and picks a suggestion. Order does not matter,
// only the multiset of labels.
func AnalyzeTrend(history []Label) TrendReport {
	if len(history) == 0 {
		return TrendReport{
			Level:        LevelC,
			Suggestion:   InsufficientDataMessage,
			Insufficient: true,
		}
	}

	scores := make([]float64, 0, len(history))
	for _, label := range history {
		scores = append(scores, float64(Score(label)))
	}

	avg := mean(scores)
	std := sampleStdDev(scores, avg)
	level := LevelFor(avg)

	idx := 0
	if std >= varianceThreshold {
		idx = 1
	}

	return TrendReport{
		Level:      level,
		Suggestion: suggestions[level][idx],
		Samples:    len(scores),
		Average:    avg,
		StdDev:     std,
	}
}

// LevelFor maps an average distress score to a grade. Boundaries belong to
// the worse grade.
func LevelFor(avg float64) Level {
	switch {
	case avg < 1.6:
		return LevelA
	case avg < 2.5:
		return LevelB
	case avg < 3.5:
		return LevelC
	case avg < 4.5:
		return LevelD
	default:
		return LevelE
	}
}

// Suggestion returns the message for level; emphatic selects index 1.
func Suggestion(level Level, emphatic bool) string {
	pair, ok := suggestions[level]
	if !ok {
		return ""
	}
	if emphatic {
		return pair[1]
	}
	return pair[0]
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStdDev(values []float64, avg float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - avg
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
