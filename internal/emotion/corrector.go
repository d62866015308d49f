package emotion

import "strings"

// keywords maps each label to the phrases that override the remote
// classifier. Scanned in Labels order.
var keywords = map[Label][]string{
	Happy:    {"开心", "高兴", "快乐", "幸福", "happy", "joyful", "excited"},
	Sad:      {"伤心", "难过", "悲伤", "sad", "unhappy", "depressed"},
	Angry:    {"生气", "愤怒", "angry", "mad", "furious"},
	Surprise: {"惊讶", "惊喜", "wow", "omg", "surprised"},
	Fear:     {"害怕", "恐惧", "担心", "fear", "afraid", "anxious"},
	Disgust:  {"恶心", "讨厌", "厌恶", "disgust", "gross"},
	Neutral:  {"嗯", "好", "ok", "normal", "fine"},
}

// Correct returns the first label whose keywords appear in text, or
// classified when nothing matches. ASCII keywords match case-insensitively,
// everything else matches exactly.
func Correct(text string, classified Label) Label {
	if text == "" {
		return classified
	}
	lower := strings.ToLower(text)
	for _, label := range Labels {
		for _, word := range keywords[label] {
			if strings.Contains(text, word) || strings.Contains(lower, word) {
				return label
			}
		}
	}
	return classified
}
