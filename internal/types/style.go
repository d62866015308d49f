package types

// Style is a reply persona the user can pick per message.
type Style string

const (
	StyleFriend       Style = "friend"
	StylePsychologist Style = "psychologist"
	StyleParent       Style = "parent"
	StyleCartoon      Style = "cartoon"
)

var styleInstructions = map[Style]string{
	StyleFriend:       "Reply in a relaxed and friendly tone as a close friend.",
	StylePsychologist: "As a psychological counselor, offer professional, patient, and warm emotional support.",
	StyleParent:       "As a caring parent, reply with love, warmth, and reassurance.",
	StyleCartoon:      "As a lively and humorous cartoon character, reply with fun and positive energy.",
}

// ParseStyle falls back to StyleFriend for unknown values.
func ParseStyle(raw string) Style {
	s := Style(raw)
	if _, ok := styleInstructions[s]; ok {
		return s
	}
	return StyleFriend
}

// Instruction returns the tone guideline for s.
func (s Style) Instruction() string {
	if text, ok := styleInstructions[s]; ok {
		return text
	}
	return styleInstructions[StyleFriend]
}
