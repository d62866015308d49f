// Package language guesses the language of user messages.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Fallback is used when detection is not possible.
const Fallback = "en"

// Detect returns the ISO 639-1 code of text, or Fallback.
func Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Fallback
	}
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return Fallback
	}
	code := info.Lang.Iso6391()
	if code == "" {
		return Fallback
	}
	return code
}

// IsChinese reports whether code is a Chinese variant.
func IsChinese(code string) bool {
	return strings.HasPrefix(strings.ToLower(code), "zh")
}
