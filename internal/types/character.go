package types

import "time"

// Companion is one of the fixed animal personas a user can chat with.
type Companion struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Animal string `json:"animal"`
	Image  string `json:"image"`
}

var companions = []Companion{
	{ID: 1, Name: "Lulu Pig", Animal: "pig", Image: "animals/pig.jpg"},
	{ID: 2, Name: "Bubble Puppy", Animal: "dog", Image: "animals/dog.jpg"},
	{ID: 3, Name: "Fluffy Bunny", Animal: "rabbit", Image: "animals/rabbit.jpg"},
}

// Companions returns the fixed companion list.
func Companions() []Companion {
	out := make([]Companion, len(companions))
	copy(out, companions)
	return out
}

// CompanionByID looks up a companion.
func CompanionByID(id int) (Companion, bool) {
	for _, c := range companions {
		if c.ID == id {
			return c, true
		}
	}
	return Companion{}, false
}

// ChatSession is the persisted conversation with one companion.
type ChatSession struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatLog is one user turn and the companion's reply.
type ChatLog struct {
	ID             int       `json:"id"`
	SessionID      int       `json:"session_id"`
	UserMessage    string    `json:"user_message"`
	CameraEmotion  string    `json:"camera_emotion"`
	TextEmotion    string    `json:"text_emotion"`
	RawTextEmotion string    `json:"raw_text_emotion"`
	Response       string    `json:"gpt_response"`
	CreatedAt      time.Time `json:"created_at"`
}

// EmotionLog is the emotion record kept per turn for trend reports.
type EmotionLog struct {
	ID             int       `json:"id"`
	SessionID      int       `json:"session_id"`
	UserMessage    string    `json:"user_message"`
	CameraEmotion  string    `json:"camera_emotion"`
	TextEmotion    string    `json:"text_emotion"`
	RawTextEmotion string    `json:"raw_text_emotion"`
	Timestamp      time.Time `json:"timestamp"`
}

// Turn is a prior exchange used as prompt context.
type Turn struct {
	User string
	Bot  string
}
