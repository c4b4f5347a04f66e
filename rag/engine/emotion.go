package engine

import "strings"

// Emotion is the coarse affect label attached to an answer.
type Emotion string

const (
	EmotionHappy      Emotion = "happy"
	EmotionThinking   Emotion = "thinking"
	EmotionExplaining Emotion = "explaining"
)

var positiveWords = []string{"great", "good", "excellent"}

// TagEmotion derives an affect label from answer text: positive wording wins,
// then a question mark, then the explaining default.
func TagEmotion(text string) Emotion {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return EmotionHappy
		}
	}
	if strings.Contains(text, "?") {
		return EmotionThinking
	}
	return EmotionExplaining
}
