package interview

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultFeedback возвращается, когда в ответе модели нет токена "Feedback:"
const DefaultFeedback = "No feedback found."

var (
	scoreRe = regexp.MustCompile(`Score:\s*(\d+)/10`)
	// (?s) - фидбек забирается до конца ответа, включая переносы строк
	feedbackRe = regexp.MustCompile(`(?s)Feedback:\s*(.*)`)
)

// ParseEvaluation извлекает оценку и фидбек из свободного текста модели.
// Парсер тотальный: любой вход, включая пустой, дает валидный результат -
// отсутствие структуры деградирует до значений по умолчанию (score 0,
// DefaultFeedback), ошибок не бывает.
func ParseEvaluation(reply string) (int, string) {
	score := 0
	if m := scoreRe.FindStringSubmatch(reply); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil {
			score = parsed
		}
	}
	// Модель иногда пишет "Score: 11/10" - оценка всегда в пределах [0, 10]
	if score > 10 {
		score = 10
	}

	feedback := DefaultFeedback
	if m := feedbackRe.FindStringSubmatch(reply); m != nil {
		if trimmed := strings.TrimSpace(m[1]); trimmed != "" {
			feedback = trimmed
		}
	}

	return score, feedback
}
