package interview

import "fmt"

// Average считает среднюю оценку; пустой список дает 0
func Average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

// Summarize сворачивает оценки раундов в итоговое сообщение.
// Пороги проверяются по порядку, граничные значения (8.0, 6.0)
// относятся к верхнему уровню.
func Summarize(scores []int) string {
	avg := Average(scores)
	switch {
	case avg >= 8:
		return fmt.Sprintf("Excellent performance! Your average score is %.1f/10. Keep it up!", avg)
	case avg >= 6:
		return fmt.Sprintf("Good job. Your average score is %.1f/10. Some improvement is possible.", avg)
	default:
		return fmt.Sprintf("Your average score is %.1f/10. Focus on practicing your communication and domain knowledge.", avg)
	}
}
