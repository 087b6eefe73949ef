package feedback

import (
	"time"

	"gorm.io/datatypes"
)

// Типы и статусы записей фидбека
const (
	TypeUserSuggestion = "user_suggestion"
	TypeAIFeedback     = "ai_feedback"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Feedback - запись пользовательского фидбека, опционально с результатом
// AI-анализа
type Feedback struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      string         `gorm:"index" json:"user_id"`
	Input       string         `json:"input"`
	Type        string         `json:"type"`
	Status      string         `json:"status"`
	AIFeedback  string         `json:"ai_feedback"`
	Score       float64        `json:"score"`
	Suggestions datatypes.JSON `json:"suggestions"`
	Category    string         `json:"category"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// AIAnalysis - структурированный результат анализа фидбека моделью
type AIAnalysis struct {
	Summary     string   `json:"summary"`
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
	Category    string   `json:"category"`
}
