package session

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ChatEntry - один раунд интервью внутри сессии: вопрос, ответ кандидата,
// оценка и фидбек модели. Раунд не редактируется после оценки - повторная
// оценка означала бы новый раунд.
type ChatEntry struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Score      int    `json:"score"`
	AIFeedback string `json:"ai_feedback"`
	Summary    string `json:"summary"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Session - персистентный агрегат одной попытки интервью.
// Раунды (chats) и список оценок хранятся JSON колонками; среднее по
// оценкам не хранится, а выводится на чтении.
type Session struct {
	ID               uint           `gorm:"primaryKey" json:"-"`
	SessionID        string         `gorm:"uniqueIndex;size:128" json:"session_id"`
	UserID           *string        `gorm:"index" json:"user_id"`
	SessionName      string         `json:"session_name"`
	StartTime        string         `json:"start_time"`
	EndTime          string         `json:"end_time"`
	TotalTimeMinutes float64        `json:"total_time_minutes"`
	Scores           datatypes.JSON `json:"scores"`
	Summary          string         `json:"summary"`
	Chats            datatypes.JSON `json:"chats"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// ChatEntries декодирует раунды из JSON колонки
func (s *Session) ChatEntries() ([]ChatEntry, error) {
	if len(s.Chats) == 0 {
		return []ChatEntry{}, nil
	}
	var entries []ChatEntry
	if err := json.Unmarshal(s.Chats, &entries); err != nil {
		return nil, fmt.Errorf("ошибка декодирования chats: %w", err)
	}
	return entries, nil
}

// ScoreList декодирует список оценок из JSON колонки
func (s *Session) ScoreList() ([]int, error) {
	if len(s.Scores) == 0 {
		return []int{}, nil
	}
	var scores []int
	if err := json.Unmarshal(s.Scores, &scores); err != nil {
		return nil, fmt.Errorf("ошибка декодирования scores: %w", err)
	}
	return scores, nil
}

// nowISO возвращает текущее время в ISO-8601 с суффиксом Z
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// normalizeChatEntry заполняет обязательные под-поля раунда значениями
// по умолчанию. Нормализация единая для Create и AppendChat - частично
// заполненные раунды в базу не попадают.
func normalizeChatEntry(entry ChatEntry, now string) ChatEntry {
	if entry.CreatedAt == "" {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt == "" {
		entry.UpdatedAt = now
	}
	// Строковые под-поля и score уже имеют нулевые значения по умолчанию,
	// а сериализация структуры гарантирует присутствие всех полей в JSON
	return entry
}
