package chat

import "time"

// Роли отправителей сообщений чата
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// Message - одно сообщение голосового чата. Диалог хранится плоским
// списком: реплика пользователя и ответ модели - две отдельные записи
// с одинаковыми user_id/session_id/chat_id.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	SessionID string    `gorm:"index" json:"session_id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Message) TableName() string {
	return "chat_messages"
}
