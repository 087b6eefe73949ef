package chat

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skillspeak-backend/internal/api"
	"skillspeak-backend/internal/logger"
)

// ErrModelUnavailable возвращается, когда модель не ответила на реплику
var ErrModelUnavailable = errors.New("language model unavailable")

// Service - ретранслятор голосового чата: сохраняет реплику пользователя,
// получает ответ модели и сохраняет его той же парой идентификаторов
type Service struct {
	db        *gorm.DB
	generator api.Generator
	log       *logger.Logger
}

func NewService(db *gorm.DB, generator api.Generator, log *logger.Logger) *Service {
	return &Service{db: db, generator: generator, log: log.With("service", "chat")}
}

// SendParams - входные данные одной реплики пользователя
type SendParams struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	ChatID    string `json:"chat_id"`
}

// Send сохраняет реплику пользователя, запрашивает ответ модели и
// сохраняет его с ролью ai. Реплика пользователя остается в истории
// даже если модель недоступна - как и в живом диалоге, вопрос без
// ответа не исчезает.
func (s *Service) Send(ctx context.Context, params SendParams) (string, error) {
	userMessage := &Message{
		UserID:    params.UserID,
		Role:      params.Role,
		Message:   params.Message,
		SessionID: params.SessionID,
		ChatID:    params.ChatID,
	}
	if err := s.db.Create(userMessage).Error; err != nil {
		return "", fmt.Errorf("ошибка сохранения сообщения: %w", err)
	}

	reply, err := s.generator.Generate(ctx, params.Message)
	if err != nil {
		s.log.Error("ошибка получения ответа модели", "error", err)
		return "", ErrModelUnavailable
	}

	aiMessage := &Message{
		UserID:    params.UserID,
		Role:      RoleAI,
		Message:   reply,
		SessionID: params.SessionID,
		ChatID:    params.ChatID,
	}
	if err := s.db.Create(aiMessage).Error; err != nil {
		return "", fmt.Errorf("ошибка сохранения ответа модели: %w", err)
	}

	s.log.Info("сообщение чата обработано", "user_id", params.UserID)
	return reply, nil
}

// History возвращает сообщения пользователя в хронологическом порядке.
// Пустые session_id/chat_id не сужают выборку.
func (s *Service) History(userID, sessionID, chatID string) ([]Message, error) {
	query := s.db.Where("user_id = ?", userID)
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}
	if chatID != "" {
		query = query.Where("chat_id = ?", chatID)
	}

	var messages []Message
	if err := query.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("ошибка выборки истории чата %s: %w", userID, err)
	}
	return messages, nil
}
