package interview

import "context"

// Speaker озвучивает текст кандидату. Реальная реализация (TTS) живет
// вне этого бэкенда; здесь только контракт.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Listener распознает ответ кандидата. Реальная реализация (микрофон + STT)
// живет вне этого бэкенда; здесь только контракт.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// NoopSpeaker молча проглатывает реплики - используется, когда озвучка не подключена
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(ctx context.Context, text string) error { return nil }

// SilentListener всегда возвращает пустой ответ - используется, когда
// распознавание речи не подключено (остается только тестовый режим)
type SilentListener struct{}

func (SilentListener) Listen(ctx context.Context) (string, error) { return "", nil }
