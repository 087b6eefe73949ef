package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadInterview загружает конфигурацию интервью из YAML файла
func LoadInterview(filename string) (*InterviewConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var cfg InterviewConfig
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	applyDefaults(&cfg)

	err = validateInterviewConfig(&cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &cfg, nil
}

// DefaultInterview возвращает конфигурацию по умолчанию, если YAML файл недоступен
func DefaultInterview() *InterviewConfig {
	cfg := &InterviewConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *InterviewConfig) {
	if cfg.Interview.TotalQuestions == 0 {
		cfg.Interview.TotalQuestions = 3
	}
	if cfg.Interview.AnswerPauseSec == 0 {
		cfg.Interview.AnswerPauseSec = 7
	}
	if cfg.Interview.TestAnswerPause == 0 {
		cfg.Interview.TestAnswerPause = 1
	}
	if cfg.Interview.MaxAnswerSeconds == 0 {
		cfg.Interview.MaxAnswerSeconds = 60
	}
	if cfg.Messages.Welcome == "" {
		cfg.Messages.Welcome = "Welcome to the AI Interviewer. Please tell me your job role."
	}
	if cfg.Messages.NoRole == "" {
		cfg.Messages.NoRole = "I didn't catch your role. Exiting."
	}
	if cfg.Messages.NoAnswer == "" {
		cfg.Messages.NoAnswer = "Sorry, no answer detected. Moving on."
	}
	if cfg.Messages.AnswerNow == "" {
		cfg.Messages.AnswerNow = "Please answer now."
	}
	if cfg.Messages.Complete == "" {
		cfg.Messages.Complete = "Interview complete."
	}
	if cfg.Messages.DefaultName == "" {
		cfg.Messages.DefaultName = "Interview Session"
	}
}

// validateInterviewConfig проверяет корректность конфигурации
func validateInterviewConfig(cfg *InterviewConfig) error {
	if cfg.Interview.TotalQuestions <= 0 {
		return fmt.Errorf("total_questions должно быть больше 0")
	}

	if cfg.Interview.AnswerPauseSec < 0 {
		return fmt.Errorf("answer_pause_seconds не может быть отрицательным")
	}

	if cfg.Interview.MaxAnswerSeconds <= 0 {
		return fmt.Errorf("max_answer_seconds должно быть больше 0")
	}

	return nil
}
