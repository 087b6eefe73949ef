package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInterview(t *testing.T) {
	cfg := DefaultInterview()

	assert.Equal(t, 3, cfg.GetTotalQuestions())
	assert.Equal(t, 7, cfg.GetAnswerPause(false))
	assert.Equal(t, 1, cfg.GetAnswerPause(true))
	assert.Equal(t, "Welcome to the AI Interviewer. Please tell me your job role.", cfg.Messages.Welcome)
	assert.Equal(t, "Interview Session", cfg.Messages.DefaultName)
}

func TestLoadInterview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.yaml")
	content := `
interview:
  total_questions: 5
  answer_pause_seconds: 3
messages:
  welcome: "Hello candidate."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadInterview(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.GetTotalQuestions())
	assert.Equal(t, 3, cfg.GetAnswerPause(false))
	assert.Equal(t, "Hello candidate.", cfg.Messages.Welcome)
	// Незаданные поля получают значения по умолчанию
	assert.Equal(t, "Sorry, no answer detected. Moving on.", cfg.Messages.NoAnswer)
}

func TestLoadInterview_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interview.yaml")
	content := `
interview:
  total_questions: -1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadInterview(path)
	assert.Error(t, err)
}

func TestLoadInterview_MissingFile(t *testing.T) {
	_, err := LoadInterview(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
