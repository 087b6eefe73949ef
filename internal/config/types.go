package config

// InterviewConfig представляет конфигурацию интервью из YAML файла
type InterviewConfig struct {
	Interview InterviewSettings `yaml:"interview"`
	Messages  MessagesSettings  `yaml:"messages"`
}

// InterviewSettings содержит общие настройки интервью
type InterviewSettings struct {
	TotalQuestions   int `yaml:"total_questions"`
	AnswerPauseSec   int `yaml:"answer_pause_seconds"`
	TestAnswerPause  int `yaml:"test_answer_pause_seconds"`
	MaxAnswerSeconds int `yaml:"max_answer_seconds"`
}

// MessagesSettings содержит тексты, которые озвучиваются кандидату
type MessagesSettings struct {
	Welcome     string `yaml:"welcome"`
	NoRole      string `yaml:"no_role"`
	NoAnswer    string `yaml:"no_answer"`
	AnswerNow   string `yaml:"answer_now"`
	Complete    string `yaml:"complete"`
	DefaultName string `yaml:"default_session_name"`
}

// Методы для удобного доступа к конфигурации

func (c *InterviewConfig) GetTotalQuestions() int {
	return c.Interview.TotalQuestions
}

func (c *InterviewConfig) GetAnswerPause(testMode bool) int {
	if testMode {
		return c.Interview.TestAnswerPause
	}
	return c.Interview.AnswerPauseSec
}
