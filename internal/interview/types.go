package interview

// Типы шагов пошагового протокола интервью
const (
	StepTypeRole     = "role"
	StepTypeQuestion = "question"
	StepTypeFeedback = "feedback"
)

// StepResult представляет ответ одного шага пошагового протокола
type StepResult struct {
	Type      string   `json:"type"`
	Prompt    string   `json:"prompt,omitempty"`
	Index     int      `json:"index,omitempty"`
	Feedbacks []string `json:"feedbacks,omitempty"`
	Scores    []int    `json:"scores,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// Result представляет результат полного синхронного интервью
type Result struct {
	Questions []string `json:"questions"`
	Answers   []string `json:"answers"`
	Scores    []int    `json:"scores"`
	Feedbacks []string `json:"feedbacks"`
	Summary   string   `json:"summary"`
}

// RunOptions задает режим полного прогона интервью.
// В тестовом режиме ответы подставляются из Answers вместо живого
// распознавания речи.
type RunOptions struct {
	Test    bool     `json:"test"`
	Answers []string `json:"answers"`
}
