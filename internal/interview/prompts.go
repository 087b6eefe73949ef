package interview

import (
	"fmt"
	"strings"
)

const welcomePrompt = "Welcome to the AI Interviewer. Please tell me your job role."

// WelcomePrompt возвращает приветствие с запросом роли кандидата
func WelcomePrompt() string {
	return welcomePrompt
}

// QuestionPrompt создает промпт для генерации одного вопроса под роль кандидата
func QuestionPrompt(role string) string {
	return fmt.Sprintf(
		"Generate one clear interview question for a candidate applying for a %s role. Only return the question.",
		role,
	)
}

// EvaluationPrompt создает промпт для оценки ответа кандидата.
// Модель просят ответить строго в формате "Score: X/10\nFeedback: <text>",
// который затем разбирает ParseEvaluation.
func EvaluationPrompt(question, answer string) string {
	var prompt strings.Builder

	prompt.WriteString("Evaluate the following answer to an interview question on a scale of 1 to 10. ")
	prompt.WriteString("Also provide brief constructive feedback.\n\n")
	prompt.WriteString(fmt.Sprintf("Question: %s\n", question))
	prompt.WriteString(fmt.Sprintf("Answer: %s\n\n", answer))
	prompt.WriteString("Respond in this format: Score: X/10\nFeedback: <your feedback>")

	return prompt.String()
}

// FeedbackAnalysisPrompt создает промпт для структурированного анализа
// пользовательского фидбека в формате JSON
func FeedbackAnalysisPrompt(input string) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze the following user input and provide structured feedback in JSON format:\n\n")
	prompt.WriteString(fmt.Sprintf("User Input: %s\n\n", input))
	prompt.WriteString("Please provide feedback in this exact JSON format:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("    \"summary\": \"Brief summary of the input\",\n")
	prompt.WriteString("    \"score\": 8.5,\n")
	prompt.WriteString("    \"suggestions\": [\"Suggestion 1\", \"Suggestion 2\", \"Suggestion 3\"],\n")
	prompt.WriteString("    \"category\": \"general|technical|ui_ux|feature_request|bug_report\"\n")
	prompt.WriteString("}\n\n")
	prompt.WriteString("Score should be 1-10, suggestions should be actionable, and category should be one of the listed options.")

	return prompt.String()
}
