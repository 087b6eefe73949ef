package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillspeak-backend/internal/api"
	"skillspeak-backend/internal/interview"
	"skillspeak-backend/internal/logger"
)

// Service принимает пользовательский фидбек и прогоняет его через AI-анализ
type Service struct {
	db        *gorm.DB
	generator api.Generator
	log       *logger.Logger
}

func NewService(db *gorm.DB, generator api.Generator, log *logger.Logger) *Service {
	return &Service{db: db, generator: generator, log: log.With("service", "feedback")}
}

// Create сохраняет запись фидбека
func (s *Service) Create(record *Feedback) error {
	if record.UserID == "" {
		record.UserID = "anonymous"
	}
	if record.Type == "" {
		record.Type = TypeUserSuggestion
	}
	if record.Status == "" {
		record.Status = StatusPending
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("ошибка сохранения фидбека: %w", err)
	}
	return nil
}

// GenerateAIFeedback просит модель структурированно проанализировать
// пользовательский ввод и сохраняет результат. Метод никогда не отдает
// ошибку коллаборатора наружу: при недоступности модели возвращается
// фиксированный запасной результат, при невалидном JSON - структура,
// собранная из сырого текста ответа.
func (s *Service) GenerateAIFeedback(ctx context.Context, userID, input string) (*AIAnalysis, error) {
	analysis := s.analyze(ctx, input)

	suggestionsJSON, err := json.Marshal(analysis.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации suggestions: %w", err)
	}

	record := &Feedback{
		UserID:      userID,
		Input:       input,
		Type:        TypeAIFeedback,
		Status:      StatusCompleted,
		AIFeedback:  analysis.Summary,
		Score:       analysis.Score,
		Suggestions: datatypes.JSON(suggestionsJSON),
		Category:    analysis.Category,
	}
	if err := s.Create(record); err != nil {
		return nil, err
	}

	return analysis, nil
}

func (s *Service) analyze(ctx context.Context, input string) *AIAnalysis {
	reply, err := s.generator.Generate(ctx, interview.FeedbackAnalysisPrompt(input))
	if err != nil {
		// Модель недоступна - детерминированный запасной результат
		s.log.Warn("AI-анализ недоступен, используется запасной результат", "error", err)
		return &AIAnalysis{
			Summary: fmt.Sprintf("User provided feedback: %s...", truncate(input, 100)),
			Score:   7.0,
			Suggestions: []string{
				"Thank you for your feedback",
				"We will review this suggestion",
				"Please continue providing valuable input",
			},
			Category: "general",
		}
	}

	var analysis AIAnalysis
	if err := json.Unmarshal([]byte(api.CleanJSONResponse(reply)), &analysis); err != nil {
		// Модель ответила не JSON-ом - собираем структуру из сырого текста
		s.log.Warn("невалидный JSON от модели", "error", err)
		return &AIAnalysis{
			Summary: truncateWithEllipsis(reply, 200),
			Score:   7.5,
			Suggestions: []string{
				"Continue practicing",
				"Focus on clarity",
				"Work on confidence",
			},
			Category: "general",
		}
	}

	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}
	return &analysis
}

// ByUser возвращает фидбек пользователя
func (s *Service) ByUser(userID string) ([]Feedback, error) {
	var records []Feedback
	if err := s.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("ошибка выборки фидбека пользователя %s: %w", userID, err)
	}
	return records, nil
}

// All возвращает весь фидбек
func (s *Service) All() ([]Feedback, error) {
	var records []Feedback
	if err := s.db.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("ошибка выборки фидбека: %w", err)
	}
	return records, nil
}

// Count возвращает количество записей фидбека
func (s *Service) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&Feedback{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("ошибка подсчета фидбека: %w", err)
	}
	return count, nil
}

// truncate обрезает текст до limit символов. Граница проходит по рунам,
// а не по байтам - многобайтовый символ не разрезается пополам.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func truncateWithEllipsis(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
