package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillspeak-backend/internal/api"
	"skillspeak-backend/internal/config"
	"skillspeak-backend/internal/logger"
	"skillspeak-backend/internal/metrics"
)

// ErrInvalidState возвращается при нарушении предусловий протокола,
// например когда роль кандидата не передана на шаге с вопросами
var ErrInvalidState = errors.New("role required before questioning can proceed")

// Service проводит интервью: пошаговый протокол и полный синхронный прогон.
// Сервис не хранит состояние между вызовами - текущий шаг каждый раз
// восстанавливается из переданной истории ответов.
type Service struct {
	generator api.Generator
	cfg       *config.InterviewConfig
	speaker   Speaker
	listener  Listener
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// New создает сервис интервьюера
func New(generator api.Generator, cfg *config.InterviewConfig, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		generator: generator,
		cfg:       cfg,
		speaker:   NoopSpeaker{},
		listener:  SilentListener{},
		log:       log.With("service", "interview"),
		metrics:   m,
	}
}

// WithAudio подключает внешние озвучку и распознавание речи
func (s *Service) WithAudio(speaker Speaker, listener Listener) *Service {
	if speaker != nil {
		s.speaker = speaker
	}
	if listener != nil {
		s.listener = listener
	}
	return s
}

// NextStep выполняет один шаг пошагового протокола. Номер шага выводится
// из длины истории ответов: 0 - запрос роли, 1..N - вопросы, дальше -
// оценка всех ответов и итоговое саммари. Функция чистая относительно
// (role, answers): скрытого состояния нет.
func (s *Service) NextStep(ctx context.Context, role string, answers []string) (*StepResult, error) {
	step := len(answers)

	// Шаг 0: приветствие и запрос роли
	if step == 0 {
		return &StepResult{Type: StepTypeRole, Prompt: WelcomePrompt()}, nil
	}

	role = strings.TrimSpace(role)
	if role == "" {
		return nil, ErrInvalidState
	}

	// Шаги 1..N: очередной вопрос под роль. Вопрос генерируется заново
	// на каждом вызове - протокол не кэширует выданные вопросы.
	if step <= s.cfg.GetTotalQuestions() {
		question, err := s.askQuestion(ctx, role)
		if err != nil {
			return nil, err
		}
		return &StepResult{Type: StepTypeQuestion, Prompt: question, Index: step}, nil
	}

	// Терминальный шаг: оцениваем все ответы начиная с индекса 1
	// (нулевой элемент истории - это роль, а не ответ на вопрос)
	feedbacks := make([]string, 0, step-1)
	scores := make([]int, 0, step-1)
	for _, answer := range answers[1:] {
		question, err := s.askQuestion(ctx, role)
		if err != nil {
			return nil, err
		}

		score, feedback, err := s.evaluateAnswer(ctx, question, answer)
		if err != nil {
			return nil, err
		}

		scores = append(scores, score)
		feedbacks = append(feedbacks, feedback)
	}

	summary := Summarize(scores)
	s.log.Info("интервью оценено", "rounds", len(scores), "average", Average(scores))

	return &StepResult{
		Type:      StepTypeFeedback,
		Feedbacks: feedbacks,
		Scores:    scores,
		Summary:   summary,
	}, nil
}

// RunFull проводит все раунды интервью за один вызов. Вопросы и ответы
// проходят через Speaker/Listener; тестовый режим подставляет готовые
// ответы и не требует аудио.
func (s *Service) RunFull(ctx context.Context, opts RunOptions) (*Result, error) {
	s.metrics.IncrementInterviewsStarted()

	s.speak(ctx, s.cfg.Messages.Welcome)
	role, err := s.listenAt(ctx, opts, 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка распознавания роли: %w", err)
	}
	role = strings.TrimSpace(role)
	if role == "" {
		s.speak(ctx, s.cfg.Messages.NoRole)
		return nil, fmt.Errorf("no role provided: %w", ErrInvalidState)
	}

	result := &Result{
		Questions: []string{},
		Answers:   []string{},
		Scores:    []int{},
		Feedbacks: []string{},
	}

	total := s.cfg.GetTotalQuestions()
	for i := 0; i < total; i++ {
		s.speak(ctx, fmt.Sprintf("Here comes question %d.", i+1))

		question, err := s.askQuestion(ctx, role)
		if err != nil {
			return nil, err
		}
		s.speak(ctx, question)
		s.pause(opts.Test)
		s.speak(ctx, s.cfg.Messages.AnswerNow)

		answer, err := s.listenAt(ctx, opts, i+1)
		if err != nil {
			answer = ""
		}
		answer = strings.TrimSpace(answer)

		result.Questions = append(result.Questions, question)
		result.Answers = append(result.Answers, answer)

		// Раунд без ответа получает оценку 0 и участвует в среднем
		// наравне с остальными
		if answer == "" {
			s.speak(ctx, s.cfg.Messages.NoAnswer)
			result.Scores = append(result.Scores, 0)
			result.Feedbacks = append(result.Feedbacks, "No answer detected.")
			continue
		}

		score, feedback, err := s.evaluateAnswer(ctx, question, answer)
		if err != nil {
			return nil, err
		}

		result.Scores = append(result.Scores, score)
		result.Feedbacks = append(result.Feedbacks, feedback)
		s.speak(ctx, fmt.Sprintf("You scored %d out of 10.", score))
		s.speak(ctx, "Feedback: "+feedback)
	}

	result.Summary = Summarize(result.Scores)
	s.speak(ctx, s.cfg.Messages.Complete)
	s.speak(ctx, result.Summary)

	s.metrics.IncrementInterviewsCompleted()
	s.log.Info("полное интервью завершено", "role", role, "rounds", total)

	return result, nil
}

// askQuestion генерирует один вопрос под роль. Ошибка генерации вопроса
// фатальна для текущего запроса - запасного вопроса у протокола нет.
func (s *Service) askQuestion(ctx context.Context, role string) (string, error) {
	reply, err := s.generator.Generate(ctx, QuestionPrompt(role))
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации вопроса: %w", err)
	}

	s.metrics.IncrementQuestionsAsked()

	// Вопрос должен быть одной строкой
	question := strings.ReplaceAll(strings.TrimSpace(reply), "\n", " ")
	return question, nil
}

// evaluateAnswer оценивает ответ кандидата на вопрос. Неструктурированный
// ответ модели разбирает ParseEvaluation, поэтому сбоев парсинга не бывает;
// ошибкой остается только недоступность самой модели.
func (s *Service) evaluateAnswer(ctx context.Context, question, answer string) (int, string, error) {
	reply, err := s.generator.Generate(ctx, EvaluationPrompt(question, answer))
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		return 0, "", fmt.Errorf("ошибка оценки ответа: %w", err)
	}

	s.metrics.IncrementEvaluationsRun()

	score, feedback := ParseEvaluation(strings.TrimSpace(reply))
	return score, feedback, nil
}

// listenAt возвращает ответ кандидата: в тестовом режиме - из переданного
// списка (или заглушку, если список короче), иначе - из распознавания речи
func (s *Service) listenAt(ctx context.Context, opts RunOptions, idx int) (string, error) {
	if opts.Test {
		if idx < len(opts.Answers) {
			return opts.Answers[idx], nil
		}
		return fmt.Sprintf("Test answer %d", idx+1), nil
	}
	return s.listener.Listen(ctx)
}

func (s *Service) speak(ctx context.Context, text string) {
	if err := s.speaker.Speak(ctx, text); err != nil {
		s.log.Warn("ошибка озвучки", "error", err)
	}
}

// pause выдерживает паузу на обдумывание ответа; в тестовом режиме
// пауза не нужна
func (s *Service) pause(testMode bool) {
	if testMode {
		return
	}
	time.Sleep(time.Duration(s.cfg.GetAnswerPause(false)) * time.Second)
}
