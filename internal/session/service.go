package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillspeak-backend/internal/logger"
)

// ErrNotFound возвращается мутациями, когда сессии с таким session_id нет
var ErrNotFound = errors.New("session not found")

const defaultSessionName = "Interview Session"

// Service - журнал сессий: создание, выборки и мутации агрегата Session
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{db: db, log: log.With("service", "session")}
}

// CreateParams - входные данные создания сессии; незаполненные поля
// получат значения по умолчанию
type CreateParams struct {
	SessionID        string      `json:"session_id"`
	UserID           *string     `json:"user_id"`
	SessionName      string      `json:"session_name"`
	StartTime        string      `json:"start_time"`
	EndTime          string      `json:"end_time"`
	TotalTimeMinutes float64     `json:"total_time_minutes"`
	Scores           []int       `json:"scores"`
	Summary          string      `json:"summary"`
	Chats            []ChatEntry `json:"chats"`
}

// Create создает сессию, заполняя отсутствующие поля значениями по
// умолчанию. Непустые значения вызывающей стороны не перезаписываются.
func (s *Service) Create(params CreateParams) (*Session, error) {
	now := nowISO()

	sessionID := params.SessionID
	if sessionID == "" {
		// Синтетический идентификатор: отметка времени + суффикс для уникальности
		sessionID = fmt.Sprintf("session_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	}

	sessionName := params.SessionName
	if sessionName == "" {
		sessionName = defaultSessionName
	}

	startTime := params.StartTime
	if startTime == "" {
		startTime = now
	}

	endTime := params.EndTime
	if endTime == "" {
		// Пока интервью не закончено, end_time совпадает со start_time
		endTime = startTime
	}

	totalTime := params.TotalTimeMinutes
	if totalTime < 0 {
		totalTime = 0
	}

	scores := params.Scores
	if scores == nil {
		scores = []int{}
	}
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации scores: %w", err)
	}

	chats := make([]ChatEntry, 0, len(params.Chats))
	for _, chat := range params.Chats {
		chats = append(chats, normalizeChatEntry(chat, now))
	}
	chatsJSON, err := json.Marshal(chats)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации chats: %w", err)
	}

	record := &Session{
		SessionID:        sessionID,
		UserID:           params.UserID,
		SessionName:      sessionName,
		StartTime:        startTime,
		EndTime:          endTime,
		TotalTimeMinutes: totalTime,
		Scores:           datatypes.JSON(scoresJSON),
		Summary:          params.Summary,
		Chats:            datatypes.JSON(chatsJSON),
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания сессии: %w", err)
	}

	s.log.Info("сессия создана", "session_id", record.SessionID)
	return record, nil
}

// GetByID ищет сессию по логическому идентификатору.
// Отсутствие сессии - не ошибка: возвращается (nil, nil).
func (s *Service) GetByID(sessionID string) (*Session, error) {
	var record Session
	err := s.db.Where("session_id = ?", sessionID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сессии %s: %w", sessionID, err)
	}
	return &record, nil
}

// допустимые поля для частичного обновления
var updatableFields = map[string]bool{
	"user_id":            true,
	"session_name":       true,
	"start_time":         true,
	"end_time":           true,
	"total_time_minutes": true,
	"scores":             true,
	"summary":            true,
	"chats":              true,
}

// Update накладывает частичное обновление на сессию. Слияние неглубокое:
// вложенные структуры (chats, scores) при наличии в patch заменяются
// целиком. updated_at проставляется при каждой мутации.
func (s *Service) Update(sessionID string, patch map[string]interface{}) error {
	updates := make(map[string]interface{}, len(patch)+1)
	for field, value := range patch {
		if !updatableFields[field] {
			continue
		}
		// JSON колонки принимают только сериализованные значения
		if field == "chats" || field == "scores" {
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("ошибка сериализации поля %s: %w", field, err)
			}
			updates[field] = datatypes.JSON(raw)
			continue
		}
		updates[field] = value
	}
	updates["updated_at"] = time.Now().UTC()

	result := s.db.Model(&Session{}).Where("session_id = ?", sessionID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("ошибка обновления сессии %s: %w", sessionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendChat атомарно дописывает один раунд в конец chats и обновляет
// updated_at. Раунд проходит ту же нормализацию, что и при создании
// сессии. Транзакция с блокировкой строки гарантирует, что два
// конкурентных вызова не потеряют ни одного раунда.
func (s *Service) AppendChat(sessionID string, entry ChatEntry) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("session_id = ?", sessionID)
		// sqlite не знает FOR UPDATE и сериализует записи сам
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var record Session
		err := query.First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("ошибка чтения сессии %s: %w", sessionID, err)
		}

		entries, err := record.ChatEntries()
		if err != nil {
			return err
		}
		entries = append(entries, normalizeChatEntry(entry, nowISO()))

		chatsJSON, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("ошибка сериализации chats: %w", err)
		}

		return tx.Model(&record).Updates(map[string]interface{}{
			"chats":      datatypes.JSON(chatsJSON),
			"updated_at": time.Now().UTC(),
		}).Error
	})
}

// ByUser возвращает все сессии пользователя
func (s *Service) ByUser(userID string) ([]Session, error) {
	var records []Session
	if err := s.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("ошибка выборки сессий пользователя %s: %w", userID, err)
	}
	return records, nil
}

// All возвращает все сессии
func (s *Service) All() ([]Session, error) {
	var records []Session
	if err := s.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("ошибка выборки сессий: %w", err)
	}
	return records, nil
}

// Today возвращает сессии, созданные за текущие календарные сутки UTC:
// полуоткрытый интервал [полночь сегодня, полночь завтра)
func (s *Service) Today() ([]Session, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := midnight.Add(24 * time.Hour)

	var records []Session
	err := s.db.Where("created_at >= ? AND created_at < ?", midnight, tomorrow).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки сессий за сегодня: %w", err)
	}
	return records, nil
}
