package session

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"skillspeak-backend/internal/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}))

	// sqlite пускает в файл одного писателя за раз; одно соединение в пуле
	// выстраивает конкурентные транзакции в очередь вместо ошибок busy
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return NewService(db, logger.NewNop())
}

func TestCreate_DefaultsEmptyInput(t *testing.T) {
	svc := newTestService(t)

	record, err := svc.Create(CreateParams{})
	require.NoError(t, err)

	assert.NotEmpty(t, record.SessionID)
	assert.Nil(t, record.UserID)
	assert.Equal(t, "Interview Session", record.SessionName)
	assert.NotEmpty(t, record.StartTime)
	assert.Equal(t, record.StartTime, record.EndTime)
	assert.Equal(t, 0.0, record.TotalTimeMinutes)
	assert.Empty(t, record.Summary)

	chats, err := record.ChatEntries()
	require.NoError(t, err)
	assert.Empty(t, chats)

	scores, err := record.ScoreList()
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestCreate_KeepsCallerValues(t *testing.T) {
	svc := newTestService(t)
	userID := "user-42"

	record, err := svc.Create(CreateParams{
		SessionID:   "session_custom",
		UserID:      &userID,
		SessionName: "Mock Interview",
		StartTime:   "2026-08-28T10:00:00Z",
		Scores:      []int{7, 8},
		Summary:     "Good job.",
	})
	require.NoError(t, err)

	assert.Equal(t, "session_custom", record.SessionID)
	assert.Equal(t, "Mock Interview", record.SessionName)
	assert.Equal(t, "2026-08-28T10:00:00Z", record.StartTime)
	assert.Equal(t, "Good job.", record.Summary)

	scores, err := record.ScoreList()
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, scores)
}

func TestCreate_NormalizesPartialChats(t *testing.T) {
	svc := newTestService(t)

	record, err := svc.Create(CreateParams{
		Chats: []ChatEntry{{Question: "Q1"}},
	})
	require.NoError(t, err)

	chats, err := record.ChatEntries()
	require.NoError(t, err)
	require.Len(t, chats, 1)

	// Все под-поля раунда присутствуют: отсутствующие заполнены дефолтами
	assert.Equal(t, "Q1", chats[0].Question)
	assert.Empty(t, chats[0].Answer)
	assert.Empty(t, chats[0].AIFeedback)
	assert.Equal(t, 0, chats[0].Score)
	assert.NotEmpty(t, chats[0].CreatedAt)
	assert.NotEmpty(t, chats[0].UpdatedAt)
}

func TestGetByID_AbsenceIsNotAnError(t *testing.T) {
	svc := newTestService(t)

	record, err := svc.GetByID("missing")
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestUpdate_ShallowMergeAndTimestamp(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(CreateParams{SessionID: "session_upd"})
	require.NoError(t, err)
	before := created.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	err = svc.Update("session_upd", map[string]interface{}{
		"summary":            "Excellent performance!",
		"total_time_minutes": 12.5,
		"scores":             []int{9, 9, 9},
	})
	require.NoError(t, err)

	updated, err := svc.GetByID("session_upd")
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Excellent performance!", updated.Summary)
	assert.Equal(t, 12.5, updated.TotalTimeMinutes)
	assert.True(t, updated.UpdatedAt.After(before))

	scores, err := updated.ScoreList()
	require.NoError(t, err)
	assert.Equal(t, []int{9, 9, 9}, scores)

	// Незатронутые поля не изменились
	assert.Equal(t, "Interview Session", updated.SessionName)
}

func TestUpdate_IgnoresUnknownFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreateParams{SessionID: "session_fields"})
	require.NoError(t, err)

	err = svc.Update("session_fields", map[string]interface{}{
		"session_name": "Renamed",
		"id":           999,
		"dangerous":    "value",
	})
	require.NoError(t, err)

	updated, err := svc.GetByID("session_fields")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.SessionName)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Update("missing", map[string]interface{}{"summary": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendChat_PreservesOrderAndStampsUpdatedAt(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(CreateParams{SessionID: "session_chats"})
	require.NoError(t, err)
	prev := created.UpdatedAt

	for i, question := range []string{"Q1", "Q2"} {
		time.Sleep(10 * time.Millisecond)
		err = svc.AppendChat("session_chats", ChatEntry{
			Question:   question,
			Answer:     "answer",
			Score:      5 + i,
			AIFeedback: "ok",
		})
		require.NoError(t, err)

		record, err := svc.GetByID("session_chats")
		require.NoError(t, err)
		assert.True(t, record.UpdatedAt.After(prev) || record.UpdatedAt.Equal(prev))
		prev = record.UpdatedAt
	}

	record, err := svc.GetByID("session_chats")
	require.NoError(t, err)

	chats, err := record.ChatEntries()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "Q1", chats[0].Question)
	assert.Equal(t, "Q2", chats[1].Question)
	assert.Equal(t, 5, chats[0].Score)
	assert.Equal(t, 6, chats[1].Score)

	// Дописанный раунд проходит нормализацию
	assert.NotEmpty(t, chats[0].CreatedAt)
	assert.NotEmpty(t, chats[0].UpdatedAt)
}

func TestAppendChat_ConcurrentAppendsAllSurvive(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(CreateParams{SessionID: "session_concurrent"})
	require.NoError(t, err)

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs <- svc.AppendChat("session_concurrent", ChatEntry{
				Question: fmt.Sprintf("Q%d", n),
				Answer:   "answer",
				Score:    n,
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Транзакция с чтением под блокировкой: ни один конкурентный раунд
	// не перетирает другой
	record, err := svc.GetByID("session_concurrent")
	require.NoError(t, err)

	chats, err := record.ChatEntries()
	require.NoError(t, err)
	assert.Len(t, chats, workers)
}

func TestAppendChat_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.AppendChat("missing", ChatEntry{Question: "Q"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListings(t *testing.T) {
	svc := newTestService(t)
	alice := "alice"
	bob := "bob"

	_, err := svc.Create(CreateParams{SessionID: "s1", UserID: &alice})
	require.NoError(t, err)
	_, err = svc.Create(CreateParams{SessionID: "s2", UserID: &alice})
	require.NoError(t, err)
	_, err = svc.Create(CreateParams{SessionID: "s3", UserID: &bob})
	require.NoError(t, err)

	byAlice, err := svc.ByUser("alice")
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	all, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Все только что созданные сессии попадают в окно текущих суток UTC
	today, err := svc.Today()
	require.NoError(t, err)
	assert.Len(t, today, 3)
}
