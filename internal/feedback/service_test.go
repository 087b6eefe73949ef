package feedback

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"skillspeak-backend/internal/logger"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) {
	return f.reply, f.err
}

func newTestService(t *testing.T, gen *fakeGenerator) *Service {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Feedback{}))

	return NewService(db, gen, logger.NewNop())
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{})

	record := &Feedback{Input: "great app"}
	require.NoError(t, svc.Create(record))

	assert.Equal(t, "anonymous", record.UserID)
	assert.Equal(t, TypeUserSuggestion, record.Type)
	assert.Equal(t, StatusPending, record.Status)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGenerateAIFeedback_ValidJSON(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{
		reply: "```json\n{\"summary\":\"Helpful input\",\"score\":8.5,\"suggestions\":[\"Add tests\"],\"category\":\"technical\"}\n```",
	})

	analysis, err := svc.GenerateAIFeedback(context.Background(), "user-1", "the parser is slow")
	require.NoError(t, err)

	assert.Equal(t, "Helpful input", analysis.Summary)
	assert.Equal(t, 8.5, analysis.Score)
	assert.Equal(t, []string{"Add tests"}, analysis.Suggestions)
	assert.Equal(t, "technical", analysis.Category)

	records, err := svc.ByUser("user-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, TypeAIFeedback, records[0].Type)
	assert.Equal(t, StatusCompleted, records[0].Status)
}

func TestGenerateAIFeedback_MalformedJSON(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{reply: "Sounds good, keep going!"})

	analysis, err := svc.GenerateAIFeedback(context.Background(), "user-1", "some input")
	require.NoError(t, err)

	assert.Equal(t, "Sounds good, keep going!", analysis.Summary)
	assert.Equal(t, 7.5, analysis.Score)
	assert.NotEmpty(t, analysis.Suggestions)
}

func TestGenerateAIFeedback_CollaboratorFailure(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{err: errors.New("connection refused")})

	// Недоступность модели не пробрасывается - возвращается
	// детерминированный запасной результат
	analysis, err := svc.GenerateAIFeedback(context.Background(), "user-1", "the interview flow is confusing")
	require.NoError(t, err)

	assert.Contains(t, analysis.Summary, "User provided feedback: the interview flow is confusing")
	assert.Equal(t, 7.0, analysis.Score)
	assert.Len(t, analysis.Suggestions, 3)
	assert.Equal(t, "general", analysis.Category)
}

func TestGenerateAIFeedback_TruncatesOnRuneBoundary(t *testing.T) {
	// Многобайтовый ввод длиннее лимита: граница обрезки не должна
	// разрезать символ пополам
	longInput := strings.Repeat("интервью ", 20)
	svc := newTestService(t, &fakeGenerator{err: errors.New("connection refused")})

	analysis, err := svc.GenerateAIFeedback(context.Background(), "user-1", longInput)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(analysis.Summary))
	assert.Equal(t, 100, len([]rune(strings.TrimSuffix(strings.TrimPrefix(analysis.Summary, "User provided feedback: "), "..."))))

	longReply := strings.Repeat("отличный ответ ", 30)
	svc = newTestService(t, &fakeGenerator{reply: longReply})

	analysis, err = svc.GenerateAIFeedback(context.Background(), "user-1", "some input")
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(analysis.Summary))
	assert.True(t, strings.HasSuffix(analysis.Summary, "..."))
	assert.Equal(t, 200, len([]rune(strings.TrimSuffix(analysis.Summary, "..."))))
}
