package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillspeak-backend/internal/chat"
	"skillspeak-backend/internal/feedback"
	"skillspeak-backend/internal/interview"
	"skillspeak-backend/internal/logger"
	"skillspeak-backend/internal/metrics"
	"skillspeak-backend/internal/session"
)

// Handler связывает HTTP слой с сервисами
type Handler struct {
	interview *interview.Service
	sessions  *session.Service
	feedback  *feedback.Service
	chat      *chat.Service
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewHandler(
	interviewService *interview.Service,
	sessionService *session.Service,
	feedbackService *feedback.Service,
	chatService *chat.Service,
	m *metrics.Metrics,
	log *logger.Logger,
) *Handler {
	return &Handler{
		interview: interviewService,
		sessions:  sessionService,
		feedback:  feedbackService,
		chat:      chatService,
		metrics:   m,
		log:       log.With("component", "handler"),
	}
}

// --- Интервью ---

type stepRequest struct {
	Role    string   `json:"role"`
	Answers []string `json:"answers"`
}

// InterviewStep - один шаг пошагового протокола. Состояние не хранится:
// вызывающая сторона передает всю историю ответов, текущий шаг выводится
// из ее длины.
func (h *Handler) InterviewStep(c *gin.Context) {
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.interview.NextStep(c.Request.Context(), req.Role, req.Answers)
	if err != nil {
		if errors.Is(err, interview.ErrInvalidState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": interview.ErrInvalidState.Error()})
			return
		}
		h.log.Error("ошибка шага интервью", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// InterviewRun проводит полное интервью за один вызов. Тестовый режим
// (test=true) подставляет переданные ответы вместо распознавания речи.
func (h *Handler) InterviewRun(c *gin.Context) {
	var opts interview.RunOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if c.Query("test") == "true" {
		opts.Test = true
	}

	result, err := h.interview.RunFull(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, interview.ErrInvalidState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No role provided"})
			return
		}
		h.log.Error("ошибка полного интервью", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ChatSend сохраняет реплику пользователя, прогоняет ее через модель
// и возвращает ответ. Обе стороны диалога попадают в историю.
func (h *Handler) ChatSend(c *gin.Context) {
	var params chat.SendParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if params.UserID == "" || params.Role == "" || params.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, role, and message required"})
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), params)
	if errors.Is(err, chat.ErrModelUnavailable) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "language model unavailable"})
		return
	}
	if err != nil {
		h.log.Error("ошибка отправки сообщения чата", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": reply})
}

// ChatHistory возвращает историю чата пользователя; session_id и chat_id
// сужают выборку через query параметры
func (h *Handler) ChatHistory(c *gin.Context) {
	messages, err := h.chat.History(c.Param("user_id"), c.Query("session_id"), c.Query("chat_id"))
	if err != nil {
		h.log.Error("ошибка выборки истории чата", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chat history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// --- Сессии ---

func (h *Handler) CreateSession(c *gin.Context) {
	var params session.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.sessions.Create(params)
	if err != nil {
		h.log.Error("ошибка создания сессии", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Session created",
		"session_id": record.SessionID,
	})
}

func (h *Handler) GetSession(c *gin.Context) {
	record, err := h.sessions.GetByID(c.Param("session_id"))
	if err != nil {
		h.log.Error("ошибка поиска сессии", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch session"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) SessionsByUser(c *gin.Context) {
	records, err := h.sessions.ByUser(c.Param("user_id"))
	if err != nil {
		h.log.Error("ошибка выборки сессий", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) UpdateSession(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.sessions.Update(c.Param("session_id"), patch)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.Error("ошибка обновления сессии", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session updated"})
}

func (h *Handler) AddChat(c *gin.Context) {
	var entry session.ChatEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.sessions.AppendChat(c.Param("session_id"), entry)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		h.log.Error("ошибка добавления раунда", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to append chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat added to session"})
}

// --- Фидбек ---

type feedbackRequest struct {
	UserID string `json:"user_id"`
	Input  string `json:"input"`
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input field is required"})
		return
	}

	record := &feedback.Feedback{UserID: req.UserID, Input: req.Input}
	if err := h.feedback.Create(record); err != nil {
		h.log.Error("ошибка сохранения фидбека", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Feedback submitted successfully",
		"feedback_id": record.ID,
	})
}

func (h *Handler) GenerateFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Input field is required"})
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	analysis, err := h.feedback.GenerateAIFeedback(c.Request.Context(), req.UserID, req.Input)
	if err != nil {
		h.log.Error("ошибка генерации AI-фидбека", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate feedback"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) FeedbackByUser(c *gin.Context) {
	records, err := h.feedback.ByUser(c.Param("user_id"))
	if err != nil {
		h.log.Error("ошибка выборки фидбека", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch feedback"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) AllFeedback(c *gin.Context) {
	records, err := h.feedback.All()
	if err != nil {
		h.log.Error("ошибка выборки фидбека", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch feedback"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) FeedbackCount(c *gin.Context) {
	count, err := h.feedback.Count()
	if err != nil {
		h.log.Error("ошибка подсчета фидбека", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count feedback"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// --- Админ ---

func (h *Handler) AdminMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}

func (h *Handler) AdminSessions(c *gin.Context) {
	records, err := h.sessions.All()
	if err != nil {
		h.log.Error("ошибка выборки сессий", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) AdminSessionsToday(c *gin.Context) {
	records, err := h.sessions.Today()
	if err != nil {
		h.log.Error("ошибка выборки сессий", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// --- Служебное ---

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SkillSpeak AI API is running!"})
}
