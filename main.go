package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"skillspeak-backend/internal/api"
	"skillspeak-backend/internal/chat"
	"skillspeak-backend/internal/config"
	"skillspeak-backend/internal/feedback"
	"skillspeak-backend/internal/interview"
	"skillspeak-backend/internal/logger"
	"skillspeak-backend/internal/metrics"
	"skillspeak-backend/internal/server"
	"skillspeak-backend/internal/session"
	"skillspeak-backend/internal/storage"
)

func main() {
	fmt.Println("🚀 Запуск SkillSpeak AI Backend...")

	// Загружаем переменные окружения (.env опционален)
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ .env файл не найден, используются переменные окружения")
	}

	appCfg := config.LoadAppConfig()

	logg, err := logger.New(appCfg.Mode)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer logg.Sync()

	// Конфигурация интервью из YAML (с дефолтами при отсутствии файла)
	interviewCfg, err := config.LoadInterview("config/interview.yaml")
	if err != nil {
		logg.Warn("конфигурация интервью недоступна, используются значения по умолчанию", "error", err)
		interviewCfg = config.DefaultInterview()
	}

	// База данных
	db, err := storage.Open(appCfg.Database, logg)
	if err != nil {
		logg.Fatal("ошибка подключения к базе данных", "error", err)
	}
	if err := storage.Migrate(db); err != nil {
		logg.Fatal("ошибка миграции схемы", "error", err)
	}

	// Клиент языковой модели
	generator, err := api.NewOpenAIClient(appCfg.OpenAI)
	if err != nil {
		logg.Fatal("ошибка инициализации клиента OpenAI", "error", err)
	}
	fmt.Println("✅ Клиент языковой модели инициализирован")

	// Сервисы
	m := metrics.New()
	interviewService := interview.New(generator, interviewCfg, logg, m)
	sessionService := session.NewService(db, logg)
	feedbackService := feedback.NewService(db, generator, logg)
	chatService := chat.NewService(db, generator, logg)
	fmt.Println("✅ Сервисы инициализированы")

	handler := server.NewHandler(interviewService, sessionService, feedbackService, chatService, m, logg)
	router := server.NewRouter(server.RouterConfig{
		Handler:        handler,
		AllowedOrigins: appCfg.Server.AllowedOrigins,
		RateLimit:      appCfg.Server.RateLimit,
		RateWindow:     appCfg.Server.RateWindow,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", appCfg.Server.Port),
		Handler:      router,
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
	}

	fmt.Println("\n📋 Конфигурация:")
	fmt.Printf("• Вопросов в интервью: %d\n", interviewCfg.GetTotalQuestions())
	fmt.Printf("• Модель: %s\n", appCfg.OpenAI.Model)
	fmt.Printf("• База данных: %s\n", appCfg.Database.Driver)
	fmt.Printf("\n🤖 Сервер запущен на порту %d\n", appCfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("ошибка запуска сервера", "error", err)
		}
	}()

	// Грациозное завершение
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("завершение работы сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), appCfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Error("ошибка при завершении сервера", "error", err)
	}
	logg.Info("сервер остановлен")
}
