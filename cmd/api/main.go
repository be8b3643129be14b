package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yourusername/quizrank-api/internal/config"
	"github.com/yourusername/quizrank-api/internal/handler"
	"github.com/yourusername/quizrank-api/internal/repository/memory"
	"github.com/yourusername/quizrank-api/internal/service"
	"github.com/yourusername/quizrank-api/internal/worker"
	"github.com/yourusername/quizrank-api/pkg/auth"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Встроенное хранилище: все состояние живет в памяти процесса
	// и строится заново при каждом старте
	cache := memory.NewTTLCache(cfg.Cache.SweepInterval())
	defer cache.Close()
	board := memory.NewRankedSet()
	profiles := memory.NewProfileRepo()
	credentials := memory.NewCredentialRepo()
	queue := memory.NewJobQueue()
	bus := memory.NewEventBus()

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, cache)
	if err != nil {
		log.Fatalf("Не удалось создать JWT сервис: %v", err)
	}

	locks := service.NewUserLocks()
	leaderboardService := service.NewLeaderboardService(profiles, board, bus, locks)
	userService := service.NewUserService(credentials, profiles, board, jwtService, locks)
	quizService := service.NewQuizService(cache, queue, board,
		cfg.Cache.ResultsTTL(), cfg.RateLimit.Window(), cfg.RateLimit.MaxSubmissions)

	router := handler.SetupRouter(
		handler.NewUserHandler(userService, leaderboardService),
		handler.NewQuizHandler(quizService),
		handler.NewLeaderboardHandler(leaderboardService),
		jwtService,
	)

	// Фоновые процессы: воркер начисления очков и логгер событий лидерборда
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	scoreWorker := worker.NewScoreWorker(queue, userService, leaderboardService,
		cfg.Worker.PopTimeout(), cfg.Worker.RetryBackoff())
	eventLogger := worker.NewEventLogger(bus)

	wg.Add(2)
	go func() {
		defer wg.Done()
		scoreWorker.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		eventLogger.Run(ctx)
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Сервер запущен на порту %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Получен сигнал остановки, завершение работы...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
	}

	// Ждем, пока воркер дообработает текущую задачу
	wg.Wait()
	log.Println("Сервер остановлен")
}

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "configs/config.yaml"
}
