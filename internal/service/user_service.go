package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	"github.com/yourusername/quizrank-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
	"github.com/yourusername/quizrank-api/pkg/auth"
)

// UserService обрабатывает регистрацию, вход и операции с профилем
type UserService struct {
	credentials repository.CredentialRepository
	profiles    repository.ProfileRepository
	board       repository.LeaderboardRepository
	jwtService  *auth.JWTService
	locks       *UserLocks
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	credentials repository.CredentialRepository,
	profiles repository.ProfileRepository,
	board repository.LeaderboardRepository,
	jwtService *auth.JWTService,
	locks *UserLocks,
) *UserService {
	return &UserService{
		credentials: credentials,
		profiles:    profiles,
		board:       board,
		jwtService:  jwtService,
		locks:       locks,
	}
}

// Signup регистрирует пользователя: учетная запись, профиль и место
// в таблице лидеров с нулевыми очками
func (s *UserService) Signup(userID, password, username string) (*entity.Profile, error) {
	if userID == "" || password == "" {
		return nil, fmt.Errorf("%w: user and password required", apperrors.ErrInvalidInput)
	}
	if username == "" {
		username = userID
	}

	account, err := entity.NewAccount(userID, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.credentials.Store(account); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Create(userID, username)
	if err != nil {
		return nil, err
	}
	s.board.Upsert(userID, 0)

	log.Printf("[User] Зарегистрирован пользователь %s (username=%s)", userID, username)
	return profile, nil
}

// Login проверяет учетные данные и выдает токен
func (s *UserService) Login(userID, password string) (string, error) {
	if userID == "" || password == "" {
		return "", fmt.Errorf("%w: user and password required", apperrors.ErrInvalidInput)
	}

	account, err := s.credentials.Get(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, что именно неверно
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}
	if !account.CheckPassword(password) {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.jwtService.GenerateToken(userID)
}

// GetProfile возвращает профиль под замком пользователя, чтобы чтение
// не попало в середину конкурентного инкремента пары профиль+ранг
func (s *UserService) GetProfile(userID string) (*entity.Profile, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.profiles.Get(userID)
}

// IncrementQuizzesSolved инкрементирует счетчик решенных викторин
func (s *UserService) IncrementQuizzesSolved(userID string) (int64, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	return s.profiles.IncrementQuizzesSolved(userID)
}

// UpdateProfile применяет частичное обновление. Явная установка totalScore
// синхронизирует и очки в таблице лидеров — обе копии меняются под замком.
func (s *UserService) UpdateProfile(userID string, update entity.ProfileUpdate) (*entity.Profile, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	profile, err := s.profiles.Update(userID, update)
	if err != nil {
		return nil, err
	}
	if update.TotalScore != nil {
		s.board.Upsert(userID, *update.TotalScore)
	}
	return profile, nil
}
