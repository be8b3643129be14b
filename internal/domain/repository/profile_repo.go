package repository

import (
	"github.com/yourusername/quizrank-api/internal/domain/entity"
)

// ProfileRepository интерфейс для работы с профилями пользователей
type ProfileRepository interface {
	// Create создает профиль. Возвращает apperrors.ErrAlreadyExists,
	// если userID уже занят.
	Create(userID, username string) (*entity.Profile, error)

	// Get возвращает копию профиля. Возвращает apperrors.ErrNotFound,
	// если профиль не существует.
	Get(userID string) (*entity.Profile, error)

	// IncrementScore атомарно изменяет totalScore на delta и возвращает
	// новое значение
	IncrementScore(userID string, delta int64) (int64, error)

	// IncrementQuizzesSolved атомарно инкрементирует счетчик решенных
	// викторин и возвращает новое значение
	IncrementQuizzesSolved(userID string) (int64, error)

	// Update применяет частичное обновление и возвращает итоговый профиль
	Update(userID string, update entity.ProfileUpdate) (*entity.Profile, error)
}

// CredentialRepository интерфейс для хранения учетных данных.
// Заменяет ключи auth:<user> исходного хранилища.
type CredentialRepository interface {
	// Store сохраняет учетную запись. Возвращает apperrors.ErrAlreadyExists
	// при повторной регистрации.
	Store(account *entity.Account) error

	// Get возвращает учетную запись или apperrors.ErrNotFound
	Get(userID string) (*entity.Account, error)
}
