package errors

import "errors"

// Общие ошибки приложения. Репозитории и сервисы возвращают эти значения,
// а обработчики отображают их в HTTP-статусы в одном месте.
var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists возвращается при попытке создать уже существующую запись
	ErrAlreadyExists = errors.New("record already exists")

	// ErrInvalidCredentials возвращается при неверной паре логин/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited возвращается, когда пользователь превысил лимит отправок
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных запроса
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable возвращается при временном сбое хранилища.
	// Воркер повторяет такие операции с небольшой задержкой, HTTP-слой — нет.
	ErrUnavailable = errors.New("store temporarily unavailable")
)
