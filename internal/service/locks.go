package service

import "sync"

// UserLocks сериализует операции над парой профиль+ранг одного пользователя.
// Критическая секция incrementUserScore (чтение ранга, двойной инкремент,
// чтение нового ранга, публикация события) держит замок своего пользователя
// целиком; читатели профиля и ранга берут тот же замок, поэтому разорванное
// состояние пары снаружи не наблюдаемо. Операции над разными пользователями
// идут параллельно.
type UserLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocks создает пустой набор замков
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock захватывает замок пользователя и возвращает функцию освобождения.
// Замки не удаляются: их число ограничено числом пользователей.
func (l *UserLocks) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
