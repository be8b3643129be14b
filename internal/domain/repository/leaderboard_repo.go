package repository

import (
	"github.com/yourusername/quizrank-api/internal/domain/entity"
)

// LeaderboardRepository интерфейс для работы с ранжированным множеством.
// Это "глупый" упорядоченный контейнер: согласованность очков с профилем
// обеспечивает сервисный слой.
type LeaderboardRepository interface {
	// Upsert устанавливает абсолютное значение очков участника,
	// добавляя его при отсутствии
	Upsert(member string, score int64)

	// IncrementBy атомарно изменяет очки участника на delta и возвращает
	// новое значение. Отсутствующий участник создается со score=delta.
	IncrementBy(member string, delta int64) int64

	// RankOf возвращает ранг участника, начиная с 1 (1 — лучший).
	// Для неизвестного участника возвращает ok=false, а не нулевой ранг.
	RankOf(member string) (rank int64, ok bool)

	// Score возвращает текущие очки участника
	Score(member string) (score int64, ok bool)

	// TopN возвращает n лучших участников по убыванию очков; равные очки
	// упорядочены по возрастанию идентификатора. Если участников меньше n,
	// возвращаются все.
	TopN(n int) []entity.LeaderboardEntry

	// Len возвращает количество участников
	Len() int
}
