package repository

import "time"

// Cache интерфейс для работы с кешем с истечением срока действия.
// Значения — непрозрачные байтовые блобы; сериализацию выбирает вызывающий.
type Cache interface {
	// Set сохраняет значение по ключу с заданным временем жизни
	Set(key string, value []byte, ttl time.Duration)

	// Get возвращает значение по ключу. Логически истекшее значение
	// никогда не возвращается, даже если физически еще не удалено.
	Get(key string) ([]byte, bool)

	// Delete удаляет значение по ключу
	Delete(key string)

	// IncrementWithWindow атомарно инкрементирует счетчик по ключу.
	// Отсутствующий счетчик создается со значением 1 и заданным окном;
	// существующий инкрементируется без сброса окна. Используется
	// ограничителем частоты отправок.
	IncrementWithWindow(key string, window time.Duration) int64
}
