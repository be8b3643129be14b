package memory

import (
	"log"
	"sync"
	"time"
)

// cacheEntry хранит значение или счетчик вместе с моментом истечения.
// Нулевой expiresAt означает запись без срока жизни.
type cacheEntry struct {
	value     []byte
	counter   int64
	expiresAt time.Time
}

// expired сообщает, истекла ли запись к моменту now
func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// TTLCache реализует repository.Cache поверх карты в памяти.
// Истекшие записи не видны читателям сразу (ленивая проверка на чтении),
// физически удаляются фоновой уборкой, чтобы ограничить память.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry

	// now подменяется в тестах для симуляции течения времени
	now func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewTTLCache создает кеш и запускает фоновую уборку истекших записей.
// sweepInterval <= 0 отключает уборку (остается только ленивое удаление).
func NewTTLCache(sweepInterval time.Duration) *TTLCache {
	c := &TTLCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.runSweepRoutine(sweepInterval)
	}
	return c
}

// Set сохраняет значение по ключу с заданным временем жизни
func (c *TTLCache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
}

// Get возвращает значение по ключу. Истекшая запись считается отсутствующей
// и попутно удаляется.
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.expired(c.now()) {
		// Ленивое удаление: запись уже не видна, подчищаем под write-lock
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Delete удаляет значение по ключу
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// IncrementWithWindow атомарно инкрементирует счетчик по ключу.
// Отсутствующий или истекший счетчик создается заново со значением 1
// и окном window; живой счетчик инкрементируется без сброса окна.
func (c *TTLCache) IncrementWithWindow(key string, window time.Duration) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.expired(c.now()) {
		entry = &cacheEntry{counter: 1, expiresAt: c.now().Add(window)}
		c.entries[key] = entry
		return 1
	}
	entry.counter++
	return entry.counter
}

// Len возвращает число записей, включая еще не убранные истекшие
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close останавливает фоновую уборку. Повторный вызов безопасен.
func (c *TTLCache) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// runSweepRoutine периодически удаляет истекшие записи
func (c *TTLCache) runSweepRoutine(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := c.sweep(); removed > 0 {
				log.Printf("[Cache] Уборка удалила %d истекших записей", removed)
			}
		case <-c.done:
			return
		}
	}
}

// sweep удаляет все истекшие записи и возвращает их количество
func (c *TTLCache) sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
