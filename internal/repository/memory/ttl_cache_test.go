package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock позволяет сдвигать время в тестах без ожидания
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache() (*TTLCache, *fakeClock) {
	cache := NewTTLCache(0)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	cache.now = clock.Now
	return cache, clock
}

func TestTTLCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache()
	defer cache.Close()

	cache.Set("quiz:results:q1", []byte(`{"quizId":"q1"}`), time.Minute)

	value, ok := cache.Get("quiz:results:q1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"quizId":"q1"}`), value)

	_, ok = cache.Get("quiz:results:unknown")
	assert.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	cache, clock := newTestCache()
	defer cache.Close()

	cache.Set("key", []byte("value"), time.Minute)

	clock.Advance(59 * time.Second)
	_, ok := cache.Get("key")
	assert.True(t, ok, "значение должно жить все окно TTL")

	clock.Advance(2 * time.Second)
	_, ok = cache.Get("key")
	assert.False(t, ok, "истекшее значение не должно возвращаться")

	// Ленивое удаление подчистило запись
	assert.Equal(t, 0, cache.Len())
}

func TestTTLCacheDelete(t *testing.T) {
	cache, _ := newTestCache()
	defer cache.Close()

	cache.Set("key", []byte("value"), time.Minute)
	cache.Delete("key")

	_, ok := cache.Get("key")
	assert.False(t, ok)
}

func TestTTLCacheIncrementWithWindow(t *testing.T) {
	cache, clock := newTestCache()
	defer cache.Close()

	// Пять инкрементов в окне: счетчик растет без сброса окна
	for i := int64(1); i <= 5; i++ {
		assert.Equal(t, i, cache.IncrementWithWindow("rate:submissions:alice", time.Minute))
		clock.Advance(5 * time.Second)
	}

	// Шестой в том же окне дает 6 — решение об отказе за вызывающим
	assert.Equal(t, int64(6), cache.IncrementWithWindow("rate:submissions:alice", time.Minute))

	// После истечения окна счетчик начинается заново с 1.
	// Окно стартовало при первом инкременте и не сбрасывалось.
	clock.Advance(time.Minute)
	assert.Equal(t, int64(1), cache.IncrementWithWindow("rate:submissions:alice", time.Minute))
}

func TestTTLCacheIncrementConcurrent(t *testing.T) {
	cache, _ := newTestCache()
	defer cache.Close()

	const goroutines = 8
	const perGoroutine = 200

	done := make(chan struct{})
	for g := 0; g < goroutines; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < perGoroutine; i++ {
				cache.IncrementWithWindow("counter", time.Hour)
			}
		}()
	}
	for g := 0; g < goroutines; g++ {
		<-done
	}

	// Без потерянных обновлений финальное значение равно числу инкрементов
	assert.Equal(t, int64(goroutines*perGoroutine+1), cache.IncrementWithWindow("counter", time.Hour))
}

func TestTTLCacheSweep(t *testing.T) {
	cache, clock := newTestCache()
	defer cache.Close()

	cache.Set("a", []byte("1"), time.Second)
	cache.Set("b", []byte("2"), time.Minute)
	cache.Set("c", []byte("3"), 0) // без срока жизни

	clock.Advance(10 * time.Second)

	assert.Equal(t, 1, cache.sweep())
	assert.Equal(t, 2, cache.Len())
}
