package repository

// EventBus интерфейс шины событий с доставкой fan-out.
// Это не очередь: подписчик получает только сообщения, опубликованные
// после подписки, без повторной доставки истории.
type EventBus interface {
	// Publish рассылает сообщение всем текущим подписчикам темы.
	// Не блокируется: сообщение для подписчика с переполненным буфером
	// отбрасывается.
	Publish(topic string, message []byte)

	// Subscribe регистрирует подписчика темы и возвращает канал сообщений
	// вместе с функцией отмены подписки. После отмены канал закрывается.
	Subscribe(topic string) (<-chan []byte, func())
}
