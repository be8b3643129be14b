package entity

// TopicLeaderboardEvents — единственный канал событий таблицы лидеров
const TopicLeaderboardEvents = "leaderboard:events"

// EventEnteredTop10 — тип события "пользователь вошел в топ-10"
const EventEnteredTop10 = "entered_top_10"

// RankEvent представляет событие изменения ранга, публикуемое в шину событий
type RankEvent struct {
	UserID   string `json:"userId"`
	NewScore int64  `json:"newScore"`
	Rank     int64  `json:"rank"`
	Event    string `json:"event"`
}
