package entity

// LeaderboardEntry представляет одну строку таблицы лидеров
type LeaderboardEntry struct {
	UserID string `json:"userId"`
	Score  int64  `json:"score"`
}
