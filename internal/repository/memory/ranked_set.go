package memory

import (
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
)

const (
	// skipListMaxLevel ограничивает высоту списка (достаточно для ~2^32 участников)
	skipListMaxLevel = 32
	// skipListP — вероятность продвижения узла на следующий уровень
	skipListP = 0.25
)

// rankedNode — узел skip-списка. span[i] хранит число узлов уровня 0,
// перепрыгиваемых указателем next[i]; сумма span по пути дает ранг.
type rankedNode struct {
	member string
	score  int64
	next   []*rankedNode
	span   []int64
}

func newRankedNode(level int, member string, score int64) *rankedNode {
	return &rankedNode{
		member: member,
		score:  score,
		next:   make([]*rankedNode, level),
		span:   make([]int64, level),
	}
}

// RankedSet реализует repository.LeaderboardRepository: skip-список,
// упорядоченный по (очки по убыванию, участник по возрастанию), плюс индекс
// участник → очки. Ранг, вставка и инкремент выполняются за O(log n).
// Один RWMutex на множество: атомарность IncrementBy относительно
// конкурентных запросов ранга обеспечивается этим же замком.
type RankedSet struct {
	mu     sync.RWMutex
	head   *rankedNode
	level  int
	length int
	index  map[string]int64
	rnd    *rand.Rand
}

// NewRankedSet создает пустое ранжированное множество
func NewRankedSet() *RankedSet {
	return &RankedSet{
		head:  newRankedNode(skipListMaxLevel, "", 0),
		level: 1,
		index: make(map[string]int64),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// entryBefore сообщает, стоит ли (scoreA, memberA) раньше (scoreB, memberB)
// в порядке таблицы лидеров: больше очков — раньше, при равенстве очков
// раньше лексикографически меньший идентификатор.
func entryBefore(scoreA int64, memberA string, scoreB int64, memberB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return memberA < memberB
}

// Upsert устанавливает абсолютное значение очков участника
func (s *RankedSet) Upsert(member string, score int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.index[member]; ok {
		if old == score {
			return
		}
		s.remove(member, old)
	}
	s.insert(member, score)
	s.index[member] = score
}

// IncrementBy атомарно изменяет очки участника на delta и возвращает новое
// значение. Удаление и повторная вставка узла происходят под одним замком,
// поэтому промежуточное состояние снаружи не наблюдаемо.
func (s *RankedSet) IncrementBy(member string, delta int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	score := delta
	if old, ok := s.index[member]; ok {
		s.remove(member, old)
		score = old + delta
	}
	s.insert(member, score)
	s.index[member] = score
	return score
}

// RankOf возвращает ранг участника, начиная с 1
func (s *RankedSet) RankOf(member string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, ok := s.index[member]
	if !ok {
		return 0, false
	}

	var rank int64
	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.next[i] != nil && !entryBefore(score, member, x.next[i].score, x.next[i].member) {
			rank += x.span[i]
			x = x.next[i]
		}
	}
	if x != s.head && x.member == member {
		return rank, true
	}
	// Индекс и список разошлись — не должно происходить
	return 0, false
}

// Score возвращает текущие очки участника
func (s *RankedSet) Score(member string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.index[member]
	return score, ok
}

// TopN возвращает n лучших участников
func (s *RankedSet) TopN(n int) []entity.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > s.length {
		n = s.length
	}
	top := make([]entity.LeaderboardEntry, 0, n)
	for x := s.head.next[0]; x != nil && len(top) < n; x = x.next[0] {
		top = append(top, entity.LeaderboardEntry{UserID: x.member, Score: x.score})
	}
	return top
}

// Len возвращает количество участников
func (s *RankedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.length
}

// randomLevel выбирает высоту нового узла
func (s *RankedSet) randomLevel() int {
	level := 1
	for level < skipListMaxLevel && s.rnd.Float64() < skipListP {
		level++
	}
	return level
}

// insert добавляет узел; вызывается под write-lock, участник не должен
// присутствовать в списке
func (s *RankedSet) insert(member string, score int64) {
	var (
		update [skipListMaxLevel]*rankedNode
		rank   [skipListMaxLevel]int64
	)

	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		if i == s.level-1 {
			rank[i] = 0
		} else {
			rank[i] = rank[i+1]
		}
		for x.next[i] != nil && entryBefore(x.next[i].score, x.next[i].member, score, member) {
			rank[i] += x.span[i]
			x = x.next[i]
		}
		update[i] = x
	}

	level := s.randomLevel()
	if level > s.level {
		for i := s.level; i < level; i++ {
			rank[i] = 0
			update[i] = s.head
			update[i].span[i] = int64(s.length)
		}
		s.level = level
	}

	node := newRankedNode(level, member, score)
	for i := 0; i < level; i++ {
		node.next[i] = update[i].next[i]
		update[i].next[i] = node
		node.span[i] = update[i].span[i] - (rank[0] - rank[i])
		update[i].span[i] = (rank[0] - rank[i]) + 1
	}
	for i := level; i < s.level; i++ {
		update[i].span[i]++
	}
	s.length++
}

// remove удаляет узел участника; вызывается под write-lock
func (s *RankedSet) remove(member string, score int64) {
	var update [skipListMaxLevel]*rankedNode

	x := s.head
	for i := s.level - 1; i >= 0; i-- {
		for x.next[i] != nil && entryBefore(x.next[i].score, x.next[i].member, score, member) {
			x = x.next[i]
		}
		update[i] = x
	}

	x = x.next[0]
	if x == nil || x.member != member {
		return
	}

	for i := 0; i < s.level; i++ {
		if update[i].next[i] == x {
			update[i].span[i] += x.span[i] - 1
			update[i].next[i] = x.next[i]
		} else {
			update[i].span[i]--
		}
	}
	for s.level > 1 && s.head.next[s.level-1] == nil {
		s.head.span[s.level-1] = 0
		s.level--
	}
	s.length--
	delete(s.index, member)
}
