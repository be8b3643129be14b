package memory

import (
	"sync"

	"github.com/yourusername/quizrank-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizrank-api/internal/pkg/errors"
)

// CredentialRepo реализует repository.CredentialRepository поверх карты
// в памяти. Хранит только хеши паролей, сами пароли сюда не попадают.
type CredentialRepo struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account
}

// NewCredentialRepo создает новый репозиторий учетных данных
func NewCredentialRepo() *CredentialRepo {
	return &CredentialRepo{accounts: make(map[string]*entity.Account)}
}

// Store сохраняет учетную запись
func (r *CredentialRepo) Store(account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.UserID]; ok {
		return apperrors.ErrAlreadyExists
	}
	cp := *account
	r.accounts[account.UserID] = &cp
	return nil
}

// Get возвращает учетную запись
func (r *CredentialRepo) Get(userID string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *account
	return &cp, nil
}
