package entity

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Account хранит учетные данные пользователя отдельно от профиля.
// Профиль — публичные данные, Account — только хеш пароля.
type Account struct {
	UserID       string `json:"userId"`
	PasswordHash string `json:"-"`
}

// NewAccount создает учетную запись, хешируя пароль через bcrypt
func NewAccount(userID, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Account] Ошибка при хешировании пароля для пользователя %s: %v", userID, err)
		return nil, err
	}
	return &Account{UserID: userID, PasswordHash: string(hash)}, nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	if err != nil {
		log.Printf("[Account] Проверка пароля не пройдена для пользователя %s", a.UserID)
		return false
	}
	return true
}
