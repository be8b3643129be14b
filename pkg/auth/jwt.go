package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/quizrank-api/internal/domain/repository"
)

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService предоставляет методы для работы с JWT.
// Помимо подписи, каждый выданный токен фиксируется записью session:<token>
// в кеше со сроком жизни токена: проверка требует и валидной подписи,
// и живой сессии.
type JWTService struct {
	secretKey  string
	expiration time.Duration
	sessions   repository.Cache
}

// NewJWTService создает новый сервис JWT и возвращает ошибку при проблемах
func NewJWTService(secretKey string, expirationHrs int, sessions repository.Cache) (*JWTService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("JWT secret key is required for JWTService")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session cache is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = 1 // Срок жизни токена исходной системы — 1 час
	}

	return &JWTService{
		secretKey:  secretKey,
		expiration: time.Duration(expirationHrs) * time.Hour,
		sessions:   sessions,
	}, nil
}

// GenerateToken создает новый JWT токен и регистрирует сессию
func (s *JWTService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя %s: %v", userID, err)
		return "", err
	}

	s.sessions.Set(sessionKey(tokenString), []byte(userID), s.expiration)

	log.Printf("[JWT] Токен выдан для пользователя %s, истекает через %v", userID, s.expiration)
	return tokenString, nil
}

// ParseToken проверяет и расшифровывает JWT токен.
// Возвращает клеймы только при валидной подписи и живой сессии.
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			log.Printf("[JWT] Неожиданный метод подписи: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, errors.New("token is malformed")
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				log.Printf("[JWT] Истек срок действия токена пользователя %s", claims.UserID)
				return nil, errors.New("token is expired")
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				log.Printf("[JWT] Неверная подпись токена")
				return nil, errors.New("signature is invalid")
			default:
				return nil, errors.New("token validation failed")
			}
		}
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if _, ok := s.sessions.Get(sessionKey(tokenString)); !ok {
		log.Printf("[JWT] Сессия не найдена или истекла для пользователя %s", claims.UserID)
		return nil, errors.New("session expired")
	}

	return claims, nil
}

// InvalidateToken завершает сессию токена (выход из системы)
func (s *JWTService) InvalidateToken(tokenString string) {
	s.sessions.Delete(sessionKey(tokenString))
}

func sessionKey(token string) string {
	return "session:" + token
}
