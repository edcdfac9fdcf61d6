package auth

import (
	"errors"
	"time"

	"careerbridge_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Intent-тег одноразовых action-токенов (регистрация, действия админа).
const (
	IntentRegistration = "registration"
	IntentAdminAction  = "admin-action"
)

// Ошибки верификации action-токена. Вызывающий код ОБЯЗАН различать их:
// UI показывает "ссылка истекла" и "ссылка неверна" по-разному.
var (
	ErrTokenMalformed   = errors.New("action token malformed")
	ErrTokenExpired     = errors.New("action token expired")
	ErrTokenWrongIntent = errors.New("action token has wrong intent")
)

// ActionClaims - полезная нагрузка action-токена: кому (email) и зачем (intent)
type ActionClaims struct {
	Email  string `json:"email"`
	Intent string `json:"intent"`
	jwt.RegisteredClaims
}

// IssueActionToken выпускает подписанный токен, связывающий email с intent.
// Токен сам по себе не отзываем: single-use обеспечивает backing-запись
// в БД (RegistrationToken.Consumed), а не подпись.
func IssueActionToken(email, intent string, ttl time.Duration) (string, time.Time, error) {
	cfg := config.GetConfig()
	expiresAt := time.Now().Add(ttl)

	claims := ActionClaims{
		Email:  email,
		Intent: intent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// VerifyActionToken - чистая проверка без I/O: подпись, срок, intent.
// Различает три исхода: Malformed / Expired / WrongIntent.
func VerifyActionToken(tokenStr, wantIntent string) (*ActionClaims, error) {
	cfg := config.GetConfig()

	parsed, err := jwt.ParseWithClaims(tokenStr, &ActionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*ActionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Intent != wantIntent {
		return nil, ErrTokenWrongIntent
	}

	return claims, nil
}
