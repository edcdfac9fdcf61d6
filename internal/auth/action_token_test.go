package auth

import (
	"testing"
	"time"

	"careerbridge_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Конфиг процесса для тестов: только подпись токенов
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-do-not-use-in-prod"
	cfg.JWT.TTL = 60
	cfg.JWT.RefreshTTL = 24 * 7
	config.AppConfig = cfg
}

func TestIssueAndVerifyActionToken(t *testing.T) {
	t.Parallel()

	signed, expiresAt, err := IssueActionToken("prospect@test.com", IntentRegistration, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := VerifyActionToken(signed, IntentRegistration)
	require.NoError(t, err)
	assert.Equal(t, "prospect@test.com", claims.Email)
	assert.Equal(t, IntentRegistration, claims.Intent)
}

func TestVerifyActionToken_Expired(t *testing.T) {
	t.Parallel()

	signed, _, err := IssueActionToken("prospect@test.com", IntentRegistration, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyActionToken(signed, IntentRegistration)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyActionToken_WrongIntent(t *testing.T) {
	t.Parallel()

	signed, _, err := IssueActionToken("admin@test.com", IntentAdminAction, time.Hour)
	require.NoError(t, err)

	_, err = VerifyActionToken(signed, IntentRegistration)
	assert.ErrorIs(t, err, ErrTokenWrongIntent)
}

func TestVerifyActionToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := VerifyActionToken("definitely-not-a-jwt", IntentRegistration)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyActionToken_WrongSignature(t *testing.T) {
	t.Parallel()

	// Токен, подписанный чужим ключом, должен отвергаться как malformed
	claims := ActionClaims{
		Email:  "prospect@test.com",
		Intent: IntentRegistration,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-secret"))
	require.NoError(t, err)

	_, err = VerifyActionToken(forged, IntentRegistration)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	signed, err := GenerateToken("user-123", "client")
	require.NoError(t, err)

	claims, err := ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "client", claims.Role)
}
