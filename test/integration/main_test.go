package integration_test

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"testing"

	"careerbridge_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

// Глобальные переменные для общего состояния
var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer возвращает тестовый сервер (создает при первом вызове).
// Без TEST_DATABASE_URL интеграционные тесты пропускаются - они требуют
// живой Postgres.
func GetTestServer(t *testing.T) *helpers.TestServer {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан - пропускаем интеграционные тесты")
	}

	serverOnce.Do(func() {
		// Устанавливаем тестовые environment variables
		os.Setenv("DATABASE_URL", dsn)
		os.Setenv("SERVER_ENV", "test")
		os.Setenv("SERVER_PORT", "4001")
		os.Setenv("JWT_SECRET", "my_super_secret_key_for_tests_12345")

		log.Println("--- [GetTestServer] Initializing test server... ---")
		globalTestServer = helpers.NewTestServer(t)
		log.Println("--- [GetTestServer] Test server ready ---")
	})
	return globalTestServer
}

// TestMain только для глобальной очистки
func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		log.Println("--- [TestMain] Cleaning up... ---")
		globalTestServer.Close()
	}

	os.Exit(code)
}

// extractJSONString достает строковое поле верхнего уровня из тела ответа
func extractJSONString(t *testing.T, body, key string) string {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &payload), "не удалось распарсить ответ: %s", body)
	value, ok := payload[key].(string)
	require.True(t, ok, "поле %q отсутствует в ответе: %s", key, body)
	return value
}
