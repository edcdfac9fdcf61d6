package integration_test

import (
	"net/http"
	"testing"

	"careerbridge_backend/internal/models"
	"careerbridge_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Анкета клиента: submit -> pending_approval, approve разблокирует профиль,
// повторная отправка возвращает все на модерацию.
func TestOnboardingApproveAndResubmit(t *testing.T) {
	ts := GetTestServer(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	clientToken, client := helpers.CreateAndLoginClient(t, ts)

	// 1. Клиент отправляет анкету
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/onboarding", clientToken, map[string]interface{}{
		"answers": map[string]interface{}{
			"target_role": "backend",
			"salary":      "900000",
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	t.Logf("✅ Анкета отправлена")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/onboarding", clientToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"execution_status":"pending_approval"`)

	// 2. Оператор одобряет - профиль разблокирован
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/onboarding/"+client.ID+"/approve", adminToken, map[string]interface{}{
		"notes": "looks good",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"execution_status":"active"`)
	t.Logf("✅ Анкета одобрена")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", clientToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"onboarding_complete":true`)

	var user models.User
	require.NoError(t, ts.DB.Where("id = ?", client.ID).First(&user).Error)
	assert.Equal(t, models.UserStatusActive, user.Status)

	// 3. Повторная отправка снова запирает профиль до одобрения
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/onboarding", clientToken, map[string]interface{}{
		"answers": map[string]interface{}{
			"target_role": "platform",
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/onboarding", clientToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"execution_status":"pending_approval"`)
	assert.Contains(t, body, "platform")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/users/me", clientToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"onboarding_complete":false`)
	t.Logf("✅ Повторная отправка вернула анкету на модерацию")
}

// До отправки анкеты GET /onboarding отвечает отдельным кодом: UI по нему
// показывает "заполните анкету"
func TestOnboardingGet_BeforeSubmit(t *testing.T) {
	ts := GetTestServer(t)

	clientToken, _ := helpers.CreateAndLoginClient(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/onboarding", clientToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	assert.Contains(t, body, "ONBOARDING_NOT_SUBMITTED")
}
