package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atendai/atendai/internal/config"
	"github.com/atendai/atendai/internal/llm"
	"github.com/atendai/atendai/internal/repository"
	"github.com/atendai/atendai/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nicheRepo := repository.NewNicheRepository(db)
	require.NoError(t, nicheRepo.Seed())
	convRepo := repository.NewConversationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	gateway := llm.NewGateway("http://127.0.0.1:0", time.Second)
	chatService := service.NewChatService(
		nicheRepo, convRepo, settingsRepo,
		service.NewOnboardingMachine(nil),
		service.NewReplyEngine(gateway, zap.NewNop()),
		0, zap.NewNop(),
	)
	adminService := service.NewAdminService(nicheRepo, convRepo, settingsRepo, gateway, config.AdminConfig{
		Username:   "icaro",
		Password:   "icaro123",
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
	widgetService := service.NewWidgetService(nicheRepo, settingsRepo, chatService)

	return SetupRouter(adminService, widgetService, RouterConfig{
		JWTSecret: adminService.JWTSecret(),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login", `{"username":"icaro","password":"icaro123"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWidgetConfigIsPublic(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/widget/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AppName string `json:"app_name"`
		Niches  []struct {
			ID           string `json:"id"`
			SystemPrompt string `json:"system_prompt"`
		} `json:"niches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AppName)
	require.NotEmpty(t, resp.Niches)
	// the system prompt never leaves the server
	assert.NotContains(t, w.Body.String(), "system_prompt")
}

func TestWidgetConversationFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/widget/conversations", `{"niche_id":"medico"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var view struct {
		Conversation struct {
			ID string `json:"id"`
		} `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	id := view.Conversation.ID
	require.NotEmpty(t, id)

	w = doJSON(t, r, http.MethodPost, "/api/widget/conversations/"+id+"/messages", `{"content":"Maria"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maria")

	w = doJSON(t, r, http.MethodGet, "/api/widget/conversations/"+id, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/widget/conversations/"+id+"/transcript", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "conversa-"+id+".txt")
	assert.Contains(t, w.Body.String(), "=== Exportação de Conversa ===")

	w = doJSON(t, r, http.MethodPost, "/api/widget/conversations/"+id+"/reset", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWidgetUnknownNiche(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/widget/conversations", `{"niche_id":"nope"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRequiresAuth(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/niches", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/niches", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginAndAccess(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/admin/niches", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "medico")

	w = doJSON(t, r, http.MethodGet, "/api/admin/stats", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLogout(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/admin/logout", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// logout stays behind the auth middleware like every other admin route
	w = doJSON(t, r, http.MethodPost, "/api/admin/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginRejected(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", `{"username":"icaro","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminExport(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/admin/export", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "atendai-backup.json")
	assert.Contains(t, w.Body.String(), `"niches"`)

	// re-import the exported document verbatim
	w = doJSON(t, r, http.MethodPost, "/api/admin/import", w.Body.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminImportMalformed(t *testing.T) {
	r := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/admin/import", `{"niches": [{`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
