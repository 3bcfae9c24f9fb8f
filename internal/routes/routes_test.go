package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/auth"
	"github.com/picineiros/pool-manager/internal/config"
	dbpkg "github.com/picineiros/pool-manager/internal/db"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
)

// Os testes sobem a API inteira (rotas + middlewares + handlers) sobre um
// sqlite em memória, um banco por teste para não vazar estado entre eles.

func testConfig() *config.Config {
	return &config.Config{
		Debug:      true,
		ServerPort: "8080",

		JWTSecret:         "segredo-de-teste",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   7 * 24 * time.Hour,
		RefreshCookieName: "refresh_token",
		RefreshCookiePath: "/api/auth/",
		StateTokenTTL:     24 * time.Hour,

		LoginRateLimit:  10,
		LoginRateWindow: time.Minute,

		FrontendOrigin: "http://localhost:5173",
		EmailFrom:      "noreply@picineiros.com",
	}
}

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))

	cfg := testConfig()

	r := gin.New()
	RegisterRoutes(r, db, cfg, nil, zap.NewNop())

	return r, db, cfg
}

func doJSON(r *gin.Engine, method, path, body string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, mod := range mods {
		mod(req)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}

// csrfPair devolve o cookie de CSRF e um mod que o anexa junto com o header.
func csrfPair(t *testing.T, r *gin.Engine) func(*http.Request) {
	t.Helper()

	w := doJSON(r, http.MethodGet, "/api/auth/csrf/", "")
	require.Equal(t, http.StatusOK, w.Code)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.CSRFCookieName {
			cookie := ck
			return func(req *http.Request) {
				req.AddCookie(cookie)
				req.Header.Set(middleware.CSRFHeaderName, cookie.Value)
			}
		}
	}

	t.Fatal("cookie de CSRF não emitido")
	return nil
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// registerVerified cadastra e verifica o email pelo fluxo real, computando o
// token do link do mesmo jeito que o email o carregaria.
func registerVerified(t *testing.T, r *gin.Engine, db *gorm.DB, cfg *config.Config, email, password string) *models.User {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/register/",
		fmt.Sprintf(`{"email":%q,"password":%q,"nome":"Teste"}`, email, password))
	require.Equal(t, http.StatusCreated, w.Code, "body=%s", w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)

	state := auth.NewStateTokenGenerator(cfg.JWTSecret, cfg.StateTokenTTL)
	token := state.Make(&user, auth.PurposeEmailVerify)

	w = doJSON(r, http.MethodPost, "/api/auth/email-verify/",
		fmt.Sprintf(`{"uidb64":%q,"token":%q}`, auth.EncodeUID(user.ID), token))
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	require.NoError(t, db.First(&user, "id = ?", user.ID).Error)
	return &user
}

// login devolve o access token e o cookie de refresh emitidos.
func login(t *testing.T, r *gin.Engine, email, password string) (string, *http.Cookie) {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/login/",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), csrfPair(t, r))
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	access, _ := decodeBody(t, w)["access"].(string)
	require.NotEmpty(t, access)

	var refresh *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "refresh_token" && ck.Value != "" {
			refresh = ck
		}
	}
	require.NotNil(t, refresh, "cookie de refresh não emitido")

	return access, refresh
}

// accessFor cria um usuário verificado e devolve um access token para ele.
func accessFor(t *testing.T, r *gin.Engine, db *gorm.DB, cfg *config.Config, email string) (string, *models.User) {
	t.Helper()
	user := registerVerified(t, r, db, cfg, email, "senha-forte-123")
	access, _ := login(t, r, email, "senha-forte-123")
	return access, user
}

func TestHealthAndCSRF(t *testing.T) {
	r, _, _ := setupAPI(t)

	w := doJSON(r, http.MethodGet, "/api/auth/csrf/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, decodeBody(t, w)["csrfToken"])
}
