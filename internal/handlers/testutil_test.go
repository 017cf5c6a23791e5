package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/ai"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/config"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/db"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/routes"
)

// fakeMailer records outgoing mail so tests can capture OTP codes.
type fakeMailer struct {
	mu       sync.Mutex
	lastTo   string
	lastBody string
	fail     error
}

func (f *fakeMailer) Send(to string, subject string, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.lastTo = to
	f.lastBody = body
	return nil
}

var otpPattern = regexp.MustCompile(`\b\d{6}\b`)

func (f *fakeMailer) lastOTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return otpPattern.FindString(f.lastBody)
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	mailer *fakeMailer
	cfg    config.Config
}

func newTestApp(t *testing.T, aiClient *ai.Client) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	cfg := config.Config{
		AppEnv:           "local",
		JwtSecret:        "test-secret",
		JwtHours:         168,
		OtpMinutes:       10,
		MaxUploadBytes:   10 << 20,
		OpenRouterModel:  "openai/gpt-4o-mini",
		AiTimeoutSeconds: 5,
	}

	mailer := &fakeMailer{}
	router := gin.New()
	routes.Register(router, database, cfg, routes.Deps{Mail: mailer, AI: aiClient})

	return &testApp{router: router, db: database, mailer: mailer, cfg: cfg}
}

func (a *testApp) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) doUpload(t *testing.T, filename string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/file/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token.
func (a *testApp) register(t *testing.T, name, email, password, role string) string {
	t.Helper()
	payload := gin.H{"name": name, "email": email, "password": password}
	if role != "" {
		payload["role"] = role
	}
	w := a.doJSON(t, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
