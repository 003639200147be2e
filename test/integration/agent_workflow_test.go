package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"bid-agent-be/internal/bootstrap"
	"bid-agent-be/internal/config"
	"bid-agent-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const samplePlan = `# Procurement Plan
Project: Sewage facility modernization
Category: construction
Budget: 350,000,000 KRW
Total budget: 385,000,000 KRW
Contract period: 12 months
`

// newTestApp runs the full HTTP stack on the offline rule-based provider and
// without a database, so the test needs no external services.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("DB_CONNECTION_STRING", "")
	t.Setenv("LOG_FILE_PATH", t.TempDir()+"/app.log")

	cfg := config.Load()
	container := bootstrap.NewContainer(nil, cfg)
	return server.New(cfg, container).GetApp()
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUploadToCompletion(t *testing.T) {
	app := newTestApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "plan.txt")
	assert.NoError(t, err)
	_, err = part.Write([]byte(samplePlan))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/agent/v1/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			SessionId string `json:"session_id"`
			Result    struct {
				Verdict  string `json:"verdict"`
				Step     string `json:"step"`
				Document string `json:"document"`
			} `json:"result"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.SessionId)
	assert.Equal(t, "complete", env.Data.Result.Verdict)
	assert.Contains(t, env.Data.Result.Document, "Sewage facility modernization")

	// State endpoint reflects the finished session.
	req = httptest.NewRequest("GET", "/api/agent/v1/"+env.Data.SessionId, nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Approve it.
	feedbackBody := `{"session_id":"` + env.Data.SessionId + `","feedback_type":"approve"}`
	req = httptest.NewRequest("POST", "/api/agent/v1/feedback", strings.NewReader(feedbackBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	// raw_text is required.
	req := httptest.NewRequest("POST", "/api/agent/v1/session", strings.NewReader(`{"file_name":"x.txt"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRunUnknownSessionIs404(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/agent/v1/does-not-exist/run", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTemplateEndpoints(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/template/v1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/template/v1/lowest_price", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/template/v1/design_build", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestArchiveRequiresToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/archive/v1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
