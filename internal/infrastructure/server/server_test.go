package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/tasklist/internal/adapters/storage"
	"github.com/taskmaster/tasklist/internal/app"
	"github.com/taskmaster/tasklist/internal/domain/entities"
	"github.com/taskmaster/tasklist/internal/infrastructure/config"
	"github.com/taskmaster/tasklist/internal/infrastructure/logger"
	"github.com/taskmaster/tasklist/internal/ports"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "TaskList", Version: "test"},
		Storage:  config.StorageConfig{Driver: config.DriverMemory, WriteTimeout: time.Second},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "tasklist"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

type testServer struct {
	t       *testing.T
	app     *app.App
	handler http.Handler
}

func newTestServer(t *testing.T, start bool) *testServer {
	t.Helper()
	cfg := testConfig()
	a := app.NewWithStorage(cfg, logger.NewNop(), storage.NewMemoryStorage())
	if start {
		a.Start(context.Background())
	}
	srv, err := New(cfg, a, logger.NewNop())
	require.NoError(t, err)
	return &testServer{t: t, app: a, handler: srv.Handler()}
}

func (ts *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTodoLifecycle(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[entities.Todo](t, rec)
	assert.Equal(t, entities.StatusPending, created.Status)

	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ports.ListResponse[entities.Todo]](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.ID, list.Data[0].ID)

	rec = ts.do(http.MethodPost, "/api/v1/todos/"+created.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.StatusInProgress, decode[entities.Todo](t, rec).Status)

	rec = ts.do(http.MethodDelete, "/api/v1/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	assert.Equal(t, 0, decode[ports.ListResponse[entities.Todo]](t, rec).Total)

	rec = ts.do(http.MethodGet, "/api/v1/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTodo_BlankTitle(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/todos", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, ts.app.TodoStore.Len())

	rec = ts.do(http.MethodPost, "/add-todo", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationOnAbsentTodo(t *testing.T) {
	ts := newTestServer(t, true)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/v1/todos/missing/toggle", ""},
		{http.MethodPost, "/api/v1/todos/missing/subtasks", `{"title":"child"}`},
		{http.MethodPost, "/api/v1/todos/missing/subtasks/st/toggle", ""},
		{http.MethodPost, "/api/v1/todos/missing/comments", `{"text":"hi"}`},
		{http.MethodPost, "/api/v1/todos/missing/assign", `{"userId":"1"}`},
		{http.MethodDelete, "/api/v1/todos/missing/assign/1", ""},
		{http.MethodPut, "/api/v1/todos/missing/reminder", `{"reminder":"soon"}`},
		{http.MethodPut, "/api/v1/todos/missing", `{"title":"x","priority":"low","status":"pending"}`},
		{http.MethodDelete, "/api/v1/todos/missing", ""},
	} {
		rec := ts.do(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNoContent, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCommentAuthorFromToken(t *testing.T) {
	ts := newTestServer(t, true)

	token, err := ts.app.AuthService.IssueToken(context.Background(), ports.IssueTokenRequest{UserID: "2"})
	require.NoError(t, err)

	created := decode[entities.Todo](t, ts.do(http.MethodPost, "/api/v1/todos", `{"title":"Review"}`))

	rec := ts.do(http.MethodPost, "/api/v1/todos/"+created.ID+"/comments", `{"text":"done"}`,
		"Authorization", "Bearer "+token.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[entities.Todo](t, rec)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "2", updated.Comments[0].UserID)

	rec = ts.do(http.MethodPost, "/api/v1/todos/"+created.ID+"/comments", `{"text":"anon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.DefaultCommentAuthor, decode[entities.Todo](t, rec).Comments[1].UserID)

	rec = ts.do(http.MethodGet, "/api/v1/todos", "", "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPreferencesAndQuery(t *testing.T) {
	ts := newTestServer(t, true)

	ts.do(http.MethodPost, "/api/v1/todos", `{"title":"beta","priority":"low"}`)
	ts.do(http.MethodPost, "/api/v1/todos", `{"title":"alpha","priority":"high"}`)

	rec := ts.do(http.MethodPut, "/api/v1/preferences/filters", `{"priority":["high"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	filters := decode[entities.Filters](t, rec)
	assert.Equal(t, []string{"high"}, filters.Priority)
	assert.Equal(t, []string{}, filters.Status)

	rec = ts.do(http.MethodPut, "/api/v1/preferences/sort", `{"field":"title","direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/todos/query", "")
	got := decode[ports.ListResponse[entities.Todo]](t, rec)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "alpha", got.Data[0].Title)

	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	assert.Equal(t, 2, decode[ports.ListResponse[entities.Todo]](t, rec).Total)

	rec = ts.do(http.MethodPut, "/api/v1/preferences/search", `{"search":"BET"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	assert.Equal(t, 1, decode[ports.ListResponse[entities.Todo]](t, rec).Total)
	rec = ts.do(http.MethodGet, "/api/v1/todos?search=", "")
	assert.Equal(t, 2, decode[ports.ListResponse[entities.Todo]](t, rec).Total)
}

func TestVocabularies(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/categories", `{"name":"Health"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodPost, "/api/v1/categories", `{"name":"Health"}`)
	categories := decode[ports.ListResponse[string]](t, rec)
	assert.Equal(t, append(append([]string{}, entities.DefaultCategories...), "Health"), categories.Data)

	rec = ts.do(http.MethodPost, "/api/v1/labels", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeToggle(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ports.ThemeResponse{DarkMode: true, Class: "dark"}, decode[ports.ThemeResponse](t, rec))

	rec = ts.do(http.MethodGet, "/about", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decode[map[string]interface{}](t, rec)["theme"])
}

func TestViews(t *testing.T) {
	ts := newTestServer(t, true)

	for _, path := range []string{"/", "/task-master", "/todos", "/add-todo", "/about"} {
		rec := ts.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	form := decode[map[string]interface{}](t, ts.do(http.MethodGet, "/add-todo", ""))
	assert.Equal(t, "add-todo", form["page"])
	assert.Len(t, form["colors"], len(entities.ColorOptions))
	assert.Equal(t, "Personal", form["defaults"].(map[string]interface{})["category"])

	rec := ts.do(http.MethodPost, "/add-todo", `{"title":"From form","subtasks":["a","b"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/todos", decode[map[string]interface{}](t, rec)["redirect"])

	list := decode[map[string]interface{}](t, ts.do(http.MethodGet, "/todos", ""))
	todos := list["todos"].([]interface{})
	require.Len(t, todos, 1)
	assert.Equal(t, "0/2 subtasks", todos[0].(map[string]interface{})["subtaskProgress"])
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	ts := newTestServer(t, true)

	for _, path := range []string{"/nope", "/todos/extra/segments", "/settings"} {
		rec := ts.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	}

	rec := ts.do(http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadingGate(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.app.Start(context.Background())

	rec = ts.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodGet, "/api/v1/todos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, true)

	ts.do(http.MethodPost, "/api/v1/todos", `{"title":"Count me"}`)

	rec := ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "tasklist_todos 1")
	assert.Contains(t, body, `tasklist_store_mutations_total{op="addTodo"} 1`)
	assert.Contains(t, body, `tasklist_persistence_writes_total{key="todo"}`)
	assert.Contains(t, body, "http_requests_total")
}
