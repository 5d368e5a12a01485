package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestServer fakes the parts of the API the tests touch. Only the token
// "good" is accepted.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer good" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token inválido"})
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "admin" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Credenciales inválidas"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": "good",
			"user":  map[string]string{"id": "u1", "username": creds["username"]},
		})
	})
	mux.HandleFunc("GET /api/auth/me", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": map[string]string{"id": "u1", "username": "admin"}})
	}))
	mux.HandleFunc("GET /api/tasks", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]string{{"id": "t1", "title": r.URL.Query().Get("searchText")}})
	}))
	mux.HandleFunc("POST /api/tasks", authed(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var raw map[string]json.RawMessage
		_ = json.Unmarshal(body, &raw)
		if _, ok := raw["title"]; !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "El título es requerido"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": "t2", "title": "Deploy"})
	}))
	mux.HandleFunc("DELETE /api/tasks/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "t1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Tarea no encontrada"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}))
	mux.HandleFunc("GET /api/export/tasks/csv", authed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.WriteString(w, "ID,Título\n")
	}))
	mux.HandleFunc("GET /api/reports/{type}", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"report": "REPORTE", "type": r.PathValue("type")})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginSetsSession(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/")

	var seen []State
	unsubscribe := c.Session().Subscribe(func(s State) { seen = append(seen, s) })
	defer unsubscribe()

	user, err := c.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	state := c.Session().Get()
	assert.True(t, state.SignedIn())
	assert.Equal(t, "good", state.Token)
	require.Len(t, seen, 1)
	assert.Equal(t, "u1", seen[0].User.ID)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	notified := false
	c.Session().Subscribe(func(State) { notified = true })

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	assert.False(t, c.Session().Get().SignedIn())
	assert.False(t, notified)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := newTestServer(t)
	session := NewSession()
	session.Set("stale", &User{ID: "u1", Username: "admin"})
	c := New(srv.URL, WithSession(session))

	var last *State
	session.Subscribe(func(s State) { last = &s })

	_, err := c.ListTasks(context.Background(), TaskFilter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, session.Get().SignedIn())
	require.NotNil(t, last)
	assert.False(t, last.SignedIn())
}

func TestTaskCalls(t *testing.T) {
	srv := newTestServer(t)
	session := NewSession()
	session.Set("good", &User{ID: "u1", Username: "admin"})
	c := New(srv.URL, WithSession(session))
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx, TaskFilter{SearchText: "deploy"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "deploy", tasks[0].Title)

	task, err := c.CreateTask(ctx, TaskInput{Title: String("Deploy"), AssignedTo: Null, EstimatedHours: Float(2)})
	require.NoError(t, err)
	assert.Equal(t, "t2", task.ID)

	_, err = c.CreateTask(ctx, TaskInput{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, session.Get().SignedIn())

	require.NoError(t, c.DeleteTask(ctx, "t1"))
	err = c.DeleteTask(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	csv, err := c.ExportCSV(ctx, TaskFilter{Status: "Pendiente"})
	require.NoError(t, err)
	assert.Equal(t, "ID,Título\n", string(csv))

	report, err := c.Report(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, "projects", report.Type)
}

func TestTaskInputEncoding(t *testing.T) {
	data, err := json.Marshal(TaskInput{Title: String("x"), ProjectID: Null, DueDate: "2025-01-01"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","projectId":null,"dueDate":"2025-01-01"}`, string(data))
}

func TestTaskFilterValues(t *testing.T) {
	q := TaskFilter{SearchText: "a b", Priority: "Alta"}.values()
	assert.Equal(t, "priority=Alta&searchText=a+b", q.Encode())
	assert.Empty(t, TaskFilter{}.values())
}
