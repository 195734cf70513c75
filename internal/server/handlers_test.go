package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kensaku/internal/config"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/search"
	"github.com/hyperjump/kensaku/internal/storage"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*Server, storage.MessageStore) {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "messages.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		SearchModes: []config.SearchMode{
			{Name: "exact", Enabled: true},
			{Name: "regex", Enabled: true},
		},
	}
	config.ApplyDefaults(cfg)
	manager := search.NewManager(cfg, zap.NewNop())
	return NewServer(manager, store, cfg, zap.NewNop()), store
}

func seedMessages(t *testing.T, store storage.MessageStore, messages ...*models.Message) {
	t.Helper()
	for _, msg := range messages {
		if err := store.CreateMessage(context.Background(), msg); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHandleSearch(t *testing.T) {
	srv, store := newTestServer(t)
	seedMessages(t, store,
		&models.Message{Name: "spaces/eng/messages/1", Text: "Please review PR #456 before EOD"},
		&models.Message{Name: "spaces/eng/messages/2", Text: "lunch plans?"},
	)
	router := srv.Router()

	body, _ := json.Marshal(models.SearchRequest{Query: `#\d+`, Mode: "regex"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one hit, got %+v", resp)
	}
	if resp.Results[0].Message.Name != "spaces/eng/messages/1" {
		t.Errorf("wrong message: %s", resp.Results[0].Message.Name)
	}
	if resp.Results[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", resp.Results[0].Score)
	}
	if resp.Mode != "regex" {
		t.Errorf("mode = %q", resp.Mode)
	}
}

func TestHandleSearch_DefaultModeAndLimit(t *testing.T) {
	srv, store := newTestServer(t)
	for _, name := range []string{"a", "b", "c"} {
		seedMessages(t, store, &models.Message{Name: "spaces/eng/messages/" + name, Text: "hello " + name})
	}
	router := srv.Router()

	body, _ := json.Marshal(models.SearchRequest{Query: "hello", Limit: 2})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Mode != "exact" {
		t.Errorf("default mode = %q, want exact", resp.Mode)
	}
	if resp.Total != 3 || len(resp.Results) != 2 {
		t.Errorf("total = %d, results = %d, want 3 and 2", resp.Total, len(resp.Results))
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte(`{"query": ""}`)))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMessageLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()
	name := "spaces/eng/messages/42"

	body, _ := json.Marshal(models.Message{Name: name, Text: "release shipped"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/messages/"+name, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got models.Message
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != name || got.Text != "release shipped" {
		t.Errorf("got %+v", got)
	}

	r = httptest.NewRequest(http.MethodDelete, "/api/v1/messages/"+name, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/v1/messages/"+name, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestHandleCreateMessage_RequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(`{"text": "unnamed"}`)))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealthAndStatus(t *testing.T) {
	srv, store := newTestServer(t)
	seedMessages(t, store, &models.Message{Name: "spaces/eng/messages/1", Text: "hi"})
	router := srv.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status status = %d", w.Code)
	}
	var out struct {
		Messages int64 `json:"messages"`
		Config   struct {
			DefaultMode  string   `json:"default_mode"`
			EnabledModes []string `json:"enabled_modes"`
		} `json:"config"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Messages != 1 {
		t.Errorf("messages = %d, want 1", out.Messages)
	}
	if out.Config.DefaultMode != "exact" {
		t.Errorf("default mode = %q", out.Config.DefaultMode)
	}
	if len(out.Config.EnabledModes) != 2 {
		t.Errorf("enabled modes = %v", out.Config.EnabledModes)
	}
}
