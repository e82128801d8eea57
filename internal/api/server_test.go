package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/persistence"
	"github.com/MKWorldWide/GameDinGenesis/internal/social"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	if err := st.SeedInitialData(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &Server{
		Store:    st,
		Gallery:  social.NewGallery(st),
		AdminKey: "test-key",
	}
}

func TestAdminOnlyAuth(t *testing.T) {
	s := newTestServer(t)
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// GET is rejected outright.
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tick", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d, want 405", rec.Code)
	}

	// Missing token.
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tick", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no-token status = %d, want 401", rec.Code)
	}

	// Wrong token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tick", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad-token status = %d, want 401", rec.Code)
	}

	// Correct token.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/tick", nil)
	req.Header.Set("Authorization", "Bearer test-key")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("good-token status = %d, want 200", rec.Code)
	}
}

func TestAdminOnlyDisabledWithoutKey(t *testing.T) {
	s := newTestServer(t)
	s.AdminKey = ""
	handler := s.adminOnly(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with admin auth disabled")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tick", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestQuestDetailNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleQuestDetail(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quests/quest_ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestChatPostAndGet(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"authorHandle": "oracle_ai", "text": "The planes are restless tonight."}`)
	rec := httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chat", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("post status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil))
	var msgs []genesis.GlobalChatMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	// Seeded welcome message plus the new one.
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[1].Text != "The planes are restless tonight." {
		t.Fatalf("newest message = %q", msgs[1].Text)
	}
}

func TestChatPostUnknownAuthor(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"authorHandle": "nobody", "text": "hello"}`)
	rec := httptest.NewRecorder()
	s.handleChat(rec, httptest.NewRequest(http.MethodPost, "/api/v1/chat", body))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestConceptsEndpoint(t *testing.T) {
	s := newTestServer(t)
	if err := s.Store.AddUser(genesis.User{ID: "user_1", Handle: "kael"}); err != nil {
		t.Fatalf("add user: %v", err)
	}

	body := strings.NewReader(`{"userId": "user_1", "name": "Ember Golem", "description": "Cooling magma.", "imageUrl": "data:,x"}`)
	rec := httptest.NewRecorder()
	s.handleConcepts(rec, httptest.NewRequest(http.MethodPost, "/api/v1/concepts", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Concept     genesis.GeneratedConcept `json:"concept"`
		Contributed bool                     `json:"contributed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Concept.ID == "" {
		t.Fatal("concept id not assigned")
	}
	if resp.Contributed {
		t.Fatal("no quest named, but contribution reported")
	}

	if got := len(s.Store.UserByID("user_1").Gallery); got != 1 {
		t.Fatalf("gallery = %d entries, want 1", got)
	}
}
