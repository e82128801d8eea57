// Package api serves the world state over HTTP.
// GET endpoints are public (read-only observation of the feed, factions,
// quests, and chat). POST endpoints require a bearer token.
package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/engine"
	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/social"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// Server serves the world state over HTTP.
type Server struct {
	Store     *store.Store
	Scheduler *engine.Scheduler
	Gallery   *social.Gallery
	Accounts  *social.Accounts
	Port      int
	AdminKey  string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/factions", s.handleFactions)
	mux.HandleFunc("/api/v1/quests", s.handleQuests)
	mux.HandleFunc("/api/v1/quests/", s.handleQuestDetail)
	mux.HandleFunc("/api/v1/posts", s.handlePosts)
	mux.HandleFunc("/api/v1/chat", s.handleChat)

	// Control plane (POST, bearer token).
	mux.HandleFunc("/api/v1/concepts", s.adminOnly(s.handleConcepts))
	mux.HandleFunc("/api/v1/accounts/link", s.adminOnly(s.handleLinkAccount))
	mux.HandleFunc("/api/v1/accounts/refresh", s.adminOnly(s.handleRefreshActivity))
	mux.HandleFunc("/api/v1/tick", s.adminOnly(s.handleTick))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled (no GENESIS_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.AdminKey)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"name":     "Gamedin Genesis",
		"state":    s.Scheduler.State().String(),
		"ticks":    s.Scheduler.Ticks(),
		"factions": len(s.Store.Factions()),
		"quests":   len(s.Store.WorldQuests()),
		"posts":    len(s.Store.Posts()),
	})
}

func (s *Server) handleFactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store.Factions())
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Store.WorldQuests())
}

func (s *Server) handleQuestDetail(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/quests/")
	quest := s.Store.QuestByID(id)
	if quest == nil {
		http.Error(w, "quest not found", http.StatusNotFound)
		return
	}
	writeJSON(w, quest)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts := s.Store.Posts()
	if limStr := r.URL.Query().Get("limit"); limStr != "" {
		if lim, err := strconv.Atoi(limStr); err == nil && lim > 0 && lim < len(posts) {
			posts = posts[:lim]
		}
	}
	writeJSON(w, posts)
}

// handleChat serves the chat history on GET and appends a message on POST.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.Store.ChatMessages())
	case http.MethodPost:
		var req struct {
			AuthorHandle string `json:"authorHandle"`
			Text         string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "invalid chat message", http.StatusBadRequest)
			return
		}
		author := s.Store.UserByHandle(req.AuthorHandle)
		if author == nil {
			http.Error(w, "unknown author handle", http.StatusNotFound)
			return
		}
		msg := genesis.GlobalChatMessage{
			ID:              "chat_" + uuid.NewString(),
			AuthorHandle:    author.Handle,
			AuthorName:      author.Name,
			AuthorAvatarURL: author.AvatarURL,
			Text:            req.Text,
			Timestamp:       time.Now(),
		}
		if err := s.Store.AddChatMessage(msg); err != nil {
			http.Error(w, "failed to save message", http.StatusInternalServerError)
			return
		}
		writeJSON(w, msg)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleConcepts saves a generated concept to a user's gallery, optionally
// contributing it to a world quest.
func (s *Server) handleConcepts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		QuestID     string `json:"questId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Name == "" {
		http.Error(w, "invalid concept", http.StatusBadRequest)
		return
	}

	concept, contributed, err := s.Gallery.SaveConcept(req.UserID, genesis.GeneratedConcept{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, req.QuestID)
	if errors.Is(err, store.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to save concept", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"concept":     concept,
		"contributed": contributed,
	})
}

func (s *Server) handleLinkAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string                  `json:"userId"`
		Provider genesis.NetworkProvider `json:"provider"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Provider == "" {
		http.Error(w, "invalid link request", http.StatusBadRequest)
		return
	}
	account, err := s.Accounts.LinkAccount(req.UserID, req.Provider)
	if errors.Is(err, store.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to link account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, account)
}

func (s *Server) handleRefreshActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "invalid refresh request", http.StatusBadRequest)
		return
	}
	if err := s.Accounts.RefreshNexusActivity(r.Context(), req.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "refresh failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, s.Store.UserByID(req.UserID))
}

// handleTick forces one simulation tick outside the regular cadence.
func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	s.Scheduler.Tick(r.Context())
	writeJSON(w, map[string]any{
		"state": s.Scheduler.State().String(),
		"ticks": s.Scheduler.Ticks(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
