// Package server exposes the application over a JSON HTTP API.
//
// Every /api route except registration and login requires a Bearer
// token. Handlers stay thin: decode, call the store or a pure
// computation, map errors, encode.
package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hearthapp/hearth/internal/auth"
	"github.com/hearthapp/hearth/internal/storage"
	"github.com/hearthapp/hearth/internal/storage/cached"
)

// Server holds the handler dependencies.
type Server struct {
	store storage.Store
	authn auth.Authenticator
	jwt   *auth.JWTManager

	// cachedStore is the same store when caching is enabled; kept
	// separately for the stats endpoint.
	cachedStore *cached.Store

	staticDir string
}

// Option configures a Server.
type Option func(*Server)

// WithStaticDir serves files from dir for all non-API routes.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithCacheStats exposes the cache counters of cs at /api/cache/stats.
func WithCacheStats(cs *cached.Store) Option {
	return func(s *Server) { s.cachedStore = cs }
}

// New creates a Server around the given store and auth components.
func New(store storage.Store, authn auth.Authenticator, jwt *auth.JWTManager, opts ...Option) *Server {
	s := &Server{store: store, authn: authn, jwt: jwt}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the full route table wrapped in logging and CORS
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/meta", s.handleMeta)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authenticated routes
	authed := http.NewServeMux()
	authed.HandleFunc("GET /api/me", s.handleGetProfile)
	authed.HandleFunc("PUT /api/me", s.handleUpdateProfile)

	authed.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	authed.HandleFunc("GET /api/transactions", s.handleListTransactions)
	authed.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	authed.HandleFunc("PUT /api/budgets", s.handleSetBudget)
	authed.HandleFunc("GET /api/budgets", s.handleListBudgets)
	authed.HandleFunc("GET /api/budgets/summary", s.handleBudgetSummary)
	authed.HandleFunc("DELETE /api/budgets/{category}", s.handleDeleteBudget)

	authed.HandleFunc("POST /api/lists", s.handleCreateList)
	authed.HandleFunc("GET /api/lists", s.handleListLists)
	authed.HandleFunc("DELETE /api/lists/{id}", s.handleDeleteList)
	authed.HandleFunc("POST /api/lists/{id}/items", s.handleAddListItem)
	authed.HandleFunc("GET /api/lists/{id}/items", s.handleListItems)
	authed.HandleFunc("PATCH /api/items/{id}", s.handleUpdateItem)

	authed.HandleFunc("POST /api/family", s.handleCreateFamilyMember)
	authed.HandleFunc("GET /api/family", s.handleListFamilyMembers)
	authed.HandleFunc("PUT /api/family/{id}", s.handleUpdateFamilyMember)
	authed.HandleFunc("DELETE /api/family/{id}", s.handleDeleteFamilyMember)

	authed.HandleFunc("POST /api/events", s.handleCreateEvent)
	authed.HandleFunc("GET /api/events", s.handleListEvents)
	authed.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	authed.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	authed.HandleFunc("POST /api/goals", s.handleCreateGoal)
	authed.HandleFunc("GET /api/goals", s.handleListGoals)
	authed.HandleFunc("GET /api/goals/{id}", s.handleGetGoal)
	authed.HandleFunc("PATCH /api/goals/{id}", s.handleUpdateGoal)
	authed.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	authed.HandleFunc("POST /api/goals/{id}/milestones", s.handleCreateMilestone)
	authed.HandleFunc("GET /api/goals/{id}/milestones", s.handleListMilestones)
	authed.HandleFunc("PATCH /api/milestones/{id}", s.handleUpdateMilestone)
	authed.HandleFunc("DELETE /api/milestones/{id}", s.handleDeleteMilestone)

	authed.HandleFunc("GET /api/reports/totals", s.handleReportTotals)
	authed.HandleFunc("GET /api/reports/expenses.png", s.handleExpensesChart)
	authed.HandleFunc("GET /api/reports/trend.png", s.handleTrendChart)

	authed.HandleFunc("GET /api/export", s.handleExport)
	authed.HandleFunc("POST /api/import", s.handleImport)
	authed.HandleFunc("DELETE /api/data", s.handleDeleteData)

	if s.cachedStore != nil {
		authed.HandleFunc("GET /api/cache/stats", s.handleCacheStats)
	}

	mux.Handle("/api/", s.requireAuth(authed))

	if s.staticDir != "" {
		mux.HandleFunc("/", s.handleStatic)
	}

	return loggingMiddleware(corsMiddleware(mux))
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCacheStats reports read-cache effectiveness.
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := s.cachedStore.Stats()
	respondJSON(w, http.StatusOK, map[string]any{
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"evictions": stats.Evictions,
		"size":      stats.Size,
		"hit_rate":  stats.HitRate(),
	})
}

// handleStatic serves the frontend, falling back to index.html for
// unknown paths (SPA routing).
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if !strings.HasPrefix(filePath, filepath.Clean(s.staticDir)) {
		http.NotFound(w, r)
		return
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, filePath)
}
