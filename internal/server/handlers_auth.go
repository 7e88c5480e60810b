package server

import (
	"log/slog"
	"net/http"

	"github.com/hearthapp/hearth/internal/auth"
	"github.com/hearthapp/hearth/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// handleRegister creates a new account and returns a session token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Username == "" || req.Email == "" {
		respondError(w, badRequestf("username and email are required"))
		return
	}

	user, err := s.authn.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "username", req.Username, "error", err)
		respondError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

// handleLogin verifies credentials and returns a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		respondError(w, err)
		return
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		respondError(w, err)
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

// handleGetProfile returns the authenticated user.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUserByID(r.Context(), userID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, auth.ErrInvalidToken)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type profileUpdateRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// handleUpdateProfile changes email and/or password; empty fields stay
// untouched.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var passwordHash string
	if req.Password != "" {
		if err := s.authn.ValidateCredential(req.Password); err != nil {
			respondError(w, err)
			return
		}
		var err error
		if passwordHash, err = auth.HashPassword(req.Password); err != nil {
			respondError(w, err)
			return
		}
	}

	uid := userID(r.Context())
	if err := s.store.UpdateUserProfile(r.Context(), uid, req.Email, passwordHash); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Profile updated", "user_id", uid, "email_changed", req.Email != "", "password_changed", req.Password != "")
	w.WriteHeader(http.StatusNoContent)
}

// handleMeta returns the predefined category lists the UI offers.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"transaction_categories": models.TransactionCategories,
		"relationship_types":     models.RelationshipTypes,
		"event_categories":       models.EventCategories,
		"goal_categories":        models.GoalCategories,
		"goal_statuses":          models.GoalStatuses,
	})
}
