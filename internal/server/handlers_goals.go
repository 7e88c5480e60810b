package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

type goalRequest struct {
	Title        string              `json:"title"`
	Category     string              `json:"category"`
	Description  string              `json:"description"`
	TargetDate   time.Time           `json:"target_date"`
	TargetAmount decimal.NullDecimal `json:"target_amount"`
}

// handleCreateGoal adds a new goal (status Not Started, progress 0).
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Title == "" || req.Category == "" {
		respondError(w, badRequestf("title and category are required"))
		return
	}
	if req.TargetDate.IsZero() {
		respondError(w, badRequestf("target_date is required"))
		return
	}

	goal := &models.Goal{
		UserID:       userID(r.Context()),
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		TargetDate:   req.TargetDate,
		TargetAmount: req.TargetAmount,
	}
	if err := s.store.CreateGoal(r.Context(), goal); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Goal created", "goal_id", goal.ID, "user_id", goal.UserID, "category", goal.Category)
	respondJSON(w, http.StatusCreated, goal)
}

// handleListGoals returns goals, optionally filtered by category and
// status query parameters.
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	filter := storage.GoalFilter{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	if filter.Status != "" && !models.ValidGoalStatus(filter.Status) {
		respondError(w, badRequestf("unknown status %q", filter.Status))
		return
	}

	goals, err := s.store.ListGoals(r.Context(), userID(r.Context()), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// handleGetGoal returns one goal with its milestones.
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())
	goalID := r.PathValue("id")

	goal, err := s.store.GetGoal(r.Context(), uid, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	if goal.Milestones, err = s.store.ListMilestones(r.Context(), uid, goalID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// goalUpdateRequest uses pointers so absent fields stay untouched.
type goalUpdateRequest struct {
	Title        *string              `json:"title"`
	Category     *string              `json:"category"`
	Description  *string              `json:"description"`
	TargetDate   *time.Time           `json:"target_date"`
	TargetAmount *decimal.NullDecimal `json:"target_amount"`
	Status       *string              `json:"status"`
	Progress     *int                 `json:"progress"`
}

// handleUpdateGoal applies a partial update to a goal.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Status != nil && !models.ValidGoalStatus(*req.Status) {
		respondError(w, badRequestf("unknown status %q", *req.Status))
		return
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		respondError(w, badRequestf("progress must be 0-100"))
		return
	}

	uid := userID(r.Context())
	goal, err := s.store.GetGoal(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Category != nil {
		goal.Category = *req.Category
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetDate != nil {
		goal.TargetDate = *req.TargetDate
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}

	if err := s.store.UpdateGoal(r.Context(), goal); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Goal updated", "goal_id", goal.ID, "user_id", uid, "status", goal.Status)
	respondJSON(w, http.StatusOK, goal)
}

// handleDeleteGoal removes a goal and its milestones.
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCreateMilestone appends a milestone to a goal.
func (s *Server) handleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string    `json:"title"`
		TargetDate time.Time `json:"target_date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Title == "" {
		respondError(w, badRequestf("title is required"))
		return
	}

	m := &models.Milestone{
		GoalID:     r.PathValue("id"),
		Title:      req.Title,
		TargetDate: req.TargetDate,
	}
	if err := s.store.CreateMilestone(r.Context(), userID(r.Context()), m); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

// handleListMilestones returns a goal's milestones.
func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.store.ListMilestones(r.Context(), userID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"milestones": milestones})
}

// handleUpdateMilestone toggles a milestone's completed flag.
func (s *Server) handleUpdateMilestone(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.SetMilestoneCompleted(r.Context(), userID(r.Context()), r.PathValue("id"), req.Completed); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteMilestone removes a milestone.
func (s *Server) handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMilestone(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
