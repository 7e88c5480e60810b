package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hearthapp/hearth/internal/models"
)

type familyMemberRequest struct {
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	BirthDate    time.Time `json:"birth_date,omitzero"`
}

func (req *familyMemberRequest) validate() error {
	if req.Name == "" {
		return badRequestf("name is required")
	}
	if req.Relationship == "" {
		return badRequestf("relationship is required")
	}
	return nil
}

// handleCreateFamilyMember adds a person to the family profile.
func (s *Server) handleCreateFamilyMember(w http.ResponseWriter, r *http.Request) {
	var req familyMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	member := &models.FamilyMember{
		UserID:       userID(r.Context()),
		Name:         req.Name,
		Relationship: req.Relationship,
		BirthDate:    req.BirthDate,
	}
	if err := s.store.CreateFamilyMember(r.Context(), member); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Family member added", "member_id", member.ID, "user_id", member.UserID)
	respondJSON(w, http.StatusCreated, member)
}

// handleListFamilyMembers returns the user's family members.
func (s *Server) handleListFamilyMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.ListFamilyMembers(r.Context(), userID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"members": members})
}

// handleUpdateFamilyMember replaces a member's details.
func (s *Server) handleUpdateFamilyMember(w http.ResponseWriter, r *http.Request) {
	var req familyMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	member := &models.FamilyMember{
		ID:           r.PathValue("id"),
		UserID:       userID(r.Context()),
		Name:         req.Name,
		Relationship: req.Relationship,
		BirthDate:    req.BirthDate,
	}
	if err := s.store.UpdateFamilyMember(r.Context(), member); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// handleDeleteFamilyMember removes a family member.
func (s *Server) handleDeleteFamilyMember(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFamilyMember(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
