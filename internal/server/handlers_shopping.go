package server

import (
	"log/slog"
	"net/http"

	"github.com/hearthapp/hearth/internal/models"
)

// handleCreateList creates a new shopping list.
func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondError(w, badRequestf("name is required"))
		return
	}

	list := &models.ShoppingList{UserID: userID(r.Context()), Name: req.Name}
	if err := s.store.CreateShoppingList(r.Context(), list); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Shopping list created", "list_id", list.ID, "user_id", list.UserID)
	respondJSON(w, http.StatusCreated, list)
}

// handleListLists returns the user's shopping lists, newest first.
func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListShoppingLists(r.Context(), userID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

// handleDeleteList removes a list and its items.
func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteShoppingList(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddListItem appends an item to a list.
func (s *Server) handleAddListItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"item_name"`
		Quantity int    `json:"quantity,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Name == "" {
		respondError(w, badRequestf("item_name is required"))
		return
	}

	item := &models.ListItem{
		ListID:   r.PathValue("id"),
		Name:     req.Name,
		Quantity: req.Quantity,
	}
	if err := s.store.AddListItem(r.Context(), userID(r.Context()), item); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// handleListItems returns a list's items.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context(), userID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleUpdateItem toggles an item's completed flag.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := s.store.SetItemCompleted(r.Context(), userID(r.Context()), r.PathValue("id"), req.Completed); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
