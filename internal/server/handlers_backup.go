package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hearthapp/hearth/internal/models"
)

// handleExport streams the user's complete data as a JSON backup
// document with a download filename.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	backup, err := s.store.ExportUserData(r.Context(), userID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}

	filename := fmt.Sprintf("hearth_backup_%s.json", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	slog.Info("Data exported", "user_id", userID(r.Context()),
		"transactions", len(backup.Transactions), "events", len(backup.Events))
	respondJSON(w, http.StatusOK, backup)
}

// handleImport loads a backup document into the user's account. The
// import is atomic: a bad row rejects the whole document.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var backup models.Backup
	if err := decodeJSON(r, &backup); err != nil {
		respondError(w, err)
		return
	}

	uid := userID(r.Context())
	if err := s.store.ImportUserData(r.Context(), uid, &backup); err != nil {
		slog.Warn("Import failed", "user_id", uid, "error", err)
		respondError(w, badRequestf("import failed: %v", err))
		return
	}

	slog.Info("Data imported", "user_id", uid,
		"transactions", len(backup.Transactions), "goals", len(backup.Goals))
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteData wipes every row the user owns. The client must send
// {"confirm": "DELETE"} to go through with it.
func (s *Server) handleDeleteData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirm string `json:"confirm"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Confirm != "DELETE" {
		respondError(w, badRequestf(`confirmation required: send {"confirm": "DELETE"}`))
		return
	}

	uid := userID(r.Context())
	if err := s.store.DeleteUserData(r.Context(), uid); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("All user data deleted", "user_id", uid)
	w.WriteHeader(http.StatusNoContent)
}
