package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hearthapp/hearth/internal/finance"
	"github.com/hearthapp/hearth/internal/models"
)

type eventRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date,omitzero"`
	Reminder     bool      `json:"reminder"`
	ReminderTime time.Time `json:"reminder_time,omitzero"`
}

func (req *eventRequest) validate() error {
	if req.Title == "" {
		return badRequestf("title is required")
	}
	if req.StartDate.IsZero() {
		return badRequestf("start_date is required")
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return badRequestf("end_date is before start_date")
	}
	return nil
}

func (req *eventRequest) toModel(id, uid string) *models.Event {
	return &models.Event{
		ID:           id,
		UserID:       uid,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reminder:     req.Reminder,
		ReminderTime: req.ReminderTime,
	}
}

// handleCreateEvent adds a calendar event.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	event := req.toModel("", userID(r.Context()))
	if err := s.store.CreateEvent(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Event created", "event_id", event.ID, "user_id", event.UserID)
	respondJSON(w, http.StatusCreated, event)
}

// handleListEvents returns events, selected one of three ways:
//
//   - ?year=&month=        one calendar month
//   - ?upcoming_days=N     the next N days from now
//   - ?start=&end=         an explicit range (either bound optional)
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var start, end time.Time

	switch {
	case q.Get("month") != "" || q.Get("year") != "":
		month, year, err := parseMonthYear(r)
		if err != nil {
			respondError(w, err)
			return
		}
		start, end = finance.MonthRange(year, month)

	case q.Get("upcoming_days") != "":
		days, err := strconv.Atoi(q.Get("upcoming_days"))
		if err != nil || days < 1 {
			respondError(w, badRequestf("bad upcoming_days %q", q.Get("upcoming_days")))
			return
		}
		start = time.Now()
		end = start.AddDate(0, 0, days)

	default:
		filter, err := parseDateRange(r)
		if err != nil {
			respondError(w, err)
			return
		}
		start, end = filter.Start, filter.End
	}

	events, err := s.store.ListEvents(r.Context(), userID(r.Context()), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}

// handleUpdateEvent replaces an event's details.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, err)
		return
	}

	event := req.toModel(r.PathValue("id"), userID(r.Context()))
	if err := s.store.UpdateEvent(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// handleDeleteEvent removes an event.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEvent(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
