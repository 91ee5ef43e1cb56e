package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobhook/service/notify"
	"jobhook/service/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	trigger := chi.URLParam(r, "trigger")

	var exec notify.Execution
	if err := json.NewDecoder(r.Body).Decode(&exec); err != nil {
		util.LogAndError(w, s.logger, "Invalid execution payload", http.StatusBadRequest, err, "trigger", trigger)
		return
	}

	if err := s.notifier.Send(r.Context(), trigger, exec); err != nil {
		// The error text carries the delivery diagnostic (remote body and
		// outgoing payload on rejection); the host logs it from the response.
		s.logger.Error("Failed to deliver notification",
			"error", err,
			"trigger", trigger,
			"job", exec.JobName,
		)
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	id := uuid.NewString()
	s.logger.Info("Notification delivered",
		"id", id,
		"trigger", trigger,
		"job", exec.JobName,
		"execution", exec.ExecutionID,
	)

	util.WriteJSON(w, s.logger, map[string]any{
		"id":      id,
		"trigger": trigger,
		"sent":    true,
	})
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	util.WriteJSON(w, s.logger, notify.ConfigProperties())
}

// statusForError maps a notification failure to the response status. The
// taxonomy itself lives in the notify package; only this boundary knows
// about HTTP.
func statusForError(err error) int {
	switch {
	case errors.Is(err, notify.ErrUnknownTrigger):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrRender), errors.Is(err, notify.ErrMalformedURL):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
