package handler

import (
	"net/http"
	"time"
)

// leadPopupInterval is how long the lead popup stays suppressed for a
// session after it has been shown once.
const leadPopupInterval = 3 * time.Minute

// GetLeadPopup handles GET /popups/lead?session=.
// The first ask per session inside any suppression window answers
// {"show":true} and stamps the flag; later asks answer {"show":false}.
// A flags-store outage degrades to showing the popup.
func (s *Server) GetLeadPopup(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "session is required")
		return
	}

	show, err := s.flags.ShouldShow(r.Context(), session, "lead-popup", leadPopupInterval)
	if err != nil {
		s.log.Warn("flags store unavailable", "error", err)
		show = true
	}
	writeJSON(w, http.StatusOK, map[string]bool{"show": show})
}
