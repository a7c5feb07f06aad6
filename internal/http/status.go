package httpapi

import "net/http"

func (s *Server) AdminStatus(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.Status.Capture(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}
