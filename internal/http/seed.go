package httpapi

import "net/http"

type SeedResponse struct {
	Success bool           `json:"success"`
	Counts  map[string]int `json:"counts"`
}

func (s *Server) Seed(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Seeder.Seed(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SeedResponse{Success: true, Counts: counts})
}
