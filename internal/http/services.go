package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecms-backend-go/internal/services"
)

type ServiceListResponse struct {
	Services []services.Service `json:"services"`
}

type ServiceResponse struct {
	Service services.Service `json:"service"`
}

type IDResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	items, err := s.Services.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ServiceListResponse{Services: items})
}

func (s *Server) GetService(w http.ResponseWriter, r *http.Request) {
	item, err := s.Services.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ServiceResponse{Service: item})
}

func (s *Server) CreateService(w http.ResponseWriter, r *http.Request) {
	var item services.Service
	if err := decodeBody(r, &item); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	id, err := s.Services.Create(r.Context(), item)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, IDResponse{Success: true, ID: id})
}

func (s *Server) UpdateService(w http.ResponseWriter, r *http.Request) {
	body, err := updateBody(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Services.Update(r.Context(), chi.URLParam(r, "id"), body); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.Services.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
