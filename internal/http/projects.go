package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecms-backend-go/internal/services"
)

type ProjectListResponse struct {
	Projects []services.Project `json:"projects"`
}

type ProjectResponse struct {
	Project services.Project `json:"project"`
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	items, err := s.Projects.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ProjectListResponse{Projects: items})
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	item, err := s.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ProjectResponse{Project: item})
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var item services.Project
	if err := decodeBody(r, &item); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	id, err := s.Projects.Create(r.Context(), item)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, IDResponse{Success: true, ID: id})
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	body, err := updateBody(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Projects.Update(r.Context(), chi.URLParam(r, "id"), body); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
