package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecms-backend-go/internal/services"
)

type GalleryListResponse struct {
	Items []services.GalleryItem `json:"items"`
}

type GalleryItemResponse struct {
	Item services.GalleryItem `json:"item"`
}

// ListGallery filters by ?category= since gallery items have no status.
func (s *Server) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := s.Gallery.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, GalleryListResponse{Items: items})
}

func (s *Server) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.Gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, GalleryItemResponse{Item: item})
}

func (s *Server) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var item services.GalleryItem
	if err := decodeBody(r, &item); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	id, err := s.Gallery.Create(r.Context(), item)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, IDResponse{Success: true, ID: id})
}

func (s *Server) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	body, err := updateBody(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if err := s.Gallery.Update(r.Context(), chi.URLParam(r, "id"), body); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := s.Gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
