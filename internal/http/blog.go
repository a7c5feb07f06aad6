package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sitecms-backend-go/internal/services"
)

type BlogListResponse struct {
	Posts []services.BlogPost `json:"posts"`
}

type BlogPostResponse struct {
	Post services.BlogPost `json:"post"`
}

type SlugResponse struct {
	Success bool   `json:"success"`
	Slug    string `json:"slug"`
}

func (s *Server) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Blog.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, BlogListResponse{Posts: posts})
}

func (s *Server) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.Blog.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, BlogPostResponse{Post: post})
}

func (s *Server) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var post services.BlogPost
	if err := decodeBody(r, &post); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	slug, err := s.Blog.Create(r.Context(), post)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SlugResponse{Success: true, Slug: slug})
}

func (s *Server) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	body, err := updateBody(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	slug, err := s.Blog.Update(r.Context(), chi.URLParam(r, "slug"), body)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SlugResponse{Success: true, Slug: slug})
}

func (s *Server) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := s.Blog.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	writeSuccess(w)
}
