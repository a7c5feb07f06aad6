package httpapi

import (
	"net/http"

	"sitecms-backend-go/internal/ai"
	"sitecms-backend-go/internal/services"
)

type TopicsResponse struct {
	Topics []ai.Topic `json:"topics"`
}

func (s *Server) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req ai.GenerateRequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	out, err := s.Content.Generate(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Server) OptimizeSEO(w http.ResponseWriter, r *http.Request) {
	var req ai.SEORequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	out, err := s.Content.OptimizeSEO(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (s *Server) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	var req ai.TopicRequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	existing, err := s.existingTitles(r, req.EntityType)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	req.Existing = existing
	topics, err := s.Content.SuggestTopics(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, TopicsResponse{Topics: topics})
}

func (s *Server) existingTitles(r *http.Request, entityType string) ([]string, error) {
	switch entityType {
	case services.EntityService:
		return s.Services.Titles(r.Context())
	case services.EntityProject:
		return s.Projects.Titles(r.Context())
	case "", services.EntityBlog:
		return s.Blog.Titles(r.Context())
	default:
		return nil, nil
	}
}

// GenerateImage answers 200 even when generation fails; see ai.ImageResult.
func (s *Server) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req ai.ImageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	result, err := s.Images.Generate(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
