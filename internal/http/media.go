package httpapi

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"sitecms-backend-go/internal/services"
)

type SignRequest struct {
	Folder string `json:"folder"`
}

func (s *Server) SignUpload(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if err := decodeBody(r, &req); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if req.Folder == "" {
		WriteServiceError(w, r, services.ErrInvalidFolder())
		return
	}
	folder, err := services.ResolveFolder(req.Folder, "")
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if s.Signer == nil {
		WriteError(w, http.StatusInternalServerError, "Cloudinary is not configured")
		return
	}
	signature, err := s.Signer.SignUpload(folder, time.Now())
	if err != nil {
		logrus.WithError(err).Error("sign upload")
		WriteError(w, http.StatusInternalServerError, "Could not sign upload")
		return
	}
	WriteJSON(w, http.StatusOK, signature)
}
