package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"sitecms-backend-go/internal/services"
)

const maxBodyBytes = 5 << 20

type ErrorResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

func writeSuccess(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// WriteServiceError answers with the status and message carried by err.
// Underlying causes are logged and never sent to the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var serr services.ServiceError
	if !errors.As(err, &serr) {
		logrus.WithError(err).WithField("path", r.URL.Path).Error("unhandled error")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if serr.Err != nil {
		entry := logrus.WithError(serr.Err).WithFields(logrus.Fields{"path": r.URL.Path, "status": serr.Status})
		if serr.Status >= http.StatusInternalServerError {
			entry.Error(serr.Message)
		} else {
			entry.Warn(serr.Message)
		}
	}
	if serr.Status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}
	WriteError(w, serr.Status, serr.Message)
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, services.ErrBadRequest("Invalid payload")
	}
	return data, nil
}

// decodeBody decodes a JSON request body into dest. An empty body leaves dest
// untouched.
func decodeBody(r *http.Request, dest interface{}) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return services.ErrBadRequest("Invalid payload")
	}
	return nil
}

func updateBody(r *http.Request) (map[string]json.RawMessage, error) {
	data, err := readBody(r)
	if err != nil {
		return nil, err
	}
	return services.UpdateBody(data)
}
