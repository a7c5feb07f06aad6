package httpapi

import (
	"encoding/json"
	"net/http"

	"sitecms-backend-go/internal/services"
)

type SettingsResponse struct {
	Settings map[string]string `json:"settings"`
}

type SettingsUpdateResponse struct {
	Success bool     `json:"success"`
	Updated []string `json:"updated"`
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SettingsResponse{Settings: settings})
}

// UpdateSettings writes the allow-listed keys of the body. Other keys are
// ignored without inspecting their values.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := updateBody(r)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	values := map[string]string{}
	for _, key := range services.AllowedSettingKeys() {
		raw, ok := body[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid value for "+key)
			return
		}
		values[key] = value
	}
	updated, err := s.Settings.Update(r.Context(), values)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SettingsUpdateResponse{Success: true, Updated: updated})
}
