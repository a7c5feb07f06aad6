package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms-backend-go/internal/services"
)

func TestWriteServiceErrorHidesCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)

	rec := httptest.NewRecorder()
	WriteServiceError(rec, req, services.ErrPersistence("Could not save blog post", errors.New("UNIQUE constraint failed")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Could not save blog post"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteServiceError(rec, req, fmt.Errorf("raw driver failure"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteServiceError(rec, req, services.ErrRateLimited("slow down", nil))
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestDecodeBody(t *testing.T) {
	var dest struct {
		Title string `json:"title"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	require.NoError(t, decodeBody(req, &dest))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x"}`))
	require.NoError(t, decodeBody(req, &dest))
	assert.Equal(t, "x", dest.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	err := decodeBody(req, &dest)
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", maxBodyBytes+1)))
	err = decodeBody(req, &dest)
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
}
