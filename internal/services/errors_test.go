package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(ErrNotFound("x")))
	assert.Equal(t, http.StatusTooManyRequests, StatusOf(fmt.Errorf("wrapped: %w", ErrRateLimited("slow down", nil))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestServiceErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrPersistence("Could not save", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Could not save: disk full", err.Error())
	assert.Equal(t, "Not here", ErrNotFound("Not here").Error())
}
