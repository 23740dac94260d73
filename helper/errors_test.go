package helper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrValidation, http.StatusBadRequest},
		{ErrPartialFailure, http.StatusInternalServerError},
		{ErrStorage, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), "%v", tc.err)
	}
}

func TestStatusCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("meal %q: %w", "abc", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}
