package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
	"github.com/maxviazov/worldcities-service/internal/service"
	"github.com/maxviazov/worldcities-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "name", Message: "bad"}}}, 400, "invalid_input"},
		{"invalid_param", response.InvalidParam("id", "must be an integer"), 400, "invalid_input"},
		{"unknown_field", &query.UnknownFieldError{Field: "population"}, 400, "unknown_field"},
		{"invalid_page_size", &query.InvalidPageSizeError{PageSize: 0}, 400, "invalid_page_size"},
		{"invalid_page_index", &query.InvalidPageIndexError{PageIndex: -1}, 400, "invalid_page_index"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"wrapped_not_found", fmt.Errorf("load: %w", repository.ErrNotFound), 404, "not_found"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors, "expected field errors in payload")
			}
		})
	}
}

func TestMapError_InternalDoesNotLeak(t *testing.T) {
	_, payload := response.MapError(errors.New("password authentication failed for user app"))
	assert.Empty(t, payload.Message)
}

func TestMapError_UnknownFieldNamesTheField(t *testing.T) {
	_, payload := response.MapError(&query.UnknownFieldError{Field: "population"})
	assert.Contains(t, payload.Message, "population")
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.WriteError(c, repository.ErrNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
	assert.True(t, c.IsAborted())
	assert.Len(t, c.Errors, 1)
}
