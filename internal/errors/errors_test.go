package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewIngestionError("dataset missing required columns", errors.New("no employee_id")),
			want: "[INGESTION] dataset missing required columns: no employee_id",
		},
		{
			name: "without cause",
			err:  NewNotFoundError("view not found"),
			want: "[NOT_FOUND] view not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unreadable stream")
	err := NewIngestionError("cannot read input", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("loading dataset: %w", err)
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrTypeIngestion, appErr.Type)
}

func TestIsIngestionError(t *testing.T) {
	assert.True(t, IsIngestionError(NewIngestionError("x", nil)))
	assert.True(t, IsIngestionError(fmt.Errorf("outer: %w", NewIngestionError("x", nil))))
	assert.False(t, IsIngestionError(NewStorageError("x", nil)))
	assert.False(t, IsIngestionError(errors.New("plain")))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewIngestionError("missing column", nil).
		WithContext("column", "employee_id").
		WithContext("path", "data/raw.csv")

	assert.Equal(t, "employee_id", err.Context["column"])
	assert.Equal(t, "data/raw.csv", err.Context["path"])
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: NewNotFoundError("view"), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "ingestion", err: NewIngestionError("bad input", nil), wantStatus: http.StatusServiceUnavailable, wantCode: "INGESTION_FAILURE"},
		{name: "api error passthrough", err: ErrViewNotFound, wantStatus: http.StatusNotFound, wantCode: "VIEW_NOT_FOUND"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.ErrorCode)
		})
	}
}
