package errorhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/familytree/gallery-api/internal/pkg/apperror"
)

func TestHandleMapsKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperror.NotFound("Image not found"), http.StatusNotFound, "NOT_FOUND", "Image not found"},
		{"validation wrapped", fmt.Errorf("link: %w", apperror.Validation("Invalid bounding box coordinates")), http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bounding box coordinates"},
		{"conflict", apperror.Conflict("Person is already linked to this image"), http.StatusConflict, "CONFLICT", "Person is already linked to this image"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handle(context.Background(), rec, tt.err, "test")

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Error.Code != tt.code || body.Error.Message != tt.message {
				t.Errorf("expected %s/%q, got %s/%q", tt.code, tt.message, body.Error.Code, body.Error.Message)
			}
		})
	}
}
