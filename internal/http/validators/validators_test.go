package validators

import (
	"encoding/json"
	"errors"
	"testing"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func decodeUpdate(t *testing.T, body string) *dto.UpdateTaskRequest {
	t.Helper()
	var req dto.UpdateTaskRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return &req
}

func TestValidateCreateTaskRequest(t *testing.T) {
	if err := ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "Buy milk"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateCreateTaskRequest(&dto.CreateTaskRequest{Title: "  "}); !errors.Is(err, apperrors.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
}

func TestValidateUpdateTaskRequest_Completed(t *testing.T) {
	tests := []struct {
		body    string
		want    bool
		wantErr bool
	}{
		{body: `{"completed": true}`, want: true},
		{body: `{"completed": false}`, want: false},
		{body: `{"completed": "true"}`, want: true},
		{body: `{"completed": "false"}`, want: false},
		{body: `{"completed": 1}`, want: true},
		{body: `{"completed": 0}`, want: false},
		{body: `{"completed": "1"}`, want: true},
		{body: `{"completed": null}`, wantErr: true},
		{body: `{"completed": "yes"}`, wantErr: true},
		{body: `{"completed": 2}`, wantErr: true},
	}

	for _, tt := range tests {
		patch, err := ValidateUpdateTaskRequest(decodeUpdate(t, tt.body))
		if tt.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidCompleted) {
				t.Errorf("%s: expected ErrInvalidCompleted, got %v", tt.body, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.body, err)
			continue
		}
		got, ok := patch.Completed.Get()
		if !ok || got != tt.want {
			t.Errorf("%s: completed = %v (set %v), want %v", tt.body, got, ok, tt.want)
		}
	}
}

func TestValidateUpdateTaskRequest_Presence(t *testing.T) {
	patch, err := ValidateUpdateTaskRequest(decodeUpdate(t, `{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patch.Empty() {
		t.Errorf("expected empty patch, got %+v", patch)
	}

	patch, err = ValidateUpdateTaskRequest(decodeUpdate(t, `{"description": null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !patch.Description.Set || patch.Description.Value != nil {
		t.Errorf("expected description set to null, got %+v", patch.Description)
	}
	if patch.Title.Set || patch.Completed.Set {
		t.Errorf("unexpected fields set: %+v", patch)
	}

	for _, body := range []string{`{"title": ""}`, `{"title": "   "}`, `{"title": null}`} {
		if _, err := ValidateUpdateTaskRequest(decodeUpdate(t, body)); !errors.Is(err, apperrors.ErrTitleRequired) {
			t.Errorf("%s: expected ErrTitleRequired, got %v", body, err)
		}
	}
}
